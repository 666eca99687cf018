package outbound

import (
	"context"

	"github.com/manavmaharishi/voicemation-final/domain"
)

// SpeechSynthesizerPort turns narration text into an audio file at outputPath.
// Duration is read back from the encoded file, not estimated.
type SpeechSynthesizerPort interface {
	Synthesize(ctx context.Context, text string, outputPath string) (*domain.NarrationTrack, error)
}
