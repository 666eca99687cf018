package outbound

import "github.com/manavmaharishi/voicemation-final/domain"

// ConcatenatorPort joins clips in the order given, without re-encoding.
// A single clip is returned unchanged.
type ConcatenatorPort interface {
	Concatenate(clips []domain.RenderedClip, outputDir string) (string, error)
}
