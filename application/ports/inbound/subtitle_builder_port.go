package inbound

import "github.com/manavmaharishi/voicemation-final/domain"

// SubtitleBuilderPort splits narration text into timed cues spanning exactly
// the narration duration. Captions are optional: zero cues is a valid result.
type SubtitleBuilderPort interface {
	Build(text string, duration float64) []domain.SubtitleCue
}
