package services

import (
	"fmt"
	"strings"

	"github.com/manavmaharishi/voicemation-final/application/ports/inbound"
	"github.com/manavmaharishi/voicemation-final/application/ports/outbound"
	"github.com/manavmaharishi/voicemation-final/domain"
)

type subtitleBuilder struct {
	logger outbound.LoggerPort
}

func NewSubtitleBuilder(logger outbound.LoggerPort) inbound.SubtitleBuilderPort {
	return &subtitleBuilder{
		logger: logger,
	}
}

// Build splits narration text into sentences and assigns each an equal slice
// of the narration duration, laid back-to-back from zero. The final cue ends
// exactly at the narration duration. Zero sentences yields zero cues, which
// downstream treats as "no captions".
func (b *subtitleBuilder) Build(text string, duration float64) []domain.SubtitleCue {
	if duration <= 0 {
		return nil
	}

	sentences := splitSentences(text)
	if len(sentences) == 0 {
		b.logger.Warn("No sentences found in narration text, skipping captions")
		return nil
	}

	slice := duration / float64(len(sentences))
	cues := make([]domain.SubtitleCue, 0, len(sentences))
	for i, sentence := range sentences {
		end := float64(i+1) * slice
		if i == len(sentences)-1 {
			end = duration
		}
		cues = append(cues, domain.SubtitleCue{
			Index: i + 1,
			Start: float64(i) * slice,
			End:   end,
			Text:  sentence,
		})
	}

	return cues
}

// splitSentences breaks text on end-of-sentence punctuation. Punctuation
// followed by a non-space (as in "3.14") is not a boundary.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(strings.TrimSpace(text))
	for i, r := range runes {
		current.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			if i == len(runes)-1 || runes[i+1] == ' ' || runes[i+1] == '\n' || runes[i+1] == '\t' {
				sentence := strings.TrimSpace(current.String())
				if sentence != "" {
					sentences = append(sentences, sentence)
				}
				current.Reset()
			}
		}
	}
	if sentence := strings.TrimSpace(current.String()); sentence != "" {
		sentences = append(sentences, sentence)
	}

	return sentences
}

// RenderSRT serializes cues in SubRip format with HH:MM:SS,mmm timestamps.
func RenderSRT(cues []domain.SubtitleCue) string {
	var srt strings.Builder
	for _, cue := range cues {
		srt.WriteString(fmt.Sprintf("%d\n", cue.Index))
		srt.WriteString(formatSRTTime(cue.Start) + " --> " + formatSRTTime(cue.End) + "\n")
		srt.WriteString(cue.Text + "\n\n")
	}
	return srt.String()
}

func formatSRTTime(seconds float64) string {
	hours := int(seconds) / 3600
	minutes := (int(seconds) % 3600) / 60
	secs := int(seconds) % 60
	millis := int((seconds - float64(int(seconds))) * 1000)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, secs, millis)
}
