package services

import (
	"regexp"
	"strings"

	"github.com/manavmaharishi/voicemation-final/domain"
)

var codeBlockRe = regexp.MustCompile("(?s)```(?:python)?\\n(.*?)```")

// SplitResponse separates the model's combined blob into the spoken
// explanation and the raw scene code. Everything before the first fenced
// code block is the explanation. When no block exists the explanation is
// still returned alongside ErrNoCodeBlock.
func SplitResponse(blob string) (string, string, error) {
	loc := codeBlockRe.FindStringSubmatchIndex(blob)
	if loc == nil {
		return strings.TrimSpace(blob), "", domain.ErrNoCodeBlock
	}

	explanation := strings.TrimSpace(blob[:loc[0]])
	code := strings.TrimSpace(blob[loc[2]:loc[3]])
	return explanation, code, nil
}
