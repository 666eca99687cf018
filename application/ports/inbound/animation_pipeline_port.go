package inbound

import (
	"context"

	"github.com/manavmaharishi/voicemation-final/domain"
)

type StartPipelineParams struct {
	RequestID string
	// Text is the typed request, empty when an audio upload was provided.
	Text string
	// AudioPath points at the uploaded voice clip inside the request workspace.
	AudioPath string
	Mode      domain.Mode
}

type AnimationPipelinePort interface {
	Run(ctx context.Context, params StartPipelineParams) (*domain.AnimationResult, error)
}
