package outbound

import (
	"context"

	"github.com/manavmaharishi/voicemation-final/domain"
)

type CompletionRequest struct {
	Topic string
	Mode  domain.Mode
}

// CompletionPort returns the model's combined explanation+code blob for a topic.
type CompletionPort interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
