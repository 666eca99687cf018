package outbound

import (
	"context"

	"github.com/manavmaharishi/voicemation-final/domain"
)

// ResultStorePort keys pipeline outcomes by request ID. There is no
// process-wide "latest result" slot; callers fetch by the ID they were given.
// Get wraps domain.ErrResultNotFound for unknown IDs.
type ResultStorePort interface {
	Save(ctx context.Context, result domain.StoredResult) error
	Get(ctx context.Context, requestID string) (*domain.StoredResult, error)
}
