package outbound

import "context"

type PublishVideoRequest struct {
	RequestID     string
	VideoFileName string
}

type PublishVideoResponse struct {
	VideoKey    string
	StoreRegion string
}

// VideoPublisherPort uploads the final deliverable to durable storage.
// The local file is kept; rendered artifacts persist as the delivered product.
type VideoPublisherPort interface {
	Publish(ctx context.Context, req PublishVideoRequest) (*PublishVideoResponse, error)
}
