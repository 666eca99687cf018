package inbound

import "context"

type NormalizeParams struct {
	Text      string
	AudioPath string
	// WorkDir is the per-request workspace for transcode temporaries.
	WorkDir string
}

// RequestNormalizerPort produces plain topic text from either typed text or
// an uploaded voice clip.
type RequestNormalizerPort interface {
	Normalize(ctx context.Context, params NormalizeParams) (string, error)
}
