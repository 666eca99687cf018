package outbound

import "context"

// TranscriberPort converts a canonical WAV file to best-effort plain text.
type TranscriberPort interface {
	Transcribe(ctx context.Context, wavPath string) (string, error)
}
