package outbound

import "context"

// TranscoderPort normalizes uploaded audio to the canonical waveform format
// the transcription service accepts.
type TranscoderPort interface {
	ToWav(ctx context.Context, inputPath string, outputPath string) error
}
