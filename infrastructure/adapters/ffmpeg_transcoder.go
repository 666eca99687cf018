package adapters

import (
	"context"
	"fmt"
	"os/exec"

	"github.com/manavmaharishi/voicemation-final/application/ports/outbound"
	"github.com/manavmaharishi/voicemation-final/domain"
)

type ffmpegTranscoder struct {
	logger outbound.LoggerPort
}

// NewFFmpegTranscoder converts uploaded audio (typically WebM from the
// browser recorder) to mono 16 kHz WAV for the transcription service.
func NewFFmpegTranscoder(logger outbound.LoggerPort) outbound.TranscoderPort {
	return &ffmpegTranscoder{
		logger: logger,
	}
}

func (t *ffmpegTranscoder) ToWav(ctx context.Context, inputPath string, outputPath string) error {
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-y", "-i", inputPath,
		"-ac", "1", "-ar", "16000",
		"-f", "wav",
		outputPath,
	)

	out, err := cmd.CombinedOutput()
	if err != nil {
		t.logger.ErrorWithFields(err, "Failed to transcode audio to wav", map[string]interface{}{
			"input":  inputPath,
			"output": string(out),
		})
		return fmt.Errorf("%w: %v", domain.ErrTranscodeFailure, err)
	}

	return nil
}
