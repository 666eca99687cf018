package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/manavmaharishi/voicemation-final/application/ports/inbound"
	"github.com/manavmaharishi/voicemation-final/application/ports/outbound"
	"github.com/manavmaharishi/voicemation-final/domain"
)

type requestNormalizer struct {
	transcoder  outbound.TranscoderPort
	transcriber outbound.TranscriberPort
	logger      outbound.LoggerPort
}

func NewRequestNormalizer(
	transcoder outbound.TranscoderPort,
	transcriber outbound.TranscriberPort,
	logger outbound.LoggerPort,
) inbound.RequestNormalizerPort {
	return &requestNormalizer{
		transcoder:  transcoder,
		transcriber: transcriber,
		logger:      logger,
	}
}

// Normalize resolves the request to a plain topic string. Text input only
// needs trimming; audio input is transcoded to 16 kHz mono WAV and run through
// the transcriber. The intermediate WAV never outlives the call.
func (n *requestNormalizer) Normalize(ctx context.Context, params inbound.NormalizeParams) (string, error) {
	if params.AudioPath == "" {
		topic := strings.TrimSpace(params.Text)
		if topic == "" {
			return "", domain.ErrEmptyInput
		}
		return topic, nil
	}

	wavPath := filepath.Join(params.WorkDir, "upload.wav")
	if err := n.transcoder.ToWav(ctx, params.AudioPath, wavPath); err != nil {
		return "", err
	}
	defer func() {
		if err := os.Remove(wavPath); err != nil {
			n.logger.WarnWithFields("Failed to remove intermediate wav", map[string]interface{}{
				"path": wavPath,
			})
		}
	}()

	transcript, err := n.transcriber.Transcribe(ctx, wavPath)
	if err != nil {
		return "", err
	}

	topic := strings.TrimSpace(transcript)
	if topic == "" {
		return "", fmt.Errorf("%w: transcript is empty", domain.ErrUnrecognizedSpeech)
	}

	n.logger.InfoWithFields("Transcribed audio request", map[string]interface{}{
		"topic": topic,
	})
	return topic, nil
}
