package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	"github.com/manavmaharishi/voicemation-final/application/ports/outbound"
	"github.com/manavmaharishi/voicemation-final/config"
	"github.com/manavmaharishi/voicemation-final/domain"
)

type synthesisRequest struct {
	Text          string        `json:"text"`
	ModelId       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

type ttsSynthesizer struct {
	ContentFetcher
	logger          outbound.LoggerPort
	synthesisConfig *config.SynthesisConfig
	prober          outbound.MediaProberPort
}

// NewTTSSynthesizer converts narration text to speech and writes it to the
// request workspace. The returned duration is probed from the encoded file,
// which is the timing source of truth downstream.
func NewTTSSynthesizer(contentFetcher ContentFetcher, synthesisConfig *config.SynthesisConfig,
	prober outbound.MediaProberPort, logger outbound.LoggerPort) outbound.SpeechSynthesizerPort {
	return &ttsSynthesizer{
		ContentFetcher:  contentFetcher,
		logger:          logger,
		synthesisConfig: synthesisConfig,
		prober:          prober,
	}
}

func (s *ttsSynthesizer) Synthesize(ctx context.Context, text string, outputPath string) (*domain.NarrationTrack, error) {
	req, err := s.getRequest(ctx, text)
	if err != nil {
		s.logger.Error(err, "Failed to construct the HTTP request for narration synthesis")
		return nil, fmt.Errorf("%w: %v", domain.ErrSynthesis, err)
	}

	audio, err := s.FetchContent(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSynthesis, err)
	}

	if err := os.WriteFile(outputPath, audio, 0o644); err != nil {
		s.logger.Error(err, "Failed to write narration file")
		return nil, fmt.Errorf("%w: %v", domain.ErrSynthesis, err)
	}

	duration, err := s.prober.Duration(outputPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSynthesis, err)
	}

	return &domain.NarrationTrack{
		FilePath: outputPath,
		Duration: duration,
	}, nil
}

func (s *ttsSynthesizer) getRequest(ctx context.Context, text string) (*http.Request, error) {
	reqBody := synthesisRequest{
		Text:    text,
		ModelId: s.synthesisConfig.ModelId,
		VoiceSettings: voiceSettings{
			Stability:       s.synthesisConfig.Stability,
			SimilarityBoost: s.synthesisConfig.SimilarityBoost,
		},
	}

	jsonPayload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST",
		s.synthesisConfig.ApiUrl+"/"+s.synthesisConfig.VoiceId, bytes.NewBuffer(jsonPayload))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("xi-api-key", s.synthesisConfig.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}
