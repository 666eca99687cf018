package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/manavmaharishi/voicemation-final/application/ports/outbound"
	"github.com/manavmaharishi/voicemation-final/config"
	"github.com/manavmaharishi/voicemation-final/domain"
)

type transcriptionResponse struct {
	Text string `json:"text"`
}

type whisperTranscriber struct {
	logger              outbound.LoggerPort
	transcriptionConfig *config.TranscriptionConfig
	client              *http.Client
}

// NewWhisperTranscriber posts canonical WAV audio to an audio/transcriptions
// style endpoint and returns the recognized text.
func NewWhisperTranscriber(transcriptionConfig *config.TranscriptionConfig, logger outbound.LoggerPort) outbound.TranscriberPort {
	return &whisperTranscriber{
		logger:              logger,
		transcriptionConfig: transcriptionConfig,
		client:              &http.Client{},
	}
}

func (t *whisperTranscriber) Transcribe(ctx context.Context, wavPath string) (string, error) {
	f, err := os.Open(wavPath)
	if err != nil {
		t.logger.Error(err, "Failed to open audio file for transcription")
		return "", fmt.Errorf("%w: %v", domain.ErrTranscribeUnavailable, err)
	}
	defer func() {
		if err := f.Close(); err != nil {
			t.logger.Error(err, "Failed to close audio file")
		}
	}()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("model", t.transcriptionConfig.Model); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTranscribeUnavailable, err)
	}
	fw, err := mw.CreateFormFile("file", filepath.Base(wavPath))
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTranscribeUnavailable, err)
	}
	if _, err := io.Copy(fw, f); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTranscribeUnavailable, err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTranscribeUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.transcriptionConfig.ApiUrl, &body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrTranscribeUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+t.transcriptionConfig.ApiKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	res, err := t.client.Do(req)
	if err != nil {
		t.logger.Error(err, "Transcription service unreachable")
		return "", fmt.Errorf("%w: %v", domain.ErrTranscribeUnavailable, err)
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			t.logger.Error(err, "Failed to close transcription response body")
		}
	}()

	if res.StatusCode >= 300 {
		payload, _ := io.ReadAll(res.Body)
		t.logger.ErrorWithFields(nil, "Transcription request failed", map[string]interface{}{
			"status":  res.StatusCode,
			"message": string(payload),
		})
		return "", fmt.Errorf("%w: http %d", domain.ErrTranscribeUnavailable, res.StatusCode)
	}

	var parsed transcriptionResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		t.logger.Error(err, "Failed to decode transcription response")
		return "", fmt.Errorf("%w: %v", domain.ErrTranscribeUnavailable, err)
	}

	text := strings.TrimSpace(parsed.Text)
	if text == "" {
		return "", domain.ErrUnrecognizedSpeech
	}

	return text, nil
}
