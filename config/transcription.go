package config

import (
	"fmt"
	"os"
)

type TranscriptionConfig struct {
	ApiUrl string
	ApiKey string
	Model  string
}

func GetTranscriptionConfig() (*TranscriptionConfig, error) {
	apiUrl := os.Getenv("TRANSCRIPTION_API_URL")
	if apiUrl == "" {
		return nil, fmt.Errorf("TRANSCRIPTION_API_URL must be set")
	}
	apiKey := os.Getenv("TRANSCRIPTION_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("TRANSCRIPTION_API_KEY must be set")
	}
	model := os.Getenv("TRANSCRIPTION_MODEL")
	if model == "" {
		return nil, fmt.Errorf("TRANSCRIPTION_MODEL must be set")
	}

	return &TranscriptionConfig{
		ApiUrl: apiUrl,
		ApiKey: apiKey,
		Model:  model,
	}, nil
}
