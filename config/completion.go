package config

import (
	"fmt"
	"os"
)

type CompletionConfig struct {
	ApiUrl           string
	ApiKey           string
	Model            string
	Temperature      float64
	MaxTokens        int
	MaxTokensInDepth int
}

func GetCompletionConfig() (*CompletionConfig, error) {
	apiUrl := os.Getenv("COMPLETION_API_URL")
	if apiUrl == "" {
		return nil, fmt.Errorf("COMPLETION_API_URL must be set")
	}
	apiKey := os.Getenv("COMPLETION_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("COMPLETION_API_KEY must be set")
	}
	model := os.Getenv("COMPLETION_MODEL")
	if model == "" {
		return nil, fmt.Errorf("COMPLETION_MODEL must be set")
	}

	return &CompletionConfig{
		ApiUrl:           apiUrl,
		ApiKey:           apiKey,
		Model:            model,
		Temperature:      0.7,
		MaxTokens:        2000,
		MaxTokensInDepth: 4000,
	}, nil
}
