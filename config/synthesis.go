package config

import (
	"fmt"
	"os"
	"strconv"
)

type SynthesisConfig struct {
	ApiUrl          string
	ApiKey          string
	ModelId         string
	VoiceId         string
	Stability       float64
	SimilarityBoost float64
}

func GetSynthesisConfig() (*SynthesisConfig, error) {
	apiUrl := os.Getenv("SYNTHESIS_API_URL")
	if apiUrl == "" {
		return nil, fmt.Errorf("SYNTHESIS_API_URL must be set")
	}
	apiKey := os.Getenv("SYNTHESIS_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("SYNTHESIS_API_KEY must be set")
	}
	modelId := os.Getenv("SYNTHESIS_MODEL_ID")
	if modelId == "" {
		return nil, fmt.Errorf("SYNTHESIS_MODEL_ID must be set")
	}
	voiceId := os.Getenv("SYNTHESIS_VOICE_ID")
	if voiceId == "" {
		return nil, fmt.Errorf("SYNTHESIS_VOICE_ID must be set")
	}

	stability := 0.5
	if v := os.Getenv("SYNTHESIS_STABILITY"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse SYNTHESIS_STABILITY")
		}
		stability = parsed
	}
	similarityBoost := 0.75
	if v := os.Getenv("SYNTHESIS_SIMILARITY_BOOST"); v != "" {
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse SYNTHESIS_SIMILARITY_BOOST")
		}
		similarityBoost = parsed
	}

	return &SynthesisConfig{
		ApiUrl:          apiUrl,
		ApiKey:          apiKey,
		ModelId:         modelId,
		VoiceId:         voiceId,
		Stability:       stability,
		SimilarityBoost: similarityBoost,
	}, nil
}
