package config

import (
	"os"
	"sync"
)

type OpenAIConfig struct {
	APIKey             string
	TranscriptionModel string
}

var (
	openAIConfig *OpenAIConfig
	openAIOnce   sync.Once
)

func LoadOpenAIConfig() *OpenAIConfig {
	openAIOnce.Do(func() {
		model := os.Getenv("OPENAI_TRANSCRIPTION_MODEL")
		if model == "" {
			model = "whisper-1"
		}
		openAIConfig = &OpenAIConfig{
			APIKey:             os.Getenv("OPENAI_API_KEY"),
			TranscriptionModel: model,
		}
	})
	return openAIConfig
}
