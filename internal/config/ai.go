package config

import (
	"strings"
	"sync"
)

const (
	AIProviderGemini     = "gemini"
	AIProviderOpenRouter = "openrouter"
)

type AIConfig struct {
	Provider string
}

var (
	aiConfig *AIConfig
	aiOnce   sync.Once
)

func LoadAIConfig() *AIConfig {
	aiOnce.Do(func() {
		aiConfig = &AIConfig{
			Provider: strings.ToLower(getEnv("AI_PROVIDER", AIProviderGemini)),
		}
	})
	return aiConfig
}
