package gemini

import (
	"moa/pkg/llm"
)

// GeminiFactory handles creation of Gemini clients.
type GeminiFactory struct{}

// Create implements llm.ProviderFactory.
func (f *GeminiFactory) Create(cfg llm.ProviderConfig) (llm.Querier, error) {
	return NewGeminiClient(cfg.APIKey)
}

func init() {
	llm.RegisterProvider("gemini", &GeminiFactory{})
}
