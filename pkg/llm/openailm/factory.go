package openailm

import (
	"moa/pkg/llm"
)

// OpenAIFactory handles creation of OpenAI-compatible clients.
type OpenAIFactory struct{}

// Create implements llm.ProviderFactory.
func (f *OpenAIFactory) Create(cfg llm.ProviderConfig) (llm.Querier, error) {
	return NewClient(cfg.APIKey, cfg.BaseURL), nil
}

func init() {
	llm.RegisterProvider("openai", &OpenAIFactory{})
}
