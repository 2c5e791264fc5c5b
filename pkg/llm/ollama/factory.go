package ollama

import (
	"moa/pkg/llm"
)

// OllamaFactory handles creation of native Ollama clients.
type OllamaFactory struct{}

// Create implements llm.ProviderFactory.
func (f *OllamaFactory) Create(cfg llm.ProviderConfig) (llm.Querier, error) {
	return NewOllamaClient(cfg.BaseURL)
}

func init() {
	llm.RegisterProvider("ollama", &OllamaFactory{})
}
