package llm

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// NewFromConfig builds the Querier described by the raw "llm" config section.
func NewFromConfig(rawLLM jsoniter.RawMessage) (Querier, error) {
	if rawLLM == nil {
		return nil, fmt.Errorf("missing 'llm' config")
	}

	var cfg ProviderConfig
	if err := json.Unmarshal(rawLLM, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse 'llm' config: %w", err)
	}

	if cfg.Type == "" {
		cfg.Type = "openai"
	}

	factory, ok := GetProviderFactory(cfg.Type)
	if !ok {
		return nil, fmt.Errorf("unknown provider type: %s", cfg.Type)
	}

	client, err := factory.Create(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.Type, err)
	}

	return client, nil
}
