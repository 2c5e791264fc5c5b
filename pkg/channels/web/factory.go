package web

import (
	"fmt"

	"moa/pkg/channels"
	"moa/pkg/config"

	jsoniter "github.com/json-iterator/go"
)

// WebFactory handles creation of web channels.
type WebFactory struct{}

// Create implements channels.ChannelFactory.
func (f *WebFactory) Create(rawConfig jsoniter.RawMessage, system *config.SystemConfig) (channels.Channel, error) {
	cfg := WebConfig{Port: 9453}

	if err := json.Unmarshal(rawConfig, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse web config: %w", err)
	}

	return NewWebChannel(cfg), nil
}

func init() {
	channels.RegisterChannel("web", &WebFactory{})
}
