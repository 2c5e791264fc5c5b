package telegram

import (
	"fmt"

	"moa/pkg/channels"
	"moa/pkg/config"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// TelegramFactory handles creation of Telegram channels.
type TelegramFactory struct{}

// Create implements channels.ChannelFactory.
func (f *TelegramFactory) Create(rawConfig jsoniter.RawMessage, system *config.SystemConfig) (channels.Channel, error) {
	var cfg TelegramConfig
	if err := json.Unmarshal(rawConfig, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse telegram config: %w", err)
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("telegram token is required")
	}

	return NewTelegramChannel(cfg, system.TelegramMessageLimit)
}

func init() {
	channels.RegisterChannel("telegram", &TelegramFactory{})
}
