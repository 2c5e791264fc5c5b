package channels

import (
	"log/slog"

	"moa/pkg/config"

	jsoniter "github.com/json-iterator/go"
)

// LoadFromConfig resolves every configured channel through the registry and
// returns the created instances. Unknown or failing channels are skipped so
// one bad entry does not prevent the rest from starting.
func LoadFromConfig(configs map[string]jsoniter.RawMessage, system *config.SystemConfig) []Channel {
	var loaded []Channel

	for name, rawConfig := range configs {
		factory, ok := GetChannelFactory(name)
		if !ok {
			slog.Warn("Unknown channel type", "name", name)
			continue
		}

		channel, err := factory.Create(rawConfig, system)
		if err != nil {
			slog.Error("Failed to create channel", "name", name, "error", err)
			continue
		}
		if channel == nil {
			continue
		}

		loaded = append(loaded, channel)
		slog.Info("Channel registered", "name", name)
	}

	return loaded
}
