package channels

import (
	"context"

	"moa/pkg/config"

	jsoniter "github.com/json-iterator/go"
)

// Session carries routing identity for one conversation unit. The pipeline
// itself is stateless; sessions only tell a channel where to send the reply.
type Session struct {
	ChannelID string
	UserID    string
	ChatID    string
	Username  string
}

// Handler processes one user message and returns the reply text. All failure
// states arrive encoded as text, so a channel always has something to send.
type Handler func(ctx context.Context, session Session, content string) string

// Channel defines the standardized lifecycle interface for front doors into
// the pipeline.
type Channel interface {
	ID() string
	Start(h Handler) error
	Stop() error
}

// ChannelFactory creates a Channel from its raw configuration payload. New
// platforms plug in here without touching the core wiring.
type ChannelFactory interface {
	Create(rawConfig jsoniter.RawMessage, system *config.SystemConfig) (Channel, error)
}

var channelRegistry = make(map[string]ChannelFactory)

// RegisterChannel adds a factory to the global registry, typically during
// the package's init() phase.
func RegisterChannel(name string, factory ChannelFactory) {
	channelRegistry[name] = factory
}

// GetChannelFactory retrieves a registered factory by platform name.
func GetChannelFactory(name string) (ChannelFactory, bool) {
	f, ok := channelRegistry[name]
	return f, ok
}
