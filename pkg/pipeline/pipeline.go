package pipeline

import (
	"context"
	"sort"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Message is one turn of a chat request body.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Body is the request payload passed through the filter chain: the model the
// caller asked for plus the conversation messages. Filters mutate it in
// place on the way in (Inlet) and on the way out (Outlet).
type Body struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
}

// LastUserMessage returns the content of the most recent user message, or
// the empty string when none exists.
func (b *Body) LastUserMessage() string {
	for i := len(b.Messages) - 1; i >= 0; i-- {
		if b.Messages[i].Role == "user" {
			return b.Messages[i].Content
		}
	}
	return ""
}

// SetLastUserMessage replaces the content of the most recent user message.
// It is a no-op when the body has no user message.
func (b *Body) SetLastUserMessage(content string) {
	for i := len(b.Messages) - 1; i >= 0; i-- {
		if b.Messages[i].Role == "user" {
			b.Messages[i].Content = content
			return
		}
	}
}

// LastAssistantMessage returns the content of the most recent assistant
// message, or the empty string when none exists.
func (b *Body) LastAssistantMessage() string {
	for i := len(b.Messages) - 1; i >= 0; i-- {
		if b.Messages[i].Role == "assistant" {
			return b.Messages[i].Content
		}
	}
	return ""
}

// SetLastAssistantMessage replaces the content of the most recent assistant
// message. It is a no-op when the body has no assistant message.
func (b *Body) SetLastAssistantMessage(content string) {
	for i := len(b.Messages) - 1; i >= 0; i-- {
		if b.Messages[i].Role == "assistant" {
			b.Messages[i].Content = content
			return
		}
	}
}

// Filter defines the request/response interception contract. Inlet runs
// before the body reaches its target, Outlet after a response was attached.
// An Inlet error blocks the request; Outlet errors are advisory.
type Filter interface {
	ID() string
	Priority() int
	Inlet(ctx context.Context, body *Body) error
	Outlet(ctx context.Context, body *Body) error
}

// Chain runs an ordered set of filters. Filters execute in ascending
// priority order for both directions.
type Chain struct {
	filters []Filter
}

// NewChain builds a Chain from the given filters, sorted by priority.
func NewChain(filters ...Filter) *Chain {
	c := &Chain{filters: append([]Filter(nil), filters...)}
	sort.SliceStable(c.filters, func(i, j int) bool {
		return c.filters[i].Priority() < c.filters[j].Priority()
	})
	return c
}

// Filters returns the chain's filters in execution order.
func (c *Chain) Filters() []Filter {
	return c.filters
}

// Inlet passes the body through every filter's Inlet hook. The first error
// stops the chain and blocks the request.
func (c *Chain) Inlet(ctx context.Context, body *Body) error {
	for _, f := range c.filters {
		if err := f.Inlet(ctx, body); err != nil {
			return err
		}
	}
	return nil
}

// Outlet passes the body through every filter's Outlet hook. The first error
// stops the chain.
func (c *Chain) Outlet(ctx context.Context, body *Body) error {
	for _, f := range c.filters {
		if err := f.Outlet(ctx, body); err != nil {
			return err
		}
	}
	return nil
}
