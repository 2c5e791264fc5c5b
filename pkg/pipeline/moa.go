package pipeline

import (
	"context"
)

// Synthesizer produces one answer for one prompt. Implemented by the MoA
// engine; the pipeline only ever exchanges single strings with it.
type Synthesizer interface {
	Process(ctx context.Context, prompt string) string
}

// MoAFilter mounts the Mixture-of-Agents engine as an inlet filter: the last
// user message is replaced with the synthesized answer before the body moves
// on.
type MoAFilter struct {
	engine   Synthesizer
	priority int
}

// NewMoAFilter wraps a Synthesizer into a Filter with the given priority.
func NewMoAFilter(engine Synthesizer, priority int) *MoAFilter {
	return &MoAFilter{engine: engine, priority: priority}
}

func (f *MoAFilter) ID() string {
	return "moa"
}

func (f *MoAFilter) Priority() int {
	return f.priority
}

// Inlet implements Filter. Bodies without a user message pass untouched.
func (f *MoAFilter) Inlet(ctx context.Context, body *Body) error {
	prompt := body.LastUserMessage()
	if prompt == "" {
		return nil
	}

	body.SetLastUserMessage(f.engine.Process(ctx, prompt))
	return nil
}

// Outlet implements Filter.
func (f *MoAFilter) Outlet(ctx context.Context, body *Body) error {
	return nil
}
