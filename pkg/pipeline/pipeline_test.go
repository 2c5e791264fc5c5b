package pipeline

import (
	"context"
	"errors"
	"testing"
)

func TestBody_LastMessageHelpers(t *testing.T) {
	body := &Body{
		Model: "moa",
		Messages: []Message{
			{Role: "user", Content: "first question"},
			{Role: "assistant", Content: "first answer"},
			{Role: "user", Content: "second question"},
		},
	}

	if got := body.LastUserMessage(); got != "second question" {
		t.Errorf("LastUserMessage = %q, want %q", got, "second question")
	}
	if got := body.LastAssistantMessage(); got != "first answer" {
		t.Errorf("LastAssistantMessage = %q, want %q", got, "first answer")
	}

	body.SetLastUserMessage("rewritten")
	if body.Messages[2].Content != "rewritten" {
		t.Errorf("SetLastUserMessage rewrote wrong slot: %+v", body.Messages)
	}
	if body.Messages[0].Content != "first question" {
		t.Error("SetLastUserMessage must not touch earlier user messages")
	}

	body.SetLastAssistantMessage("updated answer")
	if body.Messages[1].Content != "updated answer" {
		t.Errorf("SetLastAssistantMessage rewrote wrong slot: %+v", body.Messages)
	}
}

func TestBody_EmptyHelpers(t *testing.T) {
	body := &Body{Messages: []Message{{Role: "system", Content: "be nice"}}}

	if got := body.LastUserMessage(); got != "" {
		t.Errorf("LastUserMessage on bodies without user turns = %q, want empty", got)
	}
	if got := body.LastAssistantMessage(); got != "" {
		t.Errorf("LastAssistantMessage on bodies without assistant turns = %q, want empty", got)
	}

	// Setters on missing roles are no-ops.
	body.SetLastUserMessage("x")
	body.SetLastAssistantMessage("y")
	if len(body.Messages) != 1 || body.Messages[0].Content != "be nice" {
		t.Errorf("setters mutated body without a matching role: %+v", body.Messages)
	}
}

type recordingFilter struct {
	id       string
	priority int
	log      *[]string
	inletErr error
}

func (f *recordingFilter) ID() string    { return f.id }
func (f *recordingFilter) Priority() int { return f.priority }

func (f *recordingFilter) Inlet(ctx context.Context, body *Body) error {
	*f.log = append(*f.log, "in:"+f.id)
	return f.inletErr
}

func (f *recordingFilter) Outlet(ctx context.Context, body *Body) error {
	*f.log = append(*f.log, "out:"+f.id)
	return nil
}

func TestChain_PriorityOrder(t *testing.T) {
	var log []string
	chain := NewChain(
		&recordingFilter{id: "late", priority: 100, log: &log},
		&recordingFilter{id: "early", priority: 0, log: &log},
		&recordingFilter{id: "mid", priority: 50, log: &log},
	)

	body := &Body{Messages: []Message{{Role: "user", Content: "q"}}}
	if err := chain.Inlet(context.Background(), body); err != nil {
		t.Fatalf("Inlet: %v", err)
	}
	if err := chain.Outlet(context.Background(), body); err != nil {
		t.Fatalf("Outlet: %v", err)
	}

	want := []string{"in:early", "in:mid", "in:late", "out:early", "out:mid", "out:late"}
	if len(log) != len(want) {
		t.Fatalf("execution log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("execution log = %v, want %v", log, want)
		}
	}
}

func TestChain_InletErrorBlocks(t *testing.T) {
	var log []string
	blocked := errors.New("blocked")
	chain := NewChain(
		&recordingFilter{id: "guard", priority: 0, log: &log, inletErr: blocked},
		&recordingFilter{id: "next", priority: 1, log: &log},
	)

	err := chain.Inlet(context.Background(), &Body{})
	if !errors.Is(err, blocked) {
		t.Fatalf("Inlet err = %v, want the guard's error", err)
	}
	for _, entry := range log {
		if entry == "in:next" {
			t.Error("filters after a failing Inlet must not run")
		}
	}
}

type stubSynthesizer struct {
	gotPrompt string
	answer    string
}

func (s *stubSynthesizer) Process(ctx context.Context, prompt string) string {
	s.gotPrompt = prompt
	return s.answer
}

func TestMoAFilter_ReplacesLastUserMessage(t *testing.T) {
	engine := &stubSynthesizer{answer: "synthesized"}
	filter := NewMoAFilter(engine, 100)

	body := &Body{Messages: []Message{
		{Role: "user", Content: "old question"},
		{Role: "assistant", Content: "old answer"},
		{Role: "user", Content: "new question"},
	}}

	if err := filter.Inlet(context.Background(), body); err != nil {
		t.Fatalf("Inlet: %v", err)
	}

	if engine.gotPrompt != "new question" {
		t.Errorf("engine received %q, want the latest user message", engine.gotPrompt)
	}
	if body.Messages[2].Content != "synthesized" {
		t.Errorf("last user message = %q, want the synthesized answer", body.Messages[2].Content)
	}
	if body.Messages[0].Content != "old question" {
		t.Error("earlier user messages must stay untouched")
	}
}

func TestMoAFilter_SkipsBodiesWithoutUserMessage(t *testing.T) {
	engine := &stubSynthesizer{answer: "should not appear"}
	filter := NewMoAFilter(engine, 100)

	body := &Body{Messages: []Message{{Role: "system", Content: "s"}}}
	if err := filter.Inlet(context.Background(), body); err != nil {
		t.Fatalf("Inlet: %v", err)
	}
	if engine.gotPrompt != "" {
		t.Error("engine must not run for bodies without a user message")
	}
}
