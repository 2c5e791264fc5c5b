package agent

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"moa/pkg/llm"
)

func TestLayerPrompt_EnumeratesPreviousLayerOnly(t *testing.T) {
	previous := []llm.Result{
		llm.Ok("llama3", "first answer"),
		llm.Ok("mistral", "second answer"),
		llm.Ok("gemma", "third answer"),
	}

	got := LayerPrompt("what is the capital of France?", previous)

	if !strings.Contains(got, "Original prompt: what is the capital of France?") {
		t.Errorf("layer prompt missing original prompt:\n%s", got)
	}
	for i, res := range previous {
		want := fmt.Sprintf("%d. %s", i+1, res.Content)
		if !strings.Contains(got, want) {
			t.Errorf("layer prompt missing enumerated response %q", want)
		}
	}
	if !strings.Contains(got, "provide an improved and comprehensive answer:") {
		t.Errorf("layer prompt missing improvement instruction:\n%s", got)
	}
}

func TestLayerPrompt_FailedResultBecomesPlaceholder(t *testing.T) {
	previous := []llm.Result{
		llm.Ok("llama3", "fine answer"),
		llm.Failure("mistral", errors.New("connection refused")),
	}

	got := LayerPrompt("question", previous)

	if !strings.Contains(got, "2. Error: Unable to query model mistral") {
		t.Errorf("failure placeholder not enumerated:\n%s", got)
	}
	if strings.Contains(got, "connection refused") {
		t.Errorf("raw error leaked into prompt:\n%s", got)
	}
}

func TestFinalPrompt_ContainsEveryLayerAndResponse(t *testing.T) {
	history := [][]llm.Result{
		{llm.Ok("a", "layer one, agent one"), llm.Ok("b", "layer one, agent two")},
		{llm.Ok("agg", "layer two, slot one"), llm.Ok("agg", "layer two, slot two")},
	}

	got := FinalPrompt("original question", history)

	for l, layer := range history {
		if !strings.Contains(got, fmt.Sprintf("Layer %d:", l+1)) {
			t.Errorf("final prompt missing layer header %d", l+1)
		}
		for i, res := range layer {
			want := fmt.Sprintf("%d. %s", i+1, res.Content)
			if !strings.Contains(got, want) {
				t.Errorf("final prompt missing response %q", want)
			}
		}
	}
}

func TestFinalPrompt_RepeatsOriginalPromptVerbatim(t *testing.T) {
	original := "explain entropy to a ten year old"
	got := FinalPrompt(original, [][]llm.Result{{llm.Ok("a", "x")}})

	// Once as context, once verbatim inside the closing instruction.
	if n := strings.Count(got, original); n != 2 {
		t.Errorf("original prompt appears %d times, want 2:\n%s", n, got)
	}
	if !strings.Contains(got, fmt.Sprintf("the original prompt '%s'", original)) {
		t.Errorf("closing instruction does not quote the original prompt:\n%s", got)
	}
	if !strings.Contains(got, "strictly adheres to the original request:") {
		t.Errorf("final prompt missing adherence instruction:\n%s", got)
	}
}
