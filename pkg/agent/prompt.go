package agent

import (
	"fmt"
	"strings"

	"moa/pkg/llm"
)

// LayerPrompt builds the aggregation prompt for a refinement layer from the
// original prompt and the immediately preceding layer's responses.
// Failed calls contribute their placeholder text like any other candidate.
func LayerPrompt(originalPrompt string, previous []llm.Result) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Original prompt: %s\n\nPrevious responses:\n", originalPrompt)
	for i, res := range previous {
		fmt.Fprintf(&sb, "%d. %s\n\n", i+1, res.Text())
	}
	sb.WriteString("Based on the above responses and the original prompt, provide an improved and comprehensive answer:")

	return sb.String()
}

// FinalPrompt builds the synthesis prompt from every layer's responses,
// enumerated per layer and per index within layer. The original prompt
// appears twice: once as context and once verbatim inside the closing
// instruction, anchoring the final answer to the original request.
func FinalPrompt(originalPrompt string, history [][]llm.Result) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Original prompt: %s\n\nResponses from all layers:\n", originalPrompt)
	for l, layer := range history {
		fmt.Fprintf(&sb, "Layer %d:\n", l+1)
		for i, res := range layer {
			fmt.Fprintf(&sb, "  %d. %s\n\n", i+1, res.Text())
		}
	}
	fmt.Fprintf(&sb, "Considering all the responses from different layers and the original prompt '%s', provide a final, comprehensive answer that strictly adheres to the original request:", originalPrompt)

	return sb.String()
}
