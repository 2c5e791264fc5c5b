package gemini

import (
	"context"
	"fmt"
	"log/slog"

	"moa/pkg/llm"

	"google.golang.org/genai"
)

// GeminiClient adapts the Google GenAI SDK to the llm.Querier contract.
// Model diversity in a MoA run can mix Gemini models with local ones when
// several engine instances share the same available-model namespace.
type GeminiClient struct {
	client *genai.Client
}

// NewGeminiClient creates a Gemini client with the given API key.
func NewGeminiClient(apiKey string) (*GeminiClient, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{client: client}, nil
}

// Endpoint implements llm.Querier. The SDK owns the endpoint, so the
// identifier here only has to be non-empty for precondition checks.
func (g *GeminiClient) Endpoint() string {
	return "gemini-api"
}

// Complete implements llm.Querier with a single non-streaming generation.
func (g *GeminiClient) Complete(ctx context.Context, model string, prompt string) llm.Result {
	resp, err := g.client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
	if err != nil {
		slog.Error("Chat completion failed", "provider", "gemini", "model", model, "error", err)
		return llm.Failure(model, err)
	}

	text := resp.Text()
	if text == "" {
		err := fmt.Errorf("response contained no text candidates")
		slog.Error("Malformed completion payload", "provider", "gemini", "model", model, "error", err)
		return llm.Failure(model, err)
	}

	return llm.Ok(model, text)
}
