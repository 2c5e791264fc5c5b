package openailm

import (
	"context"
	"fmt"
	"log/slog"

	"moa/pkg/llm"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Client speaks the OpenAI-compatible chat completions wire format through
// the official SDK. It is the canonical backend for MoA runs: one POST to
// {base_url}/chat/completions per call, bearer auth, no SDK-level retries.
type Client struct {
	client  *openai.Client
	baseURL string
}

// NewClient creates an OpenAI-compatible client. baseURL may point at any
// server exposing /chat/completions (Ollama, vLLM, OpenAI itself).
func NewClient(apiKey string, baseURL string) *Client {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		// Single attempt per call. Failed calls become placeholder
		// candidates upstream, so SDK retries would only add latency.
		option.WithMaxRetries(0),
	}

	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	client := openai.NewClient(opts...)

	return &Client{
		client:  &client,
		baseURL: baseURL,
	}
}

// Endpoint implements llm.Querier.
func (c *Client) Endpoint() string {
	return c.baseURL
}

// Complete implements llm.Querier. Transport errors, non-2xx statuses and
// malformed payloads all land in the Result; nothing escapes as a Go error.
func (c *Client) Complete(ctx context.Context, model string, prompt string) llm.Result {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	}, option.WithJSONSet("stream", false))

	if err != nil {
		slog.Error("Chat completion failed", "provider", "openai", "model", model, "error", err)
		return llm.Failure(model, err)
	}

	if len(resp.Choices) == 0 {
		err := fmt.Errorf("response contained no choices")
		slog.Error("Malformed completion payload", "provider", "openai", "model", model, "error", err)
		return llm.Failure(model, err)
	}

	return llm.Ok(model, resp.Choices[0].Message.Content)
}
