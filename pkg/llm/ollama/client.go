package ollama

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"moa/pkg/llm"

	"github.com/ollama/ollama/api"
)

// OllamaClient talks to an Ollama host over its native chat API. Useful when
// the host does not expose the OpenAI-compatible /v1 surface.
type OllamaClient struct {
	client  *api.Client
	baseURL string
}

// NewOllamaClient creates an Ollama client against the given base URL, or
// the environment default when the URL is empty.
func NewOllamaClient(baseURL string) (*OllamaClient, error) {
	// The client must not impose its own deadline; per-call contexts do.
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		ForceAttemptHTTP2:   true,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	httpClient := &http.Client{
		Transport: transport,
		Timeout:   0,
	}

	var client *api.Client
	if baseURL != "" {
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid base URL: %w", err)
		}
		client = api.NewClient(u, httpClient)
	} else {
		var err error
		client, err = api.ClientFromEnvironment()
		if err != nil {
			return nil, err
		}
	}

	slog.Info("Ollama client initialized", "base_url", baseURL)

	return &OllamaClient{
		client:  client,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// Endpoint implements llm.Querier.
func (o *OllamaClient) Endpoint() string {
	return o.baseURL
}

// Complete implements llm.Querier with a single non-streaming chat call.
func (o *OllamaClient) Complete(ctx context.Context, model string, prompt string) llm.Result {
	stream := false
	req := &api.ChatRequest{
		Model: model,
		Messages: []api.Message{
			{Role: "user", Content: prompt},
		},
		Stream: &stream,
	}

	var content strings.Builder
	err := o.client.Chat(ctx, req, func(resp api.ChatResponse) error {
		content.WriteString(resp.Message.Content)
		return nil
	})

	if err != nil {
		slog.Error("Chat completion failed", "provider", "ollama", "model", model, "error", err)
		return llm.Failure(model, err)
	}

	return llm.Ok(model, content.String())
}
