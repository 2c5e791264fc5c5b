package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	openai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// ModerationConfig maps the "moderation" entry of the filters config.
type ModerationConfig struct {
	APIBaseURL string `json:"api_base_url,omitempty"`
	APIKey     string `json:"api_key"`
	Model      string `json:"model,omitempty"`
	Priority   int    `json:"priority,omitempty"`
}

// ModerationFilter screens the last user message against the OpenAI
// moderation endpoint before it reaches the engine. Flagged content blocks
// the request; moderation backend failures fail open so an unreachable
// moderation API never takes the pipeline down.
type ModerationFilter struct {
	client   *openai.Client
	model    string
	priority int
}

// NewModerationFilter creates a moderation filter from its configuration.
// Endpoint and model fall back to the hosted OpenAI moderation defaults.
func NewModerationFilter(cfg ModerationConfig) *ModerationFilter {
	base := cfg.APIBaseURL
	if base == "" {
		base = "https://api.openai.com/v1"
	}
	model := cfg.Model
	if model == "" {
		model = "omni-moderation-latest"
	}

	client := openai.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithBaseURL(base),
	)

	return &ModerationFilter{
		client:   &client,
		model:    model,
		priority: cfg.Priority,
	}
}

func (f *ModerationFilter) ID() string {
	return "moderation"
}

func (f *ModerationFilter) Priority() int {
	return f.priority
}

// Inlet implements Filter.
func (f *ModerationFilter) Inlet(ctx context.Context, body *Body) error {
	input := body.LastUserMessage()
	if input == "" {
		return nil
	}

	resp, err := f.client.Moderations.New(ctx, openai.ModerationNewParams{
		Model: openai.ModerationModel(f.model),
		Input: openai.ModerationNewParamsInputUnion{
			OfString: openai.String(input),
		},
	})
	if err != nil {
		slog.Warn("Moderation request failed, passing message through", "error", err)
		return nil
	}

	if len(resp.Results) == 0 || !resp.Results[0].Flagged {
		return nil
	}

	flagged := flaggedCategories(resp.Results[0])
	slog.Info("Message flagged by moderation", "categories", flagged)
	return fmt.Errorf("Message contains flagged content: %s", strings.Join(flagged, ", "))
}

// Outlet implements Filter.
func (f *ModerationFilter) Outlet(ctx context.Context, body *Body) error {
	return nil
}

// flaggedCategories extracts the names of the categories that tripped. The
// SDK exposes categories as a fixed struct, so a JSON round trip recovers
// the wire names without enumerating every field by hand.
func flaggedCategories(result openai.Moderation) []string {
	raw, err := json.Marshal(result.Categories)
	if err != nil {
		return nil
	}

	var categories map[string]bool
	if err := json.Unmarshal(raw, &categories); err != nil {
		return nil
	}

	var flagged []string
	for name, hit := range categories {
		if hit {
			flagged = append(flagged, name)
		}
	}
	sort.Strings(flagged)
	return flagged
}
