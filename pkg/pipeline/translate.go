package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// TranslationConfig maps the "translation" entry of the filters config.
// Separate language pairs are kept for the two directions: user messages
// are translated on the way in, assistant answers on the way out.
type TranslationConfig struct {
	DeepLURL        string `json:"deepl_url"`
	SourceUser      string `json:"source_user,omitempty"`
	TargetUser      string `json:"target_user,omitempty"`
	SourceAssistant string `json:"source_assistant,omitempty"`
	TargetAssistant string `json:"target_assistant,omitempty"`
	Priority        int    `json:"priority,omitempty"`
}

// TranslationFilter rewrites messages through a DeepLX-style translation
// endpoint. Any failure leaves the text untranslated; translation is a
// best-effort convenience, never a reason to drop a request.
type TranslationFilter struct {
	cfg        TranslationConfig
	httpClient *http.Client
}

// NewTranslationFilter creates a translation filter. Language pairs default
// to auto->EN on the way in and EN->ZH on the way out.
func NewTranslationFilter(cfg TranslationConfig) *TranslationFilter {
	if cfg.SourceUser == "" {
		cfg.SourceUser = "auto"
	}
	if cfg.TargetUser == "" {
		cfg.TargetUser = "EN"
	}
	if cfg.SourceAssistant == "" {
		cfg.SourceAssistant = "EN"
	}
	if cfg.TargetAssistant == "" {
		cfg.TargetAssistant = "ZH"
	}

	return &TranslationFilter{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (f *TranslationFilter) ID() string {
	return "translation"
}

func (f *TranslationFilter) Priority() int {
	return f.cfg.Priority
}

// Inlet implements Filter: translates the last user message.
func (f *TranslationFilter) Inlet(ctx context.Context, body *Body) error {
	text := body.LastUserMessage()
	if text == "" {
		return nil
	}
	body.SetLastUserMessage(f.translate(ctx, text, f.cfg.SourceUser, f.cfg.TargetUser))
	return nil
}

// Outlet implements Filter: translates the last assistant message.
func (f *TranslationFilter) Outlet(ctx context.Context, body *Body) error {
	text := body.LastAssistantMessage()
	if text == "" {
		return nil
	}
	body.SetLastAssistantMessage(f.translate(ctx, text, f.cfg.SourceAssistant, f.cfg.TargetAssistant))
	return nil
}

// translate calls the translation endpoint and returns the translated text,
// or the original text when anything goes wrong.
func (f *TranslationFilter) translate(ctx context.Context, text, source, target string) string {
	payload, err := json.Marshal(map[string]string{
		"text":        text,
		"source_lang": source,
		"target_lang": target,
	})
	if err != nil {
		return text
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.cfg.DeepLURL+"/translate", bytes.NewReader(payload))
	if err != nil {
		slog.Warn("Failed to build translation request", "error", err)
		return text
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		slog.Warn("Translation request failed", "error", err)
		return text
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		slog.Warn("Translation endpoint returned error status", "status", resp.StatusCode)
		return text
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Warn("Failed to read translation response", "error", err)
		return text
	}

	var parsed struct {
		Data string `json:"data"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil || parsed.Data == "" {
		slog.Warn("Malformed translation response", "error", err, "body", fmt.Sprintf("%.100s", raw))
		return text
	}

	return parsed.Data
}
