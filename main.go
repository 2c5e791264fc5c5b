package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"moa/pkg/agent"
	"moa/pkg/channels"
	_ "moa/pkg/channels/autoload" // register channels
	"moa/pkg/config"
	"moa/pkg/llm"
	_ "moa/pkg/llm/autoload" // register LLM providers
	"moa/pkg/monitor"
	"moa/pkg/pipeline"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func main() {
	cfg, sysCfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load configuration: %v\n", err)
	}

	monitor.SetupSlog(sysCfg.LogLevel)

	// --- 1. LLM backend ---
	client, err := llm.NewFromConfig(cfg.LLM)
	if err != nil {
		log.Fatalf("❌ Failed to init LLM client: %v\n", err)
	}

	// --- 2. MoA engine ---
	selector := agent.NewSelector(time.Now().UnixNano())
	engine := agent.NewEngine(client, selector, cfg.MoA, sysCfg)

	// --- 3. Filter chain ---
	chain := buildChain(cfg, engine)

	handler := func(ctx context.Context, session channels.Session, content string) string {
		body := &pipeline.Body{
			Model:    cfg.MoA.AggregatorModel,
			Messages: []pipeline.Message{{Role: "user", Content: content}},
		}

		if err := chain.Inlet(ctx, body); err != nil {
			// Blocked requests (e.g., flagged by moderation) answer with
			// the reason; the engine boundary never raises.
			return err.Error()
		}

		// The MoA filter left the synthesized answer in the user slot;
		// promote it so outlet filters see it as the assistant turn.
		body.Messages = append(body.Messages, pipeline.Message{Role: "assistant", Content: body.LastUserMessage()})

		if err := chain.Outlet(ctx, body); err != nil {
			slog.Warn("Outlet filter failed", "error", err)
		}

		return body.LastAssistantMessage()
	}

	// --- 4. Channels ---
	chans := channels.LoadFromConfig(cfg.Channels, sysCfg)
	if len(chans) == 0 {
		log.Fatalf("❌ No channels configured, nothing to serve\n")
	}
	for _, c := range chans {
		if err := c.Start(handler); err != nil {
			log.Fatalf("❌ Failed to start channel %s: %v\n", c.ID(), err)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- 5. Config hot-reload (applied between runs only) ---
	reloadCh := config.Watch(ctx, "config.json", "system.json")
	go func() {
		for range reloadCh {
			newCfg, newSys, err := config.Load()
			if err != nil {
				slog.Error("Reload failed, keeping previous configuration", "error", err)
				continue
			}
			engine.Reload(newCfg.MoA, newSys)
			slog.Info("Engine configuration reloaded")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	slog.Info("Received shutdown signal, stopping services")
	for _, c := range chans {
		if err := c.Stop(); err != nil {
			slog.Error("Error stopping channel", "channel", c.ID(), "error", err)
		}
	}
}

// buildChain assembles the filter chain from the optional filters config
// plus the always-present MoA filter.
func buildChain(cfg *config.Config, engine *agent.Engine) *pipeline.Chain {
	var filters []pipeline.Filter

	if raw, ok := cfg.Filters["moderation"]; ok {
		var mCfg pipeline.ModerationConfig
		if err := json.Unmarshal(raw, &mCfg); err != nil {
			slog.Error("Failed to parse moderation config, filter disabled", "error", err)
		} else {
			filters = append(filters, pipeline.NewModerationFilter(mCfg))
		}
	}

	if raw, ok := cfg.Filters["translation"]; ok {
		var tCfg pipeline.TranslationConfig
		if err := json.Unmarshal(raw, &tCfg); err != nil {
			slog.Error("Failed to parse translation config, filter disabled", "error", err)
		} else {
			filters = append(filters, pipeline.NewTranslationFilter(tCfg))
		}
	}

	// The MoA filter runs last on the way in, after moderation and
	// translation have shaped the prompt.
	filters = append(filters, pipeline.NewMoAFilter(engine, 100))

	chain := pipeline.NewChain(filters...)
	for _, f := range chain.Filters() {
		slog.Info("Filter mounted", "id", f.ID(), "priority", f.Priority())
	}
	return chain
}
