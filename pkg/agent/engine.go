package agent

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"moa/pkg/config"
	"moa/pkg/llm"
)

// ErrConfigMissing is returned by Process when preconditions fail. The engine
// boundary is string-in/string-out: configuration failures surface as text,
// before any network activity.
const ErrConfigMissing = "Error: Available models, aggregator model, or API base URL not set."

// snapshot is the immutable per-run view of the engine configuration.
// Process reads it once at the start of a run; Reload replaces it wholesale
// between runs.
type snapshot struct {
	models     []string
	aggregator string
	endpoint   string
	numLayers  int
	perLayer   int
	diverse    bool
	timeout    time.Duration
}

// Engine drives the Mixture-of-Agents layer loop: per layer it samples
// agents, fans out the calls concurrently, waits for every result, and feeds
// the collected layer output into the next layer's aggregation prompt.
// Engines hold no per-request state; concurrent Process calls are isolated.
type Engine struct {
	client   llm.Querier
	selector *Selector

	mu  sync.RWMutex
	cfg snapshot
}

// NewEngine initializes an Engine with its backend client, agent selector
// and configuration.
func NewEngine(client llm.Querier, selector *Selector, moaCfg config.MoAConfig, sysCfg *config.SystemConfig) *Engine {
	e := &Engine{
		client:   client,
		selector: selector,
	}
	e.Reload(moaCfg, sysCfg)
	return e
}

// Reload installs a new configuration. In-flight runs keep the snapshot they
// started with; the next Process call observes the new values.
func (e *Engine) Reload(moaCfg config.MoAConfig, sysCfg *config.SystemConfig) {
	models := make([]string, len(moaCfg.AvailableModels))
	copy(models, moaCfg.AvailableModels)

	var endpoint string
	if e.client != nil {
		endpoint = e.client.Endpoint()
	}

	var timeout time.Duration
	if sysCfg != nil && sysCfg.LLMTimeoutMs > 0 {
		timeout = time.Duration(sysCfg.LLMTimeoutMs) * time.Millisecond
	}

	e.mu.Lock()
	e.cfg = snapshot{
		models:     models,
		aggregator: moaCfg.AggregatorModel,
		endpoint:   endpoint,
		numLayers:  moaCfg.NumLayers,
		perLayer:   moaCfg.NumAgentsPerLayer,
		diverse:    moaCfg.Refinement == "diverse",
		timeout:    timeout,
	}
	e.mu.Unlock()
}

// Process runs the full MoA pipeline for one prompt and returns the
// synthesized answer. It never returns a Go error: configuration failures
// yield ErrConfigMissing, and individual backend failures degrade into
// placeholder candidates without aborting the run. Every configured layer
// completes even if all of its calls failed.
func (e *Engine) Process(ctx context.Context, prompt string) string {
	e.mu.RLock()
	cfg := e.cfg
	e.mu.RUnlock()

	if len(cfg.models) == 0 || cfg.aggregator == "" || cfg.endpoint == "" {
		slog.Error("MoA preconditions not met", "models", len(cfg.models), "aggregator", cfg.aggregator, "endpoint", cfg.endpoint)
		return ErrConfigMissing
	}

	start := time.Now()
	slog.Info("MoA run started", "layers", cfg.numLayers, "agents_per_layer", cfg.perLayer, "models", len(cfg.models))

	history := make([][]llm.Result, 0, cfg.numLayers)

	for layer := 0; layer < cfg.numLayers; layer++ {
		// Re-sampled independently every layer; no role continuity.
		agents := e.selector.Sample(cfg.models, cfg.perLayer)

		var layerPrompt string
		if layer > 0 {
			layerPrompt = LayerPrompt(prompt, history[layer-1])
		}

		results := make([]llm.Result, len(agents))
		var wg sync.WaitGroup
		for i, agent := range agents {
			wg.Add(1)
			go func(slot int, agent string) {
				defer wg.Done()

				model, p := agent, prompt
				if layer > 0 {
					p = layerPrompt
					if !cfg.diverse {
						model = cfg.aggregator
					}
				}

				results[slot] = e.query(ctx, cfg, model, p)
			}(i, agent)
		}
		// Fan-in barrier: the next layer never starts before every call
		// of this layer has resolved.
		wg.Wait()

		failed := 0
		for _, res := range results {
			if res.Failed() {
				failed++
			}
		}
		if failed > 0 {
			slog.Warn("Layer completed with failures", "layer", layer, "calls", len(results), "failed", failed)
		} else {
			slog.Debug("Layer completed", "layer", layer, "calls", len(results))
		}

		history = append(history, results)
	}

	final := e.query(ctx, cfg, cfg.aggregator, FinalPrompt(prompt, history))
	if final.Failed() {
		slog.Error("Final synthesis call failed", "model", cfg.aggregator, "error", final.Err)
	}

	slog.Info("MoA run finished", "duration", time.Since(start).String())
	return final.Text()
}

// query issues one backend call under the configured per-call timeout. A
// timed-out call resolves to the same failure placeholder as a transport
// error and never aborts the enclosing layer.
func (e *Engine) query(ctx context.Context, cfg snapshot, model, prompt string) llm.Result {
	if cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}
	return e.client.Complete(ctx, model, prompt)
}
