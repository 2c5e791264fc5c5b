package config

import (
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// MoAConfig holds the Mixture-of-Agents pipeline settings. A copy of this
// struct is snapshotted by the engine at the start of every run, so edits
// through hot-reload never race with in-flight layers.
type MoAConfig struct {
	// AvailableModels lists the backend identifiers eligible for layer-0
	// agent sampling.
	AvailableModels []string `json:"available_models"`
	// AggregatorModel is the single backend used for all aggregation and
	// final synthesis calls.
	AggregatorModel string `json:"aggregator_model"`
	// NumLayers is the number of refinement rounds. Minimum 1.
	NumLayers int `json:"num_layers"`
	// NumAgentsPerLayer is the number of calls issued per layer. Minimum 1.
	NumAgentsPerLayer int `json:"num_agents_per_layer"`
	// Refinement selects who answers from layer 1 onward: "aggregator"
	// (the default) sends every refinement call to AggregatorModel,
	// "diverse" sends each call to the sampled agent model instead.
	Refinement string `json:"refinement,omitempty"`
}

// Config defines the global application configuration structure, mapping
// directly to config.json.
type Config struct {
	// LLM holds the backend provider configuration in raw JSON; the llm
	// package resolves it through the provider registry.
	LLM jsoniter.RawMessage `json:"llm"`
	// MoA configures the response-synthesis pipeline.
	MoA MoAConfig `json:"moa"`
	// Filters contains optional filter configurations (e.g., "moderation",
	// "translation") keyed by filter name, in raw JSON.
	Filters map[string]jsoniter.RawMessage `json:"filters,omitempty"`
	// Channels contains a map of channel identifiers (e.g., "telegram",
	// "web") to their specific configuration payloads in raw JSON.
	Channels map[string]jsoniter.RawMessage `json:"channels"`
}

// Validate ensures the configuration contains all mandatory fields. It acts
// as a primary guard before the system proceeds to initialization.
func (c *Config) Validate() error {
	if len(c.LLM) == 0 {
		return fmt.Errorf("mandatory 'llm' configuration is missing or empty")
	}
	if c.MoA.NumLayers < 1 {
		return fmt.Errorf("'moa.num_layers' must be at least 1")
	}
	if c.MoA.NumAgentsPerLayer < 1 {
		return fmt.Errorf("'moa.num_agents_per_layer' must be at least 1")
	}
	switch c.MoA.Refinement {
	case "", "aggregator", "diverse":
	default:
		return fmt.Errorf("unknown 'moa.refinement' mode: %s", c.MoA.Refinement)
	}
	return nil
}

// SystemConfig defines engine-level technical parameters, stored in
// system.json. Defaults apply when the file is missing or corrupt.
type SystemConfig struct {
	// LLMTimeoutMs is the hard cutoff time (in milliseconds) for a single
	// backend call. A timed-out call resolves to a failure placeholder and
	// never aborts its layer. Zero disables the per-call timeout.
	LLMTimeoutMs int `json:"llm_timeout_ms"`
	// TelegramMessageLimit is the maximum character (rune) count for a
	// single Telegram message. Longer answers are split into multiple
	// chunks.
	TelegramMessageLimit int `json:"telegram_message_limit"`
	// LogLevel sets the minimum severity for log output.
	// Accepted values: "debug", "info", "warn", "error". Default: "info".
	LogLevel string `json:"log_level"`
}

// DefaultSystemConfig returns a SystemConfig initialized with safe defaults,
// used as a fallback so the engine can always start.
func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		LLMTimeoutMs:         600000,
		TelegramMessageLimit: 4000,
		LogLevel:             "info",
	}
}

// Load reads and parses the JSON configuration files from the working
// directory. config.json is mandatory; system.json falls back to defaults.
func Load() (*Config, *SystemConfig, error) {
	appPath := "config.json"
	if _, err := os.Stat(appPath); os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("config file '%s' not found. please create one", appPath)
	}

	appFile, err := os.ReadFile(appPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(appFile, &cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	sysCfg := LoadSystemConfig("system.json")

	return &cfg, sysCfg, nil
}

// LoadSystemConfig attempts to load system settings, returning defaults if
// the file is absent or unparsable.
func LoadSystemConfig(path string) *SystemConfig {
	cfg := DefaultSystemConfig()

	file, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}

	if err := json.Unmarshal(file, cfg); err != nil {
		return cfg
	}

	return cfg
}
