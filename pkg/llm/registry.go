package llm

// ProviderConfig defines one backend provider entry in config.json.
type ProviderConfig struct {
	Type    string         `json:"type"`
	APIKey  string         `json:"api_key,omitempty"`
	BaseURL string         `json:"base_url,omitempty"`
	Options map[string]any `json:"options,omitempty"`
}

// ProviderFactory builds a Querier from a provider configuration.
type ProviderFactory interface {
	Create(cfg ProviderConfig) (Querier, error)
}

var providerRegistry = make(map[string]ProviderFactory)

// RegisterProvider adds a factory to the global registry. Called from the
// providers' init() via the autoload package.
func RegisterProvider(name string, factory ProviderFactory) {
	providerRegistry[name] = factory
}

// GetProviderFactory retrieves a registered factory by provider type name.
func GetProviderFactory(name string) (ProviderFactory, bool) {
	f, ok := providerRegistry[name]
	return f, ok
}
