package provider

const (
	ProviderFireworks = "fireworks"
	ProviderTogether  = "together"
	ProviderOpenAI    = "openai"
)

// Names lists the supported inference providers in header order.
var Names = []string{ProviderFireworks, ProviderTogether, ProviderOpenAI}

// ProviderConfig holds the credential forwarded to one hosted inference provider.
type ProviderConfig struct {
	APIKey string `json:"apiKey"`
}

// ProvidersConfig holds credentials for the providers a stack can route to.
type ProvidersConfig struct {
	Fireworks ProviderConfig `json:"fireworks"`
	Together  ProviderConfig `json:"together"`
	OpenAI    ProviderConfig `json:"openai"`
}

func DefaultProvidersConfig() ProvidersConfig {
	return ProvidersConfig{}
}

// ByName returns a pointer to the ProviderConfig field matching the given
// provider name. Returns nil if the name is unknown.
func (p *ProvidersConfig) ByName(name string) *ProviderConfig {
	switch name {
	case ProviderFireworks:
		return &p.Fireworks
	case ProviderTogether:
		return &p.Together
	case ProviderOpenAI:
		return &p.OpenAI
	}
	return nil
}

// ProviderData returns the "<name>_api_key" entries for every configured key.
// The result is nil when no key is set.
func (p *ProvidersConfig) ProviderData() map[string]string {
	var data map[string]string
	for _, name := range Names {
		key := p.ByName(name).APIKey
		if key == "" {
			continue
		}
		if data == nil {
			data = make(map[string]string, len(Names))
		}
		data[name+"_api_key"] = key
	}
	return data
}
