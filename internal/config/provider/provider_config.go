package provider

const (
	ProviderCustom     = "custom"
	ProviderGroq       = "groq"
	ProviderOpenAI     = "openai"
	ProviderOpenRouter = "openrouter"
)

// ProviderConfig holds credentials for one LLM provider.
//
// APIKeyEnv names the environment variable the key is read from; it takes
// precedence over APIKey when set in the environment.
type ProviderConfig struct {
	APIKey       string            `json:"apiKey" yaml:"apiKey"`
	APIKeyEnv    string            `json:"apiKeyEnv,omitempty" yaml:"apiKeyEnv,omitempty"`
	APIBase      string            `json:"apiBase,omitempty" yaml:"apiBase,omitempty"`
	ExtraHeaders map[string]string `json:"extraHeaders,omitempty" yaml:"extraHeaders,omitempty"`
}

// ProvidersConfig holds credentials for all supported LLM providers.
type ProvidersConfig struct {
	Custom     ProviderConfig `json:"custom" yaml:"custom"`
	Groq       ProviderConfig `json:"groq" yaml:"groq"`
	OpenAI     ProviderConfig `json:"openai" yaml:"openai"`
	OpenRouter ProviderConfig `json:"openrouter" yaml:"openrouter"`
}

func DefaultProvidersConfig() ProvidersConfig {
	return ProvidersConfig{
		Groq:       ProviderConfig{APIKeyEnv: "GROQ_API_KEY"},
		OpenAI:     ProviderConfig{APIKeyEnv: "OPENAI_API_KEY"},
		OpenRouter: ProviderConfig{APIKeyEnv: "OPENROUTER_API_KEY"},
	}
}

// ByName returns a pointer to the ProviderConfig field matching the given
// registry name. Returns nil if the name is unknown.
func (p *ProvidersConfig) ByName(name string) *ProviderConfig {
	switch name {
	case ProviderCustom:
		return &p.Custom
	case ProviderGroq:
		return &p.Groq
	case ProviderOpenAI:
		return &p.OpenAI
	case ProviderOpenRouter:
		return &p.OpenRouter
	}
	return nil
}
