package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// ErrMissingCredential is returned when no API key can be found for the
// configured model's provider.
var ErrMissingCredential = errors.New("credential not found")

// Credential is the API key for the language-model provider.
type Credential struct {
	Provider string // registry name, e.g. "groq"
	EnvVar   string // environment variable consulted, e.g. "GROQ_API_KEY"
	Source   string // "env" or "config"
	APIKey   string
}

// Redacted returns the key with everything but the last four characters masked.
func (c Credential) Redacted() string {
	if len(c.APIKey) <= 4 {
		return strings.Repeat("*", len(c.APIKey))
	}
	return strings.Repeat("*", len(c.APIKey)-4) + c.APIKey[len(c.APIKey)-4:]
}

// LoadDotEnv loads KEY=VALUE pairs from path into the process environment.
// Variables that are already set are left alone. A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// LoadCredential resolves the API key for the default model's provider.
// The environment wins over the config file. An empty result is
// ErrMissingCredential wrapped with the variable name.
func (c *Config) LoadCredential() (Credential, error) {
	match := c.MatchProvider("")
	cred := Credential{Provider: match.Name}
	if match.Provider == nil {
		return cred, fmt.Errorf("%w: no provider matches model %q", ErrMissingCredential, c.Agents.Defaults.Model)
	}

	cred.EnvVar = match.Provider.APIKeyEnv
	if cred.EnvVar != "" {
		if v := strings.TrimSpace(os.Getenv(cred.EnvVar)); v != "" {
			cred.APIKey = v
			cred.Source = "env"
			return cred, nil
		}
	}
	if v := strings.TrimSpace(match.Provider.APIKey); v != "" {
		cred.APIKey = v
		cred.Source = "config"
		return cred, nil
	}

	name := cred.EnvVar
	if name == "" {
		name = "providers." + match.Name + ".apiKey"
	}
	return cred, fmt.Errorf("%w: %s not found in environment", ErrMissingCredential, name)
}
