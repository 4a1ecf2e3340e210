// Package config defines the configuration schema for textmath.
//
// JSON keys use camelCase; the same keys are accepted in YAML config files.
package config

import (
	"github.com/textmath/textmath/internal/config/agent"
	"github.com/textmath/textmath/internal/config/provider"
	"github.com/textmath/textmath/internal/config/server"
	"github.com/textmath/textmath/internal/config/tool"
)

// Config is the root configuration object, loaded from ~/.textmath/config.json.
type Config struct {
	Agents    agent.AgentsConfig       `json:"agents" yaml:"agents"`
	Providers provider.ProvidersConfig `json:"providers" yaml:"providers"`
	Tools     tool.ToolsConfig         `json:"tools" yaml:"tools"`
	Server    server.ServerConfig      `json:"server" yaml:"server"`
}

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() Config {
	return Config{
		Agents:    agent.DefaultAgentsConfig(),
		Providers: provider.DefaultProvidersConfig(),
		Tools:     tool.DefaultToolConfigs(),
		Server:    server.DefaultServerConfig(),
	}
}

// ProviderByName returns the provider config for a registry name, or nil.
func (c *Config) ProviderByName(name string) *provider.ProviderConfig {
	return c.Providers.ByName(name)
}
