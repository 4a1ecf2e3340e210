package config

import (
	"strings"

	"github.com/textmath/textmath/internal/config/provider"
	"github.com/textmath/textmath/internal/providers"
)

// MatchResult is the resolved LLM provider config and registry name for a model.
type MatchResult struct {
	Provider *provider.ProviderConfig
	Name     string // e.g. "groq", "openrouter"
}

// MatchProvider resolves which provider config and registry entry to use for model.
// If model is empty, the default model from agents.defaults.model is used.
//
// Priority order:
//  1. Explicit provider prefix in model string (e.g. "groq/gemma2-9b-it" → groq)
//  2. Keyword match in model name (registry order)
//  3. Fallback: groq
func (c *Config) MatchProvider(model string) MatchResult {
	if model == "" {
		model = c.Agents.Defaults.Model
	}
	modelLower := strings.ToLower(model)
	modelNorm := strings.ReplaceAll(modelLower, "-", "_")
	modelPrefix, _, found := strings.Cut(modelLower, "/")
	normalizedPrefix := strings.ReplaceAll(modelPrefix, "-", "_")

	// 1. Explicit provider prefix wins.
	if found {
		for _, spec := range providers.PROVIDERS {
			if normalizedPrefix != spec.Name {
				continue
			}
			if p := c.ProviderByName(spec.Name); p != nil {
				return MatchResult{Provider: p, Name: spec.Name}
			}
		}
	}

	// 2. Keyword match.
	for _, spec := range providers.PROVIDERS {
		p := c.ProviderByName(spec.Name)
		if p == nil {
			continue
		}
		for _, kw := range spec.Keywords {
			kw = strings.ToLower(kw)
			if strings.Contains(modelLower, kw) || strings.Contains(modelNorm, strings.ReplaceAll(kw, "-", "_")) {
				return MatchResult{Provider: p, Name: spec.Name}
			}
		}
	}

	return MatchResult{Provider: c.ProviderByName(provider.ProviderGroq), Name: provider.ProviderGroq}
}

// GetAPIBase resolves the effective API base URL for model.
// Precedence: user-configured apiBase > spec default.
func (c *Config) GetAPIBase(model string) string {
	result := c.MatchProvider(model)
	if result.Provider != nil && result.Provider.APIBase != "" {
		return result.Provider.APIBase
	}
	if spec := providers.FindByName(result.Name); spec != nil {
		return spec.DefaultAPIBase
	}
	return ""
}
