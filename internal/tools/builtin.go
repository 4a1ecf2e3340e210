package tools

import (
	"github.com/textmath/textmath/internal/config/tool"
	"github.com/textmath/textmath/internal/schema"
)

// NewBuiltinRegistry builds the registry holding the wikipedia, calculator
// and reasoning tools.
func NewBuiltinRegistry(provider schema.LLMProvider, opts schema.ChatOptions, cfg tool.ToolsConfig) (*Registry, error) {
	reasoning, err := NewReasoningTool(provider, opts, cfg.Reasoning.Template)
	if err != nil {
		return nil, err
	}
	return NewRegistryBuilder().
		WithTool(NewWikipediaTool(cfg.Wikipedia)).
		WithTool(NewCalculatorTool(provider, opts)).
		WithTool(reasoning).
		Build()
}
