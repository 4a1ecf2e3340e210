package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/textmath/textmath/internal/schema"
)

// ToolName is the canonical name of a built-in tool.
type ToolName string

const (
	ToolWikipedia  ToolName = "wikipedia"
	ToolCalculator ToolName = "calculator"
	ToolReasoning  ToolName = "reasoning"
)

// Registry holds a fixed set of named tools and exposes them for execution.
// It is immutable after Build and safe for concurrent use.
type Registry struct {
	tools map[string]schema.Tool // keyed by lower-cased name
	order []string
}

// RegistryBuilder accumulates tools during the construction phase.
// Call Build() to produce an immutable Registry ready for use.
type RegistryBuilder struct {
	tools []schema.Tool
}

// NewRegistryBuilder returns a fresh RegistryBuilder.
func NewRegistryBuilder() *RegistryBuilder {
	return &RegistryBuilder{}
}

// WithTool adds a tool and returns the builder, enabling chaining.
func (b *RegistryBuilder) WithTool(tool schema.Tool) *RegistryBuilder {
	b.tools = append(b.tools, tool)

	return b
}

// Build produces an immutable Registry from the accumulated tools.
// Tool names must be non-empty and unique, ignoring case.
func (b *RegistryBuilder) Build() (*Registry, error) {
	r := &Registry{tools: make(map[string]schema.Tool, len(b.tools))}
	for _, t := range b.tools {
		key := strings.ToLower(t.Name())
		if key == "" {
			return nil, fmt.Errorf("tool with empty name")
		}
		if _, dup := r.tools[key]; dup {
			return nil, fmt.Errorf("duplicate tool name %q", t.Name())
		}
		r.tools[key] = t
		r.order = append(r.order, t.Name())
	}
	return r, nil
}

// Get returns the tool with the given name (case-insensitive), or nil.
func (r *Registry) Get(name string) schema.Tool {
	return r.tools[strings.ToLower(strings.TrimSpace(name))]
}

// GetTool returns a built-in tool by its canonical name, or nil.
func (r *Registry) GetTool(name ToolName) schema.Tool {
	return r.Get(string(name))
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Len returns the number of registered tools.
func (r *Registry) Len() int { return len(r.order) }

// Definitions returns all tool definitions in OpenAI function-calling format.
func (r *Registry) Definitions() []map[string]any {
	list := make([]map[string]any, 0, len(r.order))
	for _, name := range r.order {
		t := r.Get(name)
		var params any
		if err := json.Unmarshal(t.Parameters(), &params); err != nil {
			params = map[string]any{"type": "object", "properties": map[string]any{}}
		}
		list = append(list, map[string]any{
			"type": "function",
			"function": map[string]any{
				"name":        t.Name(),
				"description": t.Description(),
				"parameters":  params,
			},
		})
	}
	return list
}

// Describe renders one "name: description" line per tool for text prompts.
func (r *Registry) Describe() string {
	lines := make([]string, 0, len(r.order))
	for _, name := range r.order {
		lines = append(lines, fmt.Sprintf("%s: %s", name, r.Get(name).Description()))
	}
	return strings.Join(lines, "\n")
}

// TextParams maps a free-text tool input onto the tool's first required
// parameter. Tools without a declared parameter receive it as "input".
func (r *Registry) TextParams(name, input string) map[string]any {
	key := "input"
	if t := r.Get(name); t != nil {
		var s struct {
			Required []string `json:"required"`
		}
		if err := json.Unmarshal(t.Parameters(), &s); err == nil && len(s.Required) > 0 {
			key = s.Required[0]
		}
	}
	return map[string]any{key: input}
}

// Execute runs the named tool. An unknown name is an error.
func (r *Registry) Execute(ctx context.Context, name string, params map[string]any) (string, error) {
	t := r.Get(name)
	if t == nil {
		return "", fmt.Errorf("unknown tool %q", name)
	}
	return t.Execute(ctx, params)
}
