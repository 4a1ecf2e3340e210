package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/textmath/textmath/internal/config/tool"
	"github.com/textmath/textmath/internal/schema"
	"github.com/textmath/textmath/internal/shared/llmutils"
)

const questionSlot = "{question}"

// ReasoningTool asks the LLM for a step-by-step explanation.
type ReasoningTool struct {
	provider schema.LLMProvider
	opts     schema.ChatOptions
	template string
}

// NewReasoningTool creates a ReasoningTool. The template must contain
// exactly one {question} slot; an empty template selects the default.
func NewReasoningTool(provider schema.LLMProvider, opts schema.ChatOptions, template string) (*ReasoningTool, error) {
	template = llmutils.StringOrDefault(template, tool.DefaultReasoningTemplate)
	if n := strings.Count(template, questionSlot); n != 1 {
		return nil, fmt.Errorf("reasoning template must contain exactly one %s slot, found %d", questionSlot, n)
	}
	return &ReasoningTool{provider: provider, opts: opts, template: template}, nil
}

func (t *ReasoningTool) Name() string { return string(ToolReasoning) }
func (t *ReasoningTool) Description() string {
	return "Solve logic-based and reasoning questions with detailed steps."
}
func (t *ReasoningTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"question": {
				"type": "string",
				"description": "Logic or reasoning question"
			}
		},
		"required": ["question"]
	}`)
}

// Prompt returns the template with question substituted.
func (t *ReasoningTool) Prompt(question string) string {
	return strings.Replace(t.template, questionSlot, question, 1)
}

func (t *ReasoningTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	question, _ := params["question"].(string)
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("question is required")
	}

	resp, err := t.provider.Chat(ctx, schema.NewMessages(schema.NewUserMessage(t.Prompt(question))), nil, t.opts)
	if err != nil {
		return "", fmt.Errorf("reasoning LLM call: %w", err)
	}
	return llmutils.StripThink(resp.Content), nil
}
