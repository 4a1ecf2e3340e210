package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/textmath/textmath/internal/schema"
	"github.com/textmath/textmath/internal/shared/llmutils"
	"github.com/textmath/textmath/internal/tools"
)

// ToolCallingAgent executes the LLM ↔ tool iteration loop using the
// provider's native function calling.
type ToolCallingAgent struct {
	provider schema.LLMProvider
	settings schema.AgentSettings
	tools    *tools.Registry
	context  *ContextBuilder
}

// NewToolCallingAgent creates a ToolCallingAgent.
func NewToolCallingAgent(provider schema.LLMProvider, settings schema.AgentSettings, registry *tools.Registry) *ToolCallingAgent {
	return &ToolCallingAgent{
		provider: provider,
		settings: settings,
		tools:    registry,
		context:  NewContextBuilder(registry, settings.MemoryWindow),
	}
}

// Run implements schema.Agent.
func (a *ToolCallingAgent) Run(ctx context.Context, history schema.Messages, onProgress func(string)) (string, error) {
	question, prior, err := a.context.Split(history)
	if err != nil {
		return "", err
	}
	conversation := a.context.BuildToolsConversation(question, prior)
	definitions := a.tools.Definitions()

	for i := 0; i < a.settings.MaxIter; i++ {
		resp, err := a.provider.Chat(ctx, conversation, definitions, a.settings.ChatOptions())
		if err != nil {
			slog.Error("LLM error", "err", err)
			return "", &ToolExecutionError{Iterations: i + 1, Err: err}
		}

		if !resp.HasToolCalls() {
			return llmutils.StripThink(resp.Content), nil
		}

		// Progress: emit partial text + tool hint.
		if onProgress != nil {
			if clean := llmutils.StripThink(resp.Content); clean != "" {
				onProgress(clean)
			}
			onProgress(llmutils.ToolHint(resp.ToolCalls))
		}

		toolCalls := make([]schema.ToolCall, 0, len(resp.ToolCalls))
		for _, tc := range resp.ToolCalls {
			toolCalls = append(toolCalls, schema.ToolCall{ID: tc.Id, Name: tc.Name, Arguments: tc.Arguments})
		}
		conversation.AddAssistant(resp.Content, toolCalls)

		for _, tc := range resp.ToolCalls {
			argsJSON, _ := json.Marshal(tc.Arguments)
			slog.Info("Tool call", "name", tc.Name, "args", llmutils.Truncate(string(argsJSON), 200))

			result, err := a.tools.Execute(ctx, tc.Name, tc.Arguments)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return "", &ToolExecutionError{Iterations: i + 1, Err: ctxErr}
				}
				slog.Warn("Tool failed", "name", tc.Name, "err", err)
				result = fmt.Sprintf("Error: %v", err)
			}
			conversation.AddToolResult(tc.Id, tc.Name, result)
		}
	}

	return "", &ToolExecutionError{Iterations: a.settings.MaxIter, Err: ErrIterationLimit}
}
