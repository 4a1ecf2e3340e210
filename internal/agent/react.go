package agent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/textmath/textmath/internal/schema"
	"github.com/textmath/textmath/internal/shared/llmutils"
	"github.com/textmath/textmath/internal/tools"
)

const (
	reactStop        = "\nObservation:"
	finalAnswerLabel = "Final Answer:"
)

var reAction = regexp.MustCompile(`(?s)Action\s*\d*\s*:[\s]*(.*?)[\s]*Action\s*\d*\s*Input\s*\d*\s*:[\s]*(.*)`)

var (
	reActionLabel = regexp.MustCompile(`(?s)Action\s*\d*\s*:[\s]*(.*?)`)
	reActionInput = regexp.MustCompile(`(?s)[\s]*Action\s*\d*\s*Input\s*\d*\s*:[\s]*(.*)`)
)

// errInvalidFormat marks LLM output the ReAct parser cannot use. It is
// fed back to the model as the observation.
var errInvalidFormat = errors.New("Invalid Format")

// reactStep is one parsed model turn: either a final answer or an action.
type reactStep struct {
	final  bool
	answer string
	action string
	input  string
}

// parseReAct reads one model turn written in the Thought/Action protocol.
func parseReAct(text string) (reactStep, error) {
	hasAnswer := strings.Contains(text, finalAnswerLabel)
	if m := reAction.FindStringSubmatch(text); m != nil {
		if hasAnswer {
			return reactStep{}, fmt.Errorf("%w: Parsing LLM output produced both a final answer and a parse-able action", errInvalidFormat)
		}
		input := m[2]
		if i := strings.Index(input, reactStop); i >= 0 {
			input = input[:i]
		}
		input = strings.Trim(strings.TrimSpace(input), `"`)
		return reactStep{action: strings.TrimSpace(m[1]), input: input}, nil
	}
	if hasAnswer {
		parts := strings.Split(text, finalAnswerLabel)
		return reactStep{final: true, answer: strings.TrimSpace(parts[len(parts)-1])}, nil
	}
	if !reActionLabel.MatchString(text) {
		return reactStep{}, fmt.Errorf("%w: Missing 'Action:' after 'Thought:'", errInvalidFormat)
	}
	if !reActionInput.MatchString(text) {
		return reactStep{}, fmt.Errorf("%w: Missing 'Action Input:' after 'Action:'", errInvalidFormat)
	}
	return reactStep{}, fmt.Errorf("%w: Could not parse LLM output", errInvalidFormat)
}

// ReActAgent drives the tools through a Thought/Action/Observation text
// protocol. Output it cannot parse is returned to the model as the next
// observation so it can correct itself.
type ReActAgent struct {
	provider schema.LLMProvider
	settings schema.AgentSettings
	tools    *tools.Registry
	context  *ContextBuilder
}

// NewReActAgent creates a ReActAgent.
func NewReActAgent(provider schema.LLMProvider, settings schema.AgentSettings, registry *tools.Registry) *ReActAgent {
	return &ReActAgent{
		provider: provider,
		settings: settings,
		tools:    registry,
		context:  NewContextBuilder(registry, settings.MemoryWindow),
	}
}

// Run implements schema.Agent.
func (a *ReActAgent) Run(ctx context.Context, history schema.Messages, onProgress func(string)) (string, error) {
	question, prior, err := a.context.Split(history)
	if err != nil {
		return "", err
	}

	opts := a.settings.ChatOptions().WithStop(reactStop)
	var scratchpad strings.Builder

	for i := 0; i < a.settings.MaxIter; i++ {
		prompt := a.context.BuildReActPrompt(question, prior, scratchpad.String())
		resp, err := a.provider.Chat(ctx, schema.NewMessages(schema.NewUserMessage(prompt)), nil, opts)
		if err != nil {
			slog.Error("LLM error", "err", err)
			return "", &ToolExecutionError{Iterations: i + 1, Err: err}
		}

		output := llmutils.StripThink(resp.Content)
		step, perr := parseReAct(output)

		var observation string
		switch {
		case perr != nil:
			slog.Warn("Unparseable agent output", "err", perr, "output", llmutils.Truncate(output, 200))
			observation = perr.Error()
		case step.final:
			return step.answer, nil
		default:
			observation, err = a.execute(ctx, step, onProgress)
			if err != nil {
				return "", &ToolExecutionError{Iterations: i + 1, Err: err}
			}
		}

		scratchpad.WriteString(" " + output)
		scratchpad.WriteString("\nObservation: " + observation + "\nThought:")
	}

	return "", &ToolExecutionError{Iterations: a.settings.MaxIter, Err: ErrIterationLimit}
}

// execute runs one action and returns the observation. Tool failures become
// observations; only a cancelled context is returned as an error.
func (a *ReActAgent) execute(ctx context.Context, step reactStep, onProgress func(string)) (string, error) {
	t := a.tools.Get(step.action)
	if t == nil {
		return fmt.Sprintf("%v: %s is not a valid tool, try one of [%s].",
			errInvalidFormat, step.action, strings.Join(a.tools.Names(), ", ")), nil
	}

	params := a.tools.TextParams(t.Name(), step.input)
	if onProgress != nil {
		onProgress(llmutils.ToolHint([]schema.ToolCallRequest{{Name: t.Name(), Arguments: params}}))
	}
	slog.Info("Tool call", "name", t.Name(), "input", llmutils.Truncate(step.input, 200))

	result, err := t.Execute(ctx, params)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		slog.Warn("Tool failed", "name", t.Name(), "err", err)
		return "Error: " + err.Error(), nil
	}
	return result, nil
}
