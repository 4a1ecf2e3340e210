package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/expr-lang/expr"

	"github.com/textmath/textmath/internal/schema"
	"github.com/textmath/textmath/internal/shared/llmutils"
)

// ErrUnknownFormat is returned when the LLM reply holds neither an
// expression block nor an "Answer:" line.
var ErrUnknownFormat = errors.New("unknown format from LLM")

const mathPrompt = "Translate a math problem into a expression that can be evaluated by a calculator. " +
	"Use the output of evaluating this expression to answer the question.\n" +
	"The calculator understands + - * / % ** and parentheses, the constants pi and e, " +
	"and the functions sqrt, pow, log, exp, sin, cos, tan, abs, floor and ceil.\n\n" +
	"Question: ${Question with math problem.}\n" +
	"```text\n${single line mathematical expression that solves the problem}\n```\n" +
	"...calculate(text)...\n" +
	"```output\n${Output of evaluating the expression}\n```\n" +
	"Answer: ${Answer}\n\n" +
	"Begin.\n\n" +
	"Question: What is 37593 * 67?\n" +
	"```text\n37593 * 67\n```\n" +
	"...calculate(\"37593 * 67\")...\n" +
	"```output\n2518731\n```\n" +
	"Answer: 2518731\n\n" +
	"Question: 37593^(1/5)\n" +
	"```text\n37593**(1/5)\n```\n" +
	"...calculate(\"37593**(1/5)\")...\n" +
	"```output\n8.222831614237718\n```\n" +
	"Answer: 8.222831614237718\n\n" +
	"Question: {question}\n"

var reTextBlock = regexp.MustCompile("(?s)^```text(.*?)```")

// CalculatorTool asks the LLM to translate a word problem into a single
// expression and evaluates it locally.
type CalculatorTool struct {
	provider schema.LLMProvider
	opts     schema.ChatOptions
}

// NewCalculatorTool creates a CalculatorTool that uses provider for the
// translation step.
func NewCalculatorTool(provider schema.LLMProvider, opts schema.ChatOptions) *CalculatorTool {
	return &CalculatorTool{
		provider: provider,
		opts:     opts.WithStop("```output"),
	}
}

func (t *CalculatorTool) Name() string { return string(ToolCalculator) }
func (t *CalculatorTool) Description() string {
	return "Solve mathematical expressions and arithmetic problems."
}
func (t *CalculatorTool) Parameters() json.RawMessage {
	return json.RawMessage(`{
		"type": "object",
		"properties": {
			"question": {
				"type": "string",
				"description": "Math problem or arithmetic expression"
			}
		},
		"required": ["question"]
	}`)
}

func (t *CalculatorTool) Execute(ctx context.Context, params map[string]any) (string, error) {
	question, _ := params["question"].(string)
	question = strings.TrimSpace(question)
	if question == "" {
		return "", fmt.Errorf("question is required")
	}

	prompt := strings.Replace(mathPrompt, "{question}", question, 1)
	resp, err := t.provider.Chat(ctx, schema.NewMessages(schema.NewUserMessage(prompt)), nil, t.opts)
	if err != nil {
		return "", fmt.Errorf("calculator LLM call: %w", err)
	}
	return processMathReply(llmutils.StripThink(resp.Content))
}

// processMathReply turns the LLM's reply into "Answer: ...".
func processMathReply(reply string) (string, error) {
	reply = strings.TrimSpace(reply)
	if m := reTextBlock.FindStringSubmatch(reply); m != nil {
		value, err := Evaluate(m[1])
		if err != nil {
			return "", err
		}
		return "Answer: " + value, nil
	}
	if strings.HasPrefix(reply, "Answer:") {
		return reply, nil
	}
	if i := strings.LastIndex(reply, "Answer:"); i >= 0 {
		return "Answer: " + strings.TrimSpace(reply[i+len("Answer:"):]), nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, reply)
}

var mathEnv = map[string]any{
	"pi": math.Pi,
	"e":  math.E,
}

func unary(name string, fn func(float64) float64) expr.Option {
	return expr.Function(name, func(params ...any) (any, error) {
		if len(params) != 1 {
			return nil, fmt.Errorf("%s expects 1 argument, got %d", name, len(params))
		}
		x, err := toFloat(params[0])
		if err != nil {
			return nil, err
		}
		return fn(x), nil
	})
}

var mathFuncs = []expr.Option{
	expr.Env(mathEnv),
	unary("sqrt", math.Sqrt),
	unary("log", math.Log),
	unary("exp", math.Exp),
	unary("sin", math.Sin),
	unary("cos", math.Cos),
	unary("tan", math.Tan),
	expr.Function("pow", func(params ...any) (any, error) {
		if len(params) != 2 {
			return nil, fmt.Errorf("pow expects 2 arguments, got %d", len(params))
		}
		x, err := toFloat(params[0])
		if err != nil {
			return nil, err
		}
		y, err := toFloat(params[1])
		if err != nil {
			return nil, err
		}
		return math.Pow(x, y), nil
	}),
}

// Evaluate computes a single arithmetic expression and formats the result.
// abs, floor and ceil come from the expression language's builtins.
func Evaluate(expression string) (string, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return "", fmt.Errorf("evaluate: empty expression")
	}

	program, err := expr.Compile(expression, mathFuncs...)
	if err != nil {
		return "", fmt.Errorf("evaluate %q: %w", expression, err)
	}
	out, err := expr.Run(program, mathEnv)
	if err != nil {
		return "", fmt.Errorf("evaluate %q: %w", expression, err)
	}
	slog.Debug("Calculator evaluated", "expr", expression, "result", out)
	return formatNumber(out), nil
}

func formatNumber(v any) string {
	switch n := v.(type) {
	case int:
		return strconv.Itoa(n)
	case int64:
		return strconv.FormatInt(n, 10)
	case float64:
		if n == math.Trunc(n) && math.Abs(n) < 1e15 {
			return strconv.FormatInt(int64(n), 10)
		}
		return strconv.FormatFloat(n, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("not a number: %v", v)
	}
}
