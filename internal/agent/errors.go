package agent

import (
	"errors"
	"fmt"
)

var (
	// ErrIterationLimit is wrapped when the agent runs out of iterations
	// before producing a final answer.
	ErrIterationLimit = errors.New("agent stopped due to iteration limit")

	// ErrNoQuestion is returned when the history holds no user message.
	ErrNoQuestion = errors.New("no user question in history")
)

// ToolExecutionError is the unrecovered failure of one agent run.
// Err is ErrIterationLimit, a provider error or a context error.
type ToolExecutionError struct {
	Iterations int
	Err        error
}

func (e *ToolExecutionError) Error() string {
	return fmt.Sprintf("agent run failed after %d iteration(s): %v", e.Iterations, e.Err)
}

func (e *ToolExecutionError) Unwrap() error { return e.Err }
