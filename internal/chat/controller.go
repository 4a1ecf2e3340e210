// Package chat drives one submit cycle of the presentation layer:
// validate input, append it, run the agent, append the reply.
package chat

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/textmath/textmath/internal/schema"
	"github.com/textmath/textmath/internal/session"
)

var (
	// ErrEmptyInput is returned for blank or whitespace-only input.
	ErrEmptyInput = errors.New("please enter a question before submitting")
	// ErrBusy is returned when the session already has a run in flight.
	ErrBusy = errors.New("a response is already being generated")
)

// Controller runs submits against a shared agent. It is safe for
// concurrent use across sessions.
type Controller struct {
	agent schema.Agent
}

// NewController creates a Controller bound to agent.
func NewController(agent schema.Agent) *Controller {
	return &Controller{agent: agent}
}

// Submit appends input as a user message, runs the agent over the full
// transcript and appends its reply. The session is back in Idle when
// Submit returns, whatever the outcome. On error no assistant message is
// appended and the error is returned unchanged.
func (c *Controller) Submit(ctx context.Context, sess *session.Session, input string, onProgress func(string)) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", ErrEmptyInput
	}

	history, ok := sess.Begin(input)
	if !ok {
		return "", ErrBusy
	}

	var (
		reply string
		err   error
	)
	defer func() { sess.Finish(reply, err == nil) }()

	start := time.Now()
	slog.Info("Processing question", "session", sess.ID, "chars", len(input))
	reply, err = c.agent.Run(ctx, history, onProgress)
	if err != nil {
		slog.Error("Agent run failed", "session", sess.ID, "err", err)
		return "", err
	}
	slog.Info("Answer ready", "session", sess.ID, "elapsed", time.Since(start).Round(time.Millisecond))
	return reply, nil
}
