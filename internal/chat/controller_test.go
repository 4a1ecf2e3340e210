package chat

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/textmath/textmath/internal/schema"
	"github.com/textmath/textmath/internal/session"
)

const greeting = "Hi, I'm your math and knowledge assistant. Ask me anything!"

// fakeAgent returns a fixed reply or error and records what it saw.
type fakeAgent struct {
	reply   string
	err     error
	calls   int
	history schema.Messages
	during  func()
}

func (a *fakeAgent) Run(_ context.Context, history schema.Messages, onProgress func(string)) (string, error) {
	a.calls++
	a.history = history
	if onProgress != nil {
		onProgress("calculator(\"12 * (3 + 4)\")")
	}
	if a.during != nil {
		a.during()
	}
	return a.reply, a.err
}

func newSession(t *testing.T) *session.Session {
	t.Helper()
	s, err := session.NewManager(greeting, time.Hour).Create()
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	return s
}

func TestSubmit_Success(t *testing.T) {
	sess := newSession(t)
	before := sess.Messages()
	agent := &fakeAgent{reply: "12 * (3 + 4) = 84"}
	c := NewController(agent)

	var progress []string
	reply, err := c.Submit(context.Background(), sess, "  What is 12 * (3 + 4)?\n", func(s string) {
		progress = append(progress, s)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reply != "12 * (3 + 4) = 84" {
		t.Errorf("unexpected reply %q", reply)
	}

	msgs := sess.Messages().Messages
	if len(msgs) != before.Len()+2 {
		t.Fatalf("expected exactly two new messages, got %d total", len(msgs))
	}
	if msgs[1].Role != schema.RoleUser || msgs[1].Content != "What is 12 * (3 + 4)?" {
		t.Errorf("unexpected user message %+v", msgs[1])
	}
	if msgs[2].Role != schema.RoleAssistant || msgs[2].Content != reply {
		t.Errorf("unexpected assistant message %+v", msgs[2])
	}
	if msgs[0].Role != before.Messages[0].Role || msgs[0].Content != before.Messages[0].Content {
		t.Errorf("prior message changed: %+v", msgs[0])
	}
	if agent.history.Len() != 2 {
		t.Errorf("agent should see the full history, got %d messages", agent.history.Len())
	}
	if len(progress) != 1 {
		t.Errorf("progress not forwarded: %v", progress)
	}
	if sess.State() != session.Idle {
		t.Errorf("state should return to idle")
	}
}

func TestSubmit_EmptyInput(t *testing.T) {
	sess := newSession(t)
	agent := &fakeAgent{reply: "x"}
	c := NewController(agent)

	for _, in := range []string{"", "   ", "\n\t "} {
		_, err := c.Submit(context.Background(), sess, in, nil)
		if !errors.Is(err, ErrEmptyInput) {
			t.Errorf("input %q: expected ErrEmptyInput, got %v", in, err)
		}
	}
	if agent.calls != 0 {
		t.Errorf("agent must not be called, got %d calls", agent.calls)
	}
	if sess.Len() != 1 || sess.State() != session.Idle {
		t.Errorf("session changed: len=%d state=%v", sess.Len(), sess.State())
	}
}

func TestSubmit_AgentError(t *testing.T) {
	sess := newSession(t)
	boom := errors.New("agent stopped due to iteration limit")
	c := NewController(&fakeAgent{err: boom})

	_, err := c.Submit(context.Background(), sess, "loop", nil)
	if !errors.Is(err, boom) {
		t.Fatalf("expected agent error, got %v", err)
	}
	msgs := sess.Messages().Messages
	if len(msgs) != 2 || msgs[1].Role != schema.RoleUser {
		t.Errorf("expected only the user message to be appended, got %+v", msgs)
	}
	if sess.State() != session.Idle {
		t.Error("state should return to idle after an error")
	}
}

func TestSubmit_Busy(t *testing.T) {
	sess := newSession(t)
	c := NewController(nil)
	agent := &fakeAgent{reply: "outer"}
	c.agent = agent

	var innerErr error
	agent.during = func() {
		if sess.State() != session.Submitting {
			t.Error("expected submitting state during the run")
		}
		_, innerErr = c.Submit(context.Background(), sess, "second", nil)
	}

	if _, err := c.Submit(context.Background(), sess, "first", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !errors.Is(innerErr, ErrBusy) {
		t.Errorf("expected ErrBusy for overlapping submit, got %v", innerErr)
	}
	for _, m := range sess.Messages().Messages {
		if strings.Contains(m.Content, "second") {
			t.Error("rejected submit must not append")
		}
	}
}
