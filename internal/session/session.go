package session

import (
	"sync"
	"time"

	"github.com/textmath/textmath/internal/schema"
)

// State is the presentation state of one session.
type State int

const (
	// Idle means the session waits for input.
	Idle State = iota
	// Submitting means an agent run is in flight.
	Submitting
)

func (s State) String() string {
	if s == Submitting {
		return "submitting"
	}
	return "idle"
}

// FlashKind selects the banner style shown on the next render.
type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashWarning FlashKind = "warning"
	FlashError   FlashKind = "error"
)

// Flash is a one-shot banner stored on the session between a POST and the
// redirected GET.
type Flash struct {
	Kind FlashKind
	Text string
}

// Session holds one browser conversation. The transcript is append-only
// and only ever holds user and assistant messages.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu         sync.Mutex
	messages   schema.Messages
	state      State
	lastActive time.Time
	flash      *Flash
}

// newSession returns a session seeded with exactly one assistant greeting.
func newSession(id, greeting string, now time.Time) *Session {
	return &Session{
		ID:         id,
		CreatedAt:  now,
		messages:   schema.NewMessages(schema.NewAssistantMessage(greeting, nil)),
		state:      Idle,
		lastActive: now,
	}
}

// Messages returns a copy of the transcript.
func (s *Session) Messages() schema.Messages {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.messages.Clone()
}

// Len returns the number of messages in the transcript.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.messages.Len()
}

// State returns the current presentation state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Begin appends the user message and moves the session to Submitting.
// It returns a copy of the transcript including the new message, or false
// when a run is already in flight.
func (s *Session) Begin(userContent string) (schema.Messages, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Submitting {
		return schema.Messages{}, false
	}
	s.messages.AddUser(userContent)
	s.state = Submitting
	s.lastActive = time.Now()
	return s.messages.Clone(), true
}

// Finish returns the session to Idle. When ok is true reply is appended as
// the assistant message for the turn.
func (s *Session) Finish(reply string, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ok {
		s.messages.AddAssistant(reply, nil)
	}
	s.state = Idle
	s.lastActive = time.Now()
}

// SetFlash stores a banner for the next render.
func (s *Session) SetFlash(kind FlashKind, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flash = &Flash{Kind: kind, Text: text}
}

// TakeFlash returns and clears the pending banner.
func (s *Session) TakeFlash() (Flash, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.flash == nil {
		return Flash{}, false
	}
	f := *s.flash
	s.flash = nil
	return f, true
}

// Touch marks the session as active now.
func (s *Session) Touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()
}

// LastActive returns the time of the last interaction.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// expired reports whether the session is idle and untouched since before cutoff.
func (s *Session) expired(cutoff time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == Idle && s.lastActive.Before(cutoff)
}
