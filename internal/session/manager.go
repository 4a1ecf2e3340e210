// Package session keeps per-browser conversations in memory.
//
// Sessions are never written to disk. Each one lives from its first request
// until it has been idle longer than the configured TTL, at which point the
// janitor evicts it.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Manager owns all live sessions.
type Manager struct {
	greeting string
	ttl      time.Duration
	cache    sync.Map // id → *Session
}

// NewManager creates a Manager. Every new session is seeded with greeting.
// ttl <= 0 disables eviction.
func NewManager(greeting string, ttl time.Duration) *Manager {
	return &Manager{greeting: greeting, ttl: ttl}
}

// Create starts a new session with a fresh UUIDv7 id.
func (m *Manager) Create() (*Session, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("session id: %w", err)
	}
	s := newSession(id.String(), m.greeting, time.Now())
	m.cache.Store(s.ID, s)
	return s, nil
}

// Get returns the live session for id and marks it active.
func (m *Manager) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	v, ok := m.cache.Load(id)
	if !ok {
		return nil, false
	}
	s := v.(*Session)
	s.Touch()
	return s, true
}

// GetOrCreate returns the session for id, or a new one when id is unknown.
// created reports whether a new session was started.
func (m *Manager) GetOrCreate(id string) (s *Session, created bool, err error) {
	if s, ok := m.Get(id); ok {
		return s, false, nil
	}
	s, err = m.Create()
	return s, err == nil, err
}

// Delete ends the session for id.
func (m *Manager) Delete(id string) {
	m.cache.Delete(id)
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	n := 0
	m.cache.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Sweep evicts idle sessions last active before now-ttl and returns how
// many were removed. Sessions with a run in flight are kept.
func (m *Manager) Sweep(now time.Time) int {
	if m.ttl <= 0 {
		return 0
	}
	cutoff := now.Add(-m.ttl)
	removed := 0
	m.cache.Range(func(k, v any) bool {
		if v.(*Session).expired(cutoff) {
			m.cache.Delete(k)
			removed++
		}
		return true
	})
	return removed
}
