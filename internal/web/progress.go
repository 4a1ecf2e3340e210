package web

import "sync"

// Hub fans out progress lines to the websocket subscribers of a session.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[chan string]struct{}
}

// NewHub returns an empty Hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[chan string]struct{})}
}

// Subscribe registers a listener for session id. The returned cancel func
// must be called to release it.
func (h *Hub) Subscribe(id string) (<-chan string, func()) {
	ch := make(chan string, 32)
	h.mu.Lock()
	if h.subs[id] == nil {
		h.subs[id] = make(map[chan string]struct{})
	}
	h.subs[id][ch] = struct{}{}
	h.mu.Unlock()

	return ch, func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if set, ok := h.subs[id]; ok {
			delete(set, ch)
			if len(set) == 0 {
				delete(h.subs, id)
			}
		}
	}
}

// Publish delivers line to every subscriber of id. Slow subscribers drop lines.
func (h *Hub) Publish(id, line string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[id] {
		select {
		case ch <- line:
		default:
		}
	}
}

// Subscribers returns the number of listeners for id.
func (h *Hub) Subscribers(id string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[id])
}
