// Package session keeps one checkout flow per signed-in identity. A session is
// created at login and destroyed at logout; its cart never outlives it.
package session

import (
	"sync"
	"time"

	"github.com/junaidrashid-git/biryani-house/checkout"
)

type EventKind string

const (
	EventStarted EventKind = "started"
	EventEnded   EventKind = "ended"
)

type Event struct {
	Kind      EventKind
	SessionID string
}

type Session struct {
	ID        string
	Flow      *checkout.Flow
	StartedAt time.Time
}

// FlowFactory builds the flow for a new session.
type FlowFactory func(sessionID string) *checkout.Flow

type Registry struct {
	mu        sync.RWMutex
	sessions  map[string]*Session
	listeners []func(Event)
	newFlow   FlowFactory
}

func NewRegistry(newFlow FlowFactory) *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		newFlow:  newFlow,
	}
}

// Start returns the live session for id, creating it if needed.
func (r *Registry) Start(id string) *Session {
	r.mu.Lock()
	if s, ok := r.sessions[id]; ok {
		r.mu.Unlock()
		return s
	}
	s := &Session{ID: id, Flow: r.newFlow(id), StartedAt: time.Now()}
	r.sessions[id] = s
	listeners := r.listeners
	r.mu.Unlock()

	notify(listeners, Event{Kind: EventStarted, SessionID: id})
	return s
}

// Get returns nil when there is no session for id.
func (r *Registry) Get(id string) *Session {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sessions[id]
}

// End destroys the session and its cart. Ending an unknown id is a no-op.
func (r *Registry) End(id string) bool {
	r.mu.Lock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	listeners := r.listeners
	r.mu.Unlock()

	if ok {
		notify(listeners, Event{Kind: EventEnded, SessionID: id})
	}
	return ok
}

// Subscribe registers fn for every later start and end.
func (r *Registry) Subscribe(fn func(Event)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listeners = append(r.listeners, fn)
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// PruneIdle ends sessions whose flow has not been touched for ttl. Sessions
// with a submission in flight are kept.
func (r *Registry) PruneIdle(ttl time.Duration) int {
	cutoff := time.Now().Add(-ttl)

	r.mu.RLock()
	var stale []string
	for id, s := range r.sessions {
		if s.Flow.State() != checkout.StateSubmitting && s.Flow.LastActivity().Before(cutoff) {
			stale = append(stale, id)
		}
	}
	r.mu.RUnlock()

	ended := 0
	for _, id := range stale {
		if r.End(id) {
			ended++
		}
	}
	return ended
}

func notify(listeners []func(Event), e Event) {
	for _, fn := range listeners {
		fn(e)
	}
}
