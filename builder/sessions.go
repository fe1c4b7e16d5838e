package builder

import (
	"context"
	"sync"
	"time"
)

// Sessions tracks open editing sessions by form id, one Builder per
// form. Mutations on one form are serialized by its Builder; Sessions
// only guards the registry itself.
type Sessions struct {
	mu       sync.Mutex
	store    Store
	interval time.Duration
	open     map[string]*Builder
}

func NewSessions(store Store, interval time.Duration) *Sessions {
	return &Sessions{
		store:    store,
		interval: interval,
		open:     make(map[string]*Builder),
	}
}

// Create starts a session on a fresh form and registers it.
func (s *Sessions) Create() *Builder {
	b := New(s.store, s.interval)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.open[b.Form().ID] = b
	return b
}

// Open returns the already-open session for the form, or loads one.
func (s *Sessions) Open(ctx context.Context, id string) (*Builder, error) {
	s.mu.Lock()
	if b, ok := s.open[id]; ok {
		s.mu.Unlock()
		return b, nil
	}
	s.mu.Unlock()

	b, err := Open(ctx, s.store, id, s.interval)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// lost the race: keep the one that got there first
	if prev, ok := s.open[id]; ok {
		b.Close()
		return prev, nil
	}
	s.open[id] = b
	return b, nil
}

// Get returns the open session for the form, or nil.
func (s *Sessions) Get(id string) *Builder {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open[id]
}

// Close ends a session, canceling its pending auto-save.
func (s *Sessions) Close(id string) {
	s.mu.Lock()
	b := s.open[id]
	delete(s.open, id)
	s.mu.Unlock()
	if b != nil {
		b.Close()
	}
}
