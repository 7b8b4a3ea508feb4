// internal/store/memory.go
//
// In-memory registry of live game sessions.
// The HTTP layer gives every client its own session; this store keeps them
// reachable by ID for the lifetime of the process.
//
// Characteristics:
//   - Stores *game.Session values keyed by Session.ID().
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Tracks last access so idle sessions can be evicted (and closed).
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/wordish/internal/game"
)

// ErrNotFound is returned by Get for unknown or evicted sessions.
var ErrNotFound = errors.New("session not found")

// Store defines the registry interface for game sessions.
type Store interface {
	// Save adds or replaces a session.
	Save(ctx context.Context, s *game.Session) error

	// Get retrieves a session by ID and marks it as recently used.
	Get(ctx context.Context, id string) (*game.Session, error)

	// Delete closes and forgets a session. Unknown IDs are ignored.
	Delete(ctx context.Context, id string) error

	// EvictIdle closes and forgets sessions unused for longer than maxIdle,
	// returning their IDs.
	EvictIdle(ctx context.Context, maxIdle time.Duration) []string

	// Close closes every session.
	Close()
}

type entry struct {
	session  *game.Session
	lastSeen time.Time
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex      // guards sessions
	sessions map[string]*entry // keyed by Session.ID()
	now      func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return newMemory(time.Now)
}

func newMemory(now func() time.Time) *memory {
	return &memory{sessions: make(map[string]*entry), now: now}
}

// Save adds or updates the session in the map. A different session
// previously stored under the same ID is closed.
func (m *memory) Save(ctx context.Context, s *game.Session) error {
	m.mu.Lock()
	old := m.sessions[s.ID()]
	m.sessions[s.ID()] = &entry{session: s, lastSeen: m.now()}
	m.mu.Unlock()

	if old != nil && old.session != s {
		old.session.Close()
	}
	return nil
}

// Get looks up a session by ID.
func (m *memory) Get(ctx context.Context, id string) (*game.Session, error) {
	// Write lock: lastSeen is updated on every hit.
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	e.lastSeen = m.now()
	return e.session, nil
}

// Delete removes and closes a session.
func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	e, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()

	if ok {
		e.session.Close()
	}
	return nil
}

// EvictIdle drops sessions idle for longer than maxIdle.
func (m *memory) EvictIdle(ctx context.Context, maxIdle time.Duration) []string {
	cutoff := m.now().Add(-maxIdle)

	var evicted []*game.Session
	m.mu.Lock()
	for id, e := range m.sessions {
		if e.lastSeen.Before(cutoff) {
			evicted = append(evicted, e.session)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	ids := make([]string, 0, len(evicted))
	for _, s := range evicted {
		s.Close()
		ids = append(ids, s.ID())
	}
	return ids
}

// Len reports how many sessions are stored.
func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close closes and forgets every session.
func (m *memory) Close() {
	m.mu.Lock()
	all := m.sessions
	m.sessions = make(map[string]*entry)
	m.mu.Unlock()

	for _, e := range all {
		e.session.Close()
	}
}
