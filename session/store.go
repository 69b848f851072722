// Package session provides the per-user dialogue state store. State is
// keyed by user id; each key has its own critical section so concurrent
// turns from different users never block each other, while two turns from
// the same user serialize their read-modify-write cycles.
package session

import (
	"sync"
	"time"

	"github.com/medimatch/medimatch-agent/types"
)

// DefaultExpiry is how long an untouched session stays alive.
const DefaultExpiry = 1800 * time.Second

// Store is the dialogue layer's view of session persistence.
type Store interface {
	// Update runs fn on the user's current state under the per-user lock
	// and persists whatever fn leaves behind. Expiry is applied before fn
	// sees the state.
	Update(userID string, fn func(*types.SessionState))

	// Snapshot returns a deep copy of the user's current state, with
	// expiry applied. The copy is the caller's to keep.
	Snapshot(userID string) types.SessionState

	// Delete drops the user's state entirely.
	Delete(userID string)
}

// Expired is the expiry policy as a pure function: zero-valued timestamps
// (never-touched sessions) are not expired.
func Expired(lastUpdated, now time.Time, window time.Duration) bool {
	if lastUpdated.IsZero() {
		return false
	}
	return now.Sub(lastUpdated) > window
}

// Manager is the in-memory Store. The clock is injectable for tests.
type Manager struct {
	mu      sync.Mutex
	entries map[string]*entry
	expiry  time.Duration
	now     func() time.Time
}

type entry struct {
	mu    sync.Mutex
	state types.SessionState
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock replaces the wall clock, for expiry tests.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithExpiry overrides the session expiry window.
func WithExpiry(window time.Duration) Option {
	return func(m *Manager) { m.expiry = window }
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		entries: make(map[string]*entry),
		expiry:  DefaultExpiry,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) Update(userID string, fn func(*types.SessionState)) {
	e := m.entry(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	m.applyExpiry(e)
	fn(&e.state)
}

func (m *Manager) Snapshot(userID string) types.SessionState {
	e := m.entry(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	m.applyExpiry(e)
	return copyState(e.state)
}

func (m *Manager) Delete(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, userID)
}

// entry returns the per-user record, creating it lazily.
func (m *Manager) entry(userID string) *entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[userID]
	if !ok {
		e = &entry{}
		m.entries[userID] = e
	}
	return e
}

// applyExpiry resets a stale session to fresh defaults. Caller holds the
// entry lock.
func (m *Manager) applyExpiry(e *entry) {
	if Expired(e.state.LastUpdated, m.now(), m.expiry) {
		e.state = types.SessionState{}
	}
}

func copyState(s types.SessionState) types.SessionState {
	out := s
	if s.ShownResultIDs != nil {
		out.ShownResultIDs = make(map[string]struct{}, len(s.ShownResultIDs))
		for id := range s.ShownResultIDs {
			out.ShownResultIDs[id] = struct{}{}
		}
	}
	if s.Location != nil {
		loc := *s.Location
		out.Location = &loc
	}
	if s.LastRecommendation != nil {
		rec := *s.LastRecommendation
		rec.Departments = append([]string(nil), s.LastRecommendation.Departments...)
		rec.Diseases = append([]string(nil), s.LastRecommendation.Diseases...)
		out.LastRecommendation = &rec
	}
	return out
}
