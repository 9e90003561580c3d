package server

import (
	"sync"
	"time"

	"github.com/abhisek/lingua/internal/lesson"
)

// entry guards one session. Holding mu serializes that session's calls.
type entry struct {
	mu       sync.Mutex
	sess     *lesson.Session
	removed  bool
	lastUsed time.Time
}

// SessionStore keeps live sessions in memory, keyed by session id.
type SessionStore struct {
	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{entries: make(map[string]*entry), now: time.Now}
}

// create adds a fresh session and returns it, locked. The caller must
// unlock it.
func (s *SessionStore) create() *entry {
	e := &entry{sess: lesson.NewSession(), lastUsed: s.now()}
	e.mu.Lock()

	s.mu.Lock()
	s.entries[e.sess.ID] = e
	s.mu.Unlock()
	return e
}

// acquire returns the session with the given id, locked. The caller must
// unlock it.
func (s *SessionStore) acquire(id string) (*entry, bool) {
	s.mu.Lock()
	e, ok := s.entries[id]
	s.mu.Unlock()
	if !ok {
		return nil, false
	}

	e.mu.Lock()
	// Removed, re-keyed or swept while we waited.
	if e.removed || e.sess.ID != id {
		e.mu.Unlock()
		return nil, false
	}
	e.lastUsed = s.now()
	return e, true
}

// rekey moves a locked entry from oldID to its session's current id.
func (s *SessionStore) rekey(oldID string, e *entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, oldID)
	s.entries[e.sess.ID] = e
}

// remove drops a locked entry.
func (s *SessionStore) remove(e *entry) {
	e.removed = true
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, e.sess.ID)
}

// Sweep drops sessions unused for longer than idle and returns how many
// it dropped. Sessions busy with a request are skipped.
func (s *SessionStore) Sweep(idle time.Duration) int {
	cutoff := s.now().Add(-idle)

	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, e := range s.entries {
		if !e.mu.TryLock() {
			continue
		}
		if e.lastUsed.Before(cutoff) {
			e.removed = true
			delete(s.entries, id)
			n++
		}
		e.mu.Unlock()
	}
	return n
}

// Len returns the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
