package server

import (
	"sync"
	"time"

	"github.com/claude/gymflow/internal/intake"
)

// sessionTTL is how long an intake session is kept after it was started.
const sessionTTL = 24 * time.Hour

type session struct {
	machine *intake.Machine
	owner   string
	started time.Time
}

type sessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*session
	now      func() time.Time
}

func newSessionRegistry() *sessionRegistry {
	return &sessionRegistry{sessions: make(map[string]*session), now: time.Now}
}

// add stores a session and drops the expired ones.
func (r *sessionRegistry) add(id string, s *session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	for k, old := range r.sessions {
		if now.Sub(old.started) > sessionTTL {
			delete(r.sessions, k)
		}
	}
	r.sessions[id] = s
}

// get returns the session only to its owner.
func (r *sessionRegistry) get(id, owner string) (*session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok || s.owner != owner {
		return nil, false
	}
	return s, true
}
