package pipeline

import (
	"sync"
	"time"

	"github.com/bharathvaddineniK/vicin-sub000/internal/config"
	"github.com/bharathvaddineniK/vicin-sub000/internal/port"
	"github.com/bharathvaddineniK/vicin-sub000/internal/uuid"
)

// Store tracks live authoring sessions in memory. Each session gets its own
// cleaner so a teardown sweep only touches that session's temp files.
type Store struct {
	mu         sync.RWMutex
	sessions   map[uuid.UUID]*Session
	policy     config.Policy
	newCleaner func() port.Cleaner
}

func NewStore(policy config.Policy, newCleaner func() port.Cleaner) *Store {
	return &Store{
		sessions:   make(map[uuid.UUID]*Session),
		policy:     policy,
		newCleaner: newCleaner,
	}
}

func (s *Store) Create(ownerID string) *Session {
	sess := NewSession(ownerID, s.policy, s.newCleaner())
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ID()] = sess
	return sess
}

func (s *Store) Get(id uuid.UUID) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// Delete resets the session (sweeping its temp files) and drops it.
func (s *Store) Delete(id uuid.UUID) bool {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if ok {
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	if !ok {
		return false
	}
	sess.Reset()
	return true
}

// DeleteIfIdle deletes the session only when its last activity is older than
// maxIdle. It reports whether the session was deleted and whether it existed.
func (s *Store) DeleteIfIdle(id uuid.UUID, maxIdle time.Duration) (deleted, exists bool) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return false, false
	}
	if time.Since(sess.LastActive()) < maxIdle {
		s.mu.Unlock()
		return false, true
	}
	delete(s.sessions, id)
	s.mu.Unlock()

	sess.Reset()
	return true, true
}

// SweepIdle tears down sessions whose last activity is older than maxIdle and
// returns how many were swept.
func (s *Store) SweepIdle(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	s.mu.Lock()
	var stale []*Session
	for id, sess := range s.sessions {
		if sess.LastActive().Before(cutoff) {
			stale = append(stale, sess)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, sess := range stale {
		sess.Reset()
	}
	return len(stale)
}
