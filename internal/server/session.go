package server

import (
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-forminterp/pkg/interp"
)

// Session is one mounted run of a program. Its mutex serialises clicks since
// forms are not safe for concurrent use.
type Session struct {
	ID      string
	Program string

	mu      sync.Mutex
	region  interp.Region
	notices interp.Notices
}

// Form returns the mounted form.
func (s *Session) Form() *interp.Form {
	return s.region.Current()
}

type store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	order    []string
	max      int
}

func newStore(max int) *store {
	return &store{sessions: make(map[string]*Session), max: max}
}

// create registers a fresh session, evicting the oldest beyond capacity.
func (s *store) create(programText string) *Session {
	session := &Session{ID: uuid.NewString(), Program: programText}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	s.order = append(s.order, session.ID)
	for s.max > 0 && len(s.order) > s.max {
		evicted := s.order[0]
		s.order = s.order[1:]
		delete(s.sessions, evicted)
	}
	return session
}

func (s *store) get(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	return session, ok
}

func (s *store) remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return
	}
	delete(s.sessions, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

func (s *store) len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
