package live

import (
	"sort"
	"sync"
)

// sessionSet tracks the open sessions of one account.
type sessionSet struct {
	mu       sync.RWMutex
	sessions map[string]Session // clientID -> session
}

func newSessionSet() *sessionSet {
	return &sessionSet{sessions: make(map[string]Session)}
}

func (s *sessionSet) add(sess Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.ClientID] = sess
}

func (s *sessionSet) remove(clientID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, clientID)
}

// list returns the sessions oldest first.
func (s *sessionSet) list() []Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Since.Equal(out[j].Since) {
			return out[i].ClientID < out[j].ClientID
		}
		return out[i].Since.Before(out[j].Since)
	})
	return out
}
