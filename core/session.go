package conversation

import "sync"

// Participant is one member of a session. Identity is immutable after join;
// only PreferredLanguage may change.
type Participant struct {
	ID                string
	DisplayName       string
	PreferredLanguage string
}

// sessionView is this client's derived view of session membership, built
// solely from observed JOIN/LEAVE/UPDATE_LANG events. There is no
// authoritative server, so views may transiently diverge between clients
// until events propagate.
type sessionView struct {
	mu           sync.RWMutex
	participants map[string]Participant
	order        []string
}

func newSessionView() *sessionView {
	return &sessionView{participants: map[string]Participant{}}
}

// join records a participant, preserving first-join order. Re-joining
// refreshes the record without duplicating the entry.
func (s *sessionView) join(participant Participant) bool {
	if participant.ID == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, known := s.participants[participant.ID]
	s.participants[participant.ID] = participant
	if !known {
		s.order = append(s.order, participant.ID)
	}
	return !known
}

func (s *sessionView) leave(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, known := s.participants[id]; !known {
		return false
	}
	delete(s.participants, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return true
}

func (s *sessionView) setLanguage(id, language string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	participant, known := s.participants[id]
	if !known || participant.PreferredLanguage == language {
		return false
	}
	participant.PreferredLanguage = language
	s.participants[id] = participant
	return true
}

// snapshot returns members in first-join order.
func (s *sessionView) snapshot() []Participant {
	s.mu.RLock()
	defer s.mu.RUnlock()

	participants := make([]Participant, 0, len(s.order))
	for _, id := range s.order {
		participants = append(participants, s.participants[id])
	}
	return participants
}

// firstPeer returns the earliest-joined participant other than the given
// one, if any.
func (s *sessionView) firstPeer(localID string) (Participant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.order {
		if id != localID {
			return s.participants[id], true
		}
	}
	return Participant{}, false
}
