package memory

import (
	"context"
	"sync"

	"github.com/aretw0/sift/pkg/ports"
)

// Store implements ports.HistoryStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string][]*ports.Attempt
	mu   sync.RWMutex
}

// NewStore creates a new in-memory history store.
func NewStore() *Store {
	return &Store{
		data: make(map[string][]*ports.Attempt),
	}
}

// Append records the attempt in memory.
func (s *Store) Append(ctx context.Context, sessionID string, attempt *ports.Attempt) error {
	// Copy on write to ensure isolation, similar to serialization
	copied := copyAttempt(attempt)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sessionID] = append(s.data[sessionID], copied)
	return nil
}

// List retrieves the session attempts from memory, oldest first.
func (s *Store) List(ctx context.Context, sessionID string) ([]*ports.Attempt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	attempts, ok := s.data[sessionID]
	if !ok {
		return nil, ports.ErrSessionNotFound
	}

	// Copy on read so caller can't mutate stored attempts directly by pointer
	ret := make([]*ports.Attempt, len(attempts))
	for i, att := range attempts {
		ret[i] = copyAttempt(att)
	}
	return ret, nil
}

// Clear removes the session history.
func (s *Store) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, sessionID)
	return nil
}

// Sessions returns the IDs of sessions with recorded attempts.
func (s *Store) Sessions(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]string, 0, len(s.data))
	for id := range s.data {
		sessions = append(sessions, id)
	}
	return sessions, nil
}

func copyAttempt(att *ports.Attempt) *ports.Attempt {
	copied := *att
	if att.Raw != nil {
		copied.Raw = make(map[string]any, len(att.Raw))
		for k, v := range att.Raw {
			copied.Raw[k] = v
		}
	}
	if att.Issues != nil {
		copied.Issues = append(copied.Issues[:0:0], att.Issues...)
	}
	return &copied
}
