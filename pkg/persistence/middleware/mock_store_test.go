package middleware_test

import (
	"context"

	"github.com/aretw0/sift/pkg/ports"
)

// MockStore is a simple map-based history store for testing middleware.
type MockStore struct {
	data map[string][]*ports.Attempt
}

func NewMockStore() *MockStore {
	return &MockStore{
		data: make(map[string][]*ports.Attempt),
	}
}

func (s *MockStore) Append(ctx context.Context, sessionID string, attempt *ports.Attempt) error {
	s.data[sessionID] = append(s.data[sessionID], attempt)
	return nil
}

func (s *MockStore) List(ctx context.Context, sessionID string) ([]*ports.Attempt, error) {
	attempts, ok := s.data[sessionID]
	if !ok {
		return nil, ports.ErrSessionNotFound
	}
	return attempts, nil
}

func (s *MockStore) Clear(ctx context.Context, sessionID string) error {
	delete(s.data, sessionID)
	return nil
}

func (s *MockStore) Sessions(ctx context.Context) ([]string, error) {
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys, nil
}

var _ ports.HistoryStore = (*MockStore)(nil)
