package ports

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/sift/pkg/schema"
)

// ErrSessionNotFound is returned when a session has no recorded attempts.
var ErrSessionNotFound = errors.New("session not found")

// Attempt is one validation attempt as recorded by a host.
type Attempt struct {
	ID        string         `json:"id"`
	Schema    string         `json:"schema"`
	Raw       map[string]any `json:"raw"`
	OK        bool           `json:"ok"`
	Issues    schema.Issues  `json:"issues,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// NewAttempt builds an Attempt for the given schema and input, stamping a
// fresh ID and timestamp. The attempt is OK when issues is empty.
func NewAttempt(schemaName string, raw map[string]any, issues schema.Issues) *Attempt {
	return &Attempt{
		ID:        uuid.NewString(),
		Schema:    schemaName,
		Raw:       raw,
		OK:        len(issues) == 0,
		Issues:    issues,
		CreatedAt: time.Now().UTC(),
	}
}

// HistoryStore defines the interface for persisting validation attempts.
// Attempts are grouped by session ID so a host can replay what a client tried.
type HistoryStore interface {
	// Append records an attempt under the given session ID.
	Append(ctx context.Context, sessionID string, attempt *Attempt) error

	// List returns the attempts recorded for the session, oldest first.
	// Returns ErrSessionNotFound if the session has no attempts.
	List(ctx context.Context, sessionID string) ([]*Attempt, error)

	// Clear removes all attempts for the session.
	Clear(ctx context.Context, sessionID string) error

	// Sessions returns the IDs of sessions with recorded attempts.
	Sessions(ctx context.Context) ([]string, error)
}
