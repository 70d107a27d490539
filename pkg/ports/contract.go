package ports

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/sift/pkg/schema"
)

// RunHistoryStoreContract runs a suite of tests to verify that a HistoryStore
// implementation adheres to the defined interface contract.
func RunHistoryStoreContract(t *testing.T, store HistoryStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Append and List", func(t *testing.T) {
		// 1. Record a failed and a successful attempt
		first := NewAttempt("Product", map[string]any{"productId": "abc"}, schema.Issues{
			{Path: "product_id", Code: schema.CodeType, Message: "expected int, got string", Value: "abc"},
		})
		second := NewAttempt("Product", map[string]any{"productId": "101"}, nil)

		err := store.Append(ctx, sessionID, first)
		require.NoError(t, err, "Append should not return error")
		require.NoError(t, store.Append(ctx, sessionID, second))

		// 2. List them back, oldest first
		attempts, err := store.List(ctx, sessionID)
		require.NoError(t, err, "List should not return error")
		require.Len(t, attempts, 2)
		assert.Equal(t, first.ID, attempts[0].ID)
		assert.Equal(t, second.ID, attempts[1].ID)
		assert.False(t, attempts[0].OK)
		assert.True(t, attempts[1].OK)

		// 3. Issues survive persistence
		require.Len(t, attempts[0].Issues, 1)
		assert.Equal(t, "product_id", attempts[0].Issues[0].Path)
		assert.Equal(t, schema.CodeType, attempts[0].Issues[0].Code)
		assert.Equal(t, "abc", attempts[0].Raw["productId"])
	})

	t.Run("List Non-Existent", func(t *testing.T) {
		_, err := store.List(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("Clear", func(t *testing.T) {
		// Setup
		require.NoError(t, store.Append(ctx, sessionID, NewAttempt("Product", nil, nil)))

		// Clear
		err := store.Clear(ctx, sessionID)
		require.NoError(t, err, "Clear should not return error")

		// Verify gone
		_, err = store.List(ctx, sessionID)
		assert.ErrorIs(t, err, ErrSessionNotFound, "List after Clear should return ErrSessionNotFound")
	})

	t.Run("Sessions", func(t *testing.T) {
		// Setup: two sessions
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		require.NoError(t, store.Append(ctx, id1, NewAttempt("Product", nil, nil)))
		require.NoError(t, store.Append(ctx, id2, NewAttempt("Task", nil, nil)))

		// Ensure cleanup
		defer func() {
			_ = store.Clear(ctx, id1)
			_ = store.Clear(ctx, id2)
		}()

		sessions, err := store.Sessions(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)

		// Histories stay isolated per session
		attempts, err := store.List(ctx, id1)
		require.NoError(t, err)
		require.Len(t, attempts, 1)
		assert.Equal(t, "Product", attempts[0].Schema)
	})
}
