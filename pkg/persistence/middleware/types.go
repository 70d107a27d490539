// Package middleware wraps a HistoryStore with at-rest protections for the
// recorded attempts: key-pattern redaction of the raw input and AES-GCM
// envelope encryption of the whole attempt payload.
package middleware

import "github.com/aretw0/sift/pkg/ports"

// Middleware allows wrapping a HistoryStore to add behavior.
type Middleware func(ports.HistoryStore) ports.HistoryStore

// Chain applies the middlewares to the store so that the first one listed
// sees the attempt first. Chain(store, Redaction, Encryption) redacts before
// encrypting.
func Chain(store ports.HistoryStore, mws ...Middleware) ports.HistoryStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
