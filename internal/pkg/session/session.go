// Package session holds the transient notes of one in-flight authentication
// attempt. The store is a plain key-value surface scoped by attempt ID; it is
// injected into the authenticator rather than accessed as global state.
package session

import (
	"context"
	"time"
)

// Store reads and writes the notes of a single authentication attempt.
//
// Notes are exclusively owned by one in-flight attempt, so implementations
// need no cross-attempt coordination beyond plain key isolation.
type Store interface {
	// Get returns the note value and whether it exists.
	Get(ctx context.Context, attemptID, key string) (string, bool, error)

	// Set writes a note, overwriting any previous value. The ttl bounds how
	// long an abandoned attempt lingers; it is not the challenge expiry.
	Set(ctx context.Context, attemptID, key, value string, ttl time.Duration) error

	// Remove deletes a note. Removing an absent note is not an error.
	Remove(ctx context.Context, attemptID, key string) error
}
