package session

import (
	"context"
	"sync"
	"time"
)

type clocker interface {
	Now() time.Time
}

type memoryEntry struct {
	value     string
	expiresAt time.Time
}

// Memory is an in-process Store for single-replica deployments and tests.
type Memory struct {
	clock clocker

	mu    sync.Mutex
	notes map[string]memoryEntry
}

// NewMemory returns an in-memory attempt-note store.
func NewMemory(clock clocker) *Memory {
	return &Memory{
		clock: clock,
		notes: make(map[string]memoryEntry),
	}
}

func memoryKey(attemptID, key string) string {
	return attemptID + ":" + key
}

// Get returns the note value and whether it exists. Expired entries are
// dropped lazily on read.
func (m *Memory) Get(_ context.Context, attemptID, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := memoryKey(attemptID, key)

	entry, ok := m.notes[k]
	if !ok {
		return "", false, nil
	}

	if !entry.expiresAt.IsZero() && !m.clock.Now().Before(entry.expiresAt) {
		delete(m.notes, k)
		return "", false, nil
	}

	return entry.value, true, nil
}

// Set writes a note with the given ttl. A non-positive ttl keeps the note
// until the process exits.
func (m *Memory) Set(_ context.Context, attemptID, key, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = m.clock.Now().Add(ttl)
	}
	m.notes[memoryKey(attemptID, key)] = entry

	return nil
}

// Remove deletes a note.
func (m *Memory) Remove(_ context.Context, attemptID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.notes, memoryKey(attemptID, key))

	return nil
}
