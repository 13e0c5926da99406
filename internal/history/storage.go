package history

import (
	"context"
	"sync"
)

// Key is the storage key the history list lives under.
const Key = "conversionHistory"

// Storage is a persisted key/value collaborator. Values are opaque bytes;
// the store keeps JSON in them.
type Storage interface {
	// Get returns the value for key, and false when the key was never set.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set replaces the value for key.
	Set(ctx context.Context, key string, value []byte) error
}

// MemoryStorage is an in-process Storage, used when no database is
// configured and in tests.
type MemoryStorage struct {
	mu     sync.RWMutex
	values map[string][]byte
	// SetErr, when non-nil, is returned by every Set call.
	SetErr error
}

// NewMemoryStorage returns an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string][]byte)}
}

// Get implements Storage.
func (m *MemoryStorage) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return nil, false, nil
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, true, nil
}

// Set implements Storage.
func (m *MemoryStorage) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SetErr != nil {
		return m.SetErr
	}
	v := make([]byte, len(value))
	copy(v, value)
	m.values[key] = v
	return nil
}
