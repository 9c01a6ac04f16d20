package storage

import (
	"context"
	"sync"
)

// MemoryStorage is a process-local service.Storage. Values are copied on
// the way in and out.
type MemoryStorage struct {
	data map[string][]byte
	mu   sync.RWMutex
}

// NewMemoryStorage returns an empty store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{data: make(map[string][]byte)}
}

// Get returns a copy of the blob under key, or nil.
func (m *MemoryStorage) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	blob, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), blob...), nil
}

// Set stores a copy of blob.
func (m *MemoryStorage) Set(ctx context.Context, key string, blob []byte) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateString(key, "key"); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = append([]byte(nil), blob...)
	return nil
}

// Remove deletes key.
func (m *MemoryStorage) Remove(ctx context.Context, key string) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}

// Migrate is a no-op.
func (m *MemoryStorage) Migrate(context.Context) error { return nil }

// Close is a no-op.
func (m *MemoryStorage) Close() error { return nil }
