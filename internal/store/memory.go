package store

import (
	"context"
	"fmt"
	"maps"
	"sync"
)

// MemoryStore implements Store in process memory. It never survives a restart
// and is meant for tests and ephemeral sessions. Fail lets tests simulate an
// unavailable or full storage medium.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string]string
	err  error
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string]string{}}
}

// Fail makes every subsequent operation return err. Fail(nil) heals the store.
func (m *MemoryStore) Fail(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Dump returns a copy of every stored key and blob.
func (m *MemoryStore) Dump() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.data)
}

func (m *MemoryStore) Put(ctx context.Context, key, blob string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return fmt.Errorf("put %s: %w", key, m.err)
	}
	m.data[key] = blob
	return nil
}

func (m *MemoryStore) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", fmt.Errorf("get %s: %w", key, m.err)
	}
	blob, ok := m.data[key]
	if !ok {
		return "", fmt.Errorf("get %s: %w", key, ErrNotFound)
	}
	return blob, nil
}

func (m *MemoryStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return fmt.Errorf("delete %s: %w", key, m.err)
	}
	delete(m.data, key)
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}
