package sitestorage

import (
	"context"
	"sync"

	"github.com/indyavik/theme-1-multi-site/common"
)

// MemoryAdapter is an in-memory Adapter, used by tests and as the default
// when no durable backend is configured.
type MemoryAdapter struct {
	mutex sync.RWMutex
	data  map[string][]byte
}

// NewMemoryAdapter creates an empty MemoryAdapter.
func NewMemoryAdapter() *MemoryAdapter {
	return &MemoryAdapter{data: make(map[string][]byte)}
}

// Put stores data under key.
func (a *MemoryAdapter) Put(ctx context.Context, key string, data []byte) error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	buf := make([]byte, len(data))
	copy(buf, data)
	a.data[key] = buf
	return nil
}

// Get returns the data stored under key.
func (a *MemoryAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	data, ok := a.data[key]
	if !ok {
		return nil, common.ErrNotFound
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	return buf, nil
}

// Delete removes key.
func (a *MemoryAdapter) Delete(ctx context.Context, key string) error {
	a.mutex.Lock()
	defer a.mutex.Unlock()

	delete(a.data, key)
	return nil
}

// List returns all stored keys.
func (a *MemoryAdapter) List(ctx context.Context) ([]string, error) {
	a.mutex.RLock()
	defer a.mutex.RUnlock()

	keys := make([]string, 0, len(a.data))
	for k := range a.data {
		keys = append(keys, k)
	}
	return keys, nil
}
