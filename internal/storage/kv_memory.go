package storage

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
)

// MemoryStore is a process-local KeyValueStore. Values are kept JSON-encoded
// so size accounting and aliasing match the real backends.
type MemoryStore struct {
	mu     sync.RWMutex
	prefix string
	quota  int64
	data   map[string][]byte
}

func NewMemoryStore(prefix string, quota int64) *MemoryStore {
	return &MemoryStore{prefix: prefix, quota: quota, data: make(map[string][]byte)}
}

func (m *MemoryStore) Get(ctx context.Context, key string, dest any) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	m.mu.RLock()
	raw, ok := m.data[m.prefix+key]
	m.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (m *MemoryStore) Set(ctx context.Context, key string, value any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[m.prefix+key] = raw
	return nil
}

func (m *MemoryStore) StorageInfo(ctx context.Context) (StorageInfo, error) {
	if err := ctx.Err(); err != nil {
		return StorageInfo{}, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var used int64
	for k, v := range m.data {
		if strings.HasPrefix(k, m.prefix) {
			used += int64(len(k) + len(v))
		}
	}
	return NewStorageInfo(used, m.quota), nil
}
