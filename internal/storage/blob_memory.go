package storage

import (
	"context"
	"sort"
	"sync"
	"time"
)

type memoryBlob struct {
	record BlobRecord
	data   []byte
}

// MemoryBlobStore is a process-local BlobStore for development and tests.
type MemoryBlobStore struct {
	mu        sync.RWMutex
	namespace string
	blobs     map[string]memoryBlob
	now       func() time.Time
}

func NewMemoryBlobStore(namespace string) *MemoryBlobStore {
	return &MemoryBlobStore{namespace: namespace, blobs: make(map[string]memoryBlob), now: time.Now}
}

func (m *MemoryBlobStore) Put(ctx context.Context, id, contentType string, data []byte) (BlobRecord, error) {
	if err := ctx.Err(); err != nil {
		return BlobRecord{}, err
	}
	rec := BlobRecord{
		ID:          id,
		Namespace:   m.namespace,
		ContentType: contentType,
		Size:        int64(len(data)),
		CreatedAt:   m.now().UTC(),
	}
	buf := make([]byte, len(data))
	copy(buf, data)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[id] = memoryBlob{record: rec, data: buf}
	return rec, nil
}

func (m *MemoryBlobStore) Open(ctx context.Context, id string) (BlobRecord, []byte, error) {
	if err := ctx.Err(); err != nil {
		return BlobRecord{}, nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.blobs[id]
	if !ok {
		return BlobRecord{}, nil, ErrBlobNotFound
	}
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return b.record, out, nil
}

func (m *MemoryBlobStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, id)
	return nil
}

func (m *MemoryBlobStore) ListAll(ctx context.Context) ([]BlobRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	out := make([]BlobRecord, 0, len(m.blobs))
	for _, b := range m.blobs {
		out = append(out, b.record)
	}
	m.mu.RUnlock()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}
