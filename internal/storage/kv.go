// Package storage holds the persistence adapters the domain repositories and
// the stats aggregator sit on: a JSON key-value store (one key per feature
// list) and a namespaced blob store for photos and voice recordings.
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrBlobNotFound is returned by BlobStore.Open for an unknown id.
var ErrBlobNotFound = errors.New("storage: blob not found")

// KeyValueStore persists JSON documents under well-known keys. Writes to a
// single key are atomic; nothing is promised across keys.
type KeyValueStore interface {
	// Get decodes the value stored under key into dest. It reports false,
	// leaving dest untouched, when nothing is stored.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	StorageInfo(ctx context.Context) (StorageInfo, error)
}

// StorageInfo reports how much of the configured quota the stored values use.
type StorageInfo struct {
	BytesUsed   int64   `json:"bytes_used"`
	BytesQuota  int64   `json:"bytes_quota"`
	PercentUsed float64 `json:"percent_used"`
}

// NewStorageInfo fills PercentUsed, clamped to [0, 100].
func NewStorageInfo(used, quota int64) StorageInfo {
	info := StorageInfo{BytesUsed: used, BytesQuota: quota}
	if quota > 0 {
		pct := float64(used) / float64(quota) * 100
		if pct > 100 {
			pct = 100
		}
		info.PercentUsed = float64(int(pct*10+0.5)) / 10
	}
	return info
}

// BlobRecord describes one stored binary object.
type BlobRecord struct {
	ID          string    `json:"id"`
	Namespace   string    `json:"namespace"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	URL         string    `json:"url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// BlobStore keeps media in a single namespace (e.g. "photos").
type BlobStore interface {
	Put(ctx context.Context, id, contentType string, data []byte) (BlobRecord, error)
	Open(ctx context.Context, id string) (BlobRecord, []byte, error)
	// Delete is idempotent.
	Delete(ctx context.Context, id string) error
	// ListAll returns records oldest first.
	ListAll(ctx context.Context) ([]BlobRecord, error)
}
