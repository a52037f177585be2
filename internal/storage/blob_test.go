package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBlobStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryBlobStore("photos")
	base := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}

	_, err := s.Put(ctx, "b", "image/png", []byte("second"))
	require.NoError(t, err)
	rec, err := s.Put(ctx, "a", "image/jpeg", []byte("third!"))
	require.NoError(t, err)
	assert.Equal(t, "photos", rec.Namespace)
	assert.Equal(t, int64(6), rec.Size)

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "b", all[0].ID, "oldest first")

	got, data, err := s.Open(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "image/jpeg", got.ContentType)
	assert.Equal(t, []byte("third!"), data)

	require.NoError(t, s.Delete(ctx, "a"))
	require.NoError(t, s.Delete(ctx, "a"))

	_, _, err = s.Open(ctx, "a")
	assert.ErrorIs(t, err, ErrBlobNotFound)
}

func TestCloudinaryRecordStripsPrefix(t *testing.T) {
	s := &CloudinaryBlobStore{folder: "keepsake", namespace: "photos"}
	created := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	rec := s.record("keepsake/photos/abc", "png", 42, "https://res.example/abc.png", created)
	assert.Equal(t, "abc", rec.ID)
	assert.Equal(t, "image/png", rec.ContentType)
	assert.Equal(t, int64(42), rec.Size)
	assert.Equal(t, "keepsake/photos/xyz", s.publicID("xyz"))
}

func TestCloudinaryAssetError(t *testing.T) {
	assert.NoError(t, assetError("abc", ""))
	assert.ErrorIs(t, assetError("abc", "Resource not found - keepsake/photos/abc"), ErrBlobNotFound)

	err := assetError("abc", "Rate Limit Exceeded")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrBlobNotFound)
	assert.Contains(t, err.Error(), "Rate Limit Exceeded")
}
