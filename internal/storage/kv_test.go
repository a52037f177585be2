package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStorageInfo(t *testing.T) {
	tests := []struct {
		name        string
		used, quota int64
		want        float64
	}{
		{"empty", 0, 1000, 0},
		{"quarter", 250, 1000, 25},
		{"rounded", 1, 3, 33.3},
		{"clamped", 5000, 1000, 100},
		{"no quota", 10, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := NewStorageInfo(tt.used, tt.quota)
			assert.Equal(t, tt.used, info.BytesUsed)
			assert.Equal(t, tt.quota, info.BytesQuota)
			assert.InDelta(t, tt.want, info.PercentUsed, 0.001)
		})
	}
}

func TestMemoryStoreGetMissingLeavesDest(t *testing.T) {
	s := NewMemoryStore("t:", 1024)
	dest := []string{"default"}

	found, err := s.Get(context.Background(), "missing", &dest)
	require.NoError(t, err)
	assert.False(t, found)
	assert.Equal(t, []string{"default"}, dest)
}

func TestMemoryStoreSetGet(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore("t:", 1024)

	type item struct {
		ID   string `json:"id"`
		Text string `json:"text"`
	}
	in := []item{{ID: "1", Text: "hello"}}
	require.NoError(t, s.Set(ctx, "items", in))

	// Mutating the caller's slice must not leak into the store.
	in[0].Text = "changed"

	var out []item
	found, err := s.Get(ctx, "items", &out)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "hello", out[0].Text)
}

func TestMemoryStoreStorageInfoCountsPrefixOnly(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore("a:", 100)
	require.NoError(t, s.Set(ctx, "k", "v")) // "a:k" + `"v"` = 3 + 3

	info, err := s.StorageInfo(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(6), info.BytesUsed)
	assert.InDelta(t, 6.0, info.PercentUsed, 0.001)
}

func TestMemoryStoreHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := NewMemoryStore("", 10)

	assert.Error(t, s.Set(ctx, "k", 1))
	_, err := s.Get(ctx, "k", new(int))
	assert.Error(t, err)
}

func TestLikePrefixEscapes(t *testing.T) {
	assert.Equal(t, `keepsake:%`, likePrefix("keepsake:"))
	assert.Equal(t, `a\_b\%c%`, likePrefix("a_b%c"))
}
