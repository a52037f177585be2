package services

import (
	"context"
	"testing"

	"github.com/AnshRaj112/keepsake-backend/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoiceDiaryRecordOpenDelete(t *testing.T) {
	ctx := context.Background()
	blobs := storage.NewMemoryBlobStore("voice")
	repo := NewVoiceDiaryRepository(newTestStore(), blobs, newFakeClock(epoch).Now)

	entry, err := repo.Record(ctx, "audio/webm", []byte("RIFF...."), "Morning thoughts", 42)
	require.NoError(t, err)
	assert.Equal(t, "Morning thoughts", entry.Title)
	assert.Equal(t, 42, entry.DurationSeconds)
	assert.NotEmpty(t, entry.AudioRef)

	rec, data, err := repo.OpenAudio(ctx, entry.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("RIFF...."), data)
	assert.Equal(t, "audio/webm", rec.ContentType)

	require.NoError(t, repo.Delete(ctx, entry.ID))
	require.NoError(t, repo.Delete(ctx, entry.ID))

	remaining, err := blobs.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	_, _, err = repo.OpenAudio(ctx, entry.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVoiceDiaryRecordRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	repo := NewVoiceDiaryRepository(newTestStore(), storage.NewMemoryBlobStore("voice"), nil)

	_, err := repo.Record(ctx, "audio/ogg", nil, "", 0)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = repo.Record(ctx, "image/png", []byte("png"), "", 0)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = repo.Create(ctx, "", "title", 3)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestVoiceDiaryRecordRemovesOrphanedAudio(t *testing.T) {
	ctx := context.Background()
	blobs := storage.NewMemoryBlobStore("voice")
	repo := NewVoiceDiaryRepository(newFlakyStore(keyVoiceDiary), blobs, nil)

	_, err := repo.Record(ctx, "audio/mpeg", []byte("id3"), "", 0)
	assert.ErrorIs(t, err, ErrStorageUnavailable)

	remaining, err := blobs.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestVoiceDiaryCounts(t *testing.T) {
	ctx := context.Background()
	repo := NewVoiceDiaryRepository(newTestStore(), nil, nil)

	_, err := repo.Create(ctx, "external-ref", "", 0)
	require.NoError(t, err)

	counts, err := repo.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Total)
}
