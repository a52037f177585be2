package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapsuleCreateAndList(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock(epoch)
	repo := NewCapsuleRepository(newTestStore(), clock.Now)

	before, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, before)

	c, err := repo.Create(ctx, "  open on our anniversary ", epoch.Add(48*time.Hour))
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "open on our anniversary", c.Content)

	after, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, c, after[0])

	found, err := repo.Find(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, c, found)
}

func TestCapsuleCreateValidation(t *testing.T) {
	ctx := context.Background()
	repo := NewCapsuleRepository(newTestStore(), newFakeClock(epoch).Now)

	_, err := repo.Create(ctx, "   ", epoch.Add(time.Hour))
	assert.ErrorIs(t, err, ErrValidation)

	_, err = repo.Create(ctx, "hello", epoch.Add(-time.Hour))
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "unlock_at", verr.Field)
}

func TestCapsuleCountsFollowClock(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock(epoch)
	repo := NewCapsuleRepository(newTestStore(), clock.Now)

	_, err := repo.Create(ctx, "soon", epoch.Add(time.Hour))
	require.NoError(t, err)
	_, err = repo.Create(ctx, "later", epoch.Add(72*time.Hour))
	require.NoError(t, err)

	counts, err := repo.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, counts.Total)
	assert.Equal(t, 2, counts.Locked)

	clock.Advance(2 * time.Hour)
	counts, err = repo.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Locked)
	assert.Equal(t, 1, counts.Unlocked)
}

func TestCapsuleDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewCapsuleRepository(newTestStore(), newFakeClock(epoch).Now)

	c, err := repo.Create(ctx, "note", epoch.Add(time.Hour))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, c.ID))
	require.NoError(t, repo.Delete(ctx, c.ID))
	require.NoError(t, repo.Delete(ctx, "never-existed"))

	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestCapsuleListReportsStorageUnavailable(t *testing.T) {
	repo := NewCapsuleRepository(newFlakyStore(keyCapsules), nil)

	_, err := repo.List(context.Background())
	assert.ErrorIs(t, err, ErrStorageUnavailable)
	assert.ErrorIs(t, err, errBoom)
}

func TestCapsuleViewsFollowInjectedClock(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock(epoch)
	repo := NewCapsuleRepository(newTestStore(), clock.Now)

	c, err := repo.Create(ctx, "for next year", epoch.Add(24*time.Hour))
	require.NoError(t, err)

	views, err := repo.Views(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.True(t, views[0].Locked)
	assert.Empty(t, views[0].Content)
	assert.Equal(t, c.ID, views[0].ID)

	clock.Advance(25 * time.Hour)
	views, err = repo.Views(ctx)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.False(t, views[0].Locked)
	assert.Equal(t, "for next year", views[0].Content)

	one, err := repo.View(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, views[0], one)

	_, err = repo.View(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
