package services

import (
	"context"
	"testing"
	"time"

	"github.com/AnshRaj112/keepsake-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoalLifecycle(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock(epoch)
	repo := NewGoalRepository(newTestStore(), clock.Now)

	g, err := repo.Create(ctx, "Visit Lisbon")
	require.NoError(t, err)
	assert.False(t, g.Achieved)
	assert.Nil(t, g.AchievedAt)

	clock.Advance(time.Hour)
	toggled, err := repo.Toggle(ctx, g.ID)
	require.NoError(t, err)
	assert.True(t, toggled.Achieved)
	require.NotNil(t, toggled.AchievedAt)
	assert.Equal(t, epoch.Add(time.Hour), *toggled.AchievedAt)

	stored, err := repo.Find(ctx, g.ID)
	require.NoError(t, err)
	assert.Equal(t, toggled, stored)

	back, err := repo.Toggle(ctx, g.ID)
	require.NoError(t, err)
	assert.False(t, back.Achieved)
	assert.Nil(t, back.AchievedAt)
}

func TestGoalUpdate(t *testing.T) {
	ctx := context.Background()
	repo := NewGoalRepository(newTestStore(), newFakeClock(epoch).Now)

	g, err := repo.Create(ctx, "Learn to dance")
	require.NoError(t, err)

	title := "Learn to salsa"
	done := true
	updated, err := repo.Update(ctx, g.ID, models.GoalPatch{Title: &title, Achieved: &done})
	require.NoError(t, err)
	assert.Equal(t, "Learn to salsa", updated.Title)
	assert.True(t, updated.Achieved)

	blank := " "
	_, err = repo.Update(ctx, g.ID, models.GoalPatch{Title: &blank})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = repo.Update(ctx, "missing", models.GoalPatch{Title: &title})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.Toggle(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGoalCountsAndDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewGoalRepository(newTestStore(), nil)

	a, err := repo.Create(ctx, "a")
	require.NoError(t, err)
	_, err = repo.Create(ctx, "b")
	require.NoError(t, err)
	_, err = repo.Toggle(ctx, a.ID)
	require.NoError(t, err)

	counts, err := repo.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.GoalCounts{Total: 2, Achieved: 1}, counts)

	require.NoError(t, repo.Delete(ctx, a.ID))
	require.NoError(t, repo.Delete(ctx, a.ID))

	counts, err = repo.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.GoalCounts{Total: 1}, counts)
}

func TestGoalCreateAssignsUniqueIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewGoalRepository(newTestStore(), nil)

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		g, err := repo.Create(ctx, "goal")
		require.NoError(t, err)
		assert.False(t, seen[g.ID])
		seen[g.ID] = true
	}
	items, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, items, 20)
}
