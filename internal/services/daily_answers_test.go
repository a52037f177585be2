package services

import (
	"context"
	"testing"
	"time"

	"github.com/AnshRaj112/keepsake-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDailyAnswerRecordUpsertsByDay(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock(epoch)
	repo := NewDailyAnswerRepository(newTestStore(), time.UTC, clock.Now)

	first, err := repo.Record(ctx, "", "What made you smile?", "Coffee in bed", "Good")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10", first.Date)
	assert.Equal(t, models.MoodGood, first.Mood)

	second, err := repo.Record(ctx, "2024-03-10", "What made you smile?", "Actually, the sunset", "great")
	require.NoError(t, err)

	got, err := repo.Get(ctx, "2024-03-10")
	require.NoError(t, err)
	assert.Equal(t, second, got)

	counts, err := repo.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, counts.Total)
}

func TestDailyAnswerValidation(t *testing.T) {
	ctx := context.Background()
	repo := NewDailyAnswerRepository(newTestStore(), time.UTC, newFakeClock(epoch).Now)

	_, err := repo.Record(ctx, "", "", " ", "")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = repo.Record(ctx, "", "", "ok", "ecstatic")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = repo.Record(ctx, "10/03/2024", "", "ok", "")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = repo.Record(ctx, "2024-03-11", "", "tomorrow", "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = repo.Get(ctx, "2024-03-01")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDailyAnswerStreakAndList(t *testing.T) {
	ctx := context.Background()
	clock := newFakeClock(epoch)
	repo := NewDailyAnswerRepository(newTestStore(), time.UTC, clock.Now)

	for _, d := range []string{"2024-03-08", "2024-03-09", "2024-03-10", "2024-03-05"} {
		_, err := repo.Record(ctx, d, "", "answer "+d, "")
		require.NoError(t, err)
	}

	streak, err := repo.Streak(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, streak)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 4)
	assert.Equal(t, "2024-03-10", list[0].Date)
	assert.Equal(t, "2024-03-05", list[3].Date)

	dates, err := repo.Dates(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-05", "2024-03-08", "2024-03-09", "2024-03-10"}, dates)

	clock.Advance(24 * time.Hour)
	streak, err = repo.Streak(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, streak)
}

func TestDailyAnswerDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := NewDailyAnswerRepository(newTestStore(), time.UTC, newFakeClock(epoch).Now)

	_, err := repo.Record(ctx, "", "", "hi", "")
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, "2024-03-10"))
	require.NoError(t, repo.Delete(ctx, "2024-03-10"))
	assert.ErrorIs(t, repo.Delete(ctx, "not-a-date"), ErrValidation)

	counts, err := repo.Counts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, counts.Total)
}
