package services

import (
	"context"
	"testing"
	"time"

	"github.com/AnshRaj112/keepsake-backend/internal/models"
	"github.com/AnshRaj112/keepsake-backend/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAll(t *testing.T, repos *Repositories) {
	t.Helper()
	ctx := context.Background()

	_, err := repos.Capsules.Create(ctx, "capsule", epoch.Add(time.Hour))
	require.NoError(t, err)
	g, err := repos.Goals.Create(ctx, "goal")
	require.NoError(t, err)
	_, err = repos.Goals.Toggle(ctx, g.ID)
	require.NoError(t, err)
	_, err = repos.Goals.Create(ctx, "another goal")
	require.NoError(t, err)
	_, err = repos.VoiceDiary.Record(ctx, "audio/webm", []byte("voice"), "", 3)
	require.NoError(t, err)
	_, err = repos.Journey.Create(ctx, "met", epoch.AddDate(-1, 0, 0))
	require.NoError(t, err)
	_, err = repos.Legacy.Seal(ctx, "later", 5)
	require.NoError(t, err)
	_, err = repos.Photos.Upload(ctx, "image/png", []byte("png"))
	require.NoError(t, err)
	for _, d := range []string{"2024-03-09", "2024-03-10"} {
		_, err = repos.DailyAnswers.Record(ctx, d, "", "answer", models.MoodGood)
		require.NoError(t, err)
	}
}

func newTestRepositories(kv storage.KeyValueStore, clock *fakeClock) *Repositories {
	return NewRepositories(kv, storage.NewMemoryBlobStore("photos"), storage.NewMemoryBlobStore("voice"), nil, time.UTC, clock.Now)
}

func TestSnapshotAggregatesEveryFeature(t *testing.T) {
	clock := newFakeClock(epoch)
	repos := newTestRepositories(newTestStore(), clock)
	seedAll(t, repos)

	snap := NewStatsService(repos, clock.Now).Snapshot(context.Background())

	assert.Empty(t, snap.Warnings)
	assert.True(t, snap.HasAnyData)
	assert.Equal(t, models.CapsuleCounts{Total: 1, Locked: 1}, snap.Capsules)
	assert.Equal(t, models.GoalCounts{Total: 2, Achieved: 1}, snap.Goals)
	assert.Equal(t, 1, snap.VoiceDiary.Total)
	assert.Equal(t, 1, snap.Journey.Total)
	assert.Equal(t, models.LegacyCounts{Total: 1, Locked: 1}, snap.Legacy)
	assert.Equal(t, 1, snap.Photos)
	assert.Equal(t, 2, snap.DailyAnswers)
	assert.Equal(t, 2, snap.Streak)
	assert.Greater(t, snap.Storage.BytesUsed, int64(0))
	assert.Len(t, snap.Features, 7)
}

func TestSnapshotEmpty(t *testing.T) {
	clock := newFakeClock(epoch)
	snap := NewStatsService(newTestRepositories(newTestStore(), clock), clock.Now).Snapshot(context.Background())

	assert.False(t, snap.HasAnyData)
	assert.Empty(t, snap.Warnings)
	assert.Zero(t, snap.Streak)
}

func TestSnapshotIsolatesFailingFeature(t *testing.T) {
	clock := newFakeClock(epoch)
	kv := newFlakyStore()
	repos := newTestRepositories(kv, clock)
	seedAll(t, repos)

	kv.broken[keyGoals] = true
	kv.failInfo = true

	snap := NewStatsService(repos, clock.Now).Snapshot(context.Background())

	assert.ElementsMatch(t, []string{models.FeatureGoals, models.FeatureStorage}, snap.Warnings)
	assert.Equal(t, models.GoalCounts{}, snap.Goals)
	assert.Equal(t, models.StorageUsage{}, snap.Storage)
	assert.Equal(t, 1, snap.Capsules.Total)
	assert.Equal(t, 1, snap.Legacy.Total)
	assert.Equal(t, 2, snap.Streak)
	assert.True(t, snap.HasAnyData)
}

func TestSnapshotMissingRepository(t *testing.T) {
	clock := newFakeClock(epoch)
	repos := newTestRepositories(newTestStore(), clock)
	repos.Photos = nil

	snap := NewStatsService(repos, clock.Now).Snapshot(context.Background())
	assert.Equal(t, []string{models.FeaturePhotos}, snap.Warnings)
}
