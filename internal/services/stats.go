package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/AnshRaj112/keepsake-backend/internal/models"
	"github.com/AnshRaj112/keepsake-backend/internal/storage"
)

// Repositories groups every feature's repository plus the adapters the
// aggregator queries directly.
type Repositories struct {
	Capsules     *CapsuleRepository
	Goals        *GoalRepository
	VoiceDiary   *VoiceDiaryRepository
	Journey      *JourneyRepository
	Legacy       *LegacyRepository
	DailyAnswers *DailyAnswerRepository
	Photos       *PhotoLibrary
	Store        storage.KeyValueStore
}

// NewRepositories wires every repository onto one key-value store.
func NewRepositories(kv storage.KeyValueStore, photos, voice storage.BlobStore, cipher TextCipher, loc *time.Location, now Clock) *Repositories {
	return &Repositories{
		Capsules:     NewCapsuleRepository(kv, now),
		Goals:        NewGoalRepository(kv, now),
		VoiceDiary:   NewVoiceDiaryRepository(kv, voice, now),
		Journey:      NewJourneyRepository(kv, now),
		Legacy:       NewLegacyRepository(kv, cipher, now),
		DailyAnswers: NewDailyAnswerRepository(kv, loc, now),
		Photos:       NewPhotoLibrary(photos),
		Store:        kv,
	}
}

var errNotConfigured = errors.New("not configured")

// StatsService derives dashboard statistics from the repositories. It holds
// no state; every call recomputes from source records.
type StatsService struct {
	repos *Repositories
	now   Clock
}

func NewStatsService(repos *Repositories, now Clock) *StatsService {
	if now == nil {
		now = systemClock
	}
	return &StatsService{repos: repos, now: now}
}

// collect runs one feature's query. A failure is logged and recorded as a
// warning; the caller keeps the zero value for that feature.
func collect(warnings *[]string, feature string, fn func() error) {
	if err := fn(); err != nil {
		log.Printf("[Stats] feature %s unavailable: %v", feature, err)
		*warnings = append(*warnings, feature)
	}
}

// Snapshot never fails: unreadable features count as zero and are listed in
// Warnings.
func (s *StatsService) Snapshot(ctx context.Context) models.StatsSnapshot {
	snap := models.StatsSnapshot{GeneratedAt: s.now().UTC()}
	r := s.repos
	w := &snap.Warnings

	collect(w, models.FeatureCapsules, func() (err error) {
		if r.Capsules == nil {
			return errNotConfigured
		}
		snap.Capsules, err = r.Capsules.Counts(ctx)
		return err
	})
	collect(w, models.FeatureGoals, func() (err error) {
		if r.Goals == nil {
			return errNotConfigured
		}
		snap.Goals, err = r.Goals.Counts(ctx)
		return err
	})
	collect(w, models.FeatureVoiceDiary, func() (err error) {
		if r.VoiceDiary == nil {
			return errNotConfigured
		}
		snap.VoiceDiary, err = r.VoiceDiary.Counts(ctx)
		return err
	})
	collect(w, models.FeatureJourney, func() (err error) {
		if r.Journey == nil {
			return errNotConfigured
		}
		snap.Journey, err = r.Journey.Counts(ctx)
		return err
	})
	collect(w, models.FeatureLegacy, func() (err error) {
		if r.Legacy == nil {
			return errNotConfigured
		}
		snap.Legacy, err = r.Legacy.Counts(ctx)
		return err
	})
	collect(w, models.FeaturePhotos, func() (err error) {
		if r.Photos == nil {
			return errNotConfigured
		}
		snap.Photos, err = r.Photos.Count(ctx)
		return err
	})
	collect(w, models.FeatureDaily, func() error {
		if r.DailyAnswers == nil {
			return errNotConfigured
		}
		dates, err := r.DailyAnswers.Dates(ctx)
		if err != nil {
			return err
		}
		snap.DailyAnswers = len(dates)
		snap.Streak = Streak(r.DailyAnswers.Today(), dates)
		return nil
	})
	collect(w, models.FeatureStorage, func() error {
		if r.Store == nil {
			return errNotConfigured
		}
		info, err := r.Store.StorageInfo(ctx)
		if err != nil {
			return err
		}
		snap.Storage = models.StorageUsage(info)
		return nil
	})

	snap.Features = featureSummaries(snap)
	for _, f := range snap.Features {
		if f.Count > 0 {
			snap.HasAnyData = true
			break
		}
	}
	return snap
}

func featureSummaries(s models.StatsSnapshot) []models.FeatureSummary {
	return []models.FeatureSummary{
		{
			Feature:  models.FeatureDaily,
			Count:    s.DailyAnswers,
			Subtitle: fmt.Sprintf("%d-day streak", s.Streak),
		},
		{
			Feature:  models.FeatureCapsules,
			Count:    s.Capsules.Total,
			Subtitle: fmt.Sprintf("%d locked, %d opened", s.Capsules.Locked, s.Capsules.Unlocked),
		},
		{
			Feature:  models.FeatureGoals,
			Count:    s.Goals.Total,
			Subtitle: fmt.Sprintf("%d of %d achieved", s.Goals.Achieved, s.Goals.Total),
		},
		{
			Feature:  models.FeatureVoiceDiary,
			Count:    s.VoiceDiary.Total,
			Subtitle: plural(s.VoiceDiary.Total, "recording", "recordings"),
		},
		{
			Feature:  models.FeatureJourney,
			Count:    s.Journey.Total,
			Subtitle: fmt.Sprintf("%d upcoming", s.Journey.Upcoming),
		},
		{
			Feature:  models.FeatureLegacy,
			Count:    s.Legacy.Total,
			Subtitle: fmt.Sprintf("%d waiting to unlock", s.Legacy.Locked),
		},
		{
			Feature:  models.FeaturePhotos,
			Count:    s.Photos,
			Subtitle: plural(s.Photos, "photo", "photos"),
		},
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
