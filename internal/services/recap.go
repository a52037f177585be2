package services

import (
	"context"
	"sort"
	"time"

	"github.com/AnshRaj112/keepsake-backend/internal/models"
)

// moodOrder breaks ties when picking the top mood.
var moodOrder = []string{models.MoodGreat, models.MoodGood, models.MoodOkay, models.MoodLow, models.MoodAwful}

// Recap summarises one calendar year in the daily answers' zone. Like
// Snapshot it never fails; unreadable features are zero and listed in Warnings.
func (s *StatsService) Recap(ctx context.Context, year int) models.YearRecap {
	loc := time.Local
	if s.repos.DailyAnswers != nil {
		loc = s.repos.DailyAnswers.loc
	}
	inYear := func(t time.Time) bool { return !t.IsZero() && t.In(loc).Year() == year }
	now := s.now()
	r := s.repos

	recap := models.YearRecap{
		Year:       year,
		Milestones: []string{},
		MoodCounts: map[string]int{},
	}
	w := &recap.Warnings

	collect(w, models.FeatureCapsules, func() error {
		if r.Capsules == nil {
			return errNotConfigured
		}
		items, err := r.Capsules.List(ctx)
		if err != nil {
			return err
		}
		for _, c := range items {
			if inYear(c.CreatedAt) {
				recap.CapsulesCreated++
			}
			if inYear(c.UnlockAt) && !c.Locked(now) {
				recap.CapsulesUnlocked++
			}
		}
		return nil
	})
	collect(w, models.FeatureGoals, func() error {
		if r.Goals == nil {
			return errNotConfigured
		}
		items, err := r.Goals.List(ctx)
		if err != nil {
			return err
		}
		for _, g := range items {
			if inYear(g.CreatedAt) {
				recap.GoalsCreated++
			}
			if g.Achieved && g.AchievedAt != nil && inYear(*g.AchievedAt) {
				recap.GoalsAchieved++
			}
		}
		return nil
	})
	collect(w, models.FeatureVoiceDiary, func() error {
		if r.VoiceDiary == nil {
			return errNotConfigured
		}
		items, err := r.VoiceDiary.List(ctx)
		if err != nil {
			return err
		}
		for _, v := range items {
			if inYear(v.CreatedAt) {
				recap.VoiceEntries++
			}
		}
		return nil
	})
	collect(w, models.FeatureJourney, func() error {
		if r.Journey == nil {
			return errNotConfigured
		}
		items, err := r.Journey.List(ctx)
		if err != nil {
			return err
		}
		var hits []models.JourneyMilestone
		for _, m := range items {
			if inYear(m.Date) {
				hits = append(hits, m)
			}
		}
		sort.SliceStable(hits, func(i, j int) bool { return hits[i].Date.Before(hits[j].Date) })
		for _, m := range hits {
			recap.Milestones = append(recap.Milestones, m.Description)
		}
		return nil
	})
	collect(w, models.FeatureLegacy, func() error {
		if r.Legacy == nil {
			return errNotConfigured
		}
		items, err := r.Legacy.List(ctx)
		if err != nil {
			return err
		}
		for _, m := range items {
			if inYear(m.CreatedAt) {
				recap.LegacySealed++
			}
		}
		return nil
	})
	collect(w, models.FeaturePhotos, func() error {
		if r.Photos == nil {
			return errNotConfigured
		}
		items, err := r.Photos.List(ctx)
		if err != nil {
			return err
		}
		for _, p := range items {
			if inYear(p.CreatedAt) {
				recap.Photos++
			}
		}
		return nil
	})
	collect(w, models.FeatureDaily, func() error {
		if r.DailyAnswers == nil {
			return errNotConfigured
		}
		answers, err := r.DailyAnswers.List(ctx)
		if err != nil {
			return err
		}
		var dates []string
		for _, a := range answers {
			t, err := time.Parse(models.DateLayout, a.Date)
			if err != nil || t.Year() != year {
				continue
			}
			dates = append(dates, a.Date)
			if a.Mood != models.MoodUnknown {
				recap.MoodCounts[a.Mood]++
			}
		}
		recap.DaysAnswered = len(dates)
		recap.LongestStreak = LongestStreak(dates)
		recap.TopMood = topMood(recap.MoodCounts)
		return nil
	})

	return recap
}

func topMood(counts map[string]int) string {
	best, bestN := "", 0
	for _, m := range moodOrder {
		if counts[m] > bestN {
			best, bestN = m, counts[m]
		}
	}
	return best
}
