package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/AnshRaj112/keepsake-backend/internal/models"
	"github.com/AnshRaj112/keepsake-backend/internal/storage"
)

const maxAnswerLength = 2000

// DailyAnswerRepository keeps one check-in per calendar day, stored as a map
// keyed by date. The streak is derived from its keys.
type DailyAnswerRepository struct {
	mu  sync.Mutex
	kv  storage.KeyValueStore
	loc *time.Location
	now Clock
}

func NewDailyAnswerRepository(kv storage.KeyValueStore, loc *time.Location, now Clock) *DailyAnswerRepository {
	if now == nil {
		now = systemClock
	}
	if loc == nil {
		loc = time.Local
	}
	return &DailyAnswerRepository{kv: kv, loc: loc, now: now}
}

// Today is the current calendar day in the configured zone.
func (r *DailyAnswerRepository) Today() time.Time {
	return r.now().In(r.loc)
}

func (r *DailyAnswerRepository) load(ctx context.Context) (map[string]models.DailyAnswer, error) {
	answers := map[string]models.DailyAnswer{}
	if _, err := r.kv.Get(ctx, keyDailyAnswers, &answers); err != nil {
		return nil, unavailable("read", keyDailyAnswers, err)
	}
	if answers == nil {
		answers = map[string]models.DailyAnswer{}
	}
	return answers, nil
}

func (r *DailyAnswerRepository) all(ctx context.Context) (map[string]models.DailyAnswer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

// List returns answers newest day first.
func (r *DailyAnswerRepository) List(ctx context.Context) ([]models.DailyAnswer, error) {
	answers, err := r.all(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.DailyAnswer, 0, len(answers))
	for _, a := range answers {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

// Dates returns every answered day.
func (r *DailyAnswerRepository) Dates(ctx context.Context) ([]string, error) {
	answers, err := r.all(ctx)
	if err != nil {
		return nil, err
	}
	dates := make([]string, 0, len(answers))
	for d := range answers {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates, nil
}

func (r *DailyAnswerRepository) Get(ctx context.Context, date string) (models.DailyAnswer, error) {
	key, ok := dayKey(date, r.loc)
	if !ok {
		return models.DailyAnswer{}, invalid("date", "must be YYYY-MM-DD")
	}
	answers, err := r.all(ctx)
	if err != nil {
		return models.DailyAnswer{}, err
	}
	a, ok := answers[key]
	if !ok {
		return models.DailyAnswer{}, fmt.Errorf("daily answer %s: %w", key, ErrNotFound)
	}
	return a, nil
}

// Record stores the check-in for date (today when empty), replacing any
// earlier answer for that day. Future days are rejected.
func (r *DailyAnswerRepository) Record(ctx context.Context, date, prompt, answer, mood string) (models.DailyAnswer, error) {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return models.DailyAnswer{}, invalid("answer", "is required")
	}
	if len(answer) > maxAnswerLength {
		return models.DailyAnswer{}, invalid("answer", "is too long")
	}
	mood = strings.ToLower(strings.TrimSpace(mood))
	if !models.IsValidMood(mood) {
		return models.DailyAnswer{}, invalid("mood", "is not a known mood")
	}

	today := r.Today()
	key := today.Format(models.DateLayout)
	if strings.TrimSpace(date) != "" {
		k, ok := dayKey(date, r.loc)
		if !ok {
			return models.DailyAnswer{}, invalid("date", "must be YYYY-MM-DD")
		}
		if k > key {
			return models.DailyAnswer{}, invalid("date", "must not be in the future")
		}
		key = k
	}

	rec := models.DailyAnswer{
		Date:       key,
		Prompt:     strings.TrimSpace(prompt),
		Answer:     answer,
		Mood:       mood,
		AnsweredAt: r.now().UTC(),
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	answers, err := r.load(ctx)
	if err != nil {
		return models.DailyAnswer{}, err
	}
	answers[key] = rec
	if err := r.kv.Set(ctx, keyDailyAnswers, answers); err != nil {
		return models.DailyAnswer{}, unavailable("write", keyDailyAnswers, err)
	}
	return rec, nil
}

// Delete removes the answer for date; unknown days are a no-op.
func (r *DailyAnswerRepository) Delete(ctx context.Context, date string) error {
	key, ok := dayKey(date, r.loc)
	if !ok {
		return invalid("date", "must be YYYY-MM-DD")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	answers, err := r.load(ctx)
	if err != nil {
		return err
	}
	if _, ok := answers[key]; !ok {
		return nil
	}
	delete(answers, key)
	if err := r.kv.Set(ctx, keyDailyAnswers, answers); err != nil {
		return unavailable("write", keyDailyAnswers, err)
	}
	return nil
}

// Streak is the current run of answered days ending today.
func (r *DailyAnswerRepository) Streak(ctx context.Context) (int, error) {
	dates, err := r.Dates(ctx)
	if err != nil {
		return 0, err
	}
	return Streak(r.Today(), dates), nil
}

func (r *DailyAnswerRepository) Counts(ctx context.Context) (models.DailyAnswerCounts, error) {
	answers, err := r.all(ctx)
	if err != nil {
		return models.DailyAnswerCounts{}, err
	}
	return models.DailyAnswerCounts{Total: len(answers)}, nil
}
