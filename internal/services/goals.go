package services

import (
	"context"
	"strings"
	"time"

	"github.com/AnshRaj112/keepsake-backend/internal/models"
	"github.com/AnshRaj112/keepsake-backend/internal/storage"
)

const maxGoalTitleLength = 200

type GoalRepository struct {
	list *listRepository[models.Goal]
	now  Clock
}

func NewGoalRepository(kv storage.KeyValueStore, now Clock) *GoalRepository {
	if now == nil {
		now = systemClock
	}
	return &GoalRepository{list: newListRepository[models.Goal](kv, keyGoals), now: now}
}

func (r *GoalRepository) List(ctx context.Context) ([]models.Goal, error) {
	return r.list.list(ctx)
}

func (r *GoalRepository) Find(ctx context.Context, id string) (models.Goal, error) {
	return r.list.find(ctx, id)
}

func validateGoalTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", invalid("title", "is required")
	}
	if len(title) > maxGoalTitleLength {
		return "", invalid("title", "is too long")
	}
	return title, nil
}

func (r *GoalRepository) Create(ctx context.Context, title string) (models.Goal, error) {
	title, err := validateGoalTitle(title)
	if err != nil {
		return models.Goal{}, err
	}
	now := r.now().UTC()
	return r.list.insert(ctx, func(id string) models.Goal {
		return models.Goal{ID: id, Title: title, CreatedAt: now}
	})
}

// Update merges patch into the goal. AchievedAt follows the achieved flag.
func (r *GoalRepository) Update(ctx context.Context, id string, patch models.GoalPatch) (models.Goal, error) {
	var title string
	if patch.Title != nil {
		t, err := validateGoalTitle(*patch.Title)
		if err != nil {
			return models.Goal{}, err
		}
		title = t
	}
	now := r.now().UTC()
	return r.list.update(ctx, id, func(g *models.Goal) error {
		if patch.Title != nil {
			g.Title = title
		}
		if patch.Achieved != nil {
			setAchieved(g, *patch.Achieved, now)
		}
		return nil
	})
}

// Toggle flips the achieved state.
func (r *GoalRepository) Toggle(ctx context.Context, id string) (models.Goal, error) {
	now := r.now().UTC()
	return r.list.update(ctx, id, func(g *models.Goal) error {
		setAchieved(g, !g.Achieved, now)
		return nil
	})
}

func setAchieved(g *models.Goal, achieved bool, now time.Time) {
	if g.Achieved == achieved {
		return
	}
	g.Achieved = achieved
	if achieved {
		g.AchievedAt = &now
	} else {
		g.AchievedAt = nil
	}
}

func (r *GoalRepository) Delete(ctx context.Context, id string) error {
	_, _, err := r.list.remove(ctx, id)
	return err
}

func (r *GoalRepository) Counts(ctx context.Context) (models.GoalCounts, error) {
	items, err := r.List(ctx)
	if err != nil {
		return models.GoalCounts{}, err
	}
	counts := models.GoalCounts{Total: len(items)}
	for _, g := range items {
		if g.Achieved {
			counts.Achieved++
		}
	}
	return counts, nil
}
