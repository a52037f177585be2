package services

import (
	"context"
	"strings"
	"time"

	"github.com/AnshRaj112/keepsake-backend/internal/models"
	"github.com/AnshRaj112/keepsake-backend/internal/storage"
)

const maxMilestoneLength = 1000

type JourneyRepository struct {
	list *listRepository[models.JourneyMilestone]
	now  Clock
}

func NewJourneyRepository(kv storage.KeyValueStore, now Clock) *JourneyRepository {
	if now == nil {
		now = systemClock
	}
	return &JourneyRepository{list: newListRepository[models.JourneyMilestone](kv, keyJourney), now: now}
}

func (r *JourneyRepository) List(ctx context.Context) ([]models.JourneyMilestone, error) {
	return r.list.list(ctx)
}

func (r *JourneyRepository) Find(ctx context.Context, id string) (models.JourneyMilestone, error) {
	return r.list.find(ctx, id)
}

func validateMilestone(description string) (string, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return "", invalid("description", "is required")
	}
	if len(description) > maxMilestoneLength {
		return "", invalid("description", "is too long")
	}
	return description, nil
}

func (r *JourneyRepository) Create(ctx context.Context, description string, date time.Time) (models.JourneyMilestone, error) {
	description, err := validateMilestone(description)
	if err != nil {
		return models.JourneyMilestone{}, err
	}
	if date.IsZero() {
		return models.JourneyMilestone{}, invalid("date", "is required")
	}
	now := r.now().UTC()
	return r.list.insert(ctx, func(id string) models.JourneyMilestone {
		return models.JourneyMilestone{ID: id, Description: description, Date: date.UTC(), CreatedAt: now}
	})
}

func (r *JourneyRepository) Update(ctx context.Context, id string, patch models.JourneyPatch) (models.JourneyMilestone, error) {
	var description string
	if patch.Description != nil {
		d, err := validateMilestone(*patch.Description)
		if err != nil {
			return models.JourneyMilestone{}, err
		}
		description = d
	}
	if patch.Date != nil && patch.Date.IsZero() {
		return models.JourneyMilestone{}, invalid("date", "is required")
	}
	return r.list.update(ctx, id, func(m *models.JourneyMilestone) error {
		if patch.Description != nil {
			m.Description = description
		}
		if patch.Date != nil {
			m.Date = patch.Date.UTC()
		}
		return nil
	})
}

func (r *JourneyRepository) Delete(ctx context.Context, id string) error {
	_, _, err := r.list.remove(ctx, id)
	return err
}

func (r *JourneyRepository) Counts(ctx context.Context) (models.JourneyCounts, error) {
	items, err := r.List(ctx)
	if err != nil {
		return models.JourneyCounts{}, err
	}
	now := r.now()
	counts := models.JourneyCounts{Total: len(items)}
	for _, m := range items {
		if m.Date.After(now) {
			counts.Upcoming++
		}
	}
	return counts, nil
}
