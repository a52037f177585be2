package services

import (
	"context"
	"strings"
	"time"

	"github.com/AnshRaj112/keepsake-backend/internal/models"
	"github.com/AnshRaj112/keepsake-backend/internal/storage"
)

const maxCapsuleLength = 10000

// CapsuleRepository owns time capsules. Capsules are sealed on creation and
// can only be deleted afterwards.
type CapsuleRepository struct {
	list *listRepository[models.TimeCapsule]
	now  Clock
}

func NewCapsuleRepository(kv storage.KeyValueStore, now Clock) *CapsuleRepository {
	if now == nil {
		now = systemClock
	}
	return &CapsuleRepository{list: newListRepository[models.TimeCapsule](kv, keyCapsules), now: now}
}

func (r *CapsuleRepository) List(ctx context.Context) ([]models.TimeCapsule, error) {
	return r.list.list(ctx)
}

func (r *CapsuleRepository) Find(ctx context.Context, id string) (models.TimeCapsule, error) {
	return r.list.find(ctx, id)
}

// Views returns every capsule through the lock gate.
func (r *CapsuleRepository) Views(ctx context.Context) ([]models.CapsuleView, error) {
	items, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	now := r.now()
	views := make([]models.CapsuleView, 0, len(items))
	for _, c := range items {
		views = append(views, capsuleView(c, now))
	}
	return views, nil
}

// View returns one capsule through the lock gate.
func (r *CapsuleRepository) View(ctx context.Context, id string) (models.CapsuleView, error) {
	c, err := r.Find(ctx, id)
	if err != nil {
		return models.CapsuleView{}, err
	}
	return capsuleView(c, r.now()), nil
}

func capsuleView(c models.TimeCapsule, now time.Time) models.CapsuleView {
	v := models.CapsuleView{TimeCapsule: c, Locked: c.Locked(now)}
	if v.Locked {
		v.Content = ""
	}
	return v
}

// Create seals a new capsule that stays locked until unlockAt.
func (r *CapsuleRepository) Create(ctx context.Context, content string, unlockAt time.Time) (models.TimeCapsule, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return models.TimeCapsule{}, invalid("content", "is required")
	}
	if len(content) > maxCapsuleLength {
		return models.TimeCapsule{}, invalid("content", "is too long")
	}
	now := r.now().UTC()
	if unlockAt.IsZero() || !unlockAt.After(now) {
		return models.TimeCapsule{}, invalid("unlock_at", "must be in the future")
	}
	return r.list.insert(ctx, func(id string) models.TimeCapsule {
		return models.TimeCapsule{
			ID:        id,
			Content:   content,
			UnlockAt:  unlockAt.UTC(),
			CreatedAt: now,
		}
	})
}

func (r *CapsuleRepository) Delete(ctx context.Context, id string) error {
	_, _, err := r.list.remove(ctx, id)
	return err
}

func (r *CapsuleRepository) Counts(ctx context.Context) (models.CapsuleCounts, error) {
	items, err := r.List(ctx)
	if err != nil {
		return models.CapsuleCounts{}, err
	}
	now := r.now()
	counts := models.CapsuleCounts{Total: len(items)}
	for _, c := range items {
		if c.Locked(now) {
			counts.Locked++
		} else {
			counts.Unlocked++
		}
	}
	return counts, nil
}
