package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/AnshRaj112/keepsake-backend/internal/storage"
	"github.com/google/uuid"
)

// KV keys, one per feature list.
const (
	keyCapsules     = "capsules"
	keyGoals        = "goals"
	keyVoiceDiary   = "voice_diary"
	keyJourney      = "journey"
	keyLegacy       = "legacy_messages"
	keyDailyAnswers = "daily_answers"
	keyCipherSalt   = "encryption_salt"
)

// Clock returns the current time. Repositories never read the wall clock
// directly so tests can move time.
type Clock func() time.Time

func systemClock() time.Time { return time.Now() }

type entity interface {
	EntityID() string
}

// listRepository stores a feature's records as one JSON array under key,
// preserving insertion order. Counts are always derived from the list.
type listRepository[T entity] struct {
	mu  sync.Mutex
	kv  storage.KeyValueStore
	key string
}

func newListRepository[T entity](kv storage.KeyValueStore, key string) *listRepository[T] {
	return &listRepository[T]{kv: kv, key: key}
}

func (r *listRepository[T]) load(ctx context.Context) ([]T, error) {
	items := []T{}
	if _, err := r.kv.Get(ctx, r.key, &items); err != nil {
		return nil, unavailable("read", r.key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func (r *listRepository[T]) save(ctx context.Context, items []T) error {
	if err := r.kv.Set(ctx, r.key, items); err != nil {
		return unavailable("write", r.key, err)
	}
	return nil
}

func (r *listRepository[T]) list(ctx context.Context) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

func (r *listRepository[T]) find(ctx context.Context, id string) (T, error) {
	var zero T
	items, err := r.list(ctx)
	if err != nil {
		return zero, err
	}
	for _, it := range items {
		if it.EntityID() == id {
			return it, nil
		}
	}
	return zero, fmt.Errorf("%s %q: %w", r.key, id, ErrNotFound)
}

// insert assigns a fresh id through build and appends the record.
func (r *listRepository[T]) insert(ctx context.Context, build func(id string) T) (T, error) {
	var zero T
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load(ctx)
	if err != nil {
		return zero, err
	}
	id := newID(items)
	item := build(id)
	if err := r.save(ctx, append(items, item)); err != nil {
		return zero, err
	}
	return item, nil
}

// update applies mutate to the record with id and persists the list.
func (r *listRepository[T]) update(ctx context.Context, id string, mutate func(*T) error) (T, error) {
	var zero T
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load(ctx)
	if err != nil {
		return zero, err
	}
	for i := range items {
		if items[i].EntityID() != id {
			continue
		}
		updated := items[i]
		if err := mutate(&updated); err != nil {
			return zero, err
		}
		items[i] = updated
		if err := r.save(ctx, items); err != nil {
			return zero, err
		}
		return updated, nil
	}
	return zero, fmt.Errorf("%s %q: %w", r.key, id, ErrNotFound)
}

// remove deletes the record with id. Unknown ids are a no-op and cause no write.
func (r *listRepository[T]) remove(ctx context.Context, id string) (T, bool, error) {
	var zero T
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.load(ctx)
	if err != nil {
		return zero, false, err
	}
	for i := range items {
		if items[i].EntityID() != id {
			continue
		}
		removed := items[i]
		rest := append(items[:i:i], items[i+1:]...)
		if err := r.save(ctx, rest); err != nil {
			return zero, false, err
		}
		return removed, true, nil
	}
	return zero, false, nil
}

func newID[T entity](existing []T) string {
	for {
		id := uuid.NewString()
		clash := false
		for _, it := range existing {
			if it.EntityID() == id {
				clash = true
				break
			}
		}
		if !clash {
			return id
		}
	}
}
