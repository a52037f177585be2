package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/AnshRaj112/keepsake-backend/internal/storage"
)

var errBoom = errors.New("disk on fire")

// flakyStore fails every operation on the keys listed in broken and
// delegates the rest to an in-memory store.
type flakyStore struct {
	*storage.MemoryStore
	broken   map[string]bool
	failInfo bool
}

func newFlakyStore(broken ...string) *flakyStore {
	s := &flakyStore{MemoryStore: storage.NewMemoryStore("test:", 5<<20), broken: map[string]bool{}}
	for _, k := range broken {
		s.broken[k] = true
	}
	return s
}

func (s *flakyStore) Get(ctx context.Context, key string, dest any) (bool, error) {
	if s.broken[key] {
		return false, errBoom
	}
	return s.MemoryStore.Get(ctx, key, dest)
}

func (s *flakyStore) Set(ctx context.Context, key string, value any) error {
	if s.broken[key] {
		return errBoom
	}
	return s.MemoryStore.Set(ctx, key, value)
}

func (s *flakyStore) StorageInfo(ctx context.Context) (storage.StorageInfo, error) {
	if s.failInfo {
		return storage.StorageInfo{}, errBoom
	}
	return s.MemoryStore.StorageInfo(ctx)
}

// fakeClock is a movable Clock.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock(t time.Time) *fakeClock { return &fakeClock{t: t} }

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

var epoch = time.Date(2024, time.March, 10, 9, 30, 0, 0, time.UTC)

func newTestStore() *storage.MemoryStore {
	return storage.NewMemoryStore("test:", 5<<20)
}
