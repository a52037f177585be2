package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each key as a JSON string. Keys carry no TTL: unlike a
// cache, these are the source records.
type RedisStore struct {
	client *redis.Client
	prefix string
	quota  int64
}

func NewRedisStore(client *redis.Client, prefix string, quota int64) *RedisStore {
	return &RedisStore{client: client, prefix: prefix, quota: quota}
}

func (s *RedisStore) Get(ctx context.Context, key string, dest any) (bool, error) {
	val, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis get %s: %w", key, err)
	}
	if err := json.Unmarshal(val, dest); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.prefix+key, data, 0).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// StorageInfo sums key and value lengths of every key under the prefix.
func (s *RedisStore) StorageInfo(ctx context.Context) (StorageInfo, error) {
	var (
		cursor uint64
		keys   []string
	)
	for {
		batch, next, err := s.client.Scan(ctx, cursor, s.prefix+"*", 100).Result()
		if err != nil {
			return StorageInfo{}, fmt.Errorf("redis scan: %w", err)
		}
		keys = append(keys, batch...)
		cursor = next
		if cursor == 0 {
			break
		}
	}
	if len(keys) == 0 {
		return NewStorageInfo(0, s.quota), nil
	}

	pipe := s.client.Pipeline()
	lens := make([]*redis.IntCmd, len(keys))
	for i, k := range keys {
		lens[i] = pipe.StrLen(ctx, k)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return StorageInfo{}, fmt.Errorf("redis strlen: %w", err)
	}

	var used int64
	for i, k := range keys {
		used += int64(len(k)) + lens[i].Val()
	}
	return NewStorageInfo(used, s.quota), nil
}
