package cache

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

var _ Store = (*RedisStore)(nil)

// RedisStore 每个命名缓存对应一个 hash, field 为分页 key
type RedisStore struct {
	redis *redis.Client
	names map[string]struct{}
}

func NewRedisStore(rdb *redis.Client, names ...string) *RedisStore {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return &RedisStore{redis: rdb, names: set}
}

func (r *RedisStore) cacheKey(name string) string {
	return fmt.Sprintf("cache:%s", name)
}

func (r *RedisStore) check(name string) error {
	if _, ok := r.names[name]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCache, name)
	}
	return nil
}

func (r *RedisStore) Get(ctx context.Context, name, key string) ([]byte, bool, error) {
	if err := r.check(name); err != nil {
		return nil, false, err
	}
	val, err := r.redis.HGet(ctx, r.cacheKey(name), key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return val, true, nil
}

func (r *RedisStore) Set(ctx context.Context, name, key string, value []byte) error {
	if err := r.check(name); err != nil {
		return err
	}
	return r.redis.HSet(ctx, r.cacheKey(name), key, value).Err()
}

// Clear 一次 DEL 删除全部命名缓存
func (r *RedisStore) Clear(ctx context.Context, names ...string) error {
	if len(names) == 0 {
		return nil
	}
	keys := make([]string, 0, len(names))
	for _, name := range names {
		keys = append(keys, r.cacheKey(name))
	}
	return r.redis.Del(ctx, keys...).Err()
}
