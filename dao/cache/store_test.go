package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"Social/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisStore(rdb, Names...), mr
}

func TestStores(t *testing.T) {
	redisStore, _ := newRedisStore(t)
	stores := map[string]Store{
		"memory": NewMemoryStore(Names...),
		"redis":  redisStore,
	}
	for name, store := range stores {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			_, found, err := store.Get(ctx, AllPostsDto, "0:10:DESC")
			require.NoError(t, err)
			assert.False(t, found)

			require.NoError(t, store.Set(ctx, AllPostsDto, "0:10:DESC", []byte(`[1]`)))
			require.NoError(t, store.Set(ctx, AllComments, "0:10:DESC", []byte(`[2]`)))

			v, found, err := store.Get(ctx, AllPostsDto, "0:10:DESC")
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, `[1]`, string(v))

			_, _, err = store.Get(ctx, "Unknown", "k")
			assert.True(t, errors.Is(err, ErrUnknownCache))
			assert.True(t, errors.Is(store.Set(ctx, "Unknown", "k", nil), ErrUnknownCache))

			require.NoError(t, store.Clear(ctx, Names...))
			for _, cacheName := range []string{AllPostsDto, AllComments} {
				_, found, err = store.Get(ctx, cacheName, "0:10:DESC")
				require.NoError(t, err)
				assert.False(t, found, cacheName)
			}
		})
	}
}

func TestNewStore(t *testing.T) {
	conf := &config.Config{Cache: &config.Cache{Backend: config.CacheBackendMemory}}
	assert.IsType(t, &MemoryStore{}, NewStore(conf, nil))

	conf.Cache.Backend = config.CacheBackendRedis
	assert.IsType(t, &MemoryStore{}, NewStore(conf, nil))

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()
	assert.IsType(t, &RedisStore{}, NewStore(conf, rdb))
}

func TestRemember(t *testing.T) {
	store := NewMemoryStore(Names...)
	ctx := context.Background()
	calls := 0
	load := func(context.Context) ([]int, error) {
		calls++
		return []int{calls}, nil
	}

	v, err := Remember(ctx, store, AllPostsDto, "k", load)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, v)

	v, err = Remember(ctx, store, AllPostsDto, "k", load)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, v)
	assert.Equal(t, 1, calls)

	v, err = Remember(ctx, store, AllPostsDto, "other", load)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, v)

	require.NoError(t, store.Clear(ctx, AllPostsDto))
	v, err = Remember(ctx, store, AllPostsDto, "k", load)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, v)
}

func TestRememberLoadError(t *testing.T) {
	store := NewMemoryStore(Names...)
	errBoom := errors.New("boom")

	_, err := Remember(context.Background(), store, AllComments, "k", func(context.Context) ([]int, error) {
		return nil, errBoom
	})
	assert.ErrorIs(t, err, errBoom)
	assert.Zero(t, store.Len(AllComments))
}

func TestRememberStoreFailure(t *testing.T) {
	store, mr := newRedisStore(t)
	mr.Close()

	v, err := Remember(context.Background(), store, AllComments, "k", func(context.Context) (string, error) {
		return "fresh", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", v)
}

func TestEvictor(t *testing.T) {
	store := NewMemoryStore(Names...)
	ctx := context.Background()
	for _, name := range Names {
		require.NoError(t, store.Set(ctx, name, "k", []byte(`1`)))
	}

	e := NewEvictor(store, &config.Cache{EvictInterval: 10 * time.Millisecond})
	runCtx, cancel := context.WithCancel(ctx)
	done := make(chan error, 1)
	go func() { done <- e.Run(runCtx) }()

	assert.Eventually(t, func() bool {
		for _, name := range Names {
			if store.Len(name) != 0 {
				return false
			}
		}
		return true
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("evictor did not stop")
	}
}

func TestRememberMetrics(t *testing.T) {
	store := NewMemoryStore(Names...)
	ctx := context.Background()
	hits := lookups.WithLabelValues(AllCommentsDto, "hit")
	misses := lookups.WithLabelValues(AllCommentsDto, "miss")
	hitsBefore, missesBefore := testutil.ToFloat64(hits), testutil.ToFloat64(misses)

	load := func(context.Context) (int, error) { return 7, nil }
	for i := 0; i < 3; i++ {
		_, err := Remember(ctx, store, AllCommentsDto, "m", load)
		require.NoError(t, err)
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(misses)-missesBefore)
	assert.Equal(t, 2.0, testutil.ToFloat64(hits)-hitsBefore)

	sweepsBefore := testutil.ToFloat64(sweeps)
	require.NoError(t, NewEvictor(store, &config.Cache{EvictInterval: time.Minute}).EvictAll(ctx))
	assert.Equal(t, 1.0, testutil.ToFloat64(sweeps)-sweepsBefore)
}
