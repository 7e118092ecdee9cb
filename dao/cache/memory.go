package cache

import (
	"context"
	"fmt"

	cmap "github.com/orcaman/concurrent-map/v2"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore 进程内缓存, 每个命名缓存一个并发 map
type MemoryStore struct {
	caches map[string]cmap.ConcurrentMap[string, []byte]
}

func NewMemoryStore(names ...string) *MemoryStore {
	caches := make(map[string]cmap.ConcurrentMap[string, []byte], len(names))
	for _, name := range names {
		caches[name] = cmap.New[[]byte]()
	}
	return &MemoryStore{caches: caches}
}

func (m *MemoryStore) Get(_ context.Context, name, key string) ([]byte, bool, error) {
	c, ok := m.caches[name]
	if !ok {
		return nil, false, fmt.Errorf("%w: %s", ErrUnknownCache, name)
	}
	v, found := c.Get(key)
	return v, found, nil
}

func (m *MemoryStore) Set(_ context.Context, name, key string, value []byte) error {
	c, ok := m.caches[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCache, name)
	}
	c.Set(key, value)
	return nil
}

func (m *MemoryStore) Clear(_ context.Context, names ...string) error {
	for _, name := range names {
		if c, ok := m.caches[name]; ok {
			c.Clear()
		}
	}
	return nil
}

// Len 命名缓存当前条目数
func (m *MemoryStore) Len(name string) int {
	if c, ok := m.caches[name]; ok {
		return c.Count()
	}
	return 0
}
