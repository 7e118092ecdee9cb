package cache

import (
	"Social/config"
	"context"
	"errors"

	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
)

// 列表接口的命名缓存, 定时任务会一起清空
const (
	PostsWithComments = "PostsWithComments"
	AllPostsDto       = "AllPostsDto"
	AllComments       = "AllComments"
	AllCommentsDto    = "AllCommentsDto"
)

var Names = []string{PostsWithComments, AllPostsDto, AllComments, AllCommentsDto}

var ErrUnknownCache = errors.New("unknown cache name")

var ProviderSet = wire.NewSet(
	NewStore,
	NewEvictor,
)

// Store 命名缓存存储, value 为序列化后的整页结果
type Store interface {
	Get(ctx context.Context, name, key string) ([]byte, bool, error)
	Set(ctx context.Context, name, key string, value []byte) error
	Clear(ctx context.Context, names ...string) error
}

// NewStore 按配置选择内存或 redis 后端
func NewStore(conf *config.Config, rdb *redis.Client) Store {
	if conf.Cache.Backend == config.CacheBackendRedis && rdb != nil {
		return NewRedisStore(rdb, Names...)
	}
	return NewMemoryStore(Names...)
}
