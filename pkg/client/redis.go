package client

import (
	"Social/config"
	"Social/pkg/log"
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRedisClient 仅在缓存后端为 redis 时建立连接
func NewRedisClient(conf *config.Config) *redis.Client {
	if conf.Cache.Backend != config.CacheBackendRedis || conf.Redis == nil {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     conf.Redis.Addr(),
		Password: conf.Redis.Password,
		Username: conf.Redis.Username,
		DB:       conf.Redis.Database,
	})
	if _, err := client.Ping(context.TODO()).Result(); err != nil {
		log.L.Fatal("connect redis error", zap.Error(err))
	}
	log.L.Info("redis client success")
	return client
}
