package config

import "time"

const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// Cache 列表缓存配置
type Cache struct {
	Backend       string        `json:"backend" yaml:"backend"`
	EvictInterval time.Duration `json:"evict_interval" yaml:"evict_interval"`
}

func ProvideCacheConfig(cfg *Config) *Cache {
	return cfg.Cache
}
