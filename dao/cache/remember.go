package cache

import (
	"Social/pkg/log"
	"context"
	"encoding/json"

	"go.uber.org/zap"
)

// Remember 命中时直接返回缓存中的整页结果, 不访问数据库;
// 未命中时调用 load 计算并回写. 缓存读写失败只记日志, 不影响业务.
func Remember[T any](ctx context.Context, store Store, name, key string, load func(ctx context.Context) (T, error)) (T, error) {
	raw, found, err := store.Get(ctx, name, key)
	switch {
	case err != nil:
		lookups.WithLabelValues(name, "error").Inc()
		log.L.Warn("cache get failed", zap.String("cache", name), zap.String("key", key), zap.Error(err))
	case found:
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			lookups.WithLabelValues(name, "hit").Inc()
			return v, nil
		}
		lookups.WithLabelValues(name, "error").Inc()
		log.L.Warn("cache decode failed", zap.String("cache", name), zap.String("key", key))
	default:
		lookups.WithLabelValues(name, "miss").Inc()
	}

	v, err := load(ctx)
	if err != nil {
		return v, err
	}

	data, err := json.Marshal(v)
	if err != nil {
		log.L.Warn("cache encode failed", zap.String("cache", name), zap.Error(err))
		return v, nil
	}
	if err := store.Set(ctx, name, key, data); err != nil {
		log.L.Warn("cache set failed", zap.String("cache", name), zap.String("key", key), zap.Error(err))
	}
	return v, nil
}
