package cache

import (
	"Social/config"
	"Social/pkg/log"
	"context"
	"time"

	"go.uber.org/zap"
)

// Evictor 固定间隔无条件清空全部命名缓存, 与写操作无关
type Evictor struct {
	Store    Store
	Names    []string
	Interval time.Duration
}

func NewEvictor(store Store, conf *config.Cache) *Evictor {
	return &Evictor{
		Store:    store,
		Names:    Names,
		Interval: conf.EvictInterval,
	}
}

func (e *Evictor) EvictAll(ctx context.Context) error {
	if err := e.Store.Clear(ctx, e.Names...); err != nil {
		return err
	}
	sweeps.Inc()
	return nil
}

// Run 阻塞运行直到 ctx 结束
func (e *Evictor) Run(ctx context.Context) error {
	ticker := time.NewTicker(e.Interval)
	defer ticker.Stop()

	log.L.Info("cache evictor started", zap.Duration("interval", e.Interval))
	for {
		select {
		case <-ctx.Done():
			log.L.Info("cache evictor stopped")
			return nil
		case <-ticker.C:
			if err := e.EvictAll(ctx); err != nil {
				log.L.Error("evict caches failed", zap.Error(err))
				continue
			}
			log.L.Debug("caches evicted", zap.Strings("caches", e.Names))
		}
	}
}
