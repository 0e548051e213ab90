package store

import (
	"context"
	"fmt"

	"bizplan_forecast/pkg/config"
)

// Open builds the cache selected by cfg.Backend. Shared backends get an
// in-process LRU in front. The returned close func releases connections.
func Open(ctx context.Context, cfg config.CacheConfig) (ResultCache, func(), error) {
	noop := func() {}

	switch cfg.Backend {
	case config.CacheBackendNone:
		return NopCache{}, noop, nil

	case config.CacheBackendMemory:
		mem, err := NewMemoryCache(cfg.Size)
		if err != nil {
			return nil, noop, err
		}
		return mem, noop, nil

	case config.CacheBackendRedis:
		rc := NewRedisCache(RedisOptions{
			Address:  cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.KeyPrefix,
			TTL:      cfg.TTL,
		})
		if err := rc.Ping(ctx); err != nil {
			_ = rc.Close()
			return nil, noop, err
		}
		return withFront(cfg, rc, func() { _ = rc.Close() })

	case config.CacheBackendPostgres:
		pool, err := OpenPool(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, noop, err
		}
		pc := NewPostgresCache(pool, cfg.TTL)
		if err := pc.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, noop, err
		}
		return withFront(cfg, pc, pool.Close)
	}

	return nil, noop, fmt.Errorf("unknown cache backend %q", cfg.Backend)
}

func withFront(cfg config.CacheConfig, back ResultCache, closeFn func()) (ResultCache, func(), error) {
	if cfg.Size <= 0 {
		return back, closeFn, nil
	}
	front, err := NewMemoryCache(cfg.Size)
	if err != nil {
		closeFn()
		return nil, func() {}, err
	}
	return NewTieredCache(front, back), closeFn, nil
}
