package store

import (
	"context"
	"errors"

	"bizplan_forecast/pkg/models"
)

// TieredCache reads through a fast front cache to a shared back cache and
// backfills the front on a back hit. Writes go to both.
type TieredCache struct {
	front ResultCache
	back  ResultCache
}

func NewTieredCache(front, back ResultCache) *TieredCache {
	return &TieredCache{front: front, back: back}
}

func (c *TieredCache) Get(ctx context.Context, key string) (*models.OperatingResults, error) {
	res, err := c.front.Get(ctx, key)
	if err == nil {
		return res, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		return nil, err
	}

	res, err = c.back.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	_ = c.front.Set(ctx, key, res)
	return res, nil
}

func (c *TieredCache) Set(ctx context.Context, key string, res *models.OperatingResults) error {
	if err := c.front.Set(ctx, key, res); err != nil {
		return err
	}
	return c.back.Set(ctx, key, res)
}
