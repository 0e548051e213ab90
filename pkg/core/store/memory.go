package store

import (
	"context"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"bizplan_forecast/pkg/models"
)

// MemoryCache is an in-process LRU of projection results.
// Entries are shared pointers; callers must not mutate cached results.
type MemoryCache struct {
	entries *lru.Cache[string, *models.OperatingResults]
}

func NewMemoryCache(size int) (*MemoryCache, error) {
	entries, err := lru.New[string, *models.OperatingResults](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create lru cache: %w", err)
	}
	return &MemoryCache{entries: entries}, nil
}

func (c *MemoryCache) Get(_ context.Context, key string) (*models.OperatingResults, error) {
	res, ok := c.entries.Get(key)
	if !ok {
		return nil, ErrCacheMiss
	}
	return res, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, res *models.OperatingResults) error {
	c.entries.Add(key, res)
	return nil
}

// Len is the number of cached results.
func (c *MemoryCache) Len() int {
	return c.entries.Len()
}
