package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"bizplan_forecast/pkg/models"
)

const projectionCacheSchema = `
	CREATE TABLE IF NOT EXISTS projection_cache (
		fingerprint TEXT PRIMARY KEY,
		data        JSONB NOT NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)
`

// PostgresCache keeps projection results in a JSONB table so they survive
// restarts. Entries older than ttl are treated as misses (0 disables expiry).
type PostgresCache struct {
	pool *pgxpool.Pool
	ttl  time.Duration
}

func NewPostgresCache(pool *pgxpool.Pool, ttl time.Duration) *PostgresCache {
	return &PostgresCache{pool: pool, ttl: ttl}
}

// EnsureSchema creates the cache table if it does not exist.
func (c *PostgresCache) EnsureSchema(ctx context.Context) error {
	if _, err := c.pool.Exec(ctx, projectionCacheSchema); err != nil {
		return fmt.Errorf("failed to create projection_cache: %w", err)
	}
	return nil
}

func (c *PostgresCache) Get(ctx context.Context, key string) (*models.OperatingResults, error) {
	query := `
		SELECT data, updated_at
		FROM projection_cache
		WHERE fingerprint = $1
	`
	var (
		data      []byte
		updatedAt time.Time
	)
	err := c.pool.QueryRow(ctx, query, key).Scan(&data, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read db cache: %w", err)
	}
	if c.ttl > 0 && time.Since(updatedAt) > c.ttl {
		return nil, ErrCacheMiss
	}
	return decodeResults(data)
}

func (c *PostgresCache) Set(ctx context.Context, key string, res *models.OperatingResults) error {
	data, err := encodeResults(res)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO projection_cache (fingerprint, data)
		VALUES ($1, $2)
		ON CONFLICT (fingerprint)
		DO UPDATE SET
			data = EXCLUDED.data,
			updated_at = NOW()
	`
	if _, err := c.pool.Exec(ctx, query, key, data); err != nil {
		return fmt.Errorf("failed to save to db cache: %w", err)
	}
	return nil
}
