package store

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bizplan_forecast/pkg/config"
	"bizplan_forecast/pkg/models"
)

func sampleResults() *models.OperatingResults {
	return &models.OperatingResults{
		Years: []models.YearlyResults{{Year: 1, Turnover: 1000, CashFlow: 200}},
		Summary: models.Summary{
			NPV:            -50,
			Payback:        nil,
			BreakEvenPoint: models.Unreachable(),
			CruiseYear:     1,
		},
		LoanRepayment: []models.LoanRepaymentRow{},
	}
}

func TestFingerprint(t *testing.T) {
	plan := models.DemoPlan()

	a, err := Fingerprint(plan)
	require.NoError(t, err)
	assert.Len(t, a, 64)

	edited := plan
	edited.Narrative.Conclusion = "new text"
	b, err := Fingerprint(edited)
	require.NoError(t, err)
	assert.Equal(t, a, b, "narrative must not change the fingerprint")

	edited.TurnoverGrowthRate = 20
	c, err := Fingerprint(edited)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)

	// caller's narrative untouched
	assert.NotEmpty(t, plan.Narrative.Strengths)
}

func TestMemoryCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewMemoryCache(2)
	require.NoError(t, err)

	_, err = c.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrCacheMiss)

	res := sampleResults()
	require.NoError(t, c.Set(ctx, "a", res))
	require.NoError(t, c.Set(ctx, "b", res))
	require.NoError(t, c.Set(ctx, "c", res))
	assert.Equal(t, 2, c.Len())

	_, err = c.Get(ctx, "a")
	assert.ErrorIs(t, err, ErrCacheMiss, "oldest entry evicted")

	got, err := c.Get(ctx, "c")
	require.NoError(t, err)
	assert.Same(t, res, got)
}

func TestNewMemoryCache_InvalidSize(t *testing.T) {
	_, err := NewMemoryCache(0)
	assert.Error(t, err)
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	c := NewRedisCache(RedisOptions{Address: mr.Addr(), Prefix: "test:", TTL: time.Minute})
	t.Cleanup(func() { _ = c.Close() })
	require.NoError(t, c.Ping(ctx))

	_, err := c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, c.Set(ctx, "k", sampleResults()))
	assert.True(t, mr.Exists("test:k"))

	got, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 1000.0, got.Years[0].Turnover)
	assert.Nil(t, got.Summary.Payback)
	assert.False(t, got.Summary.BreakEvenPoint.Defined())

	mr.FastForward(2 * time.Minute)
	_, err = c.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrCacheMiss)
}

func TestRedisCache_CorruptEntry(t *testing.T) {
	mr := miniredis.RunT(t)
	require.NoError(t, mr.Set("k", "{not json"))

	c := NewRedisCache(RedisOptions{Address: mr.Addr()})
	t.Cleanup(func() { _ = c.Close() })

	_, err := c.Get(context.Background(), "k")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrCacheMiss))
}

func TestTieredCache_Backfill(t *testing.T) {
	ctx := context.Background()
	front, err := NewMemoryCache(4)
	require.NoError(t, err)
	back, err := NewMemoryCache(4)
	require.NoError(t, err)

	require.NoError(t, back.Set(ctx, "k", sampleResults()))
	tc := NewTieredCache(front, back)

	_, err = tc.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 1, front.Len())

	_, err = tc.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, tc.Set(ctx, "n", sampleResults()))
	assert.Equal(t, 2, back.Len())
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	c, closeFn, err := Open(ctx, config.CacheConfig{Backend: config.CacheBackendNone})
	require.NoError(t, err)
	closeFn()
	assert.IsType(t, NopCache{}, c)

	c, closeFn, err = Open(ctx, config.CacheConfig{Backend: config.CacheBackendMemory, Size: 8})
	require.NoError(t, err)
	closeFn()
	assert.IsType(t, &MemoryCache{}, c)

	mr := miniredis.RunT(t)
	c, closeFn, err = Open(ctx, config.CacheConfig{
		Backend: config.CacheBackendRedis,
		Size:    8,
		Redis:   config.RedisConfig{Address: mr.Addr()},
	})
	require.NoError(t, err)
	defer closeFn()
	assert.IsType(t, &TieredCache{}, c)

	_, _, err = Open(ctx, config.CacheConfig{Backend: "memcached"})
	assert.Error(t, err)
}

func TestPostgresCache(t *testing.T) {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}
	ctx := context.Background()

	pool, err := OpenPool(ctx, dbURL)
	require.NoError(t, err)
	defer pool.Close()

	c := NewPostgresCache(pool, time.Hour)
	require.NoError(t, c.EnsureSchema(ctx))

	key := "test-" + time.Now().Format(time.RFC3339Nano)
	_, err = c.Get(ctx, key)
	assert.ErrorIs(t, err, ErrCacheMiss)

	require.NoError(t, c.Set(ctx, key, sampleResults()))
	got, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, -50.0, got.Summary.NPV)

	_, err = pool.Exec(ctx, "DELETE FROM projection_cache WHERE fingerprint = $1", key)
	require.NoError(t, err)
}
