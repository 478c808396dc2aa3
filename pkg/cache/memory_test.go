package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

func TestMemoryCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()
	defer mc.Close()

	in := []point{{"2024-01-01", 4.1}, {"2024-01-02", 4.2}}
	require.NoError(t, mc.Set(ctx, "series:DGS10", in, time.Hour))

	var out []point
	require.NoError(t, mc.Get(ctx, "series:DGS10", &out))
	assert.Equal(t, in, out)

	ok, err := mc.Exists(ctx, "series:DGS10")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, mc.Delete(ctx, "series:DGS10"))
	assert.ErrorIs(t, mc.Get(ctx, "series:DGS10", &out), ErrCacheMiss)
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache()
	defer mc.Close()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mc.now = func() time.Time { return now }

	require.NoError(t, mc.Set(ctx, "k", 1, time.Minute))
	now = now.Add(2 * time.Minute)

	var v int
	assert.ErrorIs(t, mc.Get(ctx, "k", &v), ErrCacheMiss)
}

func TestMemoryCacheEvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache(WithMemoryMaxSize(2))
	defer mc.Close()

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mc.now = func() time.Time { return now }

	require.NoError(t, mc.Set(ctx, "a", 1, 0))
	now = now.Add(time.Second)
	require.NoError(t, mc.Set(ctx, "b", 2, 0))
	now = now.Add(time.Second)

	var v int
	require.NoError(t, mc.Get(ctx, "a", &v)) // a is now newer than b
	now = now.Add(time.Second)
	require.NoError(t, mc.Set(ctx, "c", 3, 0))

	assert.ErrorIs(t, mc.Get(ctx, "b", &v), ErrCacheMiss)
	assert.NoError(t, mc.Get(ctx, "a", &v))
	assert.NoError(t, mc.Get(ctx, "c", &v))
}

func TestLayeredCacheFillsL1FromRemote(t *testing.T) {
	ctx := context.Background()
	remote := NewMemoryCache()
	lc := NewLayeredCache(remote, time.Minute)
	defer lc.Close()

	require.NoError(t, remote.Set(ctx, "k", "v", time.Hour))

	var got string
	require.NoError(t, lc.Get(ctx, "k", &got))
	assert.Equal(t, "v", got)

	require.NoError(t, remote.Delete(ctx, "k"))
	got = ""
	require.NoError(t, lc.Get(ctx, "k", &got), "served from L1")
	assert.Equal(t, "v", got)
}

func TestGenerateKeyWithParams(t *testing.T) {
	assert.Equal(t, "series:DGS10:2024-01-01", GenerateKeyWithParams("series", "DGS10", "2024-01-01"))
}

func TestMemoryOptions(t *testing.T) {
	cfg := defaultMemoryConfig()
	WithMemoryMaxSize(10)(cfg)
	WithMemoryCleanup(time.Second)(cfg)
	assert.Equal(t, 10, cfg.MaxSize)
	assert.Equal(t, time.Second, cfg.CleanupInterval)

	WithMemoryMaxSize(0)(cfg)
	WithMemoryCleanup(0)(cfg)
	assert.Equal(t, 10, cfg.MaxSize, "non-positive size keeps the previous value")
	assert.Equal(t, time.Second, cfg.CleanupInterval)
}

func TestMemoryCacheSweepsExpiredEntries(t *testing.T) {
	ctx := context.Background()
	mc := NewMemoryCache(WithMemoryCleanup(5 * time.Millisecond))
	defer mc.Close()

	require.NoError(t, mc.Set(ctx, "k", 1, time.Millisecond))
	assert.Eventually(t, func() bool {
		mc.mu.Lock()
		defer mc.mu.Unlock()
		return len(mc.data) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestRedisConfig(t *testing.T) {
	cfg := defaultRedisConfig()
	WithRedisHost("cache.local")(cfg)
	WithRedisPort(6380)(cfg)
	WithRedisPrefix("")(cfg)
	assert.Equal(t, "cache.local:6380", cfg.Addr())
	assert.Equal(t, "riskfill", cfg.Prefix)
}
