package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMakeCacheKey(t *testing.T) {
	assert.Equal(t, "scheduling:slots:svc-oil:1:2024-03-05:~", makeCacheKey("slots", "svc-oil", "1", "2024-03-05", ""))
	assert.Equal(t, "scheduling:preference:a%3Ab%2Ac", makeCacheKey("preference", "a:b*c"))
	assert.Equal(t, "scheduling:preference:%5Bx%5D%5C%3F", makeCacheKey("preference", `[x]\?`))
}

func TestCacheKeyPartsAreDistinct(t *testing.T) {
	ids := []string{"", "~", "-", "fleet:7", "fleet|7", "fleet%3A7", "fleet*", "fleet?", "a b", "a+b"}
	seen := make(map[string]string, len(ids))
	for _, id := range ids {
		key := PreferenceCacheKey(id)
		if other, dup := seen[key]; dup {
			t.Fatalf("customers %q and %q share key %q", other, id, key)
		}
		seen[key] = id
		assert.NotContains(t, strings.TrimPrefix(key, "scheduling:preference:"), ":")
		assert.False(t, strings.ContainsAny(key, `*?[]\`), key)
	}
}

func TestRememberComputesOnceAndCaches(t *testing.T) {
	cache := NewCacheService(&stubCacheRepo{}, NewMetricsService(), time.Minute, zap.NewNop(), true)
	calls := 0
	compute := func() ([]string, error) {
		calls++
		return []string{"a", "b"}, nil
	}

	first, hit, err := remember(context.Background(), cache, "k", 0, compute)
	require.NoError(t, err)
	assert.False(t, hit)
	second, hit, err := remember(context.Background(), cache, "k", 0, compute)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, calls)
	assert.Equal(t, uint64(1), cache.metrics.Snapshot().CacheHits)
}

func TestRememberTreatsCacheFailureAsMiss(t *testing.T) {
	cache := NewCacheService(&stubCacheRepo{getErr: errors.New("redis down")}, nil, time.Minute, zap.NewNop(), true)

	value, hit, err := remember(context.Background(), cache, "k", 0, func() (int, error) { return 42, nil })
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 42, value)
}

func TestRememberPropagatesComputeError(t *testing.T) {
	repo := &stubCacheRepo{}
	cache := NewCacheService(repo, nil, time.Minute, zap.NewNop(), true)

	_, _, err := remember(context.Background(), cache, "k", 0, func() (int, error) { return 0, errors.New("boom") })
	assert.EqualError(t, err, "boom")
	assert.False(t, repo.has("k"))
}

func TestDisabledCacheIsPassThrough(t *testing.T) {
	repo := &stubCacheRepo{}
	cache := NewCacheService(repo, nil, time.Minute, zap.NewNop(), false)
	assert.False(t, cache.Enabled())

	_, hit, err := remember(context.Background(), cache, "k", 0, func() (int, error) { return 1, nil })
	require.NoError(t, err)
	assert.False(t, hit)
	assert.False(t, repo.has("k"))

	var nilCache *CacheService
	assert.False(t, nilCache.Enabled())
}

func TestInvalidateByPattern(t *testing.T) {
	repo := &stubCacheRepo{}
	cache := NewCacheService(repo, nil, time.Minute, zap.NewNop(), true)
	ctx := context.Background()
	require.NoError(t, cache.Set(ctx, "scheduling:slots:svc-oil:1:2024-03-05:~", 1, 0))
	require.NoError(t, cache.Set(ctx, "scheduling:slots:svc-oil:1:2024-03-06:~", 1, 0))

	require.NoError(t, cache.Invalidate(ctx, "scheduling:slots:*:2024-03-05:*"))
	assert.False(t, repo.has("scheduling:slots:svc-oil:1:2024-03-05:~"))
	assert.True(t, repo.has("scheduling:slots:svc-oil:1:2024-03-06:~"))
}
