package cachemanager

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestInMemoryCacheManager_SetGet(t *testing.T) {
	c := NewInMemoryCacheManager[string, int]("test", DefaultExpiration, DefaultCleanupInterval)
	ctx := context.Background()

	_, ok := c.Get(ctx, "missing")
	require.False(t, ok)

	c.Set(ctx, "a", 1, 0)
	v, ok := c.Get(ctx, "a")
	require.True(t, ok)
	require.Equal(t, 1, v)
	require.Equal(t, 1, c.Len())

	require.NoError(t, c.Delete(ctx, "a"))
	_, ok = c.Get(ctx, "a")
	require.False(t, ok)
}

func TestInMemoryCacheManager_Expiry(t *testing.T) {
	c := NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval)
	ctx := context.Background()

	c.Set(ctx, "k", "v", 10*time.Millisecond)
	require.Eventually(t, func() bool {
		_, ok := c.Get(ctx, "k")
		return !ok
	}, time.Second, 5*time.Millisecond)
}

func TestInMemoryCacheManager_Flush(t *testing.T) {
	c := NewInMemoryCacheManager[string, int]("test", DefaultExpiration, DefaultCleanupInterval)
	ctx := context.Background()
	c.Set(ctx, "a", 1, 0)
	c.Set(ctx, "b", 2, 0)

	require.NoError(t, c.Flush(ctx))
	require.Zero(t, c.Len())
}

func TestReadThroughCache_CachesSuccessOnly(t *testing.T) {
	c := NewInMemoryCacheManager[string, int]("test", DefaultExpiration, DefaultCleanupInterval)
	calls := 0
	fail := errors.New("boom")
	rt := NewReadThroughCache[string, int, string](c, func(_ context.Context, in string) (int, error) {
		calls++
		if in == "bad" {
			return 0, fail
		}
		return len(in), nil
	}, false)
	ctx := context.Background()

	for range 3 {
		v, err := rt.Get(ctx, "abc", "abc", time.Minute)
		require.NoError(t, err)
		require.Equal(t, 3, v)
	}
	require.Equal(t, 1, calls)

	for range 2 {
		_, err := rt.Get(ctx, "bad", "bad", time.Minute)
		require.ErrorIs(t, err, fail)
	}
	require.Equal(t, 3, calls, "errors are recomputed")
}

func TestReadThroughCache_Skip(t *testing.T) {
	calls := 0
	rt := NewReadThroughCache[string, int, string](nil, func(context.Context, string) (int, error) {
		calls++
		return 1, nil
	}, true)

	_, _ = rt.Get(context.Background(), "k", "k", time.Minute)
	_, _ = rt.Get(context.Background(), "k", "k", time.Minute)
	require.Equal(t, 2, calls)
}

func TestReadThroughCache_Stats(t *testing.T) {
	c := NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval)
	rt := NewReadThroughCache[string, string, string](c, func(_ context.Context, in string) (string, error) {
		return in + "!", nil
	}, false)
	ctx := context.Background()

	for _, k := range []string{"a", "a", "b", "a"} {
		_, err := rt.Get(ctx, k, k, time.Minute)
		require.NoError(t, err)
	}
	require.Equal(t, Stats{Hits: 2, Misses: 2}, rt.Stats())
}
