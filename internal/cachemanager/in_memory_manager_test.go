package cachemanager

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type prefKey string

func TestNewInMemoryCacheManager(t *testing.T) {
	require.NotPanics(t, func() {
		NewInMemoryCacheManager[string, string]("test", DefaultExpiration, DefaultCleanupInterval)
	})
}

func TestInMemoryCacheManager_GetExistingValue(t *testing.T) {
	cache := NewInMemoryCacheManager[prefKey, string]("preferences", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "theme-mode", "dark", DefaultExpiration)

	got, ok := cache.Get(context.Background(), "theme-mode")
	require.True(t, ok)
	require.Equal(t, "dark", got)
}

func TestInMemoryCacheManager_GetMissing(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("preferences", DefaultExpiration, DefaultCleanupInterval)

	got, ok := cache.Get(context.Background(), "theme-mode")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemoryCacheManager_GetWithWrongType(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("preferences", DefaultExpiration, DefaultCleanupInterval)
	cache.cache.Set("theme-mode", 123, DefaultExpiration)

	got, ok := cache.Get(context.Background(), "theme-mode")
	require.False(t, ok)
	require.Empty(t, got)
}

func TestInMemoryCacheManager_Expiry(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("preferences", DefaultExpiration, DefaultCleanupInterval)
	cache.Set(context.Background(), "theme-mode", "light", 10*time.Millisecond)

	time.Sleep(30 * time.Millisecond)

	_, ok := cache.Get(context.Background(), "theme-mode")
	require.False(t, ok)
}

func TestInMemoryCacheManager_GetWithRefresh(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("preferences", DefaultExpiration, DefaultCleanupInterval)
	ctx := context.Background()

	_, ok := cache.GetWithRefresh(ctx, "theme-mode", time.Minute)
	require.False(t, ok)

	cache.Set(ctx, "theme-mode", "system", 50*time.Millisecond)
	got, ok := cache.GetWithRefresh(ctx, "theme-mode", time.Minute)
	require.True(t, ok)
	require.Equal(t, "system", got)

	time.Sleep(80 * time.Millisecond)
	_, ok = cache.Get(ctx, "theme-mode")
	require.True(t, ok, "refresh should have extended the ttl")
}

func TestInMemoryCacheManager_DeleteAndFlush(t *testing.T) {
	cache := NewInMemoryCacheManager[string, string]("preferences", DefaultExpiration, DefaultCleanupInterval)
	ctx := context.Background()

	require.NoError(t, cache.Delete(ctx))

	cache.Set(ctx, "a", "1", NoExpiration)
	cache.Set(ctx, "b", "2", NoExpiration)
	require.NoError(t, cache.Delete(ctx, "a"))

	_, ok := cache.Get(ctx, "a")
	require.False(t, ok)
	_, ok = cache.Get(ctx, "b")
	require.True(t, ok)

	require.NoError(t, cache.Flush(ctx))
	_, ok = cache.Get(ctx, "b")
	require.False(t, ok)
}
