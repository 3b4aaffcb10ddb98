package preference

import (
	"context"
	"time"

	"github.com/zjrosen/tint/internal/cachemanager"
	"github.com/zjrosen/tint/internal/log"
	"github.com/zjrosen/tint/internal/theme"
)

// loaded is the cached result of a backend Load.
type loaded struct {
	mode theme.Mode
	ok   bool
}

// CachedStore answers loads from an in-memory cache and writes through to
// the wrapped store.
type CachedStore struct {
	inner Store
	ttl   time.Duration
	cache *cachemanager.ReadThroughCache[string, loaded, struct{}]
}

// NewCachedStore wraps inner with a cache whose entries live for ttl.
// A zero ttl keeps entries until they are invalidated.
func NewCachedStore(inner Store, ttl time.Duration) *CachedStore {
	expiration := ttl
	if expiration <= 0 {
		expiration = cachemanager.NoExpiration
	}
	manager := cachemanager.NewInMemoryCacheManager[string, loaded]("preference", expiration, time.Minute)
	s := &CachedStore{inner: inner, ttl: expiration}
	s.cache = cachemanager.NewReadThroughCache(manager, s.fetch, false)
	return s
}

func (s *CachedStore) fetch(ctx context.Context, _ struct{}) (loaded, error) {
	mode, ok, err := s.inner.Load(ctx)
	if err != nil {
		return loaded{}, err
	}
	return loaded{mode: mode, ok: ok}, nil
}

// Load implements Store.
func (s *CachedStore) Load(ctx context.Context) (theme.Mode, bool, error) {
	v, err := s.cache.Get(ctx, Key, struct{}{}, s.ttl)
	if err != nil {
		return theme.Default, false, err
	}
	return v.mode, v.ok, nil
}

// Save implements Store. On failure the cached entry is dropped so the next
// load consults the backend.
func (s *CachedStore) Save(ctx context.Context, mode theme.Mode) error {
	if err := s.inner.Save(ctx, mode); err != nil {
		_ = s.cache.Invalidate(ctx, Key)
		return err
	}
	s.cache.Prime(ctx, Key, loaded{mode: mode, ok: true}, s.ttl)
	return nil
}

// Invalidate forgets the cached value. The file watcher calls it when the
// backing file changes underneath us.
func (s *CachedStore) Invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, Key); err != nil {
		log.WarnErr(log.CatCache, "invalidating preference cache", err)
	}
}
