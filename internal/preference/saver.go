package preference

import (
	"context"
	"sync/atomic"

	"github.com/zjrosen/tint/internal/log"
	"github.com/zjrosen/tint/internal/theme"
)

// Saver writes modes without reporting failures to the caller. A failed
// save is logged and the caller's in-memory state stays authoritative.
type Saver struct {
	store    Store
	failures atomic.Int64
}

// NewSaver wraps store.
func NewSaver(store Store) *Saver {
	return &Saver{store: store}
}

// Save attempts to persist mode and reports whether it succeeded. It never
// panics, even when the backend does.
func (s *Saver) Save(ctx context.Context, mode theme.Mode) (saved bool) {
	defer func() {
		if r := recover(); r != nil {
			s.failures.Add(1)
			log.Error(log.CatStore, "preference save panicked", "mode", mode, "panic", r)
			saved = false
		}
	}()

	if err := s.store.Save(ctx, mode); err != nil {
		s.failures.Add(1)
		log.WarnErr(log.CatStore, "preference save failed", err, "mode", mode)
		return false
	}
	log.Debug(log.CatStore, "preference saved", "mode", mode)
	return true
}

// Failures reports how many saves have failed.
func (s *Saver) Failures() int64 {
	return s.failures.Load()
}
