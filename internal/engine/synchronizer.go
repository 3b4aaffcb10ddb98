package engine

import (
	"context"
	"fmt"

	"github.com/zjrosen/tint/internal/log"
	"github.com/zjrosen/tint/internal/preference"
	"github.com/zjrosen/tint/internal/theme"
)

// Synchronizer applies resolved state to the outside world: it persists
// the mode and sets the appearance marker. Each effect runs only when its
// input differs from what was last applied.
type Synchronizer struct {
	saver  *preference.Saver
	marker Marker

	persisted    theme.Mode
	hasPersisted bool
	applied      bool
	hasApplied   bool

	saves   int
	applies int
}

// NewSynchronizer creates a synchronizer. A nil marker skips marking.
func NewSynchronizer(saver *preference.Saver, marker Marker) *Synchronizer {
	return &Synchronizer{saver: saver, marker: marker}
}

// MarkPersisted records mode as already stored.
func (s *Synchronizer) MarkPersisted(mode theme.Mode) {
	s.persisted = mode
	s.hasPersisted = true
}

// Sync attempts both effects for state. Failures are logged.
func (s *Synchronizer) Sync(ctx context.Context, state theme.State) {
	s.persist(ctx, state.Mode)
	s.mark(state.IsDark)
}

func (s *Synchronizer) persist(ctx context.Context, mode theme.Mode) {
	if s.saver == nil || (s.hasPersisted && s.persisted == mode) {
		return
	}
	if s.saver.Save(ctx, mode) {
		s.persisted = mode
		s.hasPersisted = true
		s.saves++
	}
}

func (s *Synchronizer) mark(isDark bool) {
	if s.marker == nil || (s.hasApplied && s.applied == isDark) {
		return
	}

	err := func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("marker panicked: %v", r)
			}
		}()
		return s.marker.Apply(isDark)
	}()
	if err != nil {
		log.WarnErr(log.CatEngine, "applying appearance marker", err, "is_dark", isDark)
		return
	}

	s.applied = isDark
	s.hasApplied = true
	s.applies++
	log.Debug(log.CatEngine, "appearance marker applied", "is_dark", isDark)
}
