// Package preference persists the user's chosen display mode.
//
// Stores hold a single string under Key. Load validates it against the
// closed set of modes; anything else reads as absent so a raw invalid value
// never reaches the engine.
package preference

import (
	"context"
	"errors"

	"github.com/zjrosen/tint/internal/log"
	"github.com/zjrosen/tint/internal/theme"
)

// Key is the persisted key holding the mode.
const Key = "theme-mode"

// ErrInvalidPreference marks a stored value outside {light, dark, system}.
// It is logged and recovered locally, never returned by Load.
var ErrInvalidPreference = errors.New("invalid stored preference")

// ErrUnavailable is returned when the backing storage cannot be reached.
var ErrUnavailable = errors.New("preference storage unavailable")

// Store loads and saves the display mode.
type Store interface {
	// Load returns the stored mode. ok is false when nothing valid is stored.
	Load(ctx context.Context) (mode theme.Mode, ok bool, err error)
	// Save persists mode.
	Save(ctx context.Context, mode theme.Mode) error
}

// rawStore is implemented by backends that persist the raw string.
type rawStore interface {
	loadRaw(ctx context.Context) (value string, found bool, err error)
	saveRaw(ctx context.Context, value string) error
}

// decode validates a raw stored value.
func decode(backend, raw string, found bool) (theme.Mode, bool) {
	if !found {
		log.Debug(log.CatStore, "no stored preference", "backend", backend)
		return theme.Default, false
	}
	mode, ok := theme.ParseMode(raw)
	if !ok {
		log.WarnErr(log.CatStore, "ignoring stored preference", ErrInvalidPreference,
			"backend", backend, "value", raw)
		return theme.Default, false
	}
	return mode, true
}

// load implements Store.Load for raw backends.
func load(ctx context.Context, backend string, s rawStore) (theme.Mode, bool, error) {
	raw, found, err := s.loadRaw(ctx)
	if err != nil {
		return theme.Default, false, err
	}
	mode, ok := decode(backend, raw, found)
	return mode, ok, nil
}

// save implements Store.Save for raw backends.
func save(ctx context.Context, s rawStore, mode theme.Mode) error {
	if !mode.Valid() {
		return ErrInvalidPreference
	}
	return s.saveRaw(ctx, mode.String())
}
