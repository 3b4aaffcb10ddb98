package engine

import "github.com/zjrosen/tint/internal/theme"

// Event is an input to the engine.
type Event interface {
	event()
}

// PreferenceLoaded reports the result of the startup store load. OK is
// false when nothing valid was stored.
type PreferenceLoaded struct {
	Mode theme.Mode
	OK   bool
}

// OSChanged reports a new OS dark preference.
type OSChanged struct {
	PrefersDark bool
}

// ModeSet selects a mode explicitly. External marks a mode read back from
// storage that must not be written again.
type ModeSet struct {
	Mode     theme.Mode
	External bool
}

// Toggled advances the mode one step through the cycle.
type Toggled struct{}

func (PreferenceLoaded) event() {}
func (OSChanged) event()        {}
func (ModeSet) event()          {}
func (Toggled) event()          {}
