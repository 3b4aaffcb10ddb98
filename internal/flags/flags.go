// Package flags toggles the showcase's optional continuous animations.
// Flags are read-only after initialization; unknown flags are off.
package flags

import (
	"maps"
	"slices"

	"github.com/zjrosen/tint/internal/log"
)

const (
	// FlagPointerTilt tilts the hero card toward the mouse.
	FlagPointerTilt = "pointer-tilt"

	// FlagParallax shifts the backdrop with the viewport scroll offset.
	FlagParallax = "parallax"

	// FlagScrollReveal fades cards in as they scroll into view.
	FlagScrollReveal = "scroll-reveal"

	// FlagTypewriter reveals the headline one grapheme at a time.
	FlagTypewriter = "typewriter"
)

// Defaults returns every known flag with its default value.
func Defaults() map[string]bool {
	return map[string]bool{
		FlagPointerTilt:  true,
		FlagParallax:     true,
		FlagScrollReveal: true,
		FlagTypewriter:   true,
	}
}

// Registry holds feature flag state.
type Registry struct {
	flags map[string]bool
}

// New creates a Registry from Defaults overlaid with overrides.
func New(overrides map[string]bool) *Registry {
	flags := Defaults()
	maps.Copy(flags, overrides)
	r := &Registry{flags: flags}
	log.Debug(log.CatConfig, "Feature flags initialized", "count", len(flags), "flags", r.All())
	return r
}

// Enabled returns true if the named flag is enabled.
// Unknown flags and a nil registry report false.
func (r *Registry) Enabled(name string) bool {
	if r == nil || r.flags == nil {
		return false
	}
	value, exists := r.flags[name]
	if !exists {
		log.Debug(log.CatConfig, "Unknown flag accessed", "flag", name)
		return false
	}
	return value
}

// All returns a copy of all flags.
func (r *Registry) All() map[string]bool {
	if r == nil || r.flags == nil {
		return make(map[string]bool)
	}
	return maps.Clone(r.flags)
}

// Names lists the known flags in sorted order.
func Names() []string {
	return slices.Sorted(maps.Keys(Defaults()))
}
