package engine

import (
	"errors"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// AppearanceEnv is the environment variable EnvMarker writes.
const AppearanceEnv = "TINT_APPEARANCE"

// Marker applies the resolved appearance to the surrounding environment.
type Marker interface {
	Apply(isDark bool) error
}

// MarkerFunc adapts a function to Marker.
type MarkerFunc func(isDark bool) error

// Apply implements Marker.
func (f MarkerFunc) Apply(isDark bool) error { return f(isDark) }

// LipglossMarker points lipgloss adaptive colours at the resolved
// appearance and rebuilds styles derived from them.
type LipglossMarker struct {
	Rebuild func()
}

// Apply implements Marker.
func (m LipglossMarker) Apply(isDark bool) error {
	lipgloss.SetHasDarkBackground(isDark)
	if m.Rebuild != nil {
		m.Rebuild()
	}
	return nil
}

// EnvMarker exports the appearance to child processes.
type EnvMarker struct{}

// Apply implements Marker.
func (EnvMarker) Apply(isDark bool) error {
	value := "light"
	if isDark {
		value = "dark"
	}
	return os.Setenv(AppearanceEnv, value)
}

// Markers applies each marker in order. Every marker runs even when an
// earlier one fails.
func Markers(markers ...Marker) Marker {
	return MarkerFunc(func(isDark bool) error {
		var errs []error
		for _, m := range markers {
			if err := m.Apply(isDark); err != nil {
				errs = append(errs, err)
			}
		}
		return errors.Join(errs...)
	})
}
