// Package theme holds the display mode state machine and the pure function
// that resolves a mode and the OS preference into a dark/light appearance.
package theme

import "strings"

// Mode is the user's chosen display mode.
type Mode int

const (
	// System follows the OS colour-scheme preference. It is the zero value
	// so an unset Mode behaves as the default.
	System Mode = iota
	Light
	Dark
)

// Default is the mode used when no valid preference is stored.
const Default = System

// Modes lists every valid mode in toggle order starting from Light.
func Modes() []Mode {
	return []Mode{Light, Dark, System}
}

func (m Mode) String() string {
	switch m {
	case Light:
		return "light"
	case Dark:
		return "dark"
	case System:
		return "system"
	default:
		return "unknown"
	}
}

// Valid reports whether m is one of the closed set of modes.
func (m Mode) Valid() bool {
	return m == Light || m == Dark || m == System
}

// ParseMode converts a stored string to a Mode. Anything outside
// {light, dark, system} is reported as absent.
func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "light":
		return Light, true
	case "dark":
		return Dark, true
	case "system":
		return System, true
	default:
		return Default, false
	}
}

// Next returns the mode after a toggle: light -> dark -> system -> light.
func (m Mode) Next() Mode {
	switch m {
	case Light:
		return Dark
	case Dark:
		return System
	default:
		return Light
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler. Invalid input decodes to
// the default mode rather than failing.
func (m *Mode) UnmarshalText(text []byte) error {
	*m, _ = ParseMode(string(text))
	return nil
}
