package theme

// State is the resolved visual state derived from a mode and the OS
// preference. It is never stored.
type State struct {
	IsDark bool
	Mode   Mode
}

// Resolve derives the visual state. IsDark is true for Dark, and for System
// when the OS prefers dark.
func Resolve(mode Mode, osPrefersDark bool) State {
	if !mode.Valid() {
		mode = Default
	}
	return State{
		IsDark: mode == Dark || (mode == System && osPrefersDark),
		Mode:   mode,
	}
}

// Appearance returns the marker value for the state.
func (s State) Appearance() string {
	if s.IsDark {
		return "dark"
	}
	return "light"
}

// SameAppearance reports whether two states render identically.
func SameAppearance(a, b State) bool {
	return a.IsDark == b.IsDark
}
