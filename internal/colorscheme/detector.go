// Package colorscheme detects whether the OS or terminal prefers a dark
// appearance.
//
// Detectors are tried in priority order; the first one that is available
// and answers wins. Detectors that cache their first answer are tried only
// after every live detector, so a poller still sees OS changes. When none
// answers the result falls back to light.
package colorscheme

// Detector reports an OS-level dark preference from one signal.
type Detector interface {
	// Name identifies the detector in logs.
	Name() string

	// Priority orders detectors; higher values are tried first.
	//   - 100+: explicit user overrides
	//   -  50+: terminal queries (cached, see Cacher)
	//   -  10+: desktop settings and environment hints
	Priority() int

	// Available reports whether the detector can run at all.
	Available() bool

	// Detect returns the preference and whether detection succeeded.
	Detect() (prefersDark bool, ok bool)
}

// Cacher is implemented by detectors whose answer never changes after the
// first Detect.
type Cacher interface {
	Cached() bool
}

func isCached(d Detector) bool {
	c, ok := d.(Cacher)
	return ok && c.Cached()
}

// Preference is a resolved dark preference and the detector that gave it.
type Preference struct {
	PrefersDark bool
	// Source is the detector name, or SourceFallback.
	Source string
}

const (
	// SourceFallback marks a preference no detector provided.
	SourceFallback = "fallback"
	// SourceOverride marks a preference forced by configuration.
	SourceOverride = "override"
)
