package colorscheme

import (
	"sort"
	"sync"

	"github.com/zjrosen/tint/internal/log"
	"github.com/zjrosen/tint/internal/observer"
)

// Resolver runs a detector chain. An override ("dark", "light") set in
// configuration skips the chain entirely.
type Resolver struct {
	mu        sync.RWMutex
	override  string
	detectors []Detector
}

// NewResolver creates a resolver with the given detectors.
func NewResolver(override string, detectors ...Detector) *Resolver {
	r := &Resolver{override: override}
	for _, d := range detectors {
		r.Register(d)
	}
	return r
}

// Default returns a resolver with the built-in detectors.
func Default(override string) *Resolver {
	return NewResolver(override,
		NewTerminalDetector(),
		NewEnvDetector(),
		NewColorFGBGDetector(),
		NewGsettingsDetector(),
	)
}

// Register adds a detector.
func (r *Resolver) Register(d Detector) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.detectors = append(r.detectors, d)
	sort.SliceStable(r.detectors, func(i, j int) bool {
		a, b := r.detectors[i], r.detectors[j]
		if ca, cb := isCached(a), isCached(b); ca != cb {
			return cb
		}
		return a.Priority() > b.Priority()
	})
}

// Available reports whether any detector can run or an override is set.
func (r *Resolver) Available() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if _, ok := parseScheme(r.override); ok {
		return true
	}
	for _, d := range r.detectors {
		if d.Available() {
			return true
		}
	}
	return false
}

// Resolve returns the current preference.
func (r *Resolver) Resolve() Preference {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if dark, ok := parseScheme(r.override); ok {
		return Preference{PrefersDark: dark, Source: SourceOverride}
	}

	for _, d := range r.detectors {
		if !d.Available() {
			continue
		}
		if dark, ok := d.Detect(); ok {
			return Preference{PrefersDark: dark, Source: d.Name()}
		}
	}

	log.WarnErr(log.CatObserver, "no color scheme detector answered, assuming light",
		observer.ErrObserverUnavailable)
	return Preference{Source: SourceFallback}
}
