// Package responsive answers layout questions from a breakpoint class.
package responsive

import (
	"github.com/zjrosen/tint/internal/observer"
)

// Direction selects which side of a breakpoint Responsive matches.
type Direction int

const (
	Up Direction = iota
	Down
)

// Range bounds breakpoint classes on either side. The zero Range is
// unbounded.
type Range struct {
	above, below       observer.Breakpoint
	hasAbove, hasBelow bool
}

// Above matches classes at or above b.
func Above(b observer.Breakpoint) Range {
	return Range{}.Above(b)
}

// Below matches classes at or below b.
func Below(b observer.Breakpoint) Range {
	return Range{}.Below(b)
}

// Above adds a lower bound to r.
func (r Range) Above(b observer.Breakpoint) Range {
	r.above, r.hasAbove = b, true
	return r
}

// Below adds an upper bound to r.
func (r Range) Below(b observer.Breakpoint) Range {
	r.below, r.hasBelow = b, true
	return r
}

// Show reports whether bp satisfies every bound of r.
func Show(bp observer.Breakpoint, r Range) bool {
	if r.hasAbove && bp < r.above {
		return false
	}
	if r.hasBelow && bp > r.below {
		return false
	}
	return true
}

// Hide reports false when bp meets either bound of r.
func Hide(bp observer.Breakpoint, r Range) bool {
	if r.hasAbove && bp >= r.above {
		return false
	}
	if r.hasBelow && bp <= r.below {
		return false
	}
	return true
}

// Responsive reports whether bp is at or beyond target in direction d.
func Responsive(bp, target observer.Breakpoint, d Direction) bool {
	if d == Down {
		return bp <= target
	}
	return bp >= target
}

// Lookup returns values[bp]. When bp has no entry it falls back to the
// largest class present, then to def.
func Lookup[V any](values map[observer.Breakpoint]V, bp observer.Breakpoint, def V) V {
	if v, ok := values[bp]; ok {
		return v
	}
	all := observer.Breakpoints()
	for i := len(all) - 1; i >= 0; i-- {
		if v, ok := values[all[i]]; ok {
			return v
		}
	}
	return def
}

// Device width ranges in pixels.
const (
	MobileMax  = 768
	DesktopMin = 1024
)

func IsMobile(px int) bool { return px <= MobileMax }

func IsTablet(px int) bool { return px > MobileMax && px < DesktopMin }

func IsDesktop(px int) bool { return px >= DesktopMin }

// ContainerWidth caps avail at the minimum width of bp. XS leaves avail
// unchanged.
func ContainerWidth(bp observer.Breakpoint, avail int) int {
	if limit := bp.MinWidth(); limit > 0 && avail > limit {
		return limit
	}
	return avail
}
