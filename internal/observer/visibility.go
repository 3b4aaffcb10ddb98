package observer

import (
	"fmt"

	"github.com/zjrosen/tint/internal/log"
)

// VisibilityMode selects whether a Visibility observer keeps reporting
// after the element is first seen.
type VisibilityMode int

const (
	// Once stops after the first visible transition.
	Once VisibilityMode = iota
	// Repeat reports both directions indefinitely.
	Repeat
)

// DefaultThreshold is the intersection ratio used when none is given.
const DefaultThreshold = 0.1

// VisibilityOptions configures a Visibility observer.
type VisibilityOptions struct {
	// Threshold in (0, 1]. Zero means DefaultThreshold.
	Threshold float64
	Mode      VisibilityMode
}

// Visibility reports whether a bound element's intersection ratio has
// reached the threshold. Only transitions are emitted.
type Visibility struct {
	subject[bool]
	threshold float64
	mode      VisibilityMode
	seen      bool
}

// NewVisibility attaches to a source of intersection ratios. The element
// starts hidden.
func NewVisibility(src Source[float64], opts VisibilityOptions) (*Visibility, error) {
	threshold := opts.Threshold
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	if threshold <= 0 || threshold > 1 {
		return nil, fmt.Errorf("visibility threshold %v outside (0, 1]", opts.Threshold)
	}

	v := &Visibility{threshold: threshold, mode: opts.Mode}
	if src == nil {
		log.WarnErr(log.CatObserver, "intersection source missing, element hidden", ErrObserverUnavailable)
		v.detached.Store(true)
		return v, nil
	}
	attach(&v.subject, src, v.handle)
	return v, nil
}

// Threshold returns the effective threshold.
func (v *Visibility) Threshold() float64 {
	return v.threshold
}

func (v *Visibility) handle(ratio float64) {
	if v.mode == Once && v.seen {
		return
	}

	visible := ratio >= v.threshold
	if prev := v.set(visible); prev == visible {
		return
	}
	v.publish(visible)

	if visible && v.mode == Once {
		v.seen = true
		// Nothing further can be reported, so release the source.
		v.Detach()
	}
}

var _ Observable[bool] = (*Visibility)(nil)
