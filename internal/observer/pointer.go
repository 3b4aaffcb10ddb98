package observer

import "github.com/zjrosen/tint/internal/log"

// DefaultMagnitude scales pointer offsets when none is given.
const DefaultMagnitude = 20

// Offset is a pointer offset from an element's center.
type Offset struct {
	X, Y float64
}

// PointerEvent is a raw pointer position in terminal cells. Leave marks the
// pointer exiting the element.
type PointerEvent struct {
	X, Y  int
	Leave bool
}

// Pointer reports the pointer's normalized offset from a bound element's
// center, scaled by a magnitude. Leaving the element resets to (0, 0).
type Pointer struct {
	subject[Offset]
	bounds    func() Rect
	magnitude float64
}

// NewPointer attaches to src. bounds is consulted on every event so the
// element may move between renders. A zero magnitude uses DefaultMagnitude.
func NewPointer(src Source[PointerEvent], bounds func() Rect, magnitude float64) *Pointer {
	if magnitude == 0 {
		magnitude = DefaultMagnitude
	}
	p := &Pointer{bounds: bounds, magnitude: magnitude}
	if src == nil || bounds == nil {
		log.WarnErr(log.CatObserver, "pointer source missing, offset neutral", ErrObserverUnavailable)
		p.detached.Store(true)
		return p
	}
	attach(&p.subject, src, p.handle)
	return p
}

// OffsetIn computes the scaled offset of (x, y) from the center of r.
func OffsetIn(r Rect, x, y int, magnitude float64) Offset {
	if r.Empty() {
		return Offset{}
	}
	nx := (float64(x-r.X)+0.5)/float64(r.W) - 0.5
	ny := (float64(y-r.Y)+0.5)/float64(r.H) - 0.5
	return Offset{X: nx * magnitude, Y: ny * magnitude}
}

func (p *Pointer) handle(ev PointerEvent) {
	var next Offset
	r := p.bounds()
	if !ev.Leave && r.Contains(ev.X, ev.Y) {
		next = OffsetIn(r, ev.X, ev.Y, p.magnitude)
	}
	if prev := p.set(next); prev == next {
		return
	}
	p.publish(next)
}

var _ Observable[Offset] = (*Pointer)(nil)
