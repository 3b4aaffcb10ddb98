package observer

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/zjrosen/tint/internal/log"
)

// Breakpoint is a viewport width class. Values are ordered from narrowest
// to widest.
type Breakpoint int

const (
	XS Breakpoint = iota
	SM
	MD
	LG
	XL
	XXL
)

// minWidths holds the inclusive lower bound in px of each class.
var minWidths = [...]int{
	XS:  0,
	SM:  640,
	MD:  768,
	LG:  1024,
	XL:  1280,
	XXL: 1536,
}

var breakpointNames = [...]string{
	XS:  "xs",
	SM:  "sm",
	MD:  "md",
	LG:  "lg",
	XL:  "xl",
	XXL: "2xl",
}

// Breakpoints returns every class in ascending order.
func Breakpoints() []Breakpoint {
	return []Breakpoint{XS, SM, MD, LG, XL, XXL}
}

func (b Breakpoint) String() string {
	if b < XS || b > XXL {
		return fmt.Sprintf("Breakpoint(%d)", int(b))
	}
	return breakpointNames[b]
}

// MinWidth is the smallest width in px that falls in b.
func (b Breakpoint) MinWidth() int {
	if b < XS || b > XXL {
		return 0
	}
	return minWidths[b]
}

// ParseBreakpoint parses a class name such as "md" or "2xl".
func ParseBreakpoint(s string) (Breakpoint, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range breakpointNames {
		if name == s {
			return Breakpoint(i), true
		}
	}
	return XS, false
}

// FromWidth classifies a width in px. A width equal to a threshold
// belongs to the wider class.
func FromWidth(px int) Breakpoint {
	for b := XXL; b > XS; b-- {
		if px >= minWidths[b] {
			return b
		}
	}
	return XS
}

// Option configures a Breakpoint observer.
type Option func(*breakpointOptions)

type breakpointOptions struct {
	debounce time.Duration
}

// WithDebounce coalesces resize events arriving within d. Zero disables it.
func WithDebounce(d time.Duration) Option {
	return func(o *breakpointOptions) {
		o.debounce = d
	}
}

// BreakpointObserver observes viewport width in px and reports its class.
type BreakpointObserver struct {
	subject[Breakpoint]
	debounce time.Duration

	widthMu sync.Mutex
	width   int
	timer   *time.Timer
}

// NewBreakpoint attaches to a source of viewport widths in px. The class is
// computed from width immediately.
func NewBreakpoint(src Source[int], width int, opts ...Option) *BreakpointObserver {
	var o breakpointOptions
	for _, opt := range opts {
		opt(&o)
	}

	b := &BreakpointObserver{debounce: o.debounce, width: width}
	b.current = FromWidth(width)

	if src == nil {
		log.WarnErr(log.CatObserver, "resize source missing, breakpoint fixed", ErrObserverUnavailable,
			"breakpoint", b.current)
		b.detached.Store(true)
		return b
	}
	attach(&b.subject, src, b.handle)
	return b
}

// Width returns the most recent width in px.
func (b *BreakpointObserver) Width() int {
	b.widthMu.Lock()
	defer b.widthMu.Unlock()
	return b.width
}

func (b *BreakpointObserver) handle(px int) {
	b.widthMu.Lock()
	b.width = px
	if b.debounce <= 0 {
		b.widthMu.Unlock()
		b.apply(px)
		return
	}
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.debounce, b.flush)
	b.widthMu.Unlock()
}

func (b *BreakpointObserver) flush() {
	b.handling.Lock()
	defer b.handling.Unlock()
	if b.detached.Load() {
		return
	}
	b.apply(b.Width())
}

func (b *BreakpointObserver) apply(px int) {
	next := FromWidth(px)
	if prev := b.set(next); prev == next {
		return
	}
	log.Debug(log.CatObserver, "breakpoint changed", "width", px, "breakpoint", next)
	b.publish(next)
}

// Detach removes the resize listener and any pending debounce.
func (b *BreakpointObserver) Detach() {
	b.widthMu.Lock()
	if b.timer != nil {
		b.timer.Stop()
	}
	b.widthMu.Unlock()
	b.subject.Detach()
}

var _ Observable[Breakpoint] = (*BreakpointObserver)(nil)
