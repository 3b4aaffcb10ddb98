package observer

import (
	"github.com/zjrosen/tint/internal/log"
)

// ColorScheme reports whether the OS prefers a dark appearance. It notifies
// only when the preference actually changes.
type ColorScheme struct {
	subject[bool]
}

// NewColorScheme attaches to src starting from initial. A nil src is an
// attach failure: the observer stays at light and never fires.
func NewColorScheme(src Source[bool], initial bool) *ColorScheme {
	c := &ColorScheme{}
	if src == nil {
		log.WarnErr(log.CatObserver, "color scheme source missing, assuming light", ErrObserverUnavailable)
		c.detached.Store(true)
		return c
	}
	c.current = initial
	attach(&c.subject, src, c.handle)
	log.Debug(log.CatObserver, "color scheme observer attached", "prefers_dark", initial)
	return c
}

func (c *ColorScheme) handle(prefersDark bool) {
	if prev := c.set(prefersDark); prev == prefersDark {
		return
	}
	log.Debug(log.CatObserver, "OS color scheme changed", "prefers_dark", prefersDark)
	c.publish(prefersDark)
}

var _ Observable[bool] = (*ColorScheme)(nil)
