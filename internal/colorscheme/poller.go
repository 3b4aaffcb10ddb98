package colorscheme

import (
	"context"
	"time"

	"github.com/zjrosen/tint/internal/log"
	"github.com/zjrosen/tint/internal/observer"
)

// DefaultPollInterval is how often the detector chain is re-run.
const DefaultPollInterval = 5 * time.Second

// Poller re-runs a resolver periodically and emits only when the answer
// changes. Its emitter is the source for an observer.ColorScheme.
type Poller struct {
	resolver interface{ Resolve() Preference }
	interval time.Duration
	emitter  *observer.Emitter[bool]
	last     bool
}

// NewPoller creates a poller. The initial resolution happens here so the
// first Emit only reports a real change.
func NewPoller(resolver interface{ Resolve() Preference }, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Poller{
		resolver: resolver,
		interval: interval,
		emitter:  observer.NewEmitter[bool](),
		last:     resolver.Resolve().PrefersDark,
	}
}

// Initial returns the preference resolved at construction.
func (p *Poller) Initial() bool {
	return p.last
}

// Source returns the emitter observers attach to.
func (p *Poller) Source() *observer.Emitter[bool] {
	return p.emitter
}

// Poll runs one detection and emits on change.
func (p *Poller) Poll() bool {
	pref := p.resolver.Resolve()
	if pref.PrefersDark == p.last {
		return false
	}
	p.last = pref.PrefersDark
	log.Info(log.CatObserver, "OS color scheme changed", "prefers_dark", pref.PrefersDark, "source", pref.Source)
	p.emitter.Emit(pref.PrefersDark)
	return true
}

// Run polls until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Poll()
		}
	}
}
