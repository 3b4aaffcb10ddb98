// Package engine owns the resolved display state. It combines the stored
// preference with the OS colour scheme, broadcasts changes and keeps the
// environment in sync.
//
// Events are processed one at a time in FIFO order. An event dispatched
// while another is being handled, including from a subscriber callback,
// is queued and handled once the current one has fully settled.
package engine

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/zjrosen/tint/internal/broadcast"
	"github.com/zjrosen/tint/internal/log"
	"github.com/zjrosen/tint/internal/observer"
	"github.com/zjrosen/tint/internal/preference"
	"github.com/zjrosen/tint/internal/pubsub"
	"github.com/zjrosen/tint/internal/theme"
)

// Options configures an Engine.
type Options struct {
	// Store holds the user's chosen mode. Required.
	Store preference.Store
	// OS is the OS colour scheme observer. Nil means light.
	OS observer.Observable[bool]
	// Marker is applied whenever the appearance flips.
	Marker Marker
	// Default is the mode used and saved when nothing is stored. The zero
	// value is theme.System.
	Default theme.Mode
}

// Engine resolves and publishes the display state.
type Engine struct {
	store  preference.Store
	def    theme.Mode
	os     observer.Observable[bool]
	sync   *Synchronizer
	bc     *broadcast.Broadcaster[theme.State]
	events *pubsub.Broker[theme.State]

	mu       sync.Mutex
	queue    []Event
	draining bool
	ctx      context.Context

	// Guarded by the drain: only the draining goroutine touches these.
	state  theme.State
	osDark bool
	loaded bool

	stateMu  sync.RWMutex
	snapshot theme.State

	osUnsub   func()
	processed atomic.Int64
}

// New creates an engine. Call Start before use.
func New(opts Options) *Engine {
	e := &Engine{
		store:  opts.Store,
		def:    opts.Default,
		os:     opts.OS,
		sync:   NewSynchronizer(preference.NewSaver(opts.Store), opts.Marker),
		bc:     broadcast.New(theme.SameAppearance),
		events: pubsub.NewBroker[theme.State](),
		ctx:    context.Background(),
		state:  theme.Resolve(theme.Default, false),
	}
	if !e.def.Valid() {
		e.def = theme.Default
	}
	e.snapshot = e.state
	// Bridge broadcasts to the pubsub broker so the UI loop can listen.
	e.bc.Subscribe(func(s theme.State) {
		e.events.Publish(pubsub.AppearanceChangedEvent, s)
	})
	return e
}

// Start loads the stored preference, resolves the initial state and begins
// following the OS colour scheme. A failed load is logged and treated as no
// stored preference.
func (e *Engine) Start(ctx context.Context) {
	e.mu.Lock()
	e.ctx = ctx
	e.mu.Unlock()

	mode, ok, err := e.store.Load(ctx)
	if err != nil {
		log.WarnErr(log.CatEngine, "loading preference, using default", err)
		mode, ok = e.def, false
	}

	if e.os != nil {
		// Subscribe before reading so a change in between is not lost.
		e.osUnsub = e.os.Subscribe(func(dark bool) {
			e.Dispatch(OSChanged{PrefersDark: dark})
		})
		e.Dispatch(OSChanged{PrefersDark: e.os.Current()})
	}
	e.Dispatch(PreferenceLoaded{Mode: mode, OK: ok})
}

// Dispatch processes ev. If another event is being processed, ev is queued
// behind it.
func (e *Engine) Dispatch(ev Event) {
	e.mu.Lock()
	e.queue = append(e.queue, ev)
	if e.draining {
		e.mu.Unlock()
		return
	}
	e.draining = true
	e.mu.Unlock()

	for {
		e.mu.Lock()
		if len(e.queue) == 0 {
			e.draining = false
			e.mu.Unlock()
			return
		}
		next := e.queue[0]
		e.queue = e.queue[1:]
		ctx := e.ctx
		e.mu.Unlock()

		e.handle(ctx, next)
		e.processed.Add(1)
	}
}

func (e *Engine) handle(ctx context.Context, ev Event) {
	mode := e.state.Mode

	switch ev := ev.(type) {
	case PreferenceLoaded:
		e.loaded = true
		if ev.OK {
			mode = ev.Mode
			e.sync.MarkPersisted(mode)
		} else {
			// Persisting the default below creates the record.
			mode = e.def
		}
	case OSChanged:
		e.osDark = ev.PrefersDark
		if !e.loaded {
			return
		}
	case ModeSet:
		if !ev.Mode.Valid() {
			log.Warn(log.CatEngine, "ignoring invalid mode", "mode", int(ev.Mode))
			return
		}
		if !e.loaded {
			log.Warn(log.CatEngine, "mode set before preference loaded, ignoring", "mode", ev.Mode)
			return
		}
		mode = ev.Mode
		if ev.External {
			e.sync.MarkPersisted(mode)
		}
	case Toggled:
		if !e.loaded {
			log.Warn(log.CatEngine, "toggle before preference loaded, ignoring")
			return
		}
		mode = mode.Next()
	default:
		return
	}

	next := theme.Resolve(mode, e.osDark)
	prev := e.state
	e.state = next

	e.stateMu.Lock()
	e.snapshot = next
	e.stateMu.Unlock()

	if prev != next {
		log.Debug(log.CatEngine, "state resolved", "mode", next.Mode, "is_dark", next.IsDark)
	}
	e.bc.Notify(next)
	e.sync.Sync(ctx, next)
}

// State returns the current resolved state.
func (e *Engine) State() theme.State {
	e.stateMu.RLock()
	defer e.stateMu.RUnlock()
	return e.snapshot
}

// Subscribe registers fn for appearance changes.
func (e *Engine) Subscribe(fn func(theme.State)) *broadcast.Subscription {
	return e.bc.Subscribe(fn)
}

// Toggle advances the mode light, dark, system and back to light.
func (e *Engine) Toggle() {
	e.Dispatch(Toggled{})
}

// SetMode selects mode and persists it.
func (e *Engine) SetMode(mode theme.Mode) {
	e.Dispatch(ModeSet{Mode: mode})
}

// ExternalMode applies a mode that was changed in storage by someone else.
func (e *Engine) ExternalMode(mode theme.Mode) {
	e.Dispatch(ModeSet{Mode: mode, External: true})
}

// Events streams every broadcast state for the UI loop.
func (e *Engine) Events() *pubsub.Broker[theme.State] {
	return e.events
}

// Faults streams subscriber faults.
func (e *Engine) Faults() *pubsub.Broker[broadcast.Fault] {
	return e.bc.Faults()
}

// Processed returns the number of events handled.
func (e *Engine) Processed() int64 {
	return e.processed.Load()
}

// Close stops following the OS colour scheme and closes event streams.
func (e *Engine) Close() {
	if e.osUnsub != nil {
		e.osUnsub()
	}
	e.bc.Close()
	e.events.Close()
}
