package anim

import (
	"context"
	"sync"

	"github.com/zjrosen/tint/internal/log"
	"github.com/zjrosen/tint/internal/observer"
)

// Follower chases the most recently set target. Each Set supersedes the
// transition in flight; targets are never queued.
type Follower struct {
	controls Controls
	ctx      context.Context
	stop     context.CancelFunc
	wake     chan struct{}
	done     chan struct{}

	mu        sync.Mutex
	pending   *Target
	runCancel context.CancelFunc
	settled   Values
	onSettled func(Values)
}

// NewFollower starts a follower driving controls until ctx is cancelled or
// Close is called.
func NewFollower(ctx context.Context, controls Controls) *Follower {
	ctx, stop := context.WithCancel(ctx)
	f := &Follower{
		controls: controls,
		ctx:      ctx,
		stop:     stop,
		wake:     make(chan struct{}, 1),
		done:     make(chan struct{}),
	}
	go f.loop()
	return f
}

// OnSettled registers fn to run whenever a target is reached.
func (f *Follower) OnSettled(fn func(Values)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.onSettled = fn
}

// Set makes t the new target.
func (f *Follower) Set(t Target) {
	f.mu.Lock()
	f.pending = &t
	if f.runCancel != nil {
		f.runCancel()
	}
	f.mu.Unlock()

	select {
	case f.wake <- struct{}{}:
	default:
	}
}

// Settled returns the values of the last target reached.
func (f *Follower) Settled() (Values, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.settled.Clone(), f.settled != nil
}

// Close stops the follower and waits for it to exit.
func (f *Follower) Close() {
	f.stop()
	<-f.done
}

func (f *Follower) loop() {
	defer close(f.done)
	for {
		select {
		case <-f.ctx.Done():
			return
		case <-f.wake:
		}

		for {
			f.mu.Lock()
			t := f.pending
			f.pending = nil
			if t == nil {
				f.mu.Unlock()
				break
			}
			runCtx, cancel := context.WithCancel(f.ctx)
			f.runCancel = cancel
			f.mu.Unlock()

			err := f.controls.Start(runCtx, *t)
			cancel()
			if err != nil {
				continue
			}

			f.mu.Lock()
			f.settled = t.Values.Clone()
			fn := f.onSettled
			f.mu.Unlock()
			if fn != nil {
				fn(t.Values.Clone())
			}
		}
	}
}

// binding ties a follower to an observer subscription.
type binding struct {
	follower *Follower
	unsub    func()
	detach   func()
}

// Detach stops following and detaches the observer.
func (b *binding) Detach() {
	b.unsub()
	if b.detach != nil {
		b.detach()
	}
	b.follower.Close()
}

// Follower returns the underlying follower.
func (b *binding) Follower() *Follower {
	return b.follower
}

// PointerFollow tilts an element toward the pointer.
type PointerFollow struct{ binding }

// NewPointerFollow maps pointer offsets to rotateX/rotateY targets.
func NewPointerFollow(ctx context.Context, pointer *observer.Pointer, controls Controls, tr Transition) *PointerFollow {
	f := NewFollower(ctx, controls)
	unsub := pointer.Subscribe(func(o observer.Offset) {
		f.Set(Target{Values: Values{RotateX: o.Y, RotateY: o.X}, Transition: tr})
	})
	log.Debug(log.CatAnim, "pointer follow attached")
	return &PointerFollow{binding{follower: f, unsub: unsub, detach: pointer.Detach}}
}

// Parallax shifts an element by the scroll observer's offset.
type Parallax struct{ binding }

// NewParallax maps scroll offsets to y with an immediate tween.
func NewParallax(ctx context.Context, scroll *observer.Scroll, controls Controls) *Parallax {
	f := NewFollower(ctx, controls)
	unsub := scroll.Subscribe(func(offset float64) {
		f.Set(Target{Values: Values{Y: offset}, Transition: Transitions["instant"]})
	})
	return &Parallax{binding{follower: f, unsub: unsub, detach: scroll.Detach}}
}

// ScrollReveal plays a variant's animate state when an element becomes
// visible and, for repeatable visibility, its initial state when hidden.
type ScrollReveal struct{ binding }

// NewScrollReveal binds visibility to variants. The element is moved to the
// initial state immediately.
func NewScrollReveal(ctx context.Context, visibility *observer.Visibility, controls Controls, variants Variants, tr Transition) *ScrollReveal {
	f := NewFollower(ctx, controls)
	if t, ok := variants.Target(Initial, Transitions["instant"]); ok {
		f.Set(t)
	}
	unsub := visibility.Subscribe(func(visible bool) {
		state := Initial
		if visible {
			state = Animate
		}
		if t, ok := variants.Target(state, tr); ok {
			f.Set(t)
		}
	})
	return &ScrollReveal{binding{follower: f, unsub: unsub, detach: visibility.Detach}}
}
