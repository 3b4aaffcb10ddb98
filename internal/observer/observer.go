// Package observer watches environment signals and exposes each as a
// current value plus change notifications.
//
// Every observer is attached to a Source, the registry of the underlying
// platform listener. Detach removes that listener; afterwards no source
// event reaches a subscriber.
package observer

import (
	"errors"
	"sync"
	"sync/atomic"
)

// ErrObserverUnavailable is logged when the platform signal behind an
// observer cannot be attached. The observer then holds a fixed default.
var ErrObserverUnavailable = errors.New("observer source unavailable")

// Observable is the capability shared by all observers.
type Observable[T any] interface {
	Current() T
	Subscribe(fn func(T)) (unsubscribe func())
}

// Source registers listeners for raw platform events.
type Source[E any] interface {
	Listen(fn func(E)) (remove func())
}

type listener[E any] struct {
	fn   func(E)
	live atomic.Bool
}

// Emitter is an in-process Source. Listeners run in registration order on
// the emitting goroutine.
type Emitter[E any] struct {
	mu        sync.Mutex
	listeners []*listener[E]
}

// NewEmitter creates an emitter with no listeners.
func NewEmitter[E any]() *Emitter[E] {
	return &Emitter[E]{}
}

// Listen implements Source. The returned func is idempotent and takes
// effect immediately, even during an in-progress Emit.
func (e *Emitter[E]) Listen(fn func(E)) func() {
	l := &listener[E]{fn: fn}
	l.live.Store(true)

	e.mu.Lock()
	e.listeners = append(e.listeners, l)
	e.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			l.live.Store(false)
			e.mu.Lock()
			defer e.mu.Unlock()
			for i, cur := range e.listeners {
				if cur == l {
					e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
					break
				}
			}
		})
	}
}

// Emit delivers v to every live listener and returns how many ran.
func (e *Emitter[E]) Emit(v E) int {
	e.mu.Lock()
	snapshot := make([]*listener[E], len(e.listeners))
	copy(snapshot, e.listeners)
	e.mu.Unlock()

	n := 0
	for _, l := range snapshot {
		if !l.live.Load() {
			continue
		}
		l.fn(v)
		n++
	}
	return n
}

// Listeners reports the number of registered listeners.
func (e *Emitter[E]) Listeners() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners)
}

// subject holds the current value and subscribers of one observer.
type subject[T any] struct {
	mu      sync.Mutex
	current T
	subs    Emitter[T]
	// handling serializes source events so each is handled to completion
	// before the next.
	handling sync.Mutex
	detached atomic.Bool
	remove   func()
}

func (s *subject[T]) Current() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *subject[T]) Subscribe(fn func(T)) func() {
	return s.subs.Listen(fn)
}

// set stores v and reports the previous value.
func (s *subject[T]) set(v T) T {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.current
	s.current = v
	return prev
}

func (s *subject[T]) publish(v T) {
	if s.detached.Load() {
		return
	}
	s.subs.Emit(v)
}

// attach listens on src, routing events to handle one at a time.
func attach[E, T any](s *subject[T], src Source[E], handle func(E)) {
	s.remove = src.Listen(func(ev E) {
		s.handling.Lock()
		defer s.handling.Unlock()
		if s.detached.Load() {
			return
		}
		handle(ev)
	})
}

// Detach removes the platform listener. It is safe to call more than once.
func (s *subject[T]) Detach() {
	if s.detached.Swap(true) {
		return
	}
	if s.remove != nil {
		s.remove()
	}
}

// Detached reports whether Detach has run.
func (s *subject[T]) Detached() bool {
	return s.detached.Load()
}
