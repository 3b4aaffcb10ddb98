// Package broadcast delivers state changes to registered subscribers,
// suppressing values equal to the last one delivered.
package broadcast

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/zjrosen/tint/internal/log"
	"github.com/zjrosen/tint/internal/pubsub"
)

// Fault reports a subscriber that panicked during delivery.
type Fault struct {
	SubscriberID string
	Value        any
	Panic        any
}

func (f Fault) Error() string {
	return fmt.Sprintf("subscriber %s panicked: %v", f.SubscriberID, f.Panic)
}

// Subscription is a handle to a registered callback.
type Subscription struct {
	id     string
	cancel func()
}

// ID returns the subscriber's identifier as used in faults.
func (s *Subscription) ID() string {
	return s.id
}

// Unsubscribe removes the callback. Safe to call more than once; after it
// returns the callback is never invoked again.
func (s *Subscription) Unsubscribe() {
	s.cancel()
}

type subscriber[T any] struct {
	id      string
	fn      func(T)
	removed bool
}

// Broadcaster fans out values of type T in registration order.
type Broadcaster[T any] struct {
	mu    sync.Mutex
	equal func(a, b T) bool
	subs  []*subscriber[T]
	last  T
	sent  bool

	faults *pubsub.Broker[Fault]
}

// New creates a broadcaster. equal decides whether a value is a duplicate
// of the last one delivered.
func New[T any](equal func(a, b T) bool) *Broadcaster[T] {
	return &Broadcaster[T]{
		equal:  equal,
		faults: pubsub.NewBroker[Fault](),
	}
}

// NewComparable creates a broadcaster using ==.
func NewComparable[T comparable]() *Broadcaster[T] {
	return New(func(a, b T) bool { return a == b })
}

// Faults is the diagnostic channel for subscriber panics.
func (b *Broadcaster[T]) Faults() *pubsub.Broker[Fault] {
	return b.faults
}

// Subscribe registers fn.
func (b *Broadcaster[T]) Subscribe(fn func(T)) *Subscription {
	sub := &subscriber[T]{id: uuid.NewString(), fn: fn}

	b.mu.Lock()
	b.subs = append(b.subs, sub)
	b.mu.Unlock()

	var once sync.Once
	return &Subscription{
		id: sub.id,
		cancel: func() {
			once.Do(func() { b.remove(sub) })
		},
	}
}

func (b *Broadcaster[T]) remove(sub *subscriber[T]) {
	b.mu.Lock()
	defer b.mu.Unlock()
	sub.removed = true
	for i, cur := range b.subs {
		if cur == sub {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// Notify delivers v unless it equals the last delivered value. The first
// call always delivers. It reports whether delivery happened.
func (b *Broadcaster[T]) Notify(v T) bool {
	b.mu.Lock()
	if b.sent && b.equal(b.last, v) {
		b.mu.Unlock()
		return false
	}
	b.last = v
	b.sent = true
	snapshot := make([]*subscriber[T], len(b.subs))
	copy(snapshot, b.subs)
	b.mu.Unlock()

	for _, sub := range snapshot {
		if b.isRemoved(sub) {
			continue
		}
		b.deliver(sub, v)
	}
	return true
}

func (b *Broadcaster[T]) isRemoved(sub *subscriber[T]) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return sub.removed
}

func (b *Broadcaster[T]) deliver(sub *subscriber[T], v T) {
	defer func() {
		if r := recover(); r != nil {
			fault := Fault{SubscriberID: sub.id, Value: v, Panic: r}
			log.Error(log.CatBroadcast, "subscriber fault", "subscriber", sub.id, "panic", r)
			b.faults.Publish(pubsub.FaultEvent, fault)
		}
	}()
	sub.fn(v)
}

// Last returns the last delivered value.
func (b *Broadcaster[T]) Last() (T, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.last, b.sent
}

// Len returns the number of subscribers.
func (b *Broadcaster[T]) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Close shuts down the fault channel. Subscribers stay registered.
func (b *Broadcaster[T]) Close() {
	b.faults.Close()
}
