// Package pubsub provides a generic publish/subscribe event system used to
// carry engine notifications across goroutines and into the Bubble Tea loop.
package pubsub

import (
	"context"
	"time"
)

// EventType represents the type of event being published.
type EventType string

const (
	CreatedEvent EventType = "created"
	UpdatedEvent EventType = "updated"

	// AppearanceChangedEvent carries a newly broadcast resolved state.
	AppearanceChangedEvent EventType = "appearance.changed"
	// BreakpointChangedEvent carries a new active breakpoint.
	BreakpointChangedEvent EventType = "breakpoint.changed"
	// FaultEvent carries a subscriber fault diagnostic.
	FaultEvent EventType = "fault"
	// PreferenceChangedEvent signals the stored preference changed on disk.
	PreferenceChangedEvent EventType = "preference.changed"
	// FrameEvent carries an animation frame.
	FrameEvent EventType = "frame"
)

// Event represents a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
