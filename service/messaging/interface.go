package messaging

import (
	"context"
	"errors"
)

// ErrQueueFull is returned by TryPublish when the queue cannot accept a
// message without blocking.
var ErrQueueFull = errors.New("queue full")

// Queue represents an abstract message queue for any payload type. The
// approval service publishes lifecycle events through it; consumers are the
// orchestration engine and any human-approval UI.
type Queue[T any] interface {
	// Publish adds a new message with payload to the queue
	Publish(ctx context.Context, t *T) error

	// Consume retrieves a single message from the queue
	Consume(ctx context.Context) (Message[T], error)
}

// TryPublisher is an optional queue capability for callers that must never
// block on back-pressure, such as lifecycle notifications emitted inside a
// state transition.
type TryPublisher[T any] interface {
	// TryPublish adds a new message without blocking; it returns
	// ErrQueueFull when the queue has no room
	TryPublish(ctx context.Context, t *T) error
}

// Message represents a message retrieved from a queue
type Message[T any] interface {
	// T returns the payload of this message
	T() *T

	// Ack acknowledges successful processing of this message
	Ack() error

	// Nack indicates failure in processing this message
	Nack(err error) error
}
