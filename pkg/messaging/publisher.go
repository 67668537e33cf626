// Package messaging defines the event publishing contract used by the
// service layer. Implementations live in pkg/nats.
package messaging

import (
	"context"
)

// VentasCreatedSubject is the subject sale-created events are published to.
const VentasCreatedSubject = "ventas.created"

type Event interface {
	Subject() string
	Payload() ([]byte, error)
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// NopPublisher discards all events. Used when eventing is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(_ context.Context, _ Event) error { return nil }
