package ports

import (
	"context"

	"loadboard/internal/core/domain/events"
)

// EventPublisher delivers domain events to interested parties after the
// owning transaction has committed.
//
// Delivery is best effort and at most once: implementations must never block
// the caller on a slow consumer and must not fail the business operation, so
// Publish returns nothing. Losing an event costs a notification, not data.
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event)
}
