package ports

import (
	"context"
	"time"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
// Provides methods for storing, retrieving, and querying order entities
// based on their status and driver assignment.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	// The order must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	// The order must exist in the repository and be valid.
	Update(ctx context.Context, aggregate *order.Order) error

	// UpdateIfStatus persists the aggregate only if the stored row is still in
	// the expected status, updating aggregate and status check in a single
	// conditional statement. Returns false (and no error) when the row was in
	// a different status, which means another writer moved the order first.
	//
	// This is the guard that serializes concurrent accepts: of N merchants
	// accepting bids on the same order, exactly one sees true.
	UpdateIfStatus(ctx context.Context, aggregate *order.Order, expected order.Status) (bool, error)

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInPendingDispatchOlderThan retrieves orders still open for bidding
	// that were created before the cutoff. Used by the stale order sweeper.
	GetAllInPendingDispatchOlderThan(ctx context.Context, cutoff time.Time) ([]*order.Order, error)
}
