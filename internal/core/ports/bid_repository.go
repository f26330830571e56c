// Package ports defines repository and messaging interfaces for the loadboard
// domain. These interfaces establish contracts between the domain layer and
// infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"

	"loadboard/internal/core/domain/model/bid"
	"loadboard/internal/core/domain/model/kernel"
)

// BidRepository defines the persistence contract for bid aggregates.
type BidRepository interface {
	// Add persists a new bid aggregate to storage.
	// The bid must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *bid.Bid) error

	// Update persists changes to an existing bid aggregate.
	Update(ctx context.Context, aggregate *bid.Bid) error

	// UpdateIfStatus persists the aggregate only if the stored row still has
	// the expected status. Returns false when the row was not claimed, which
	// means a concurrent writer moved the bid out of the expected status
	// after this transaction read it.
	UpdateIfStatus(ctx context.Context, aggregate *bid.Bid, expected bid.Status) (bool, error)

	// Get retrieves a bid aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*bid.Bid, error)

	// GetPendingByOrder retrieves all pending bids on the given order.
	// The result is the live bidding round; terminal bids are excluded.
	GetPendingByOrder(ctx context.Context, orderID kernel.UUID) ([]*bid.Bid, error)

	// GetPendingByOrderAndDriver retrieves the driver's live bid on the order,
	// if any. At most one exists; errs.ObjectNotFoundError when there is none.
	GetPendingByOrderAndDriver(ctx context.Context, orderID kernel.UUID, driverID kernel.UUID) (*bid.Bid, error)
}
