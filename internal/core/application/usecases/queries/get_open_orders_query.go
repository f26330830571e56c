// Package queries contains read-only operations against the store.
// Implements the Query side of the CQRS architecture: handlers bypass the
// aggregates and read projections straight from the database.
package queries

import (
	"errors"
	"time"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/pkg/guard"
)

var ErrGetOpenOrdersQueryIsNotConstructed = errors.New(
	"GetOpenOrdersQuery must be created via NewGetOpenOrdersQuery constructor",
)

// GetOpenOrdersQuery retrieves all orders currently open for bidding.
// Drivers browse this listing to find work.
//
// Example:
//
//	query := NewGetOpenOrdersQuery()
//	handler := NewGetOpenOrdersQueryHandler(db)
//
//	orders, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get open orders: %w", err)
//	}
//	fmt.Printf("Found %d orders open for bidding\n", len(orders))
type GetOpenOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetOpenOrdersQuery creates a query to retrieve open orders.
// This is a parameterless query that fetches every PendingDispatch order.
func NewGetOpenOrdersQuery() GetOpenOrdersQuery {
	return GetOpenOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetOpenOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetOpenOrdersQueryIsNotConstructed)
}

// GetOpenOrdersQueryResponse represents an order on the open board.
type GetOpenOrdersQueryResponse struct {
	ID          kernel.UUID
	MerchantID  kernel.UUID
	CommodityID kernel.UUID
	AddressID   kernel.UUID
	CreatedAt   time.Time
}
