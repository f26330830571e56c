package queries

import (
	"errors"
	"time"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/pkg/guard"
)

var ErrGetOrderBidsQueryIsNotConstructed = errors.New(
	"GetOrderBidsQuery must be created via NewGetOrderBidsQuery constructor",
)

// GetOrderBidsQuery retrieves the full bid history of one order, terminal
// bids included. Merchants use it to compare offers before accepting one.
type GetOrderBidsQuery struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOrderBidsQuery creates a query for the bids on the given order.
func NewGetOrderBidsQuery(orderID kernel.UUID) (GetOrderBidsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetOrderBidsQuery{}, err
	}

	return GetOrderBidsQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderBidsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderBidsQueryIsNotConstructed)
}

// OrderID returns the identifier of the order whose bids are listed.
func (q GetOrderBidsQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetOrderBidsQueryResponse represents one bid on the order.
type GetOrderBidsQueryResponse struct {
	ID        kernel.UUID
	DriverID  kernel.UUID
	Price     int64
	Status    string
	CreatedAt time.Time
}
