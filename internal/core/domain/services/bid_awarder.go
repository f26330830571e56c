package services

import (
	"errors"
	"time"

	"loadboard/internal/core/domain/model/bid"
	"loadboard/internal/core/domain/model/order"
)

// ErrBidDoesNotBelongToOrder is returned when the winning bid passed to Award
// targets a different order than the one being awarded.
var ErrBidDoesNotBelongToOrder = errors.New("bid does not belong to order")

// BidAwarder is a domain service that settles the bidding round of an order
// when the merchant accepts a bid.
//
// Business rules:
//   - The winning bid must be Pending and belong to the awarded order
//   - The order must still be PendingDispatch
//   - Exactly one bid is accepted; every other pending bid is rejected
//   - The order takes the winner's driver and price and goes OnTransit
//
// The awarder mutates the aggregates in memory only; the calling use case is
// responsible for persisting all of them in a single transaction.
type BidAwarder struct{}

// NewBidAwarder creates a new BidAwarder instance.
func NewBidAwarder() BidAwarder {
	return BidAwarder{}
}

// Award accepts the winning bid, rejects the remaining pending bids and moves
// the order on transit. losing must contain the order's other pending bids;
// the winner may appear in the slice and is skipped.
func (a BidAwarder) Award(o *order.Order, winning *bid.Bid, losing []*bid.Bid, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := winning.Validate(); err != nil {
		return err
	}

	if !winning.Order().IsEqual(o.ID()) {
		return ErrBidDoesNotBelongToOrder
	}

	// Check both transitions up front so a failure leaves every aggregate
	// untouched.
	if _, err := winning.Status().Accept(); err != nil {
		return err
	}
	if _, err := o.Status().Award(); err != nil {
		return err
	}

	if err := winning.Accept(); err != nil {
		return err
	}

	if err := o.Award(winning.Driver(), winning.Price(), now); err != nil {
		return err
	}

	for _, b := range losing {
		if b.IsEqual(winning) {
			continue
		}
		if err := b.Reject(); err != nil {
			return err
		}
	}

	return nil
}
