package events

import (
	"time"

	"loadboard/internal/core/domain/model/bid"
	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/domain/model/order"
)

// Kind identifies the type of a domain event.
type Kind string

const (
	// OrderPosted is published when a merchant opens a new order for bidding.
	OrderPosted Kind = "order_posted"

	// BidPlaced is published when a driver places or replaces a bid.
	BidPlaced Kind = "bid_placed"

	// BidAwarded is published when a merchant accepts a bid and the order
	// goes on transit.
	BidAwarded Kind = "bid_awarded"

	// OrderCancelled is published when an order is called off.
	OrderCancelled Kind = "order_cancelled"

	// OrderDelivered is published when the assigned driver completes the order.
	OrderDelivered Kind = "order_delivered"
)

// OrderSnapshot carries the order state at the moment the event occurred.
type OrderSnapshot struct {
	ID         kernel.UUID
	MerchantID kernel.UUID
	DriverID   *kernel.UUID
	Price      int64
	Status     order.Status
}

// BidSnapshot carries the bid state at the moment the event occurred.
type BidSnapshot struct {
	ID       kernel.UUID
	DriverID kernel.UUID
	Price    int64
	Status   bid.Status
}

// Event is a fact about an order's lifecycle, produced after the owning
// transaction commits. Bidders lists the drivers who held a pending bid on
// the order when the event occurred, so subscribers interested in the order
// can be notified without another store round trip.
type Event struct {
	Kind       Kind
	Order      OrderSnapshot
	Bid        *BidSnapshot
	Bidders    []kernel.UUID
	OccurredAt time.Time
}

// NewOrderEvent builds an event from the order aggregate.
func NewOrderEvent(kind Kind, o *order.Order, bidders []kernel.UUID, occurredAt time.Time) Event {
	return Event{
		Kind:       kind,
		Order:      snapshotOrder(o),
		Bidders:    bidders,
		OccurredAt: occurredAt,
	}
}

// NewBidEvent builds an event from the order aggregate and the bid that
// triggered it.
func NewBidEvent(kind Kind, o *order.Order, b *bid.Bid, bidders []kernel.UUID, occurredAt time.Time) Event {
	snapshot := snapshotBid(b)
	return Event{
		Kind:       kind,
		Order:      snapshotOrder(o),
		Bid:        &snapshot,
		Bidders:    bidders,
		OccurredAt: occurredAt,
	}
}

func snapshotOrder(o *order.Order) OrderSnapshot {
	return OrderSnapshot{
		ID:         o.ID(),
		MerchantID: o.Merchant(),
		DriverID:   o.Driver(),
		Price:      o.Price(),
		Status:     o.Status(),
	}
}

func snapshotBid(b *bid.Bid) BidSnapshot {
	return BidSnapshot{
		ID:       b.ID(),
		DriverID: b.Driver(),
		Price:    b.Price().Amount(),
		Status:   b.Status(),
	}
}
