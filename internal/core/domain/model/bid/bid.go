package bid

import (
	"errors"
	"time"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/pkg/errs"
)

var (
	// ErrBidIsNotConstructed is returned when a Bid instance was not created
	// through NewBid or RestoreBid.
	ErrBidIsNotConstructed = errors.New("Bid must be created via NewBid or RestoreBid")
)

// Bid represents a driver's price offer on an open order. Each bid is owned by
// exactly one driver and belongs to exactly one order.
//
// Bid maintains these invariants:
//   - Must have valid bid, order, and driver identifiers and a positive price
//   - Status transitions only leave Pending, and only once
//   - At most one Pending bid per (order, driver) pair exists; a replacement
//     bid supersedes the previous one (enforced by the placing use case)
type Bid struct {
	id        kernel.UUID
	orderID   kernel.UUID
	driverID  kernel.UUID
	price     kernel.Price
	status    Status
	createdAt time.Time

	isConstructed bool
}

// NewBid creates a Pending bid by the given driver on the given order.
func NewBid(
	id kernel.UUID,
	orderID kernel.UUID,
	driverID kernel.UUID,
	price kernel.Price,
	createdAt time.Time,
) (*Bid, error) {
	if err := errors.Join(
		validateBidID("bidId", id),
		validateBidID("orderId", orderID),
		validateBidID("driverId", driverID),
		price.Validate(),
	); err != nil {
		return nil, err
	}

	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	return &Bid{
		id:            id,
		orderID:       orderID,
		driverID:      driverID,
		price:         price,
		status:        Pending,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// RestoreBid reconstructs a Bid from persistence, re-validating identifiers,
// price and status.
func RestoreBid(
	id kernel.UUID,
	orderID kernel.UUID,
	driverID kernel.UUID,
	price kernel.Price,
	status Status,
	createdAt time.Time,
) (*Bid, error) {
	if err := errors.Join(
		validateBidID("bidId", id),
		validateBidID("orderId", orderID),
		validateBidID("driverId", driverID),
		price.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	return &Bid{
		id:            id,
		orderID:       orderID,
		driverID:      driverID,
		price:         price,
		status:        status,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Bid was created through NewBid or RestoreBid.
func (b *Bid) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBidIsNotConstructed
	}

	return nil
}

// IsEqual compares two bids by identifier.
func (b *Bid) IsEqual(other *Bid) bool {
	return other != nil && b.id.IsEqual(other.id)
}

// ID returns the bid's unique identifier.
func (b *Bid) ID() kernel.UUID {
	return b.id
}

// Order returns the identifier of the order this bid targets.
func (b *Bid) Order() kernel.UUID {
	return b.orderID
}

// Driver returns the identifier of the driver who placed the bid.
func (b *Bid) Driver() kernel.UUID {
	return b.driverID
}

// Price returns the driver's offered price.
func (b *Bid) Price() kernel.Price {
	return b.price
}

// Status returns the current lifecycle state.
func (b *Bid) Status() Status {
	return b.status
}

// CreatedAt returns when the bid was placed.
func (b *Bid) CreatedAt() time.Time {
	return b.createdAt
}

// IsPending reports whether the bid is still the driver's live offer.
func (b *Bid) IsPending() bool {
	return b.status == Pending
}

// Accept marks the bid as the order's winning offer. Fails unless Pending.
func (b *Bid) Accept() error {
	newStatus, err := b.status.Accept()
	if err != nil {
		return err
	}

	b.status = newStatus
	return nil
}

// Reject closes the bid because another offer won the order. Fails unless Pending.
func (b *Bid) Reject() error {
	newStatus, err := b.status.Reject()
	if err != nil {
		return err
	}

	b.status = newStatus
	return nil
}

// Withdraw pulls the driver's offer. Fails unless Pending. Used both for
// explicit withdrawal and for superseding a bid with a replacement offer.
func (b *Bid) Withdraw() error {
	newStatus, err := b.status.Withdraw()
	if err != nil {
		return err
	}

	b.status = newStatus
	return nil
}

func validateBidID(paramName string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(paramName, err)
	}
	return nil
}
