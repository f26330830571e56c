package order

import (
	"errors"
	"time"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder. This ensures all orders are validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder")
)

// Order represents a delivery order posted by a merchant. It is the aggregate
// root that owns the order lifecycle from posting through award to delivery or
// cancellation.
//
// Order maintains these invariants:
//   - Must have valid order, merchant, commodity, recipient and address identifiers
//   - driverID is non-nil iff status is OnTransit or Delivered
//   - price is set exactly once, at award time, from the winning bid
//   - Delivered and Cancelled are terminal: no mutation ever succeeds afterwards
//
// The struct uses private fields so invariants can only change through the
// transition methods below.
type Order struct {
	id           kernel.UUID
	merchantID   kernel.UUID
	driverID     *kernel.UUID
	commodityID  kernel.UUID
	recipientID  kernel.UUID
	addressID    kernel.UUID
	price        int64
	status       Status
	createdAt    time.Time
	dispatchTime *time.Time
	arrivalTime  *time.Time

	isConstructed bool
}

// NewOrder creates an Order in PendingDispatch with no driver and no price.
// The caller supplies the posting merchant and the opaque references to the
// commodity, recipient and delivery address kept in external reference data.
func NewOrder(
	id kernel.UUID,
	merchantID kernel.UUID,
	commodityID kernel.UUID,
	recipientID kernel.UUID,
	addressID kernel.UUID,
	createdAt time.Time,
) (*Order, error) {
	if err := errors.Join(
		validateID("orderId", id),
		validateID("merchantId", merchantID),
		validateID("commodityId", commodityID),
		validateID("recipientId", recipientID),
		validateID("addressId", addressID),
	); err != nil {
		return nil, err
	}

	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}

	return &Order{
		id:            id,
		merchantID:    merchantID,
		commodityID:   commodityID,
		recipientID:   recipientID,
		addressID:     addressID,
		status:        PendingDispatch,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// RestoreOrder reconstructs an Order from persistence. It re-validates the
// status value and the status/driver consistency invariant so corrupt rows
// cannot produce an order that violates the state machine.
func RestoreOrder(
	id kernel.UUID,
	merchantID kernel.UUID,
	driverID *kernel.UUID,
	commodityID kernel.UUID,
	recipientID kernel.UUID,
	addressID kernel.UUID,
	price int64,
	status Status,
	createdAt time.Time,
	dispatchTime *time.Time,
	arrivalTime *time.Time,
) (*Order, error) {
	if err := errors.Join(
		validateID("orderId", id),
		validateID("merchantId", merchantID),
		validateID("commodityId", commodityID),
		validateID("recipientId", recipientID),
		validateID("addressId", addressID),
	); err != nil {
		return nil, err
	}

	if err := status.Validate(); err != nil {
		return nil, err
	}

	if err := status.ValidateCanHaveDriver(driverID != nil); err != nil {
		return nil, err
	}

	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return nil, err
		}
	}

	return &Order{
		id:            id,
		merchantID:    merchantID,
		driverID:      driverID,
		commodityID:   commodityID,
		recipientID:   recipientID,
		addressID:     addressID,
		price:         price,
		status:        status,
		createdAt:     createdAt,
		dispatchTime:  dispatchTime,
		arrivalTime:   arrivalTime,
		isConstructed: true,
	}, nil
}

// Validate ensures the Order was created through NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}

	return nil
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Merchant returns the identifier of the merchant who posted the order.
// The owner never changes after creation.
func (o *Order) Merchant() kernel.UUID {
	return o.merchantID
}

// Driver returns the assigned driver's identifier, or nil before award.
func (o *Order) Driver() *kernel.UUID {
	return o.driverID
}

// Commodity returns the reference to the commodity being delivered.
func (o *Order) Commodity() kernel.UUID {
	return o.commodityID
}

// Recipient returns the reference to the delivery recipient.
func (o *Order) Recipient() kernel.UUID {
	return o.recipientID
}

// Address returns the reference to the delivery address.
func (o *Order) Address() kernel.UUID {
	return o.addressID
}

// Price returns the awarded price, or 0 before award.
func (o *Order) Price() int64 {
	return o.price
}

// Status returns the current lifecycle state.
func (o *Order) Status() Status {
	return o.status
}

// CreatedAt returns when the merchant posted the order.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// DispatchTime returns when the order was awarded and went on transit,
// or nil before award.
func (o *Order) DispatchTime() *time.Time {
	return o.dispatchTime
}

// ArrivalTime returns when the order was delivered, or nil before delivery.
func (o *Order) ArrivalTime() *time.Time {
	return o.arrivalTime
}

// Award assigns the winning driver and price and moves the order to OnTransit.
// Only PendingDispatch orders can be awarded; the dispatch timestamp is set
// here and never changes afterwards.
func (o *Order) Award(driverID kernel.UUID, price kernel.Price, now time.Time) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if err := price.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Award()
	if err != nil {
		return err
	}

	dispatched := now
	o.status = newStatus
	o.driverID = &driverID
	o.price = price.Amount()
	o.dispatchTime = &dispatched
	return nil
}

// Complete marks the order as Delivered and records the arrival time.
// Only OnTransit orders (which always have a driver) can complete.
func (o *Order) Complete(now time.Time) error {
	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	arrived := now
	o.status = newStatus
	o.arrivalTime = &arrived
	return nil
}

// Cancel moves the order to Cancelled. Merchants may cancel only while the
// order is PendingDispatch; an OnTransit order can be cancelled solely through
// the admin override path. Terminal orders reject cancellation.
func (o *Order) Cancel(adminOverride bool) error {
	newStatus, err := o.status.Cancel(adminOverride)
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

func validateID(paramName string, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause(paramName, err)
	}
	return nil
}
