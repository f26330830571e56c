package commands

import (
	"errors"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/pkg/guard"
)

var ErrCancelOrderCommandIsNotConstructed = errors.New(
	"CancelOrderCommand must be created via NewCancelOrderCommand constructor",
)

// CancelOrderCommand represents a request to call off an order. Merchants can
// cancel their own orders while bidding is open; admins can additionally pull
// an order that is already on transit.
type CancelOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	actorID       kernel.UUID
	adminOverride bool

	guard guard.ConstructorGuard
}

// NewCancelOrderCommand creates a command to cancel an order. adminOverride
// marks the caller as an administrator, which skips the ownership check and
// unlocks cancelling OnTransit orders.
func NewCancelOrderCommand(orderID kernel.UUID, actorID kernel.UUID, adminOverride bool) (CancelOrderCommand, error) {
	cancelCommand := CancelOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cancelCommand.setOrderID(orderID),
		cancelCommand.setActorID(actorID),
	); err != nil {
		return CancelOrderCommand{}, err
	}

	cancelCommand.adminOverride = adminOverride

	return cancelCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelOrderCommand) Validate() error {
	return c.guard.Validate(ErrCancelOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being cancelled.
func (c CancelOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the identifier of the caller.
func (c CancelOrderCommand) ActorID() kernel.UUID {
	return c.actorID
}

// AdminOverride reports whether the caller acts as an administrator.
func (c CancelOrderCommand) AdminOverride() bool {
	return c.adminOverride
}

func (c *CancelOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CancelOrderCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
