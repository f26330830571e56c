package commands

import (
	"errors"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/pkg/guard"
)

var ErrCompleteOrderCommandIsNotConstructed = errors.New(
	"CompleteOrderCommand must be created via NewCompleteOrderCommand constructor",
)

// CompleteOrderCommand represents the assigned driver, or an admin acting on
// their behalf, reporting a delivery.
type CompleteOrderCommand struct { //nolint:recvcheck //using for validation
	orderID       kernel.UUID
	actorID       kernel.UUID
	adminOverride bool

	guard guard.ConstructorGuard
}

// NewCompleteOrderCommand creates a command to mark an order delivered. The
// actor identifier names the caller and is checked against the assignment
// unless adminOverride is set.
func NewCompleteOrderCommand(orderID kernel.UUID, actorID kernel.UUID, adminOverride bool) (CompleteOrderCommand, error) {
	completeCommand := CompleteOrderCommand{
		adminOverride: adminOverride,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		completeCommand.setOrderID(orderID),
		completeCommand.setActorID(actorID),
	); err != nil {
		return CompleteOrderCommand{}, err
	}

	return completeCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being completed.
func (c CompleteOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// ActorID returns the identifier of the caller.
func (c CompleteOrderCommand) ActorID() kernel.UUID {
	return c.actorID
}

// AdminOverride reports whether the caller completes on the driver's behalf.
func (c CompleteOrderCommand) AdminOverride() bool {
	return c.adminOverride
}

func (c *CompleteOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CompleteOrderCommand) setActorID(actorID kernel.UUID) error {
	if err := actorID.Validate(); err != nil {
		return err
	}

	c.actorID = actorID
	return nil
}
