package commands

import (
	"errors"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/pkg/guard"
)

var ErrPlaceBidCommandIsNotConstructed = errors.New(
	"PlaceBidCommand must be created via NewPlaceBidCommand constructor",
)

// PlaceBidCommand represents a driver's offer to deliver an order at a price.
// Placing a second bid on the same order withdraws the driver's previous one.
type PlaceBidCommand struct { //nolint:recvcheck //using for validation
	bidID    kernel.UUID
	orderID  kernel.UUID
	driverID kernel.UUID
	price    kernel.Price

	guard guard.ConstructorGuard
}

// NewPlaceBidCommand creates a command to place a bid on an open order.
// Validates the identifiers and the price value object.
func NewPlaceBidCommand(
	bidID kernel.UUID,
	orderID kernel.UUID,
	driverID kernel.UUID,
	price kernel.Price,
) (PlaceBidCommand, error) {
	bidCommand := PlaceBidCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		bidCommand.setBidID(bidID),
		bidCommand.setOrderID(orderID),
		bidCommand.setDriverID(driverID),
		bidCommand.setPrice(price),
	); err != nil {
		return PlaceBidCommand{}, err
	}

	return bidCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c PlaceBidCommand) Validate() error {
	return c.guard.Validate(ErrPlaceBidCommandIsNotConstructed)
}

// BidID returns the unique identifier for the new bid.
func (c PlaceBidCommand) BidID() kernel.UUID {
	return c.bidID
}

// OrderID returns the identifier of the order being bid on.
func (c PlaceBidCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DriverID returns the identifier of the bidding driver.
func (c PlaceBidCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Price returns the driver's offered price.
func (c PlaceBidCommand) Price() kernel.Price {
	return c.price
}

func (c *PlaceBidCommand) setBidID(bidID kernel.UUID) error {
	if err := bidID.Validate(); err != nil {
		return err
	}

	c.bidID = bidID
	return nil
}

func (c *PlaceBidCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *PlaceBidCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	c.driverID = driverID
	return nil
}

func (c *PlaceBidCommand) setPrice(price kernel.Price) error {
	if err := price.Validate(); err != nil {
		return err
	}

	c.price = price
	return nil
}
