package commands

import (
	"errors"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/pkg/guard"
)

var ErrWithdrawBidCommandIsNotConstructed = errors.New(
	"WithdrawBidCommand must be created via NewWithdrawBidCommand constructor",
)

// WithdrawBidCommand represents a driver's request to pull their pending bid.
type WithdrawBidCommand struct { //nolint:recvcheck //using for validation
	bidID    kernel.UUID
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

// NewWithdrawBidCommand creates a command to withdraw a bid. The driver
// identifier names the caller and is checked against the bid's owner.
func NewWithdrawBidCommand(bidID kernel.UUID, driverID kernel.UUID) (WithdrawBidCommand, error) {
	withdrawCommand := WithdrawBidCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		withdrawCommand.setBidID(bidID),
		withdrawCommand.setDriverID(driverID),
	); err != nil {
		return WithdrawBidCommand{}, err
	}

	return withdrawCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c WithdrawBidCommand) Validate() error {
	return c.guard.Validate(ErrWithdrawBidCommandIsNotConstructed)
}

// BidID returns the identifier of the bid being withdrawn.
func (c WithdrawBidCommand) BidID() kernel.UUID {
	return c.bidID
}

// DriverID returns the identifier of the calling driver.
func (c WithdrawBidCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c *WithdrawBidCommand) setBidID(bidID kernel.UUID) error {
	if err := bidID.Validate(); err != nil {
		return err
	}

	c.bidID = bidID
	return nil
}

func (c *WithdrawBidCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	c.driverID = driverID
	return nil
}
