package commands

import (
	"errors"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/pkg/guard"
)

var ErrAcceptBidCommandIsNotConstructed = errors.New(
	"AcceptBidCommand must be created via NewAcceptBidCommand constructor",
)

// AcceptBidCommand represents a merchant's decision to award their order to
// one of the pending bids.
type AcceptBidCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	bidID      kernel.UUID
	merchantID kernel.UUID

	guard guard.ConstructorGuard
}

// NewAcceptBidCommand creates a command to accept a bid. The merchant
// identifier names the caller and is checked against the order's owner.
func NewAcceptBidCommand(orderID kernel.UUID, bidID kernel.UUID, merchantID kernel.UUID) (AcceptBidCommand, error) {
	acceptCommand := AcceptBidCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		acceptCommand.setOrderID(orderID),
		acceptCommand.setBidID(bidID),
		acceptCommand.setMerchantID(merchantID),
	); err != nil {
		return AcceptBidCommand{}, err
	}

	return acceptCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptBidCommand) Validate() error {
	return c.guard.Validate(ErrAcceptBidCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being awarded.
func (c AcceptBidCommand) OrderID() kernel.UUID {
	return c.orderID
}

// BidID returns the identifier of the winning bid.
func (c AcceptBidCommand) BidID() kernel.UUID {
	return c.bidID
}

// MerchantID returns the identifier of the calling merchant.
func (c AcceptBidCommand) MerchantID() kernel.UUID {
	return c.merchantID
}

func (c *AcceptBidCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AcceptBidCommand) setBidID(bidID kernel.UUID) error {
	if err := bidID.Validate(); err != nil {
		return err
	}

	c.bidID = bidID
	return nil
}

func (c *AcceptBidCommand) setMerchantID(merchantID kernel.UUID) error {
	if err := merchantID.Validate(); err != nil {
		return err
	}

	c.merchantID = merchantID
	return nil
}
