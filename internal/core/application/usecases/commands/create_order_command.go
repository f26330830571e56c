package commands

import (
	"errors"

	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand represents a merchant's request to post a new delivery
// order for bidding. The commodity, recipient and address identifiers are
// opaque references to reference data owned elsewhere.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, merchantID, commodityID, recipientID, addressID)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, publisher)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	merchantID  kernel.UUID
	commodityID kernel.UUID
	recipientID kernel.UUID
	addressID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to post a new delivery order.
// Validates that every identifier is a constructed UUID.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	merchantID kernel.UUID,
	commodityID kernel.UUID,
	recipientID kernel.UUID,
	addressID kernel.UUID,
) (CreateOrderCommand, error) {
	orderCommand := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderCommand.setOrderID(orderID),
		orderCommand.setMerchantID(merchantID),
		orderCommand.setCommodityID(commodityID),
		orderCommand.setRecipientID(recipientID),
		orderCommand.setAddressID(addressID),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return orderCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// MerchantID returns the identifier of the posting merchant.
func (c CreateOrderCommand) MerchantID() kernel.UUID {
	return c.merchantID
}

// CommodityID returns the reference to the commodity being delivered.
func (c CreateOrderCommand) CommodityID() kernel.UUID {
	return c.commodityID
}

// RecipientID returns the reference to the delivery recipient.
func (c CreateOrderCommand) RecipientID() kernel.UUID {
	return c.recipientID
}

// AddressID returns the reference to the delivery address.
func (c CreateOrderCommand) AddressID() kernel.UUID {
	return c.addressID
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setMerchantID(merchantID kernel.UUID) error {
	if err := merchantID.Validate(); err != nil {
		return err
	}

	c.merchantID = merchantID
	return nil
}

func (c *CreateOrderCommand) setCommodityID(commodityID kernel.UUID) error {
	if err := commodityID.Validate(); err != nil {
		return err
	}

	c.commodityID = commodityID
	return nil
}

func (c *CreateOrderCommand) setRecipientID(recipientID kernel.UUID) error {
	if err := recipientID.Validate(); err != nil {
		return err
	}

	c.recipientID = recipientID
	return nil
}

func (c *CreateOrderCommand) setAddressID(addressID kernel.UUID) error {
	if err := addressID.Validate(); err != nil {
		return err
	}

	c.addressID = addressID
	return nil
}
