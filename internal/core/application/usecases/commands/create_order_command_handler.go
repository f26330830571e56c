package commands

import (
	"context"
	"time"

	"loadboard/internal/core/domain/events"
	"loadboard/internal/core/domain/model/order"
	"loadboard/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for posting an order.
// New orders start in PendingDispatch and are immediately open for bidding.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewCreateOrderCommandHandler creates a handler for order posting operations.
// Requires an OrderUoWFactory for transactional persistence and an
// EventPublisher for the post-commit order_posted event.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the order posting command.
// Creates the order in PendingDispatch and publishes order_posted after the
// transaction commits.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	now := time.Now().UTC()

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.MerchantID(),
		cmd.CommodityID(),
		cmd.RecipientID(),
		cmd.AddressID(),
		now,
	)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	// The gate spans commit and publish so subscribers see this order's
	// events in commit sequence.
	release := orderGate.lock(cmd.OrderID().String())
	defer release()

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, events.NewOrderEvent(events.OrderPosted, newOrder, nil, now))

	return nil
}
