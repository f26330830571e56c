package commands

import (
	"context"
	"time"

	"loadboard/internal/core/domain/events"
	"loadboard/internal/core/domain/model/order"
	"loadboard/internal/core/ports"
	"loadboard/internal/pkg/errs"
)

// CompleteOrderCommandHandler handles the business logic for delivery
// completion. Only the assigned driver, or an admin acting on their behalf,
// may complete an order, and only while it is OnTransit.
type CompleteOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	publisher  ports.EventPublisher
}

// NewCompleteOrderCommandHandler creates a handler for delivery completion.
func NewCompleteOrderCommandHandler(uowFactory OrderUoWFactory, publisher ports.EventPublisher) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the completion command.
func (h CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if !cmd.AdminOverride() {
		if o.Driver() == nil || !o.Driver().IsEqual(cmd.ActorID()) {
			return errs.NewPermissionDeniedError("orderId", cmd.OrderID().String())
		}
	}

	now := time.Now().UTC()
	if err = o.Complete(now); err != nil {
		return err
	}

	// Conditional write: a concurrent admin cancel may have already moved
	// the order to a terminal state, and a stale Delivered must never
	// overwrite it.
	claimed, err := orderRepo.UpdateIfStatus(ctx, o, order.OnTransit)
	if err != nil {
		return err
	}

	if !claimed {
		return errs.NewInvalidTransitionError(
			"order", order.OnTransit.String(), order.Delivered.String())
	}

	// The gate spans commit and publish so subscribers see this order's
	// events in commit sequence.
	release := orderGate.lock(cmd.OrderID().String())
	defer release()

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, events.NewOrderEvent(events.OrderDelivered, o, nil, now))

	return nil
}
