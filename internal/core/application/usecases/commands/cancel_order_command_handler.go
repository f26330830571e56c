package commands

import (
	"context"
	"time"

	"loadboard/internal/core/domain/events"
	"loadboard/internal/core/domain/model/order"
	"loadboard/internal/core/ports"
	"loadboard/internal/pkg/errs"
)

// CancelOrderCommandHandler handles the business logic for order cancellation.
//
// Behavior:
//   - Merchants may cancel their own PendingDispatch orders
//   - Admins may cancel any order, including OnTransit ones
//   - All pending bids on the order are rejected in the same transaction
//   - The order row is claimed with a conditional update so a cancel racing
//     an accept cannot both win
//   - order_cancelled is published after the transaction commits
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(uowFactory UoWFactory, publisher ports.EventPublisher) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the cancellation command.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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
	bidRepo := uow.BidRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if !cmd.AdminOverride() && !o.Merchant().IsEqual(cmd.ActorID()) {
		return errs.NewPermissionDeniedError("orderId", cmd.OrderID().String())
	}

	loaded := o.Status()
	if err = o.Cancel(cmd.AdminOverride()); err != nil {
		return err
	}

	claimed, err := orderRepo.UpdateIfStatus(ctx, o, loaded)
	if err != nil {
		return err
	}
	if !claimed {
		// The only transition that can race a cancel out of PendingDispatch
		// is an award.
		if loaded == order.PendingDispatch {
			return ErrAlreadyAwarded
		}
		return errs.NewInvalidTransitionError("order", loaded.String(), order.Cancelled.String())
	}

	pending, err := bidRepo.GetPendingByOrder(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	for _, b := range pending {
		if err = b.Reject(); err != nil {
			return err
		}
		if err = bidRepo.Update(ctx, b); err != nil {
			return err
		}
	}

	now := time.Now().UTC()

	// The gate spans commit and publish so subscribers see this order's
	// events in commit sequence.
	release := orderGate.lock(cmd.OrderID().String())
	defer release()

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, events.NewOrderEvent(events.OrderCancelled, o, bidders(pending), now))

	return nil
}
