package commands

import (
	"context"
	"time"

	"loadboard/internal/core/domain/events"
	"loadboard/internal/core/domain/model/order"
	"loadboard/internal/core/ports"
)

// CancelStaleOrdersCommandHandler sweeps orders that stayed open past the
// cutoff. Each order is cancelled in its own transaction with the same
// conditional claim the interactive cancel uses, so a sweep racing a live
// accept simply skips the order.
type CancelStaleOrdersCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
}

// NewCancelStaleOrdersCommandHandler creates a handler for the stale order sweep.
func NewCancelStaleOrdersCommandHandler(uowFactory UoWFactory, publisher ports.EventPublisher) CancelStaleOrdersCommandHandler {
	return CancelStaleOrdersCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the sweep command. Returns the first store error
// encountered; orders claimed by a concurrent accept are skipped silently.
func (h CancelStaleOrdersCommandHandler) Handle(ctx context.Context, cmd CancelStaleOrdersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	stale, err := uow.OrderRepository().GetAllInPendingDispatchOlderThan(ctx, cmd.Cutoff())
	if rollbackErr := uow.Rollback(ctx); rollbackErr != nil && err == nil {
		err = rollbackErr
	}
	if err != nil {
		return err
	}

	for _, o := range stale {
		if err = h.cancelOne(ctx, o); err != nil {
			return err
		}
	}

	return nil
}

func (h CancelStaleOrdersCommandHandler) cancelOne(ctx context.Context, o *order.Order) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := o.Cancel(false); err != nil {
		return err
	}

	claimed, err := uow.OrderRepository().UpdateIfStatus(ctx, o, order.PendingDispatch)
	if err != nil {
		return err
	}
	if !claimed {
		// awarded or cancelled since the sweep query ran
		return nil
	}

	bidRepo := uow.BidRepository()
	pending, err := bidRepo.GetPendingByOrder(ctx, o.ID())
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
	release := orderGate.lock(o.ID().String())
	defer release()

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, events.NewOrderEvent(events.OrderCancelled, o, bidders(pending), now))

	return nil
}
