package commands

import (
	"context"
	"errors"
	"time"

	"loadboard/internal/core/domain/events"
	"loadboard/internal/core/domain/model/order"
	"loadboard/internal/core/domain/services"
	"loadboard/internal/core/ports"
	"loadboard/internal/pkg/errs"
)

// ErrAlreadyAwarded is returned when the order was awarded by a concurrent
// accept before this one could claim it. Exactly one of N concurrent accepts
// on the same order succeeds; the rest see this error.
var ErrAlreadyAwarded = errors.New("order was already awarded")

// AcceptBidCommandHandler settles an order's bidding round.
//
// Behavior:
//   - Only the order's merchant may accept a bid
//   - The winning bid is accepted, all other pending bids are rejected, and
//     the order takes the winner's driver and price and goes OnTransit
//   - The order row is claimed with a conditional update on its status, so
//     concurrent accepts serialize on the store and losers get
//     ErrAlreadyAwarded with nothing written
//   - bid_awarded is published after the transaction commits
type AcceptBidCommandHandler struct {
	uowFactory UoWFactory
	awarder    services.BidAwarder
	publisher  ports.EventPublisher
}

// NewAcceptBidCommandHandler creates a handler for bid acceptance operations.
func NewAcceptBidCommandHandler(uowFactory UoWFactory, publisher ports.EventPublisher) AcceptBidCommandHandler {
	return AcceptBidCommandHandler{
		uowFactory: uowFactory,
		awarder:    services.NewBidAwarder(),
		publisher:  publisher,
	}
}

// Handle processes the bid acceptance command.
func (h AcceptBidCommandHandler) Handle(ctx context.Context, cmd AcceptBidCommand) error {
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

	if !o.Merchant().IsEqual(cmd.MerchantID()) {
		return errs.NewPermissionDeniedError("orderId", cmd.OrderID().String())
	}

	if o.Status() == order.OnTransit {
		return ErrAlreadyAwarded
	}

	winning, err := bidRepo.Get(ctx, cmd.BidID())
	if err != nil {
		return err
	}

	pending, err := bidRepo.GetPendingByOrder(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if err = h.awarder.Award(o, winning, pending, now); err != nil {
		return err
	}

	// Claim the order first. If another accept got there between our read
	// and this write, the conditional update matches nothing and we abort
	// before touching any bid row.
	claimed, err := orderRepo.UpdateIfStatus(ctx, o, order.PendingDispatch)
	if err != nil {
		return err
	}
	if !claimed {
		return ErrAlreadyAwarded
	}

	if err = bidRepo.Update(ctx, winning); err != nil {
		return err
	}

	for _, b := range pending {
		if b.IsEqual(winning) {
			continue
		}
		if err = bidRepo.Update(ctx, b); err != nil {
			return err
		}
	}

	// The gate spans commit and publish so subscribers see this order's
	// events in commit sequence.
	release := orderGate.lock(cmd.OrderID().String())
	defer release()

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, events.NewBidEvent(events.BidAwarded, o, winning, bidders(pending), now))

	return nil
}
