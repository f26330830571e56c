package commands

import (
	"context"
	"errors"
	"time"

	"loadboard/internal/core/domain/events"
	"loadboard/internal/core/domain/model/bid"
	"loadboard/internal/core/domain/model/kernel"
	"loadboard/internal/core/domain/model/order"
	"loadboard/internal/core/ports"
	"loadboard/internal/pkg/errs"
)

// ErrOrderNotBiddable is returned when a driver bids on an order that has
// left PendingDispatch. Bidding is only open before an award.
var ErrOrderNotBiddable = errors.New("order is not open for bidding")

// PlaceBidCommandHandler handles the business logic for placing bids.
//
// Behavior:
//   - The order must exist and still be PendingDispatch
//   - A merchant cannot bid on their own order
//   - A driver's previous pending bid on the order is withdrawn and replaced
//   - bid_placed is published after the transaction commits
type PlaceBidCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
}

// NewPlaceBidCommandHandler creates a handler for bid placement operations.
func NewPlaceBidCommandHandler(uowFactory UoWFactory, publisher ports.EventPublisher) PlaceBidCommandHandler {
	return PlaceBidCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the bid placement command.
func (h PlaceBidCommandHandler) Handle(ctx context.Context, cmd PlaceBidCommand) error {
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

	if o.Status() != order.PendingDispatch {
		return ErrOrderNotBiddable
	}

	if o.Merchant().IsEqual(cmd.DriverID()) {
		return errs.NewPermissionDeniedError("orderId", cmd.OrderID().String())
	}

	now := time.Now().UTC()

	previous, err := bidRepo.GetPendingByOrderAndDriver(ctx, cmd.OrderID(), cmd.DriverID())
	switch {
	case err == nil:
		if err = previous.Withdraw(); err != nil {
			return err
		}

		// Conditional write: a concurrent accept may have just awarded the
		// order to this very bid, and the supersede must not overwrite the
		// committed Accepted status.
		claimed, claimErr := bidRepo.UpdateIfStatus(ctx, previous, bid.Pending)
		if claimErr != nil {
			return claimErr
		}
		if !claimed {
			return ErrOrderNotBiddable
		}
	case errors.Is(err, errs.ErrObjectNotFound):
		// first bid by this driver
	default:
		return err
	}

	newBid, err := bid.NewBid(cmd.BidID(), cmd.OrderID(), cmd.DriverID(), cmd.Price(), now)
	if err != nil {
		return err
	}

	if err = bidRepo.Add(ctx, newBid); err != nil {
		return err
	}

	pending, err := bidRepo.GetPendingByOrder(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	// The gate spans commit and publish so subscribers see this order's
	// events in commit sequence.
	release := orderGate.lock(cmd.OrderID().String())
	defer release()

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.publisher.Publish(ctx, events.NewBidEvent(events.BidPlaced, o, newBid, bidders(pending), now))

	return nil
}

// bidders collects the distinct drivers holding the given pending bids.
func bidders(pending []*bid.Bid) []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(pending))
	for _, b := range pending {
		ids = append(ids, b.Driver())
	}
	return ids
}
