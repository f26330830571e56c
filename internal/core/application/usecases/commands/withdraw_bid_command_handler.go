package commands

import (
	"context"
	"errors"

	"loadboard/internal/core/domain/model/bid"
	"loadboard/internal/pkg/errs"
)

// ErrBidTooLate is returned when a driver tries to withdraw a bid that was
// already accepted. The award settled the round; the driver is committed.
var ErrBidTooLate = errors.New("bid was already accepted")

// WithdrawBidCommandHandler handles the business logic for bid withdrawal.
//
// Behavior:
//   - Only the bid's owning driver may withdraw it
//   - An accepted bid cannot be withdrawn (ErrBidTooLate)
//   - Rejected and withdrawn bids fail with an invalid-transition error
type WithdrawBidCommandHandler struct {
	uowFactory BidUoWFactory
}

// NewWithdrawBidCommandHandler creates a handler for bid withdrawal operations.
func NewWithdrawBidCommandHandler(uowFactory BidUoWFactory) WithdrawBidCommandHandler {
	return WithdrawBidCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the bid withdrawal command.
func (h WithdrawBidCommandHandler) Handle(ctx context.Context, cmd WithdrawBidCommand) error {
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

	bidRepo := uow.BidRepository()

	b, err := bidRepo.Get(ctx, cmd.BidID())
	if err != nil {
		return err
	}

	if !b.Driver().IsEqual(cmd.DriverID()) {
		return errs.NewPermissionDeniedError("bidId", cmd.BidID().String())
	}

	if b.Status() == bid.Accepted {
		return ErrBidTooLate
	}

	if err = b.Withdraw(); err != nil {
		return err
	}

	// Conditional write: an accept can commit between our read and this
	// write, and Withdrawn must never overwrite the committed Accepted row.
	claimed, err := bidRepo.UpdateIfStatus(ctx, b, bid.Pending)
	if err != nil {
		return err
	}

	if !claimed {
		return ErrBidTooLate
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
