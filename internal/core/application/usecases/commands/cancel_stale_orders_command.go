package commands

import (
	"errors"
	"time"

	"loadboard/internal/pkg/guard"
)

var (
	ErrCancelStaleOrdersCommandIsNotConstructed = errors.New(
		"CancelStaleOrdersCommand must be created via NewCancelStaleOrdersCommand constructor",
	)
	ErrCutoffIsRequired = errors.New("cutoff is required")
)

// CancelStaleOrdersCommand represents a maintenance request to close orders
// that sat in PendingDispatch past the cutoff without being awarded.
type CancelStaleOrdersCommand struct { //nolint:recvcheck //using for validation
	cutoff time.Time

	guard guard.ConstructorGuard
}

// NewCancelStaleOrdersCommand creates a command to sweep stale orders.
// Orders created before the cutoff are cancelled.
func NewCancelStaleOrdersCommand(cutoff time.Time) (CancelStaleOrdersCommand, error) {
	sweepCommand := CancelStaleOrdersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if cutoff.IsZero() {
		return CancelStaleOrdersCommand{}, ErrCutoffIsRequired
	}

	sweepCommand.cutoff = cutoff
	return sweepCommand, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelStaleOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCancelStaleOrdersCommandIsNotConstructed)
}

// Cutoff returns the creation time before which open orders are swept.
func (c CancelStaleOrdersCommand) Cutoff() time.Time {
	return c.cutoff
}
