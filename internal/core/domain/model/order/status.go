package order

import (
	"fmt"

	"loadboard/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery order.
// It implements a state machine with defined transitions to ensure orders
// follow the marketplace workflow.
//
// State transitions:
//
//	PendingDispatch ──> OnTransit ──> Delivered
//	       │                │
//	       └──> Cancelled <─┘
//	                 (OnTransit -> Cancelled only by admin override)
//
// Delivered and Cancelled are terminal: no outgoing transitions exist and any
// attempt fails with an invalid-transition error, leaving the order unchanged.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// PendingDispatch is the initial status after a merchant posts an order.
	// Drivers may bid only while the order is in this status.
	PendingDispatch

	// OnTransit indicates a bid was accepted and the assigned driver is
	// carrying the delivery.
	OnTransit

	// Delivered indicates the order reached its recipient. Terminal.
	Delivered

	// Cancelled indicates the order was called off before completion. Terminal.
	Cancelled
)

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:         "Unknown",
		PendingDispatch: "PendingDispatch",
		OnTransit:       "OnTransit",
		Delivered:       "Delivered",
		Cancelled:       "Cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		PendingDispatch: "PendingDispatch",
		OnTransit:       "OnTransit",
		Delivered:       "Delivered",
		Cancelled:       "Cancelled",
	}
}

// Validate checks that the Status value is one of the defined states.
// Used when rehydrating orders from persistence or external input.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status. Safe to call on any
// value, including invalid ones, which render as "Unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled
}

// ValidateCanHaveDriver validates the consistency between order status and
// driver assignment: a driver is assigned iff the order is OnTransit or
// Delivered.
func (s Status) ValidateCanHaveDriver(driver bool) error {
	if driver && s != OnTransit && s != Delivered {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a driver", s.String()),
		)
	}

	if !driver && (s == OnTransit || s == Delivered) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no driver", s.String()),
		)
	}

	return nil
}

// Award transitions the status to OnTransit. The only valid source state is
// PendingDispatch; a second award attempt therefore fails here, behind the
// store-level status guard that serializes concurrent accepts.
func (s Status) Award() (Status, error) {
	if s != PendingDispatch {
		return 0, errs.NewInvalidTransitionError("order", s.String(), OnTransit.String())
	}

	return OnTransit, nil
}

// Complete transitions the status to Delivered. Only OnTransit orders can
// complete.
func (s Status) Complete() (Status, error) {
	if s != OnTransit {
		return 0, errs.NewInvalidTransitionError("order", s.String(), Delivered.String())
	}

	return Delivered, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - PendingDispatch -> Cancelled (merchant or admin)
//   - OnTransit -> Cancelled (admin override only)
//
// Terminal states reject cancellation.
func (s Status) Cancel(adminOverride bool) (Status, error) {
	switch {
	case s == PendingDispatch:
		return Cancelled, nil
	case s == OnTransit && adminOverride:
		return Cancelled, nil
	default:
		return 0, errs.NewInvalidTransitionError("order", s.String(), Cancelled.String())
	}
}
