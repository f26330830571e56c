package bid

import (
	"fmt"

	"loadboard/internal/pkg/errs"
)

// Status represents the lifecycle state of a driver's bid on an order.
//
// State transitions:
//
//	Pending ──> Accepted
//	   │──────> Rejected
//	   └──────> Withdrawn
//
// Every transition starts from Pending; Accepted, Rejected and Withdrawn are
// all terminal. A withdrawn or rejected bid can never be accepted later.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status: the driver's offer stands and the
	// merchant may accept it while the order is still open for bidding.
	Pending

	// Accepted means the merchant awarded the order to this bid. Terminal.
	Accepted

	// Rejected means another bid on the same order was accepted. Terminal.
	Rejected

	// Withdrawn means the driver pulled the offer, either explicitly or by
	// placing a replacement bid. Terminal.
	Withdrawn
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Pending:   "Pending",
		Accepted:  "Accepted",
		Rejected:  "Rejected",
		Withdrawn: "Withdrawn",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "Pending",
		Accepted:  "Accepted",
		Rejected:  "Rejected",
		Withdrawn: "Withdrawn",
	}
}

// Validate checks that the Status value is one of the defined states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Accept transitions the status to Accepted. Only Pending bids can be accepted.
func (s Status) Accept() (Status, error) {
	if s != Pending {
		return 0, errs.NewInvalidTransitionError("bid", s.String(), Accepted.String())
	}

	return Accepted, nil
}

// Reject transitions the status to Rejected. Only Pending bids can be rejected.
func (s Status) Reject() (Status, error) {
	if s != Pending {
		return 0, errs.NewInvalidTransitionError("bid", s.String(), Rejected.String())
	}

	return Rejected, nil
}

// Withdraw transitions the status to Withdrawn. Only Pending bids can be
// withdrawn.
func (s Status) Withdraw() (Status, error) {
	if s != Pending {
		return 0, errs.NewInvalidTransitionError("bid", s.String(), Withdrawn.String())
	}

	return Withdrawn, nil
}
