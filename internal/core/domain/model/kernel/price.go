package kernel

import (
	"fmt"

	"loadboard/internal/pkg/errs"
)

// maxPriceAmount bounds offers so a typo cannot post an absurd amount.
const maxPriceAmount int64 = 100_000_000

// Price is a value object for a monetary amount in the marketplace's minor
// currency unit. It is used for driver offers and the awarded order price.
//
// The zero value (amount 0) is invalid; construct a Price with NewPrice.
// Price is immutable and safe for concurrent use.
type Price struct {
	amount int64
}

// NewPrice creates a Price from a positive amount. Amounts outside
// (0, maxPriceAmount] are rejected.
func NewPrice(amount int64) (Price, error) {
	if amount <= 0 || amount > maxPriceAmount {
		return Price{}, errs.NewValueIsOutOfRangeError("price", amount, 1, maxPriceAmount)
	}
	return Price{amount: amount}, nil
}

// Amount returns the price in the minor currency unit.
func (p Price) Amount() int64 {
	return p.amount
}

// IsEqual reports whether two prices carry the same amount.
func (p Price) IsEqual(other Price) bool {
	return p.amount == other.amount
}

// String renders the amount for logs and error messages.
func (p Price) String() string {
	return fmt.Sprintf("%d", p.amount)
}

// Validate returns an error when the Price is the zero value, which can only
// happen when it was not created through NewPrice.
func (p Price) Validate() error {
	if p.amount <= 0 {
		return errs.NewValueIsRequiredError("price must be created via NewPrice")
	}
	return nil
}
