package gateway

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("amount must be positive and at most 999999.99")

// MaxAmount is the largest charge in minor units the gateway accepts.
const MaxAmount = 99999999

var (
	hundred   = decimal.NewFromInt(100)
	maxAmount = decimal.NewFromInt(MaxAmount)
)

// ToMinorUnits converts a two-decimal price to cents, rounding fractions of
// a cent half-to-even: 19.99 -> 1999, 0.125 -> 12, 0.135 -> 14.
// Results outside 1..MaxAmount are ErrInvalidAmount.
func ToMinorUnits(price decimal.Decimal) (int64, error) {
	amount := price.Mul(hundred).RoundBank(0)
	if !amount.IsPositive() || amount.GreaterThan(maxAmount) {
		return 0, ErrInvalidAmount
	}
	return amount.IntPart(), nil
}
