package vo

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

const moneyScale = 2

var ErrNilAmount = errors.New("money: amount is required")

// Money is a fixed-point amount with exactly two fractional digits.
// Every constructor rounds half to even.
type Money struct {
	amount decimal.Decimal
}

func NewMoney(amount decimal.Decimal) Money {
	return Money{amount: amount.RoundBank(moneyScale)}
}

// MoneyFrom fails on a nil source instead of defaulting to zero.
func MoneyFrom(amount *decimal.Decimal) (Money, error) {
	if amount == nil {
		return Money{}, ErrNilAmount
	}
	return NewMoney(*amount), nil
}

func ParseMoney(s string) (Money, error) {
	if s == "" {
		return Money{}, ErrNilAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("money: %w", err)
	}
	return NewMoney(d), nil
}

func (m Money) Amount() decimal.Decimal { return m.amount.RoundBank(moneyScale) }

func (m Money) Add(other Money) Money {
	return NewMoney(m.amount.Add(other.amount))
}

func (m Money) IsGreaterThanZero() bool { return m.amount.IsPositive() }

func (m Money) Equal(other Money) bool { return m.Amount().Equal(other.Amount()) }

func (m Money) String() string { return m.amount.StringFixed(moneyScale) }

// MarshalJSON writes the amount as a JSON number with two decimals.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *Money) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return ErrNilAmount
	}
	var d decimal.Decimal
	if err := d.UnmarshalJSON(b); err != nil {
		return fmt.Errorf("money: %w", err)
	}
	*m = NewMoney(d)
	return nil
}
