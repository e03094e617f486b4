package misfondos

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value in a given currency.
type Money struct {
	value *money.Money
}

// NewMoney creates a new Money instance from a decimal.Decimal major-unit amount.
func NewMoney(amount decimal.Decimal, currency string) Money {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return Money{}
	}

	factor, _ := decimal.NewFromInt(10).PowInt32(int32(cur.Fraction))
	amount = amount.Mul(factor)
	return Money{money.New(amount.IntPart(), currency)}
}

func NewMoneyFromFloat(amount float64, currency string) Money {
	return NewMoney(decimal.NewFromFloat(amount), currency)
}

// String returns the display representation of the money value.
func (m Money) String() string {
	if m.value == nil {
		return "-"
	}
	return m.value.Display()
}

// SignedString returns the display representation with an explicit sign,
// and "-" for zero.
func (m Money) SignedString() string {
	if m.value == nil || m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.value.Display()
	}
	return m.value.Display()
}

func (m Money) IsZero() bool { return m.value == nil || m.value.IsZero() }

// AsFloat returns the major-unit amount as a float, for aggregation only.
func (m Money) AsFloat() float64 {
	if m.value == nil {
		return 0
	}
	return m.value.AsMajorUnits()
}
