package shared

import "github.com/shopspring/decimal"

// Money is an immutable monetary amount with fixed-precision decimal
// arithmetic. The zero value is zero money. Money itself accepts any
// amount; rejecting negative prices is the responsibility of the boundary
// that constructs them.
type Money struct {
	value decimal.Decimal
}

// Zero is the zero amount.
var Zero = Money{}

// NewMoney creates a Money from a decimal value.
func NewMoney(value decimal.Decimal) Money {
	return Money{value: value}
}

// NewMoneyFromInt creates a Money from a whole number of currency units.
func NewMoneyFromInt(value int64) Money {
	return Money{value: decimal.NewFromInt(value)}
}

// ParseMoney creates a Money from its decimal string form, e.g. "49.99".
func ParseMoney(s string) (Money, error) {
	value, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{value: value}, nil
}

// MustParseMoney is ParseMoney that panics on malformed input. Intended for
// constants and tests.
func MustParseMoney(s string) Money {
	m, err := ParseMoney(s)
	if err != nil {
		panic(err)
	}
	return m
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{value: m.value.Add(other.value)}
}

// Subtract returns m - other.
func (m Money) Subtract(other Money) Money {
	return Money{value: m.value.Sub(other.value)}
}

// MultiplyInt returns m * quantity.
func (m Money) MultiplyInt(quantity int) Money {
	return Money{value: m.value.Mul(decimal.NewFromInt(int64(quantity)))}
}

// Percentage returns rate percent of m, rounded half-up to 2 decimal places.
func (m Money) Percentage(rate int64) Money {
	result := m.value.
		Mul(decimal.NewFromInt(rate)).
		Div(decimal.NewFromInt(100)).
		Round(2)
	return Money{value: result}
}

// Cmp compares by numeric value: -1 if m < other, 0 if equal, +1 if m > other.
func (m Money) Cmp(other Money) int {
	return m.value.Cmp(other.value)
}

// Equals reports whether both amounts have the same numeric value.
func (m Money) Equals(other Money) bool {
	return m.value.Equal(other.value)
}

// GreaterOrEqual reports whether m >= other.
func (m Money) GreaterOrEqual(other Money) bool {
	return m.value.GreaterThanOrEqual(other.value)
}

// LessThan reports whether m < other.
func (m Money) LessThan(other Money) bool {
	return m.value.LessThan(other.value)
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.value.IsNegative()
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return m.value
}

// String renders the amount with two decimal places.
func (m Money) String() string {
	return m.value.StringFixed(2)
}
