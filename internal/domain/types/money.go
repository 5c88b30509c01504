package types

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is a CAD currency amount held to two decimal places.
//
// It marshals as a JSON number with exactly two decimals ("3.50", not "3.5"),
// which the client line-item renderer depends on. Construction through
// NewMoney applies banker's rounding, so two Money values computed from the
// same inputs are always byte-identical on the wire.
type Money struct {
	d decimal.Decimal
}

// NewMoney rounds d half-to-even to two decimals.
func NewMoney(d decimal.Decimal) Money {
	return Money{d: d.RoundBank(2)}
}

// MoneyFromFloat is a convenience constructor for literals in tests and seeds.
func MoneyFromFloat(f float64) Money {
	return NewMoney(decimal.NewFromFloat(f))
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return m.d
}

// Float64 returns the amount as a float; persistence only.
func (m Money) Float64() float64 {
	f, _ := m.d.Float64()
	return f
}

func (m Money) IsNegative() bool {
	return m.d.IsNegative()
}

func (m Money) Equal(other Money) bool {
	return m.d.Equal(other.d)
}

// Cmp returns -1, 0 or 1 comparing m against other.
func (m Money) Cmp(other Money) int {
	return m.d.Cmp(other.d)
}

func (m Money) Add(other Money) Money {
	return Money{d: m.d.Add(other.d)}
}

func (m Money) Sub(other Money) Money {
	return Money{d: m.d.Sub(other.d)}
}

func (m Money) String() string {
	return m.d.StringFixed(2)
}

// MarshalJSON emits the amount as a plain JSON number with two decimals.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.d.StringFixed(2)), nil
}

// UnmarshalJSON accepts any JSON number and re-rounds to two decimals.
func (m *Money) UnmarshalJSON(data []byte) error {
	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return fmt.Errorf("invalid money amount %q: %w", string(data), err)
	}
	m.d = d.RoundBank(2)
	return nil
}
