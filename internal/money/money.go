// Package money holds the decimal amount type used for every stored and
// aggregated quantity.
//
// Amounts are kept as unsigned magnitudes: whether a value adds to or
// subtracts from a period's net total is decided by the category sign class,
// never by the arithmetic sign. Values that cannot be read as a finite number
// (NULL columns, garbage text, NaN or infinite floats) are read as zero so a
// single bad row never poisons a monthly total.
package money

import (
	"database/sql/driver"
	"errors"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned by Parse for input that is not a decimal number.
var ErrInvalidAmount = errors.New("invalid amount")

// Amount is a decimal money quantity.
type Amount struct {
	decimal.Decimal
}

// Zero is the zero amount.
var Zero = Amount{Decimal: decimal.Zero}

// New wraps a decimal value.
func New(d decimal.Decimal) Amount {
	return Amount{Decimal: d}
}

// FromInt returns the amount for a whole number of units.
func FromInt(v int64) Amount {
	return Amount{Decimal: decimal.NewFromInt(v)}
}

// FromFloat converts a float, mapping NaN and infinities to zero.
func FromFloat(f float64) Amount {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Zero
	}
	return Amount{Decimal: decimal.NewFromFloat(f)}
}

// Parse reads a decimal string. Both "12.34" and "12,34" are accepted.
func Parse(s string) (Amount, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Zero, ErrInvalidAmount
	}
	return Amount{Decimal: d}, nil
}

// Magnitude returns the unsigned value of a.
func (a Amount) Magnitude() Amount {
	return Amount{Decimal: a.Decimal.Abs()}
}

// Scan implements sql.Scanner. Unreadable values scan as zero.
func (a *Amount) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*a = Zero
		return nil
	case float64:
		*a = FromFloat(v)
		return nil
	case float32:
		*a = FromFloat(float64(v))
		return nil
	}

	var d decimal.Decimal
	if err := d.Scan(value); err != nil {
		*a = Zero
		return nil
	}
	*a = Amount{Decimal: d}
	return nil
}

// Value implements driver.Valuer.
func (a Amount) Value() (driver.Value, error) {
	return a.Decimal.String(), nil
}

// Sum adds amounts together.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range amounts {
		total = total.Add(v)
	}
	return total
}
