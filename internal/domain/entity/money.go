package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is an amount in minor units (cents). Totals are kept as integers so
// repeated increments never drift.
type Money int64

// MaxMoney bounds parsed amounts well inside int64 and float64 precision.
const MaxMoney Money = 100_000_000_000_000

// ParseMoney parses a decimal string such as "12.5" or "12.345", rounding
// half away from zero to whole cents.
func ParseMoney(s string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return fromDecimal(d)
}

// MoneyFromFloat converts a float amount, rounding to whole cents.
func MoneyFromFloat(f float64) (Money, error) {
	return fromDecimal(decimal.NewFromFloat(f))
}

func fromDecimal(d decimal.Decimal) (Money, error) {
	cents := d.Shift(2).Round(0)
	if cents.Abs().GreaterThan(decimal.NewFromInt(int64(MaxMoney))) {
		return 0, fmt.Errorf("amount %s out of range", d.String())
	}
	return Money(cents.IntPart()), nil
}

func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// MarshalJSON renders the amount as a plain JSON number with two decimals.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts a JSON number or a numeric string.
func (m *Money) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*m = 0
		return nil
	}
	var raw string
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
	} else {
		raw = string(b)
	}
	parsed, err := ParseMoney(raw)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

func (m Money) Neg() Money {
	return -m
}

// SumPrices returns the exact sum of the item prices.
func SumPrices(items []Item) Money {
	var total Money
	for _, item := range items {
		total += item.Price
	}
	return total
}

// SumContributions returns the exact sum of the contribution amounts.
func SumContributions(contributions []*Contribution) Money {
	var total Money
	for _, c := range contributions {
		total += c.Amount
	}
	return total
}
