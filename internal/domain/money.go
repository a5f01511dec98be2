package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Money is a fixed-point JPY amount with scale 2. All splitting math goes
// through MulRate so rounding is always floor and never over-credits.
type Money struct {
	d decimal.Decimal
}

var Zero = Money{decimal.Zero}

func NewMoney(units int64, cents int64) Money {
	return Money{decimal.New(units*100+cents, -2)}
}

func MoneyFromInt(units int64) Money {
	return Money{decimal.NewFromInt(units)}
}

func MoneyFromDecimal(d decimal.Decimal) Money {
	return Money{d.Truncate(2)}
}

// ParseMoney converts user input to Money. Thousands separators are
// stripped, anything else non-numeric fails with ErrInvalidAmount.
func ParseMoney(s string) (Money, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if cleaned == "" {
		return Zero, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	if d.Exponent() < -2 {
		return Zero, fmt.Errorf("%w: %q has more than 2 decimal places", ErrInvalidAmount, s)
	}
	return Money{d.Truncate(2)}, nil
}

func (m Money) Add(other Money) Money {
	return Money{m.d.Add(other.d)}
}

func (m Money) Sub(other Money) Money {
	return Money{m.d.Sub(other.d)}
}

// MulRate multiplies by a rate like 0.036 and floors to 2 decimal places.
func (m Money) MulRate(rate decimal.Decimal) Money {
	return Money{m.d.Mul(rate).RoundDown(2)}
}

func (m Money) Cmp(other Money) int {
	return m.d.Cmp(other.d)
}

func (m Money) LessThan(other Money) bool    { return m.d.Cmp(other.d) < 0 }
func (m Money) GreaterThan(other Money) bool { return m.d.Cmp(other.d) > 0 }
func (m Money) Equal(other Money) bool       { return m.d.Cmp(other.d) == 0 }
func (m Money) IsZero() bool                 { return m.d.IsZero() }
func (m Money) IsNegative() bool             { return m.d.IsNegative() }
func (m Money) IsPositive() bool             { return m.d.IsPositive() }

func (m Money) Decimal() decimal.Decimal {
	return m.d
}

func (m Money) String() string {
	return m.d.StringFixed(2)
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.d.StringFixed(2)), nil
}

func (m *Money) UnmarshalJSON(data []byte) error {
	parsed, err := ParseMoney(strings.Trim(string(data), `"`))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
