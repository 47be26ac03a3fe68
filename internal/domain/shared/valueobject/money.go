package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money is a value object representing a monetary amount in minor currency
// units (euro cents). It is immutable - all operations return new Money
// instances. Amounts are integers so sums never accumulate floating point
// error; every derived computation rounds through decimal.Round, which
// rounds half away from zero. That is the single rounding rule of the
// whole system.
type Money struct {
	cents int64
}

// NewMoney creates Money from an amount in minor units
func NewMoney(cents int64) Money {
	return Money{cents: cents}
}

// NewMoneyFromDecimal creates Money from a decimal amount of major units
// (e.g. "123.45" euro), rounding to the nearest cent.
func NewMoneyFromDecimal(amount decimal.Decimal) Money {
	return Money{cents: amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()}
}

// NewMoneyFromString creates Money from a major-unit string representation
func NewMoneyFromString(amount string) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount string: %w", err)
	}
	return NewMoneyFromDecimal(d), nil
}

// Zero returns a zero-value Money
func Zero() Money {
	return Money{}
}

// Cents returns the amount in minor units
func (m Money) Cents() int64 {
	return m.cents
}

// Decimal returns the amount in major units as a decimal
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(m.cents, -2)
}

// IsZero returns true if the amount is zero
func (m Money) IsZero() bool {
	return m.cents == 0
}

// IsPositive returns true if the amount is positive
func (m Money) IsPositive() bool {
	return m.cents > 0
}

// IsNegative returns true if the amount is negative
func (m Money) IsNegative() bool {
	return m.cents < 0
}

// Add returns a new Money with the sum of both amounts
func (m Money) Add(other Money) Money {
	return Money{cents: m.cents + other.cents}
}

// Subtract returns a new Money with the difference
func (m Money) Subtract(other Money) Money {
	return Money{cents: m.cents - other.cents}
}

// Negate returns a new Money with the sign reversed
func (m Money) Negate() Money {
	return Money{cents: -m.cents}
}

// Abs returns a new Money with the absolute value
func (m Money) Abs() Money {
	if m.cents < 0 {
		return Money{cents: -m.cents}
	}
	return m
}

// MultiplyByInt returns a new Money multiplied by an integer
func (m Money) MultiplyByInt(factor int64) Money {
	return Money{cents: m.cents * factor}
}

// DivideByInt returns the amount divided by n, rounded half away from zero.
// Returns error if n is zero.
func (m Money) DivideByInt(n int64) (Money, error) {
	if n == 0 {
		return Money{}, errors.New("cannot divide by zero")
	}
	d := decimal.NewFromInt(m.cents).Div(decimal.NewFromInt(n)).Round(0)
	return Money{cents: d.IntPart()}, nil
}

// DivideByDecimal returns the amount divided by the given factor, rounded
// half away from zero. Used to reverse tax-inclusive prices (gross / 1.22).
func (m Money) DivideByDecimal(divisor decimal.Decimal) (Money, error) {
	if divisor.IsZero() {
		return Money{}, errors.New("cannot divide by zero")
	}
	d := decimal.NewFromInt(m.cents).Div(divisor).Round(0)
	return Money{cents: d.IntPart()}, nil
}

// Percentage returns the given percentage of the amount, rounded half away
// from zero. Each share is rounded independently; callers that need the
// shares to sum exactly must absorb the remainder themselves (see Allocate).
func (m Money) Percentage(percent decimal.Decimal) Money {
	d := decimal.NewFromInt(m.cents).Mul(percent).Div(decimal.NewFromInt(100)).Round(0)
	return Money{cents: d.IntPart()}
}

// Allocate splits the amount into n parts that sum exactly to the original.
// Every part but the last is round(total/n); the last part absorbs the
// rounding remainder, whichever direction it falls.
func (m Money) Allocate(parts int) ([]Money, error) {
	if parts <= 0 {
		return nil, errors.New("parts must be positive")
	}
	if parts == 1 {
		return []Money{m}, nil
	}

	base, err := m.DivideByInt(int64(parts))
	if err != nil {
		return nil, err
	}

	result := make([]Money, parts)
	var allocated int64
	for i := 0; i < parts-1; i++ {
		result[i] = base
		allocated += base.cents
	}
	result[parts-1] = Money{cents: m.cents - allocated}
	return result, nil
}

// Equals returns true if both Money values are equal
func (m Money) Equals(other Money) bool {
	return m.cents == other.cents
}

// LessThan returns true if this Money is less than the other
func (m Money) LessThan(other Money) bool {
	return m.cents < other.cents
}

// GreaterThanOrEqual returns true if this Money is greater than or equal to the other
func (m Money) GreaterThanOrEqual(other Money) bool {
	return m.cents >= other.cents
}

// String returns a string representation of the Money in major units
func (m Money) String() string {
	return fmt.Sprintf("%s EUR", m.Decimal().StringFixed(2))
}

// MarshalJSON implements json.Marshaler, emitting the minor-unit amount
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.cents)
}

// UnmarshalJSON implements json.Unmarshaler, expecting a minor-unit amount
func (m *Money) UnmarshalJSON(data []byte) error {
	var cents int64
	if err := json.Unmarshal(data, &cents); err != nil {
		return fmt.Errorf("invalid money value: %w", err)
	}
	m.cents = cents
	return nil
}

// Value implements driver.Valuer for database storage
func (m Money) Value() (driver.Value, error) {
	return m.cents, nil
}

// Scan implements sql.Scanner for database retrieval
func (m *Money) Scan(value any) error {
	if value == nil {
		m.cents = 0
		return nil
	}
	switch v := value.(type) {
	case int64:
		m.cents = v
	case int:
		m.cents = int64(v)
	case []byte:
		d, err := decimal.NewFromString(string(v))
		if err != nil {
			return fmt.Errorf("invalid money value: %w", err)
		}
		m.cents = d.IntPart()
	default:
		return fmt.Errorf("cannot scan %T into Money", value)
	}
	return nil
}
