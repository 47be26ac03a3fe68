package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoneyFromDecimal(t *testing.T) {
	t.Run("converts major units to cents", func(t *testing.T) {
		m := NewMoneyFromDecimal(decimal.NewFromFloat(123.45))
		assert.Equal(t, int64(12345), m.Cents())
	})

	t.Run("rounds half away from zero", func(t *testing.T) {
		m := NewMoneyFromDecimal(decimal.NewFromFloat(0.005))
		assert.Equal(t, int64(1), m.Cents())

		m = NewMoneyFromDecimal(decimal.NewFromFloat(-0.005))
		assert.Equal(t, int64(-1), m.Cents())
	})
}

func TestNewMoneyFromString(t *testing.T) {
	t.Run("valid string", func(t *testing.T) {
		m, err := NewMoneyFromString("99.99")
		require.NoError(t, err)
		assert.Equal(t, int64(9999), m.Cents())
	})

	t.Run("invalid string", func(t *testing.T) {
		_, err := NewMoneyFromString("not-a-number")
		assert.Error(t, err)
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	a := NewMoney(1000)
	b := NewMoney(250)

	assert.Equal(t, int64(1250), a.Add(b).Cents())
	assert.Equal(t, int64(750), a.Subtract(b).Cents())
	assert.Equal(t, int64(-1000), a.Negate().Cents())
	assert.Equal(t, int64(1000), a.Negate().Abs().Cents())
	assert.Equal(t, int64(3000), a.MultiplyByInt(3).Cents())
}

func TestMoney_DivideByInt(t *testing.T) {
	t.Run("rounds half away from zero", func(t *testing.T) {
		m, err := NewMoney(100).DivideByInt(3)
		require.NoError(t, err)
		assert.Equal(t, int64(33), m.Cents())

		m, err = NewMoney(101).DivideByInt(2)
		require.NoError(t, err)
		assert.Equal(t, int64(51), m.Cents())

		m, err = NewMoney(-101).DivideByInt(2)
		require.NoError(t, err)
		assert.Equal(t, int64(-51), m.Cents())
	})

	t.Run("rejects zero divisor", func(t *testing.T) {
		_, err := NewMoney(100).DivideByInt(0)
		assert.Error(t, err)
	})
}

func TestMoney_DivideByDecimal(t *testing.T) {
	// Reversing a 22% tax-inclusive gross price.
	net, err := NewMoney(122000).DivideByDecimal(decimal.NewFromFloat(1.22))
	require.NoError(t, err)
	assert.Equal(t, int64(100000), net.Cents())
}

func TestMoney_Percentage(t *testing.T) {
	m := NewMoney(100000)
	assert.Equal(t, int64(10000), m.Percentage(decimal.NewFromInt(10)).Cents())
	assert.Equal(t, int64(22000), m.Percentage(decimal.NewFromInt(22)).Cents())

	// Independent rounding: 33.333% of 100 cents.
	assert.Equal(t, int64(33), NewMoney(100).Percentage(decimal.NewFromFloat(33.333)).Cents())
}

func TestMoney_Allocate(t *testing.T) {
	t.Run("sums exactly to the original amount", func(t *testing.T) {
		tests := []struct {
			name  string
			total int64
			parts int
		}{
			{"even split", 90000, 3},
			{"remainder up", 100003, 3},
			{"remainder down", 100, 3},
			{"single part", 12345, 1},
			{"negative total", -100003, 3},
		}

		for _, tc := range tests {
			t.Run(tc.name, func(t *testing.T) {
				shares, err := NewMoney(tc.total).Allocate(tc.parts)
				require.NoError(t, err)
				require.Len(t, shares, tc.parts)

				var sum int64
				for _, s := range shares {
					sum += s.Cents()
				}
				assert.Equal(t, tc.total, sum)
			})
		}
	})

	t.Run("last part absorbs the remainder", func(t *testing.T) {
		shares, err := NewMoney(100003).Allocate(3)
		require.NoError(t, err)
		assert.Equal(t, int64(33334), shares[0].Cents())
		assert.Equal(t, int64(33334), shares[1].Cents())
		assert.Equal(t, int64(33335), shares[2].Cents())
	})

	t.Run("rejects non-positive parts", func(t *testing.T) {
		_, err := NewMoney(100).Allocate(0)
		assert.Error(t, err)
	})
}

func TestMoney_Comparisons(t *testing.T) {
	assert.True(t, NewMoney(100).Equals(NewMoney(100)))
	assert.True(t, NewMoney(99).LessThan(NewMoney(100)))
	assert.True(t, NewMoney(100).GreaterThanOrEqual(NewMoney(100)))
	assert.True(t, NewMoney(0).IsZero())
	assert.True(t, NewMoney(1).IsPositive())
	assert.True(t, NewMoney(-1).IsNegative())
}

func TestMoney_JSON(t *testing.T) {
	data, err := json.Marshal(NewMoney(12345))
	require.NoError(t, err)
	assert.Equal(t, "12345", string(data))

	var m Money
	require.NoError(t, json.Unmarshal([]byte("6789"), &m))
	assert.Equal(t, int64(6789), m.Cents())
}

func TestMoney_String(t *testing.T) {
	assert.Equal(t, "123.45 EUR", NewMoney(12345).String())
}
