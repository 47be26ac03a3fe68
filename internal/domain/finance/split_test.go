package finance

import (
	"testing"

	"github.com/liquiplan/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitIncome(t *testing.T) {
	t.Run("clean gross decomposes exactly", func(t *testing.T) {
		// 122 000 gross at 22% VAT -> 100 000 net.
		b, err := SplitIncome(valueobject.NewMoney(122000))
		require.NoError(t, err)

		assert.Equal(t, int64(100000), b.Net.Cents())
		assert.Equal(t, int64(10000), b.OwnerShare.Cents())
		assert.Equal(t, int64(20000), b.ReserveShare.Cents())
		assert.Equal(t, int64(70000), b.OperationsShare.Cents())
		assert.Equal(t, int64(22000), b.TaxShare.Cents())

		var sum int64
		for _, s := range b.Shares() {
			sum += s.Cents()
		}
		assert.Equal(t, int64(122000), sum)
	})

	t.Run("share sum stays within one cent of the gross", func(t *testing.T) {
		for _, gross := range []int64{100001, 99999, 12345, 1, 77777, 1000001} {
			b, err := SplitIncome(valueobject.NewMoney(gross))
			require.NoError(t, err)

			var sum int64
			for _, s := range b.Shares() {
				sum += s.Cents()
			}
			diff := sum - gross
			if diff < 0 {
				diff = -diff
			}
			assert.LessOrEqual(t, diff, int64(1), "gross %d: share sum %d", gross, sum)
		}
	})

	t.Run("net is the VAT-reversed gross", func(t *testing.T) {
		b, err := SplitIncome(valueobject.NewMoney(100001))
		require.NoError(t, err)
		// round(100001 / 1.22) = round(81968.03...) = 81968
		assert.Equal(t, int64(81968), b.Net.Cents())
	})

	t.Run("non-positive gross rejected", func(t *testing.T) {
		_, err := SplitIncome(valueobject.Zero())
		assert.Error(t, err)
		_, err = SplitIncome(valueobject.NewMoney(-100))
		assert.Error(t, err)
	})
}

func TestSplitSale(t *testing.T) {
	t.Run("no commission", func(t *testing.T) {
		b, err := SplitSale(valueobject.NewMoney(122000), decimal.Zero)
		require.NoError(t, err)

		assert.Equal(t, int64(100000), b.Net.Cents())
		assert.True(t, b.Commission.IsZero())
		assert.Equal(t, int64(100000), b.PostCommission.Cents())
		assert.Equal(t, int64(22000), b.TaxShare.Cents())
		assert.Equal(t, int64(30000), b.PartnersShare.Cents())
		assert.Equal(t, int64(48000), b.Available.Cents())
	})

	t.Run("with a ten percent agent commission", func(t *testing.T) {
		b, err := SplitSale(valueobject.NewMoney(122000), decimal.NewFromInt(10))
		require.NoError(t, err)

		assert.Equal(t, int64(10000), b.Commission.Cents())
		assert.Equal(t, int64(90000), b.PostCommission.Cents())
		assert.Equal(t, int64(38000), b.Available.Cents())
	})

	t.Run("decomposition is internally consistent", func(t *testing.T) {
		for _, gross := range []int64{122000, 100001, 54321} {
			b, err := SplitSale(valueobject.NewMoney(gross), decimal.NewFromFloat(12.5))
			require.NoError(t, err)

			assert.Equal(t, b.Net.Cents(), b.Commission.Cents()+b.PostCommission.Cents())
			assert.Equal(t, b.PostCommission.Cents(), b.TaxShare.Cents()+b.PartnersShare.Cents()+b.Available.Cents())
		}
	})

	t.Run("rejections", func(t *testing.T) {
		_, err := SplitSale(valueobject.Zero(), decimal.Zero)
		assert.Error(t, err)

		_, err = SplitSale(valueobject.NewMoney(100), decimal.NewFromInt(-1))
		assert.Error(t, err)
	})
}
