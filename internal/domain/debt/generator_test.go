package debt

import (
	"testing"
	"time"

	"github.com/liquiplan/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newPlan(t *testing.T, totalCents int64, count int, start time.Time) *AmortizationPlan {
	t.Helper()
	p, err := NewAmortizationPlan("Supplier Srl", PlanKindDebt, valueobject.NewMoney(totalCents), count, start, 1)
	require.NoError(t, err)
	return p
}

func sumInstallments(installments []*Installment) int64 {
	var sum int64
	for _, inst := range installments {
		sum += inst.Amount.Cents()
	}
	return sum
}

func TestGenerateSchedule(t *testing.T) {
	t.Run("remainder lands on the last installment", func(t *testing.T) {
		p := newPlan(t, 100003, 3, date(2026, time.January, 1))

		installments, err := GenerateSchedule(p)
		require.NoError(t, err)
		require.Len(t, installments, 3)

		assert.Equal(t, int64(33334), installments[0].Amount.Cents())
		assert.Equal(t, int64(33334), installments[1].Amount.Cents())
		assert.Equal(t, int64(33335), installments[2].Amount.Cents())
		assert.Equal(t, int64(100003), sumInstallments(installments))

		assert.Equal(t, date(2026, time.January, 1), installments[0].DueDate)
		assert.Equal(t, date(2026, time.February, 1), installments[1].DueDate)
		assert.Equal(t, date(2026, time.March, 1), installments[2].DueDate)
	})

	t.Run("sum is exact for any total and count", func(t *testing.T) {
		tests := []struct {
			total int64
			count int
		}{
			{100000, 7},
			{99999, 4},
			{1, 3},
			{123456789, 12},
		}
		for _, tc := range tests {
			p := newPlan(t, tc.total, tc.count, date(2026, time.March, 15))
			installments, err := GenerateSchedule(p)
			require.NoError(t, err)
			assert.Equal(t, tc.total, sumInstallments(installments))
		}
	})

	t.Run("due dates are strictly increasing by the cadence", func(t *testing.T) {
		p, err := NewAmortizationPlan("Leasing Spa", PlanKindDebt, valueobject.NewMoney(240000), 8, date(2026, time.January, 31), 3)
		require.NoError(t, err)

		installments, err := GenerateSchedule(p)
		require.NoError(t, err)
		for i := 1; i < len(installments); i++ {
			assert.True(t, installments[i].DueDate.After(installments[i-1].DueDate))
		}
	})

	t.Run("sequence numbers start at one", func(t *testing.T) {
		p := newPlan(t, 30000, 3, date(2026, time.January, 1))
		installments, err := GenerateSchedule(p)
		require.NoError(t, err)
		for i, inst := range installments {
			assert.Equal(t, i+1, inst.Sequence)
			assert.Equal(t, p.ID, inst.PlanID)
		}
	})
}

func TestUnpaidTail(t *testing.T) {
	stored := func(t *testing.T, p *AmortizationPlan, paidSequences ...int) []Installment {
		t.Helper()
		full, err := GenerateSchedule(p)
		require.NoError(t, err)
		rows := make([]Installment, len(full))
		for i := range full {
			rows[i] = *full[i]
		}
		for _, seq := range paidSequences {
			require.NoError(t, rows[seq-1].Pay(date(2026, time.January, 15), nil))
		}
		return rows
	}

	t.Run("skips paid sequences wherever they sit", func(t *testing.T) {
		p := newPlan(t, 100003, 3, date(2026, time.January, 1))
		rows := stored(t, p, 3)

		tail, err := UnpaidTail(p, rows)
		require.NoError(t, err)

		require.Len(t, tail, 2)
		assert.Equal(t, 1, tail[0].Sequence)
		assert.Equal(t, 2, tail[1].Sequence)
		// The paid row plus the regenerated tail still sums to the total.
		assert.Equal(t, int64(100003), sumInstallments(tail)+rows[2].Amount.Cents())
	})

	t.Run("nothing paid regenerates the full schedule", func(t *testing.T) {
		p := newPlan(t, 100003, 3, date(2026, time.January, 1))
		rows := stored(t, p)

		tail, err := UnpaidTail(p, rows)
		require.NoError(t, err)
		require.Len(t, tail, 3)
		assert.Equal(t, int64(100003), sumInstallments(tail))
	})

	t.Run("everything paid leaves an empty tail", func(t *testing.T) {
		p := newPlan(t, 100003, 3, date(2026, time.January, 1))
		rows := stored(t, p, 1, 2, 3)

		tail, err := UnpaidTail(p, rows)
		require.NoError(t, err)
		assert.Empty(t, tail)
	})
}

func TestRedistributeUnpaid(t *testing.T) {
	t.Run("allocates the remainder after paid rows over unpaid slots", func(t *testing.T) {
		p := newPlan(t, 60000, 2, date(2026, time.January, 1))
		full, err := GenerateSchedule(p)
		require.NoError(t, err)
		rows := make([]Installment, len(full))
		for i := range full {
			rows[i] = *full[i]
		}
		require.NoError(t, rows[1].Pay(date(2026, time.February, 5), nil))

		// One more installment of 40003 joins the plan.
		require.NoError(t, p.Extend(valueobject.NewMoney(40003)))

		tail, err := RedistributeUnpaid(p, rows)
		require.NoError(t, err)

		require.Len(t, tail, 2)
		assert.Equal(t, 1, tail[0].Sequence)
		assert.Equal(t, 3, tail[1].Sequence)
		// Paid row keeps its recorded 30000; the rest carries the new total.
		assert.Equal(t, int64(100003), sumInstallments(tail)+rows[1].Amount.Cents())
	})

	t.Run("fully paid plan yields no slots", func(t *testing.T) {
		p := newPlan(t, 60000, 2, date(2026, time.January, 1))
		full, err := GenerateSchedule(p)
		require.NoError(t, err)
		rows := make([]Installment, len(full))
		for i := range full {
			rows[i] = *full[i]
			require.NoError(t, rows[i].Pay(date(2026, time.March, 1), nil))
		}

		tail, err := RedistributeUnpaid(p, rows)
		require.NoError(t, err)
		assert.Empty(t, tail)
	})
}

func TestNewAmortizationPlan_Validation(t *testing.T) {
	start := date(2026, time.January, 1)

	_, err := NewAmortizationPlan("", PlanKindDebt, valueobject.NewMoney(1000), 2, start, 1)
	assert.Error(t, err)

	_, err = NewAmortizationPlan("X", PlanKindDebt, valueobject.Zero(), 2, start, 1)
	assert.Error(t, err)

	_, err = NewAmortizationPlan("X", PlanKindDebt, valueobject.NewMoney(1000), 0, start, 1)
	assert.Error(t, err)

	_, err = NewAmortizationPlan("X", PlanKind("LOAN"), valueobject.NewMoney(1000), 2, start, 1)
	assert.Error(t, err)

	// Zero cadence defaults to monthly.
	p, err := NewAmortizationPlan("X", PlanKindDebt, valueobject.NewMoney(1000), 2, start, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, p.CadenceMonths)
}

func TestGenerateSaleSchedule(t *testing.T) {
	closing := date(2026, time.March, 10)

	salePlan := func(t *testing.T, totalCents int64, count int) *AmortizationPlan {
		t.Helper()
		p, err := NewAmortizationPlan("Cliente Spa", PlanKindSale, valueobject.NewMoney(totalCents), count, closing, 1)
		require.NoError(t, err)
		return p
	}

	t.Run("half upfront, half at sixty days", func(t *testing.T) {
		p := salePlan(t, 100001, 2)
		installments, err := GenerateSaleSchedule(p, TermsHalfUpfront, closing)
		require.NoError(t, err)
		require.Len(t, installments, 2)

		assert.Equal(t, int64(50001), installments[0].Amount.Cents()) // round(50.0005%)
		assert.Equal(t, int64(50000), installments[1].Amount.Cents())
		assert.Equal(t, int64(100001), sumInstallments(installments))
		assert.Equal(t, closing, installments[0].DueDate)
		assert.Equal(t, closing.AddDate(0, 0, 60), installments[1].DueDate)
	})

	t.Run("thirty percent deposit, balance at twenty-one days", func(t *testing.T) {
		p := salePlan(t, 100000, 2)
		installments, err := GenerateSaleSchedule(p, TermsDeposit30, closing)
		require.NoError(t, err)
		require.Len(t, installments, 2)

		assert.Equal(t, int64(30000), installments[0].Amount.Cents())
		assert.Equal(t, int64(70000), installments[1].Amount.Cents())
		assert.Equal(t, closing.AddDate(0, 0, 21), installments[1].DueDate)
	})

	t.Run("four equal quarterly installments from closing", func(t *testing.T) {
		p := salePlan(t, 100002, 4)
		installments, err := GenerateSaleSchedule(p, TermsQuarterly, closing)
		require.NoError(t, err)
		require.Len(t, installments, 4)

		assert.Equal(t, int64(100002), sumInstallments(installments))
		assert.Equal(t, closing, installments[0].DueDate)
		assert.Equal(t, closing.AddDate(0, 3, 0), installments[1].DueDate)
		assert.Equal(t, closing.AddDate(0, 6, 0), installments[2].DueDate)
		assert.Equal(t, closing.AddDate(0, 9, 0), installments[3].DueDate)
	})

	t.Run("immediate lump sum", func(t *testing.T) {
		p := salePlan(t, 55000, 1)
		installments, err := GenerateSaleSchedule(p, TermsImmediate, closing)
		require.NoError(t, err)
		require.Len(t, installments, 1)
		assert.Equal(t, int64(55000), installments[0].Amount.Cents())
		assert.Equal(t, closing, installments[0].DueDate)
	})

	t.Run("unrecognized terms fall back to a lump sum", func(t *testing.T) {
		p := salePlan(t, 55000, 1)
		installments, err := GenerateSaleSchedule(p, PaymentTerms("BARTER"), closing)
		require.NoError(t, err)
		require.Len(t, installments, 1)
		assert.Equal(t, int64(55000), installments[0].Amount.Cents())
	})

	t.Run("zero closing date rejected", func(t *testing.T) {
		p := salePlan(t, 55000, 1)
		_, err := GenerateSaleSchedule(p, TermsImmediate, time.Time{})
		assert.Error(t, err)
	})
}
