package planning

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

func newContract(t *testing.T, flowType FlowType, cents int64, freq Frequency, start time.Time, end *time.Time) *RecurringContract {
	t.Helper()
	c, err := NewRecurringContract("Test contract", flowType, valueobject.NewMoney(cents), freq, 0, start, end)
	require.NoError(t, err)
	return c
}

func TestOccurrences_Monthly(t *testing.T) {
	t.Run("full open year yields all twelve months", func(t *testing.T) {
		c := newContract(t, FlowTypeIncome, 10000, FrequencyMonthly, date(2026, time.January, 1), nil)
		assert.Equal(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, Occurrences(c, 2026))
	})

	t.Run("mid-year start clips the window", func(t *testing.T) {
		c := newContract(t, FlowTypeIncome, 10000, FrequencyMonthly, date(2026, time.May, 15), nil)
		assert.Equal(t, []int{5, 6, 7, 8, 9, 10, 11, 12}, Occurrences(c, 2026))
	})

	t.Run("end date clips the window", func(t *testing.T) {
		end := date(2026, time.September, 30)
		c := newContract(t, FlowTypeIncome, 10000, FrequencyMonthly, date(2026, time.March, 1), &end)
		assert.Equal(t, []int{3, 4, 5, 6, 7, 8, 9}, Occurrences(c, 2026))
	})

	t.Run("contract starting in a later year is inactive", func(t *testing.T) {
		c := newContract(t, FlowTypeIncome, 10000, FrequencyMonthly, date(2027, time.January, 1), nil)
		assert.Empty(t, Occurrences(c, 2026))
	})

	t.Run("contract ended in an earlier year is inactive", func(t *testing.T) {
		end := date(2025, time.December, 31)
		c := newContract(t, FlowTypeIncome, 10000, FrequencyMonthly, date(2024, time.January, 1), &end)
		assert.Empty(t, Occurrences(c, 2026))
	})
}

func TestOccurrences_Quarterly(t *testing.T) {
	t.Run("quarterly expense from February", func(t *testing.T) {
		c := newContract(t, FlowTypeExpense, 30000, FrequencyQuarterly, date(2026, time.February, 1), nil)
		assert.Equal(t, []int{2, 5, 8, 11}, Occurrences(c, 2026))
	})

	t.Run("anchor survives window clipping to a later year", func(t *testing.T) {
		c := newContract(t, FlowTypeExpense, 30000, FrequencyQuarterly, date(2025, time.November, 1), nil)
		assert.Equal(t, []int{2, 5, 8, 11}, Occurrences(c, 2026))
	})

	t.Run("shifting the start by one period shifts every occurrence", func(t *testing.T) {
		base := newContract(t, FlowTypeExpense, 30000, FrequencyQuarterly, date(2026, time.January, 1), nil)
		shifted := newContract(t, FlowTypeExpense, 30000, FrequencyQuarterly, date(2026, time.April, 1), nil)

		baseMonths := Occurrences(base, 2026)
		shiftedMonths := Occurrences(shifted, 2026)
		require.NotEmpty(t, shiftedMonths)
		for _, m := range shiftedMonths {
			assert.Contains(t, baseMonths, ((m-1-3+12)%12)+1)
		}
	})
}

func TestOccurrences_Semiannual(t *testing.T) {
	c := newContract(t, FlowTypeExpense, 60000, FrequencySemiannual, date(2026, time.March, 10), nil)
	assert.Equal(t, []int{3, 9}, Occurrences(c, 2026))

	// Anchored from the previous year.
	c = newContract(t, FlowTypeExpense, 60000, FrequencySemiannual, date(2025, time.October, 1), nil)
	assert.Equal(t, []int{4, 10}, Occurrences(c, 2026))
}

func TestOccurrences_AnnualAndOneTime(t *testing.T) {
	t.Run("annual recurs on the start month", func(t *testing.T) {
		c := newContract(t, FlowTypeExpense, 120000, FrequencyAnnual, date(2025, time.July, 1), nil)
		assert.Equal(t, []int{7}, Occurrences(c, 2026))
	})

	t.Run("start month outside the clipped window yields nothing", func(t *testing.T) {
		end := date(2026, time.May, 31)
		c := newContract(t, FlowTypeExpense, 120000, FrequencyAnnual, date(2025, time.July, 1), &end)
		assert.Empty(t, Occurrences(c, 2026))
	})
}

func TestOccurrences_UnknownFrequencyFallsBackToMonthly(t *testing.T) {
	c := newContract(t, FlowTypeIncome, 10000, FrequencyMonthly, date(2026, time.January, 1), nil)
	c.Frequency = Frequency("WEEKLY")
	assert.Len(t, Occurrences(c, 2026), 12)
}

func TestOccurrenceDates_ClampsDayToMonthEnd(t *testing.T) {
	c, err := NewRecurringContract("Rent", FlowTypeExpense, valueobject.NewMoney(80000),
		FrequencyMonthly, 31, date(2026, time.January, 31), nil)
	require.NoError(t, err)

	dates := OccurrenceDates(c, 2026)
	require.Len(t, dates, 12)
	assert.Equal(t, date(2026, time.January, 31), dates[0])
	assert.Equal(t, date(2026, time.February, 28), dates[1])
	assert.Equal(t, date(2026, time.April, 30), dates[3])
}

func TestFrequencyMultiplier(t *testing.T) {
	tests := []struct {
		name         string
		frequency    Frequency
		activeMonths int
		expected     int
	}{
		{"monthly full year", FrequencyMonthly, 12, 12},
		{"monthly partial", FrequencyMonthly, 5, 5},
		{"quarterly full year", FrequencyQuarterly, 12, 4},
		{"quarterly partial", FrequencyQuarterly, 7, 2},
		{"semiannual full year", FrequencySemiannual, 12, 2},
		{"semiannual too short", FrequencySemiannual, 5, 0},
		{"annual", FrequencyAnnual, 12, 1},
		{"one time", FrequencyOneTime, 12, 1},
		{"no active months", FrequencyMonthly, 0, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FrequencyMultiplier(tc.frequency, tc.activeMonths))
		})
	}
}

// The multiplier and the month-by-month schedule must agree on the total
// occurrence count for any full-year, non-clipped contract, or annual
// totals drift from the materialized entries.
func TestFrequencyMultiplier_AgreesWithOccurrences(t *testing.T) {
	tests := []struct {
		frequency   Frequency
		occurrences int
	}{
		{FrequencyMonthly, 12},
		{FrequencyQuarterly, 4},
		{FrequencySemiannual, 2},
		{FrequencyAnnual, 1},
		{FrequencyOneTime, 1},
	}

	for _, tc := range tests {
		t.Run(tc.frequency.String(), func(t *testing.T) {
			c := newContract(t, FlowTypeIncome, 10000, tc.frequency, date(2026, time.January, 1), nil)
			months := Occurrences(c, 2026)
			require.Len(t, months, tc.occurrences)
			assert.Equal(t, len(months), FrequencyMultiplier(tc.frequency, ActiveMonths(c, 2026)))
		})
	}
}

func TestActiveMonths(t *testing.T) {
	c := newContract(t, FlowTypeIncome, 10000, FrequencyMonthly, date(2026, time.May, 1), nil)
	assert.Equal(t, 8, ActiveMonths(c, 2026))
	assert.Equal(t, 12, ActiveMonths(c, 2027))
	assert.Equal(t, 0, ActiveMonths(c, 2025))
}

// End-to-end scenario: monthly income of 10 000 cents from 2026-01-01 with
// no end date occurs every month and totals 120 000 over the year.
func TestSchedule_AnnualTotalScenario(t *testing.T) {
	c := newContract(t, FlowTypeIncome, 10000, FrequencyMonthly, date(2026, time.January, 1), nil)

	months := Occurrences(c, 2026)
	require.Len(t, months, 12)

	total := c.Amount.MultiplyByInt(int64(FrequencyMultiplier(c.Frequency, ActiveMonths(c, 2026))))
	assert.Equal(t, int64(120000), total.Cents())
}
