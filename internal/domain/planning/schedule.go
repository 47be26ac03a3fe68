package planning

import "time"

// This file is the single occurrence calculator for the whole system.
// Every caller that needs to know when a contract produces cash events goes
// through these functions; none of them touch storage or the clock, so the
// same inputs always produce the same schedule. The target year is always
// an explicit parameter.

// Occurrences returns the months of the given year (1..12, ascending) in
// which the contract produces a cash event.
//
// The contract's active window is intersected with the year. Quarterly and
// semiannual contracts stay anchored to the contract's original start month
// even when the window is clipped: a quarterly contract started in November
// keeps hitting February, May, August and November of later years.
func Occurrences(c *RecurringContract, year int) []int {
	startMonth := effectiveStartMonth(c, year)
	endMonth := effectiveEndMonth(c, year)
	if startMonth > 12 || endMonth < 1 || startMonth > endMonth {
		return nil
	}

	anchor := int(c.StartDate.Month())

	switch c.Frequency {
	case FrequencyQuarterly, FrequencySemiannual:
		period := c.Frequency.PeriodMonths()
		months := make([]int, 0, (endMonth-startMonth)/period+1)
		for m := startMonth; m <= endMonth; m++ {
			if mod(m-anchor, period) == 0 {
				months = append(months, m)
			}
		}
		return months
	case FrequencyAnnual, FrequencyOneTime:
		if anchor >= startMonth && anchor <= endMonth {
			return []int{anchor}
		}
		return nil
	default:
		// Monthly, and the defensive fallback for unknown frequencies.
		months := make([]int, 0, endMonth-startMonth+1)
		for m := startMonth; m <= endMonth; m++ {
			months = append(months, m)
		}
		return months
	}
}

// OccurrenceDates returns the concrete dates of the contract's occurrences
// in the given year, on the contract's expected day of month clamped to the
// length of each month.
func OccurrenceDates(c *RecurringContract, year int) []time.Time {
	months := Occurrences(c, year)
	dates := make([]time.Time, 0, len(months))
	for _, m := range months {
		dates = append(dates, dateInMonth(year, time.Month(m), c.DayOfMonth))
	}
	return dates
}

// ActiveMonths returns how many months of the given year fall inside the
// contract's active window, regardless of frequency.
func ActiveMonths(c *RecurringContract, year int) int {
	startMonth := effectiveStartMonth(c, year)
	endMonth := effectiveEndMonth(c, year)
	if startMonth > 12 || endMonth < 1 || startMonth > endMonth {
		return 0
	}
	return endMonth - startMonth + 1
}

// FrequencyMultiplier returns how many times an event with the given
// frequency occurs across activeMonths months in range. Used for annual
// total estimates where generating the month-by-month schedule is not
// needed; for any full-year, non-clipped contract it agrees with
// len(Occurrences).
func FrequencyMultiplier(frequency Frequency, activeMonths int) int {
	if activeMonths <= 0 {
		return 0
	}
	switch frequency {
	case FrequencyQuarterly:
		return activeMonths / 3
	case FrequencySemiannual:
		return activeMonths / 6
	case FrequencyAnnual, FrequencyOneTime:
		return 1
	default:
		return activeMonths
	}
}

// effectiveStartMonth clips the contract's start to the target year:
// 1 when it started earlier, 13 (inactive) when it starts later.
func effectiveStartMonth(c *RecurringContract, year int) int {
	switch {
	case c.StartDate.Year() < year:
		return 1
	case c.StartDate.Year() > year:
		return 13
	default:
		return int(c.StartDate.Month())
	}
}

// effectiveEndMonth clips the contract's end to the target year:
// 12 when open-ended or ending later, 0 (inactive) when it ended earlier.
func effectiveEndMonth(c *RecurringContract, year int) int {
	if c.EndDate == nil {
		return 12
	}
	switch {
	case c.EndDate.Year() > year:
		return 12
	case c.EndDate.Year() < year:
		return 0
	default:
		return int(c.EndDate.Month())
	}
}

// dateInMonth builds the occurrence date, clamping the day to the last day
// of short months (a day-31 contract falls on Feb 28/29).
func dateInMonth(year int, month time.Month, day int) time.Time {
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > last {
		day = last
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// mod is the mathematical modulo: always in [0, p)
func mod(n, p int) int {
	return ((n % p) + p) % p
}
