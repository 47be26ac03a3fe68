package liquidity

import (
	"time"

	"github.com/liquiplan/backend/internal/domain/shared"
	"github.com/liquiplan/backend/internal/domain/shared/valueobject"
)

// The projector is pure: it consumes flows already loaded by the caller
// and never touches storage or the clock. Year and reference month are
// always explicit parameters.

// ActualFlow is one actual cash movement as the projector sees it.
// Amounts are signed, inflows positive. Transfers are internal movements
// and never count toward inflow or outflow.
type ActualFlow struct {
	Date     time.Time
	Amount   valueobject.Money
	Transfer bool
}

// ExpectedFlow is one forecast ledger line as the projector sees it.
// Amounts are signed like actual flows.
type ExpectedFlow struct {
	Date   time.Time
	Amount valueobject.Money
}

// LiquidityPoint is one month of the projection. Derived on demand,
// never persisted.
type LiquidityPoint struct {
	Month           int
	ActualInflow    valueobject.Money
	ActualOutflow   valueobject.Money // negative or zero
	ExpectedInflow  valueobject.Money
	ExpectedOutflow valueobject.Money // negative or zero
	Margin          valueobject.Money
	RunningBalance  valueobject.Money
}

// Projection is the full-year liquidity curve plus the phase read off the
// reference month's running balance.
type Projection struct {
	Year           int
	ReferenceMonth int
	OpeningBalance valueobject.Money
	Points         []LiquidityPoint
	ClosingBalance valueobject.Money
	Phase          Phase
}

// Project builds the monthly running-balance series for a year and
// classifies the operating phase from the reference month's balance.
// Flows dated outside the year are ignored.
func Project(year, referenceMonth int, openingBalance valueobject.Money, actuals []ActualFlow, forecasts []ExpectedFlow, thresholds Thresholds) (Projection, error) {
	if referenceMonth < 1 || referenceMonth > 12 {
		return Projection{}, shared.NewDomainError("INVALID_MONTH", "Reference month must be between 1 and 12")
	}

	points := make([]LiquidityPoint, 12)
	for i := range points {
		points[i].Month = i + 1
		points[i].ActualInflow = valueobject.Zero()
		points[i].ActualOutflow = valueobject.Zero()
		points[i].ExpectedInflow = valueobject.Zero()
		points[i].ExpectedOutflow = valueobject.Zero()
	}

	for _, f := range actuals {
		if f.Transfer || f.Date.Year() != year {
			continue
		}
		p := &points[int(f.Date.Month())-1]
		if f.Amount.IsPositive() {
			p.ActualInflow = p.ActualInflow.Add(f.Amount)
		} else {
			p.ActualOutflow = p.ActualOutflow.Add(f.Amount)
		}
	}

	for _, f := range forecasts {
		if f.Date.Year() != year {
			continue
		}
		p := &points[int(f.Date.Month())-1]
		if f.Amount.IsPositive() {
			p.ExpectedInflow = p.ExpectedInflow.Add(f.Amount)
		} else {
			p.ExpectedOutflow = p.ExpectedOutflow.Add(f.Amount)
		}
	}

	balance := openingBalance
	for i := range points {
		points[i].Margin = points[i].ActualInflow.Add(points[i].ActualOutflow)
		balance = balance.Add(points[i].Margin)
		points[i].RunningBalance = balance
	}

	return Projection{
		Year:           year,
		ReferenceMonth: referenceMonth,
		OpeningBalance: openingBalance,
		Points:         points,
		ClosingBalance: points[11].RunningBalance,
		Phase:          ClassifyPhase(points[referenceMonth-1].RunningBalance, thresholds),
	}, nil
}
