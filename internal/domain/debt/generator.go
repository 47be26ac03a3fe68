package debt

import (
	"time"

	"github.com/liquiplan/backend/internal/domain/shared"
	"github.com/liquiplan/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// GenerateSchedule produces the ordered installment list for a plan.
// Installment i is due startDate + i*cadence months; every amount but the
// last is round(total/count) and the last absorbs the rounding remainder,
// so the schedule sums to the plan total exactly whichever way the
// division rounded.
func GenerateSchedule(plan *AmortizationPlan) ([]*Installment, error) {
	amounts, err := plan.TotalAmount.Allocate(plan.InstallmentCount)
	if err != nil {
		return nil, err
	}

	installments := make([]*Installment, plan.InstallmentCount)
	for i := 0; i < plan.InstallmentCount; i++ {
		dueDate := plan.StartDate.AddDate(0, i*plan.CadenceMonths, 0)
		installments[i] = NewInstallment(plan.ID, i+1, dueDate, amounts[i])
	}
	return installments, nil
}

// UnpaidTail regenerates the schedule entries whose sequence is not held
// by a paid installment in existing. Payments can land on any sequence, so
// the tail is computed from the actually-paid sequence numbers rather than
// a prefix count. GenerateSchedule is deterministic, which keeps the paid
// rows plus the regenerated ones summing exactly to the plan total.
func UnpaidTail(plan *AmortizationPlan, existing []Installment) ([]*Installment, error) {
	full, err := GenerateSchedule(plan)
	if err != nil {
		return nil, err
	}

	paid := make(map[int]bool, len(existing))
	for i := range existing {
		if existing[i].Paid {
			paid[existing[i].Sequence] = true
		}
	}

	tail := make([]*Installment, 0, len(full))
	for _, inst := range full {
		if !paid[inst.Sequence] {
			tail = append(tail, inst)
		}
	}
	return tail, nil
}

// RedistributeUnpaid rebuilds the unpaid slots of a plan's schedule after
// its total changed. Paid rows keep their recorded amounts, so the new
// total minus the paid sum is allocated over the unpaid sequences; due
// dates follow the regular schedule.
func RedistributeUnpaid(plan *AmortizationPlan, existing []Installment) ([]*Installment, error) {
	full, err := GenerateSchedule(plan)
	if err != nil {
		return nil, err
	}

	remaining := plan.TotalAmount
	paid := make(map[int]bool, len(existing))
	for i := range existing {
		if existing[i].Paid {
			paid[existing[i].Sequence] = true
			remaining = remaining.Subtract(existing[i].Amount)
		}
	}

	unpaid := make([]*Installment, 0, len(full))
	for _, inst := range full {
		if !paid[inst.Sequence] {
			unpaid = append(unpaid, inst)
		}
	}
	if len(unpaid) == 0 {
		return nil, nil
	}

	amounts, err := remaining.Allocate(len(unpaid))
	if err != nil {
		return nil, err
	}
	for i := range unpaid {
		unpaid[i].Amount = amounts[i]
	}
	return unpaid, nil
}

// PaymentTerms names the collection templates for won sales
type PaymentTerms string

const (
	// TermsHalfUpfront collects half at closing and half sixty days later
	TermsHalfUpfront PaymentTerms = "HALF_UPFRONT"
	// TermsDeposit30 collects a 30% deposit at closing and the remaining
	// 70% twenty-one days later
	TermsDeposit30 PaymentTerms = "DEPOSIT_30"
	// TermsQuarterly collects four equal installments, quarterly from closing
	TermsQuarterly PaymentTerms = "QUARTERLY"
	// TermsImmediate collects the full amount at closing; also the fallback
	// for unrecognized terms
	TermsImmediate PaymentTerms = "IMMEDIATE"
)

// IsValid checks if the terms name a known template
func (t PaymentTerms) IsValid() bool {
	switch t {
	case TermsHalfUpfront, TermsDeposit30, TermsQuarterly, TermsImmediate:
		return true
	}
	return false
}

// String returns the string representation of PaymentTerms
func (t PaymentTerms) String() string {
	return string(t)
}

// tranche is one step of a payment-terms template
type tranche struct {
	percent    int64 // share of the total; 0 marks the remainder tranche
	dayOffset  int   // days after closing
	monthShift int   // months after closing (quarterly template)
}

// templates maps payment terms to their tranche layout. The remainder
// tranche (percent 0) is computed by subtraction so the sum is exact.
var templates = map[PaymentTerms][]tranche{
	TermsHalfUpfront: {
		{percent: 50, dayOffset: 0},
		{percent: 0, dayOffset: 60},
	},
	TermsDeposit30: {
		{percent: 30, dayOffset: 0},
		{percent: 0, dayOffset: 21},
	},
	TermsImmediate: {
		{percent: 0, dayOffset: 0},
	},
}

// GenerateSaleSchedule produces the installments for a won sale according
// to its payment terms. Unrecognized terms fall back to a single lump sum
// due at closing.
func GenerateSaleSchedule(plan *AmortizationPlan, terms PaymentTerms, closingDate time.Time) ([]*Installment, error) {
	if !plan.TotalAmount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Total amount must be positive")
	}
	if closingDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_DATE", "Closing date is required")
	}

	if terms == TermsQuarterly {
		amounts, err := plan.TotalAmount.Allocate(4)
		if err != nil {
			return nil, err
		}
		installments := make([]*Installment, 4)
		for i, amount := range amounts {
			installments[i] = NewInstallment(plan.ID, i+1, closingDate.AddDate(0, i*3, 0), amount)
		}
		return installments, nil
	}

	layout, ok := templates[terms]
	if !ok {
		layout = templates[TermsImmediate]
	}

	installments := make([]*Installment, 0, len(layout))
	remaining := plan.TotalAmount
	for i, tr := range layout {
		var amount valueobject.Money
		if tr.percent > 0 && i < len(layout)-1 {
			amount = plan.TotalAmount.Percentage(decimal.NewFromInt(tr.percent))
		} else {
			amount = remaining
		}
		remaining = remaining.Subtract(amount)
		dueDate := closingDate.AddDate(0, tr.monthShift, tr.dayOffset)
		installments = append(installments, NewInstallment(plan.ID, i+1, dueDate, amount))
	}
	return installments, nil
}
