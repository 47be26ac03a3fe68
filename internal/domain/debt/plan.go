package debt

import (
	"time"

	"github.com/google/uuid"
	"github.com/liquiplan/backend/internal/domain/shared"
	"github.com/liquiplan/backend/internal/domain/shared/valueobject"
)

// PlanKind distinguishes debts being paid off from won sales being collected
type PlanKind string

const (
	PlanKindDebt PlanKind = "DEBT"
	PlanKindSale PlanKind = "SALE"
)

// IsValid checks if the kind is a valid PlanKind
func (k PlanKind) IsValid() bool {
	return k == PlanKindDebt || k == PlanKindSale
}

// String returns the string representation of PlanKind
func (k PlanKind) String() string {
	return string(k)
}

// AmortizationPlan represents a fixed-total amount paid off across a known
// number of installments - a supplier debt, a tax bill in instalments, or a
// won sale collected in tranches. The plan stays active until every
// installment is paid and reactivates if a payment is reversed.
type AmortizationPlan struct {
	shared.BaseAggregateRoot
	Counterparty         string
	Kind                 PlanKind
	TotalAmount          valueobject.Money
	InstallmentAmount    valueobject.Money
	InstallmentCount     int
	PaidInstallmentCount int
	StartDate            time.Time
	CadenceMonths        int
	Active               bool
	SourceID             *uuid.UUID // originating sale opportunity or forecast entry
	State                shared.Lifecycle
	DeletedAt            *time.Time
}

// NewAmortizationPlan creates a new amortization plan. The per-installment
// amount is derived from the total; the generator's last-installment
// correction guarantees the schedule sums back to TotalAmount exactly.
func NewAmortizationPlan(
	counterparty string,
	kind PlanKind,
	totalAmount valueobject.Money,
	installmentCount int,
	startDate time.Time,
	cadenceMonths int,
) (*AmortizationPlan, error) {
	if counterparty == "" {
		return nil, shared.NewDomainError("INVALID_COUNTERPARTY", "Counterparty cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_KIND", "Plan kind must be DEBT or SALE")
	}
	if !totalAmount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Total amount must be positive")
	}
	if installmentCount <= 0 {
		return nil, shared.NewDomainError("INVALID_COUNT", "Installment count must be positive")
	}
	if startDate.IsZero() {
		return nil, shared.NewDomainError("INVALID_START_DATE", "Start date is required")
	}
	if cadenceMonths <= 0 {
		cadenceMonths = 1
	}

	perInstallment, err := totalAmount.DivideByInt(int64(installmentCount))
	if err != nil {
		return nil, err
	}

	plan := &AmortizationPlan{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Counterparty:      counterparty,
		Kind:              kind,
		TotalAmount:       totalAmount,
		InstallmentAmount: perInstallment,
		InstallmentCount:  installmentCount,
		StartDate:         startDate,
		CadenceMonths:     cadenceMonths,
		Active:            true,
		State:             shared.LifecycleActive,
	}

	plan.AddDomainEvent(NewPlanCreatedEvent(plan))

	return plan, nil
}

// SetSource links the plan to its originating record (a won sale
// opportunity or a promoted forecast entry). Used as the idempotency key
// for won-sale installment generation.
func (p *AmortizationPlan) SetSource(sourceID uuid.UUID) {
	p.SourceID = &sourceID
	p.UpdatedAt = time.Now()
}

// RegisterPayment records one more paid installment and deactivates the
// plan once every installment is settled.
func (p *AmortizationPlan) RegisterPayment() error {
	if p.State.IsDeleted() {
		return shared.NewDomainError("INVALID_STATE", "Plan is deleted")
	}
	if p.PaidInstallmentCount >= p.InstallmentCount {
		return shared.NewDomainError("ALREADY_SETTLED", "All installments are already paid")
	}
	p.PaidInstallmentCount++
	p.recalcActive()
	p.UpdatedAt = time.Now()
	return nil
}

// RevertPayment reverses one paid installment and reactivates the plan if
// it had been settled.
func (p *AmortizationPlan) RevertPayment() error {
	if p.State.IsDeleted() {
		return shared.NewDomainError("INVALID_STATE", "Plan is deleted")
	}
	if p.PaidInstallmentCount <= 0 {
		return shared.NewDomainError("NOTHING_PAID", "No paid installment to revert")
	}
	p.PaidInstallmentCount--
	p.recalcActive()
	p.UpdatedAt = time.Now()
	return nil
}

// ResetPayments zeroes the paid count. Only full regenerations call this,
// and only when explicitly requested by the caller.
func (p *AmortizationPlan) ResetPayments() {
	p.PaidInstallmentCount = 0
	p.recalcActive()
	p.UpdatedAt = time.Now()
}

// Extend grows the plan by additional installments of the given amount,
// used when appending a promoted forecast entry to an existing plan.
func (p *AmortizationPlan) Extend(amount valueobject.Money) error {
	if p.State.IsDeleted() {
		return shared.NewDomainError("INVALID_STATE", "Plan is deleted")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Amount must be positive")
	}
	p.TotalAmount = p.TotalAmount.Add(amount)
	p.InstallmentCount++
	p.recalcActive()
	p.UpdatedAt = time.Now()
	return nil
}

// IsSettled returns true when every installment has been paid
func (p *AmortizationPlan) IsSettled() bool {
	return p.PaidInstallmentCount >= p.InstallmentCount
}

// Delete soft-deletes the plan
func (p *AmortizationPlan) Delete() error {
	if p.State.IsDeleted() {
		return shared.NewDomainError("INVALID_STATE", "Plan is already deleted")
	}
	now := time.Now()
	p.State = shared.LifecycleDeleted
	p.DeletedAt = &now
	p.Active = false
	p.UpdatedAt = now
	return nil
}

func (p *AmortizationPlan) recalcActive() {
	p.Active = p.PaidInstallmentCount < p.InstallmentCount
}
