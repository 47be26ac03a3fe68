package debt

import (
	"github.com/google/uuid"
	"github.com/liquiplan/backend/internal/domain/shared"
)

// Event types for the debt context
const (
	EventPlanCreated         = "debt.plan.created"
	EventInstallmentPaid     = "debt.installment.paid"
	EventInstallmentReverted = "debt.installment.payment_reverted"
	EventPlanSettled         = "debt.plan.settled"
)

const aggregateTypePlan = "AmortizationPlan"

// PlanCreatedEvent is raised when an amortization plan is created
type PlanCreatedEvent struct {
	shared.BaseDomainEvent
	Counterparty     string   `json:"counterparty"`
	Kind             PlanKind `json:"kind"`
	TotalCents       int64    `json:"total_cents"`
	InstallmentCount int      `json:"installment_count"`
}

// NewPlanCreatedEvent creates a new PlanCreatedEvent
func NewPlanCreatedEvent(p *AmortizationPlan) *PlanCreatedEvent {
	return &PlanCreatedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent(EventPlanCreated, aggregateTypePlan, p.ID),
		Counterparty:     p.Counterparty,
		Kind:             p.Kind,
		TotalCents:       p.TotalAmount.Cents(),
		InstallmentCount: p.InstallmentCount,
	}
}

// InstallmentPaidEvent is raised when an installment is marked paid
type InstallmentPaidEvent struct {
	shared.BaseDomainEvent
	InstallmentID uuid.UUID `json:"installment_id"`
	Sequence      int       `json:"sequence"`
	AmountCents   int64     `json:"amount_cents"`
}

// NewInstallmentPaidEvent creates a new InstallmentPaidEvent
func NewInstallmentPaidEvent(p *AmortizationPlan, inst *Installment) *InstallmentPaidEvent {
	return &InstallmentPaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventInstallmentPaid, aggregateTypePlan, p.ID),
		InstallmentID:   inst.ID,
		Sequence:        inst.Sequence,
		AmountCents:     inst.Amount.Cents(),
	}
}

// InstallmentRevertedEvent is raised when an installment payment is undone
type InstallmentRevertedEvent struct {
	shared.BaseDomainEvent
	InstallmentID uuid.UUID `json:"installment_id"`
	Sequence      int       `json:"sequence"`
	AmountCents   int64     `json:"amount_cents"`
}

// NewInstallmentRevertedEvent creates a new InstallmentRevertedEvent
func NewInstallmentRevertedEvent(p *AmortizationPlan, inst *Installment) *InstallmentRevertedEvent {
	return &InstallmentRevertedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventInstallmentReverted, aggregateTypePlan, p.ID),
		InstallmentID:   inst.ID,
		Sequence:        inst.Sequence,
		AmountCents:     inst.Amount.Cents(),
	}
}

// PlanSettledEvent is raised when the last installment of a plan is paid
type PlanSettledEvent struct {
	shared.BaseDomainEvent
}

// NewPlanSettledEvent creates a new PlanSettledEvent
func NewPlanSettledEvent(p *AmortizationPlan) *PlanSettledEvent {
	return &PlanSettledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventPlanSettled, aggregateTypePlan, p.ID),
	}
}
