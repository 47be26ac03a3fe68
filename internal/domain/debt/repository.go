package debt

import (
	"context"

	"github.com/google/uuid"
)

// PlanRepository persists amortization plans
type PlanRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*AmortizationPlan, error)
	FindAll(ctx context.Context, filter PlanFilter) ([]AmortizationPlan, error)
	// FindBySource looks up the plan generated from a given origin record
	// (sale opportunity or promoted forecast entry).
	FindBySource(ctx context.Context, sourceID uuid.UUID) (*AmortizationPlan, error)
	Save(ctx context.Context, plan *AmortizationPlan) error
}

// PlanFilter defines query options for plan lookups
type PlanFilter struct {
	Kind           PlanKind // empty = all kinds
	ActiveOnly     bool
	IncludeDeleted bool
}

// InstallmentRepository persists plan installments
type InstallmentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Installment, error)
	FindByPlan(ctx context.Context, planID uuid.UUID) ([]Installment, error)
	Save(ctx context.Context, installment *Installment) error
	SaveAll(ctx context.Context, installments []*Installment) error
	// DeleteUnpaidByPlan removes the unpaid tail of a plan's schedule ahead
	// of regeneration. Paid history is never deleted.
	DeleteUnpaidByPlan(ctx context.Context, planID uuid.UUID) error
	// DeleteByPlan removes the whole schedule, paid rows included. Only
	// explicit full regenerations use it.
	DeleteByPlan(ctx context.Context, planID uuid.UUID) error
}
