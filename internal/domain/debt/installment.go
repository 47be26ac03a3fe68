package debt

import (
	"time"

	"github.com/google/uuid"
	"github.com/liquiplan/backend/internal/domain/shared"
	"github.com/liquiplan/backend/internal/domain/shared/valueobject"
)

// Installment represents one due tranche of an amortization plan. Due dates
// within a plan increase strictly by the plan's cadence; amounts always sum
// exactly to the plan total. Paid state is mutated only through Pay/Unpay.
type Installment struct {
	shared.BaseEntity
	PlanID        uuid.UUID
	Sequence      int
	DueDate       time.Time
	Amount        valueobject.Money
	Paid          bool
	PaidDate      *time.Time
	TransactionID *uuid.UUID // actual transaction that settled this tranche
}

// NewInstallment creates an installment for a plan
func NewInstallment(planID uuid.UUID, sequence int, dueDate time.Time, amount valueobject.Money) *Installment {
	return &Installment{
		BaseEntity: shared.NewBaseEntity(),
		PlanID:     planID,
		Sequence:   sequence,
		DueDate:    dueDate,
		Amount:     amount,
	}
}

// Pay marks the installment as paid, optionally linking the settling
// transaction.
func (i *Installment) Pay(paidDate time.Time, transactionID *uuid.UUID) error {
	if i.Paid {
		return shared.NewDomainError("ALREADY_PAID", "Installment is already paid")
	}
	if paidDate.IsZero() {
		paidDate = time.Now()
	}
	i.Paid = true
	i.PaidDate = &paidDate
	i.TransactionID = transactionID
	i.UpdatedAt = time.Now()
	return nil
}

// Unpay reverses a recorded payment
func (i *Installment) Unpay() error {
	if !i.Paid {
		return shared.NewDomainError("NOT_PAID", "Installment is not paid")
	}
	i.Paid = false
	i.PaidDate = nil
	i.TransactionID = nil
	i.UpdatedAt = time.Now()
	return nil
}
