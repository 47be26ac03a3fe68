package debt

import (
	"time"

	"github.com/google/uuid"
	"github.com/liquiplan/backend/internal/domain/debt"
)

// CreatePlanRequest represents a request to create an amortization plan
type CreatePlanRequest struct {
	Counterparty     string    `json:"counterparty" binding:"required,min=1,max=200"`
	Kind             string    `json:"kind" binding:"required,oneof=DEBT SALE"`
	TotalCents       int64     `json:"total_cents" binding:"required,gt=0"`
	InstallmentCount int       `json:"installment_count" binding:"required,gt=0"`
	StartDate        time.Time `json:"start_date" binding:"required"`
	CadenceMonths    int       `json:"cadence_months" binding:"omitempty,gt=0"`
}

// RegeneratePlanRequest rebuilds a plan's installment schedule
type RegeneratePlanRequest struct {
	// ResetPayments discards paid history and rebuilds the full schedule.
	// Off by default: normal regeneration replaces only the unpaid tail.
	ResetPayments bool `json:"reset_payments"`
}

// PayInstallmentRequest marks an installment as paid
type PayInstallmentRequest struct {
	PaidDate      time.Time  `json:"paid_date" binding:"required"`
	TransactionID *uuid.UUID `json:"transaction_id"`
}

// WonSaleRequest triggers installment generation for a sale opportunity
// that moved into the won state.
type WonSaleRequest struct {
	OpportunityID uuid.UUID `json:"opportunity_id" binding:"required"`
	Counterparty  string    `json:"counterparty" binding:"required,min=1,max=200"`
	TotalCents    int64     `json:"total_cents" binding:"required,gt=0"`
	PaymentTerms  string    `json:"payment_terms" binding:"required"`
	ClosingDate   time.Time `json:"closing_date" binding:"required"`
}

// PlanListFilter represents filter options for plan list
type PlanListFilter struct {
	Kind       string `form:"kind" binding:"omitempty,oneof=DEBT SALE"`
	ActiveOnly bool   `form:"active_only"`
}

// PlanResponse represents an amortization plan in API responses
type PlanResponse struct {
	ID                     uuid.UUID  `json:"id"`
	Counterparty           string     `json:"counterparty"`
	Kind                   string     `json:"kind"`
	TotalCents             int64      `json:"total_cents"`
	InstallmentAmountCents int64      `json:"installment_amount_cents"`
	InstallmentCount       int        `json:"installment_count"`
	PaidInstallmentCount   int        `json:"paid_installment_count"`
	StartDate              time.Time  `json:"start_date"`
	CadenceMonths          int        `json:"cadence_months"`
	Active                 bool       `json:"active"`
	Settled                bool       `json:"settled"`
	SourceID               *uuid.UUID `json:"source_id"`
	State                  string     `json:"state"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
	Version                int        `json:"version"`
}

// ToPlanResponse converts a domain plan to a response DTO
func ToPlanResponse(p *debt.AmortizationPlan) *PlanResponse {
	return &PlanResponse{
		ID:                     p.ID,
		Counterparty:           p.Counterparty,
		Kind:                   p.Kind.String(),
		TotalCents:             p.TotalAmount.Cents(),
		InstallmentAmountCents: p.InstallmentAmount.Cents(),
		InstallmentCount:       p.InstallmentCount,
		PaidInstallmentCount:   p.PaidInstallmentCount,
		StartDate:              p.StartDate,
		CadenceMonths:          p.CadenceMonths,
		Active:                 p.Active,
		Settled:                p.IsSettled(),
		SourceID:               p.SourceID,
		State:                  p.State.String(),
		CreatedAt:              p.CreatedAt,
		UpdatedAt:              p.UpdatedAt,
		Version:                p.Version,
	}
}

// InstallmentResponse represents an installment in API responses
type InstallmentResponse struct {
	ID            uuid.UUID  `json:"id"`
	PlanID        uuid.UUID  `json:"plan_id"`
	Sequence      int        `json:"sequence"`
	DueDate       time.Time  `json:"due_date"`
	AmountCents   int64      `json:"amount_cents"`
	Paid          bool       `json:"paid"`
	PaidDate      *time.Time `json:"paid_date"`
	TransactionID *uuid.UUID `json:"transaction_id"`
}

// ToInstallmentResponse converts a domain installment to a response DTO
func ToInstallmentResponse(i *debt.Installment) *InstallmentResponse {
	return &InstallmentResponse{
		ID:            i.ID,
		PlanID:        i.PlanID,
		Sequence:      i.Sequence,
		DueDate:       i.DueDate,
		AmountCents:   i.Amount.Cents(),
		Paid:          i.Paid,
		PaidDate:      i.PaidDate,
		TransactionID: i.TransactionID,
	}
}

// PlanDetailResponse bundles a plan with its schedule
type PlanDetailResponse struct {
	Plan         PlanResponse          `json:"plan"`
	Installments []InstallmentResponse `json:"installments"`
}
