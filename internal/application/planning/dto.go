package planning

import (
	"time"

	"github.com/google/uuid"
	"github.com/liquiplan/backend/internal/domain/planning"
)

// CreateContractRequest represents a request to create a recurring contract
type CreateContractRequest struct {
	Name        string     `json:"name" binding:"required,min=1,max=200"`
	FlowType    string     `json:"flow_type" binding:"required,oneof=INCOME EXPENSE"`
	AmountCents int64      `json:"amount_cents" binding:"required,gt=0"`
	Frequency   string     `json:"frequency" binding:"required,oneof=MONTHLY QUARTERLY SEMIANNUAL ANNUAL ONE_TIME"`
	DayOfMonth  int        `json:"day_of_month" binding:"omitempty,min=1,max=31"`
	StartDate   time.Time  `json:"start_date" binding:"required"`
	EndDate     *time.Time `json:"end_date"`
	CenterID    *uuid.UUID `json:"center_id"`
	Notes       string     `json:"notes" binding:"max=2000"`
}

// UpdateContractRequest updates fields that leave the schedule untouched
type UpdateContractRequest struct {
	Name        string     `json:"name" binding:"required,min=1,max=200"`
	AmountCents int64      `json:"amount_cents" binding:"required,gt=0"`
	Notes       string     `json:"notes" binding:"max=2000"`
	CenterID    *uuid.UUID `json:"center_id"`
}

// RescheduleContractRequest changes the occurrence schedule of a contract
type RescheduleContractRequest struct {
	Frequency  string     `json:"frequency" binding:"required,oneof=MONTHLY QUARTERLY SEMIANNUAL ANNUAL ONE_TIME"`
	DayOfMonth int        `json:"day_of_month" binding:"omitempty,min=1,max=31"`
	StartDate  time.Time  `json:"start_date" binding:"required"`
	EndDate    *time.Time `json:"end_date"`
}

// TerminateContractRequest ends a contract as of an effective date
type TerminateContractRequest struct {
	EffectiveDate time.Time `json:"effective_date" binding:"required"`
}

// ContractListFilter represents filter options for contract list
type ContractListFilter struct {
	FlowType   string     `form:"flow_type" binding:"omitempty,oneof=INCOME EXPENSE"`
	CenterID   *uuid.UUID `form:"center_id"`
	ActiveOnly bool       `form:"active_only"`
	Year       int        `form:"year" binding:"omitempty,min=1970,max=2200"`
}

// ContractResponse represents a contract in API responses
type ContractResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	FlowType    string     `json:"flow_type"`
	AmountCents int64      `json:"amount_cents"`
	Frequency   string     `json:"frequency"`
	DayOfMonth  int        `json:"day_of_month"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	CenterID    *uuid.UUID `json:"center_id"`
	State       string     `json:"state"`
	Notes       string     `json:"notes"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	Version     int        `json:"version"`
	// SyncWarning is set when the contract write succeeded but the derived
	// forecast entries could not be fully synchronized.
	SyncWarning string `json:"sync_warning,omitempty"`
}

// ToContractResponse converts a domain contract to a response DTO
func ToContractResponse(c *planning.RecurringContract) *ContractResponse {
	return &ContractResponse{
		ID:          c.ID,
		Name:        c.Name,
		FlowType:    c.FlowType.String(),
		AmountCents: c.Amount.Cents(),
		Frequency:   c.Frequency.String(),
		DayOfMonth:  c.DayOfMonth,
		StartDate:   c.StartDate,
		EndDate:     c.EndDate,
		CenterID:    c.CenterID,
		State:       c.State.String(),
		Notes:       c.Notes,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
		Version:     c.Version,
	}
}

// ScheduleResponse previews the occurrence schedule of a contract for a year
type ScheduleResponse struct {
	ContractID          uuid.UUID   `json:"contract_id"`
	Year                int         `json:"year"`
	Months              []int       `json:"months"`
	Dates               []time.Time `json:"dates"`
	FrequencyMultiplier int         `json:"frequency_multiplier"`
	AnnualTotalCents    int64       `json:"annual_total_cents"`
}

// CreateManualEntryRequest adds a hand-written forecast entry
type CreateManualEntryRequest struct {
	Date        time.Time `json:"date" binding:"required"`
	FlowType    string    `json:"flow_type" binding:"required,oneof=INCOME EXPENSE"`
	AmountCents int64     `json:"amount_cents" binding:"required,gt=0"`
	Description string    `json:"description" binding:"max=500"`
	Reliability string    `json:"reliability" binding:"omitempty,oneof=CONFIRMED LIKELY UNCERTAIN"`
}

// PatchEntryRequest edits the cosmetic fields of a forecast entry
type PatchEntryRequest struct {
	Date        time.Time `json:"date" binding:"required"`
	AmountCents int64     `json:"amount_cents" binding:"required,gt=0"`
	Description string    `json:"description" binding:"max=500"`
	Reliability string    `json:"reliability" binding:"required,oneof=CONFIRMED LIKELY UNCERTAIN"`
}

// PromoteEntryRequest turns an expense entry into an amortization plan.
// With PlanID set the entry is appended to that plan as one extra
// installment and the remaining fields only shape the new-plan path.
type PromoteEntryRequest struct {
	Counterparty     string     `json:"counterparty" binding:"required,min=1,max=200"`
	InstallmentCount int        `json:"installment_count" binding:"required,gt=0"`
	CadenceMonths    int        `json:"cadence_months" binding:"omitempty,gt=0"`
	StartDate        time.Time  `json:"start_date"`
	PlanID           *uuid.UUID `json:"plan_id"`
}

// EntryListFilter represents filter options for forecast entry list
type EntryListFilter struct {
	From time.Time `form:"from" binding:"required" time_format:"2006-01-02"`
	To   time.Time `form:"to" binding:"required" time_format:"2006-01-02"`
}

// EntryResponse represents a forecast entry in API responses
type EntryResponse struct {
	ID          uuid.UUID  `json:"id"`
	Date        time.Time  `json:"date"`
	FlowType    string     `json:"flow_type"`
	AmountCents int64      `json:"amount_cents"`
	Description string     `json:"description"`
	SourceType  *string    `json:"source_type"`
	SourceID    *uuid.UUID `json:"source_id"`
	Reliability string     `json:"reliability"`
	State       string     `json:"state"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// ToEntryResponse converts a domain forecast entry to a response DTO
func ToEntryResponse(e *planning.ForecastEntry) *EntryResponse {
	resp := &EntryResponse{
		ID:          e.ID,
		Date:        e.Date,
		FlowType:    e.FlowType.String(),
		AmountCents: e.Amount.Cents(),
		Description: e.Description,
		SourceID:    e.SourceID,
		Reliability: string(e.Reliability),
		State:       e.State.String(),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
	if e.SourceType != nil {
		st := string(*e.SourceType)
		resp.SourceType = &st
	}
	return resp
}
