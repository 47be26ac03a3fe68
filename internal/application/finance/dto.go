package finance

import (
	"time"

	"github.com/google/uuid"
	"github.com/liquiplan/backend/internal/domain/finance"
	"github.com/liquiplan/backend/internal/domain/liquidity"
)

// CreateTransactionRequest records an actual cash movement
type CreateTransactionRequest struct {
	Date        time.Time `json:"date" binding:"required"`
	AmountCents int64     `json:"amount_cents" binding:"required"`
	Description string    `json:"description" binding:"max=500"`
	Transfer    bool      `json:"transfer"`
}

// TransactionResponse represents a transaction in API responses
type TransactionResponse struct {
	ID          uuid.UUID `json:"id"`
	Date        time.Time `json:"date"`
	AmountCents int64     `json:"amount_cents"`
	Description string    `json:"description"`
	Transfer    bool      `json:"transfer"`
	Inflow      bool      `json:"inflow"`
	State       string    `json:"state"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToTransactionResponse converts a domain transaction to a response DTO
func ToTransactionResponse(t *finance.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:          t.ID,
		Date:        t.Date,
		AmountCents: t.Amount.Cents(),
		Description: t.Description,
		Transfer:    t.Transfer,
		Inflow:      t.IsInflow(),
		State:       t.State.String(),
		CreatedAt:   t.CreatedAt,
	}
}

// CreateSplitRequest splits a gross receipt transaction
type CreateSplitRequest struct {
	TransactionID uuid.UUID `json:"transaction_id" binding:"required"`
}

// SplitResponse represents an income split with its derived transfer
type SplitResponse struct {
	ID                   uuid.UUID `json:"id"`
	TransactionID        uuid.UUID `json:"transaction_id"`
	GrossCents           int64     `json:"gross_cents"`
	NetCents             int64     `json:"net_cents"`
	OwnerShareCents      int64     `json:"owner_share_cents"`
	ReserveShareCents    int64     `json:"reserve_share_cents"`
	OperationsShareCents int64     `json:"operations_share_cents"`
	TaxShareCents        int64     `json:"tax_share_cents"`
	TransferID           uuid.UUID `json:"transfer_id"`
	CreatedAt            time.Time `json:"created_at"`
}

// ToSplitResponse converts a domain split to a response DTO
func ToSplitResponse(s *finance.IncomeSplit, transferID uuid.UUID) *SplitResponse {
	return &SplitResponse{
		ID:                   s.ID,
		TransactionID:        s.TransactionID,
		GrossCents:           s.Gross.Cents(),
		NetCents:             s.Net.Cents(),
		OwnerShareCents:      s.OwnerShare.Cents(),
		ReserveShareCents:    s.ReserveShare.Cents(),
		OperationsShareCents: s.OperationsShare.Cents(),
		TaxShareCents:        s.TaxShare.Cents(),
		TransferID:           transferID,
		CreatedAt:            s.CreatedAt,
	}
}

// SaleSplitRequest previews the decomposition of a gross sale receipt
type SaleSplitRequest struct {
	GrossCents     int64   `json:"gross_cents" binding:"required,gt=0"`
	CommissionRate float64 `json:"commission_rate" binding:"min=0,max=100"`
}

// SaleSplitResponse represents a sale decomposition preview
type SaleSplitResponse struct {
	GrossCents          int64 `json:"gross_cents"`
	NetCents            int64 `json:"net_cents"`
	CommissionCents     int64 `json:"commission_cents"`
	PostCommissionCents int64 `json:"post_commission_cents"`
	TaxShareCents       int64 `json:"tax_share_cents"`
	PartnersShareCents  int64 `json:"partners_share_cents"`
	AvailableCents      int64 `json:"available_cents"`
}

// ProjectionRequest asks for the liquidity curve of a year. The reference
// month anchors the phase classification; callers pass the month they are
// looking at, usually the current one.
type ProjectionRequest struct {
	Year           int `form:"year" binding:"required,min=1970,max=2200"`
	ReferenceMonth int `form:"reference_month" binding:"required,min=1,max=12"`
}

// LiquidityPointResponse is one month of the projected liquidity curve
type LiquidityPointResponse struct {
	Month                int   `json:"month"`
	ActualInflowCents    int64 `json:"actual_inflow_cents"`
	ActualOutflowCents   int64 `json:"actual_outflow_cents"`
	ExpectedInflowCents  int64 `json:"expected_inflow_cents"`
	ExpectedOutflowCents int64 `json:"expected_outflow_cents"`
	MarginCents          int64 `json:"margin_cents"`
	RunningBalanceCents  int64 `json:"running_balance_cents"`
}

// ProjectionResponse is the liquidity curve plus the phase classification
type ProjectionResponse struct {
	Year                int                      `json:"year"`
	ReferenceMonth      int                      `json:"reference_month"`
	OpeningBalanceCents int64                    `json:"opening_balance_cents"`
	Points              []LiquidityPointResponse `json:"points"`
	ClosingBalanceCents int64                    `json:"closing_balance_cents"`
	Phase               string                   `json:"phase"`
}

// ToProjectionResponse converts a domain projection to a response DTO
func ToProjectionResponse(p *liquidity.Projection) *ProjectionResponse {
	resp := &ProjectionResponse{
		Year:                p.Year,
		ReferenceMonth:      p.ReferenceMonth,
		OpeningBalanceCents: p.OpeningBalance.Cents(),
		Points:              make([]LiquidityPointResponse, len(p.Points)),
		ClosingBalanceCents: p.ClosingBalance.Cents(),
		Phase:               p.Phase.String(),
	}
	for i, pt := range p.Points {
		resp.Points[i] = LiquidityPointResponse{
			Month:                pt.Month,
			ActualInflowCents:    pt.ActualInflow.Cents(),
			ActualOutflowCents:   pt.ActualOutflow.Cents(),
			ExpectedInflowCents:  pt.ExpectedInflow.Cents(),
			ExpectedOutflowCents: pt.ExpectedOutflow.Cents(),
			MarginCents:          pt.Margin.Cents(),
			RunningBalanceCents:  pt.RunningBalance.Cents(),
		}
	}
	return resp
}
