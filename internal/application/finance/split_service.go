package finance

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/liquiplan/backend/internal/domain/finance"
	"github.com/liquiplan/backend/internal/domain/shared"
	"github.com/liquiplan/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SplitService decomposes gross receipts into beneficiary shares. Each
// split writes two records: the split itself and a transfer transaction
// moving everything but the operations share off the operating account.
type SplitService struct {
	transactionRepo finance.TransactionRepository
	splitRepo       finance.SplitRepository
	invalidator     ProjectionInvalidator
	logger          *zap.Logger
}

// NewSplitService creates a new SplitService
func NewSplitService(
	transactionRepo finance.TransactionRepository,
	splitRepo finance.SplitRepository,
	invalidator ProjectionInvalidator,
	logger *zap.Logger,
) *SplitService {
	return &SplitService{
		transactionRepo: transactionRepo,
		splitRepo:       splitRepo,
		invalidator:     invalidator,
		logger:          logger,
	}
}

// invalidateProjections drops cached liquidity curves after a write that
// moves actual flows.
func (s *SplitService) invalidateProjections(ctx context.Context) {
	if s.invalidator != nil {
		s.invalidator.InvalidateAll(ctx)
	}
}

// RecordTransaction registers an actual cash movement
func (s *SplitService) RecordTransaction(ctx context.Context, req CreateTransactionRequest) (*TransactionResponse, error) {
	tx, err := finance.NewTransaction(req.Date, valueobject.NewMoney(req.AmountCents), req.Description, req.Transfer)
	if err != nil {
		return nil, err
	}
	if err := s.transactionRepo.Save(ctx, tx); err != nil {
		return nil, err
	}
	s.invalidateProjections(ctx)
	return ToTransactionResponse(tx), nil
}

// Create splits a gross receipt. The transaction must be a real inflow and
// can be split exactly once.
func (s *SplitService) Create(ctx context.Context, req CreateSplitRequest) (*SplitResponse, error) {
	tx, err := s.transactionRepo.FindByID(ctx, req.TransactionID)
	if err != nil {
		return nil, err
	}
	if !tx.IsInflow() {
		return nil, shared.NewDomainError("NOT_AN_INFLOW", "Only inflow transactions can be split")
	}
	if tx.Transfer {
		return nil, shared.NewDomainError("IS_TRANSFER", "Internal transfers cannot be split")
	}

	if existing, err := s.splitRepo.FindByTransaction(ctx, tx.ID); err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	} else if existing != nil {
		return nil, shared.NewDomainError("ALREADY_SPLIT", "Transaction already has a split")
	}

	breakdown, err := finance.SplitIncome(tx.Amount)
	if err != nil {
		return nil, err
	}

	split, err := finance.NewIncomeSplit(tx.ID, breakdown)
	if err != nil {
		return nil, err
	}

	// Everything but the operations share leaves the operating account.
	outbound := breakdown.OwnerShare.Add(breakdown.ReserveShare).Add(breakdown.TaxShare)
	transfer, err := finance.NewTransaction(tx.Date, outbound.Negate(), "Split transfer: "+tx.Description, true)
	if err != nil {
		return nil, err
	}

	if err := s.splitRepo.Save(ctx, split); err != nil {
		return nil, err
	}
	if err := s.transactionRepo.Save(ctx, transfer); err != nil {
		return nil, err
	}

	s.invalidateProjections(ctx)
	s.logger.Info("receipt split",
		zap.String("transaction_id", tx.ID.String()),
		zap.Int64("gross_cents", breakdown.Gross.Cents()),
		zap.Int64("net_cents", breakdown.Net.Cents()))

	return ToSplitResponse(split, transfer.ID), nil
}

// GetByTransaction retrieves the split of a transaction
func (s *SplitService) GetByTransaction(ctx context.Context, transactionID uuid.UUID) (*SplitResponse, error) {
	split, err := s.splitRepo.FindByTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	return ToSplitResponse(split, uuid.Nil), nil
}

// PreviewSale decomposes a gross sale amount without persisting anything
func (s *SplitService) PreviewSale(_ context.Context, req SaleSplitRequest) (*SaleSplitResponse, error) {
	breakdown, err := finance.SplitSale(valueobject.NewMoney(req.GrossCents), decimal.NewFromFloat(req.CommissionRate))
	if err != nil {
		return nil, err
	}

	return &SaleSplitResponse{
		GrossCents:          breakdown.Gross.Cents(),
		NetCents:            breakdown.Net.Cents(),
		CommissionCents:     breakdown.Commission.Cents(),
		PostCommissionCents: breakdown.PostCommission.Cents(),
		TaxShareCents:       breakdown.TaxShare.Cents(),
		PartnersShareCents:  breakdown.PartnersShare.Cents(),
		AvailableCents:      breakdown.Available.Cents(),
	}, nil
}
