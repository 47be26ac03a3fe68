package planning

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/liquiplan/backend/internal/domain/debt"
	"github.com/liquiplan/backend/internal/domain/planning"
	"github.com/liquiplan/backend/internal/domain/shared"
	"github.com/liquiplan/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// ForecastService handles direct edits of the forecast ledger: manual
// entries, cosmetic patches, and the promotion of an expected expense
// into an amortization plan.
type ForecastService struct {
	entryRepo   planning.EntryRepository
	planRepo    debt.PlanRepository
	scope       TransactionScope
	invalidator ProjectionInvalidator
	logger      *zap.Logger
}

// NewForecastService creates a new ForecastService
func NewForecastService(
	entryRepo planning.EntryRepository,
	planRepo debt.PlanRepository,
	scope TransactionScope,
	invalidator ProjectionInvalidator,
	logger *zap.Logger,
) *ForecastService {
	return &ForecastService{
		entryRepo:   entryRepo,
		planRepo:    planRepo,
		scope:       scope,
		invalidator: invalidator,
		logger:      logger,
	}
}

func (s *ForecastService) invalidateProjections(ctx context.Context) {
	if s.invalidator != nil {
		s.invalidator.InvalidateAll(ctx)
	}
}

// CreateManual adds a hand-written entry to the ledger
func (s *ForecastService) CreateManual(ctx context.Context, req CreateManualEntryRequest) (*EntryResponse, error) {
	entry, err := planning.NewManualEntry(
		req.Date,
		planning.FlowType(req.FlowType),
		valueobject.NewMoney(req.AmountCents),
		req.Description,
		planning.Reliability(req.Reliability),
	)
	if err != nil {
		return nil, err
	}

	if err := s.entryRepo.Save(ctx, entry); err != nil {
		return nil, err
	}
	s.invalidateProjections(ctx)
	return ToEntryResponse(entry), nil
}

// GetByID retrieves a forecast entry by ID
func (s *ForecastService) GetByID(ctx context.Context, id uuid.UUID) (*EntryResponse, error) {
	entry, err := s.entryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToEntryResponse(entry), nil
}

// List retrieves the ledger lines in a date range
func (s *ForecastService) List(ctx context.Context, filter EntryListFilter) ([]EntryResponse, error) {
	entries, err := s.entryRepo.FindByDateRange(ctx, filter.From, filter.To)
	if err != nil {
		return nil, err
	}

	responses := make([]EntryResponse, len(entries))
	for i := range entries {
		responses[i] = *ToEntryResponse(&entries[i])
	}
	return responses, nil
}

// Patch edits the cosmetic fields of an entry. Derived entries keep their
// contract linkage and survive field-only contract updates.
func (s *ForecastService) Patch(ctx context.Context, id uuid.UUID, req PatchEntryRequest) (*EntryResponse, error) {
	entry, err := s.entryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := entry.Patch(req.Date, valueobject.NewMoney(req.AmountCents), req.Description, planning.Reliability(req.Reliability)); err != nil {
		return nil, err
	}
	if err := s.entryRepo.Save(ctx, entry); err != nil {
		return nil, err
	}
	s.invalidateProjections(ctx)
	return ToEntryResponse(entry), nil
}

// Delete soft-deletes a single forecast entry
func (s *ForecastService) Delete(ctx context.Context, id uuid.UUID) error {
	entry, err := s.entryRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	entry.SoftDelete()
	if err := s.entryRepo.Save(ctx, entry); err != nil {
		return err
	}
	s.invalidateProjections(ctx)
	return nil
}

// Promote turns an expected expense into debt installments: the entry's
// amount becomes a new plan spread over the requested number of
// installments, or one extra installment appended to an existing plan
// when the request names one. Income entries cannot be promoted. On
// success the entry leaves the ledger; the installments replace it. Plan,
// installments and entry commit together.
func (s *ForecastService) Promote(ctx context.Context, id uuid.UUID, req PromoteEntryRequest) (*EntryResponse, error) {
	entry, err := s.entryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry.FlowType != planning.FlowTypeExpense {
		return nil, shared.NewDomainError("NOT_PROMOTABLE", "Only expense entries can be promoted to a plan")
	}
	if entry.State.IsDeleted() {
		return nil, shared.NewDomainError("ALREADY_PROMOTED", "Entry has already left the ledger")
	}

	if existing, err := s.planRepo.FindBySource(ctx, id); err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
	} else if existing != nil {
		return nil, shared.NewDomainError("ALREADY_PROMOTED", "A plan already exists for this entry")
	}

	var planID uuid.UUID
	var installmentCount int
	if req.PlanID != nil {
		planID, installmentCount, err = s.promoteIntoPlan(ctx, entry, *req.PlanID)
	} else {
		planID, installmentCount, err = s.promoteToNewPlan(ctx, entry, req)
	}
	if err != nil {
		return nil, err
	}

	s.invalidateProjections(ctx)
	s.logger.Info("forecast entry promoted to plan",
		zap.String("entry_id", entry.ID.String()),
		zap.String("plan_id", planID.String()),
		zap.Int("installments", installmentCount))

	return ToEntryResponse(entry), nil
}

// promoteToNewPlan creates a plan from the entry and retires the entry,
// all in one transaction.
func (s *ForecastService) promoteToNewPlan(ctx context.Context, entry *planning.ForecastEntry, req PromoteEntryRequest) (uuid.UUID, int, error) {
	startDate := req.StartDate
	if startDate.IsZero() {
		startDate = entry.Date
	}

	plan, err := debt.NewAmortizationPlan(
		req.Counterparty,
		debt.PlanKindDebt,
		entry.Amount,
		req.InstallmentCount,
		startDate,
		req.CadenceMonths,
	)
	if err != nil {
		return uuid.Nil, 0, err
	}
	plan.SetSource(entry.ID)

	installments, err := debt.GenerateSchedule(plan)
	if err != nil {
		return uuid.Nil, 0, err
	}

	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.Plans().Save(ctx, plan); err != nil {
			return err
		}
		if err := repos.Installments().SaveAll(ctx, installments); err != nil {
			return err
		}
		entry.SoftDelete()
		return repos.Entries().Save(ctx, entry)
	})
	if err != nil {
		return uuid.Nil, 0, err
	}
	return plan.ID, len(installments), nil
}

// promoteIntoPlan appends the entry's amount as one extra installment on
// an existing plan. The plan's unpaid tail is redistributed around the new
// total; paid rows stay untouched.
func (s *ForecastService) promoteIntoPlan(ctx context.Context, entry *planning.ForecastEntry, planID uuid.UUID) (uuid.UUID, int, error) {
	plan, err := s.planRepo.FindByID(ctx, planID)
	if err != nil {
		return uuid.Nil, 0, err
	}
	if err := plan.Extend(entry.Amount); err != nil {
		return uuid.Nil, 0, err
	}

	var tail []*debt.Installment
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		existing, err := repos.Installments().FindByPlan(ctx, plan.ID)
		if err != nil {
			return err
		}
		if err := repos.Installments().DeleteUnpaidByPlan(ctx, plan.ID); err != nil {
			return err
		}
		tail, err = debt.RedistributeUnpaid(plan, existing)
		if err != nil {
			return err
		}

		if err := repos.Plans().Save(ctx, plan); err != nil {
			return err
		}
		if len(tail) > 0 {
			if err := repos.Installments().SaveAll(ctx, tail); err != nil {
				return err
			}
		}
		entry.SoftDelete()
		return repos.Entries().Save(ctx, entry)
	})
	if err != nil {
		return uuid.Nil, 0, err
	}
	return plan.ID, len(tail), nil
}
