package planning

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/liquiplan/backend/internal/domain/planning"
	"github.com/liquiplan/backend/internal/domain/shared"
	"github.com/liquiplan/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// ProjectionInvalidator drops cached liquidity projections. Forecast
// writes move the curve, so every successful sync invalidates.
type ProjectionInvalidator interface {
	InvalidateAll(ctx context.Context)
}

// ContractService handles recurring contract operations and keeps the
// forecast ledger synchronized with them. Every write to a contract is
// followed by a regeneration of its derived entries; a failed sync never
// rolls the contract back - it is logged and surfaced as a warning on the
// otherwise successful response.
type ContractService struct {
	contractRepo planning.ContractRepository
	entryRepo    planning.EntryRepository
	scope        TransactionScope
	invalidator  ProjectionInvalidator
	horizonYears int
	logger       *zap.Logger
}

// NewContractService creates a new ContractService. horizonYears bounds how
// far past the reference year occurrences are materialized.
func NewContractService(
	contractRepo planning.ContractRepository,
	entryRepo planning.EntryRepository,
	scope TransactionScope,
	invalidator ProjectionInvalidator,
	horizonYears int,
	logger *zap.Logger,
) *ContractService {
	if horizonYears < 0 {
		horizonYears = 0
	}
	return &ContractService{
		contractRepo: contractRepo,
		entryRepo:    entryRepo,
		scope:        scope,
		invalidator:  invalidator,
		horizonYears: horizonYears,
		logger:       logger,
	}
}

// Create creates a contract and materializes its occurrences from the
// contract start through the horizon.
func (s *ContractService) Create(ctx context.Context, req CreateContractRequest, referenceDate time.Time) (*ContractResponse, error) {
	contract, err := planning.NewRecurringContract(
		req.Name,
		planning.FlowType(req.FlowType),
		valueobject.NewMoney(req.AmountCents),
		planning.Frequency(req.Frequency),
		req.DayOfMonth,
		req.StartDate,
		req.EndDate,
	)
	if err != nil {
		return nil, err
	}
	contract.CenterID = req.CenterID
	contract.Notes = req.Notes

	if err := s.contractRepo.Save(ctx, contract); err != nil {
		return nil, err
	}

	resp := ToContractResponse(contract)
	if err := s.regenerate(ctx, contract, contract.StartDate, referenceDate); err != nil {
		resp.SyncWarning = s.syncWarning(contract.ID, err)
	}
	return resp, nil
}

// GetByID retrieves a contract by ID
func (s *ContractService) GetByID(ctx context.Context, id uuid.UUID) (*ContractResponse, error) {
	contract, err := s.contractRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToContractResponse(contract), nil
}

// List retrieves contracts matching the filter
func (s *ContractService) List(ctx context.Context, filter ContractListFilter) ([]ContractResponse, error) {
	contracts, err := s.contractRepo.FindAll(ctx, planning.ContractFilter{
		FlowType:     planning.FlowType(filter.FlowType),
		CenterID:     filter.CenterID,
		ActiveOnly:   filter.ActiveOnly,
		OverlapsYear: filter.Year,
	})
	if err != nil {
		return nil, err
	}

	responses := make([]ContractResponse, len(contracts))
	for i := range contracts {
		responses[i] = *ToContractResponse(&contracts[i])
	}
	return responses, nil
}

// GetSchedule previews a contract's occurrence schedule for a year without
// touching the ledger.
func (s *ContractService) GetSchedule(ctx context.Context, id uuid.UUID, year int) (*ScheduleResponse, error) {
	contract, err := s.contractRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	months := planning.Occurrences(contract, year)
	multiplier := planning.FrequencyMultiplier(contract.Frequency, planning.ActiveMonths(contract, year))

	return &ScheduleResponse{
		ContractID:          contract.ID,
		Year:                year,
		Months:              months,
		Dates:               planning.OccurrenceDates(contract, year),
		FrequencyMultiplier: multiplier,
		AnnualTotalCents:    contract.Amount.MultiplyByInt(int64(len(months))).Cents(),
	}, nil
}

// Update applies a field-only change: name, amount, notes, center. Future
// derived entries are refreshed in place, never regenerated, so manual
// edits to past occurrences survive.
func (s *ContractService) Update(ctx context.Context, id uuid.UUID, req UpdateContractRequest, referenceDate time.Time) (*ContractResponse, error) {
	contract, err := s.contractRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := contract.UpdateDetails(req.Name, valueobject.NewMoney(req.AmountCents), req.Notes, req.CenterID); err != nil {
		return nil, err
	}
	if err := s.contractRepo.Save(ctx, contract); err != nil {
		return nil, err
	}

	resp := ToContractResponse(contract)
	if err := s.refreshFutureEntries(ctx, contract, referenceDate); err != nil {
		resp.SyncWarning = s.syncWarning(contract.ID, err)
	}
	return resp, nil
}

// Reschedule applies a schedule change and regenerates all future derived
// entries from the reference date. Running it twice with the same inputs
// yields the same set of future entries.
func (s *ContractService) Reschedule(ctx context.Context, id uuid.UUID, req RescheduleContractRequest, referenceDate time.Time) (*ContractResponse, error) {
	contract, err := s.contractRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := contract.Reschedule(planning.Frequency(req.Frequency), req.DayOfMonth, req.StartDate, req.EndDate); err != nil {
		return nil, err
	}
	if err := s.contractRepo.Save(ctx, contract); err != nil {
		return nil, err
	}

	resp := ToContractResponse(contract)
	if err := s.regenerate(ctx, contract, referenceDate, referenceDate); err != nil {
		resp.SyncWarning = s.syncWarning(contract.ID, err)
	}
	return resp, nil
}

// Terminate ends a contract as of the effective date. Derived entries dated
// on or after the effective date are removed; when the termination resolves
// to a full delete, every derived entry goes.
func (s *ContractService) Terminate(ctx context.Context, id uuid.UUID, req TerminateContractRequest) (*ContractResponse, error) {
	contract, err := s.contractRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	outcome, err := contract.Terminate(req.EffectiveDate)
	if err != nil {
		return nil, err
	}
	if err := s.contractRepo.Save(ctx, contract); err != nil {
		return nil, err
	}

	var from *time.Time
	if outcome == planning.TerminationEnded {
		from = &req.EffectiveDate
	}

	resp := ToContractResponse(contract)
	if err := s.entryRepo.SoftDeleteBySource(ctx, contract.ID, from); err != nil {
		resp.SyncWarning = s.syncWarning(contract.ID, err)
	} else {
		s.invalidateProjections(ctx)
	}
	return resp, nil
}

// Delete soft-deletes a contract and all of its derived entries, past ones
// included.
func (s *ContractService) Delete(ctx context.Context, id uuid.UUID) error {
	contract, err := s.contractRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if err := contract.Delete(); err != nil {
		return err
	}
	if err := s.contractRepo.Save(ctx, contract); err != nil {
		return err
	}

	if err := s.entryRepo.SoftDeleteBySource(ctx, contract.ID, nil); err != nil {
		s.logger.Error("forecast sync failed after contract delete",
			zap.String("contract_id", contract.ID.String()),
			zap.Error(err))
		return nil
	}
	s.invalidateProjections(ctx)
	return nil
}

// Resync regenerates a contract's future entries without changing the
// contract. The horizon scheduler calls this when the planning window
// rolls forward.
func (s *ContractService) Resync(ctx context.Context, id uuid.UUID, referenceDate time.Time) error {
	contract, err := s.contractRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !contract.IsActive() {
		return shared.NewDomainError("INVALID_STATE", "Cannot resync a contract that is not active")
	}
	return s.regenerate(ctx, contract, referenceDate, referenceDate)
}

// ResyncAll regenerates every active contract, continuing past individual
// failures.
func (s *ContractService) ResyncAll(ctx context.Context, referenceDate time.Time) error {
	contracts, err := s.contractRepo.FindAll(ctx, planning.ContractFilter{ActiveOnly: true})
	if err != nil {
		return err
	}

	var failed int
	for i := range contracts {
		if err := s.regenerate(ctx, &contracts[i], referenceDate, referenceDate); err != nil {
			failed++
			s.logger.Error("forecast resync failed",
				zap.String("contract_id", contracts[i].ID.String()),
				zap.Error(err))
		}
	}
	if failed > 0 {
		return shared.NewDomainError("SYNC_INCOMPLETE", "Some contracts failed to resync")
	}
	return nil
}

// regenerate rebuilds the derived entries of a contract dated on or after
// from, out to the horizon year. Delete-then-insert in one transaction, so
// a failed insert leaves the previous entries in place and repeating it
// with identical inputs reproduces the same set.
func (s *ContractService) regenerate(ctx context.Context, contract *planning.RecurringContract, from, referenceDate time.Time) error {
	horizon := referenceDate.Year() + s.horizonYears
	var entries []*planning.ForecastEntry
	for year := from.Year(); year <= horizon; year++ {
		for _, date := range planning.OccurrenceDates(contract, year) {
			if date.Before(from) {
				continue
			}
			entries = append(entries, planning.NewContractEntry(contract, date))
		}
	}

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		if err := repos.Entries().SoftDeleteBySource(ctx, contract.ID, &from); err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		return repos.Entries().SaveAll(ctx, entries)
	})
	if err != nil {
		return err
	}

	contract.AddDomainEvent(planning.NewForecastRegeneratedEvent(contract, from, len(entries)))
	s.invalidateProjections(ctx)
	return nil
}

// refreshFutureEntries aligns future derived entries with the contract's
// current amount and name, keeping their dates untouched.
func (s *ContractService) refreshFutureEntries(ctx context.Context, contract *planning.RecurringContract, referenceDate time.Time) error {
	entries, err := s.entryRepo.FindBySource(ctx, contract.ID, &referenceDate)
	if err != nil {
		return err
	}

	updated := make([]*planning.ForecastEntry, 0, len(entries))
	for i := range entries {
		entries[i].Refresh(contract)
		updated = append(updated, &entries[i])
	}
	if len(updated) == 0 {
		return nil
	}
	if err := s.entryRepo.SaveAll(ctx, updated); err != nil {
		return err
	}
	s.invalidateProjections(ctx)
	return nil
}

func (s *ContractService) invalidateProjections(ctx context.Context) {
	if s.invalidator != nil {
		s.invalidator.InvalidateAll(ctx)
	}
}

func (s *ContractService) syncWarning(contractID uuid.UUID, err error) string {
	s.logger.Error("forecast sync failed",
		zap.String("contract_id", contractID.String()),
		zap.Error(err))
	return "contract saved, but forecast entries could not be synchronized: " + err.Error()
}
