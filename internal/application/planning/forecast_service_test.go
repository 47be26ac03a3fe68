package planning

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/liquiplan/backend/internal/domain/debt"
	"github.com/liquiplan/backend/internal/domain/planning"
	"github.com/liquiplan/backend/internal/domain/shared"
	"github.com/liquiplan/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockPlanRepository is a mock implementation of PlanRepository
type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*debt.AmortizationPlan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*debt.AmortizationPlan), args.Error(1)
}

func (m *MockPlanRepository) FindAll(ctx context.Context, filter debt.PlanFilter) ([]debt.AmortizationPlan, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]debt.AmortizationPlan), args.Error(1)
}

func (m *MockPlanRepository) FindBySource(ctx context.Context, sourceID uuid.UUID) (*debt.AmortizationPlan, error) {
	args := m.Called(ctx, sourceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*debt.AmortizationPlan), args.Error(1)
}

func (m *MockPlanRepository) Save(ctx context.Context, plan *debt.AmortizationPlan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

// MockInstallmentRepository is a mock implementation of InstallmentRepository
type MockInstallmentRepository struct {
	mock.Mock
}

func (m *MockInstallmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*debt.Installment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*debt.Installment), args.Error(1)
}

func (m *MockInstallmentRepository) FindByPlan(ctx context.Context, planID uuid.UUID) ([]debt.Installment, error) {
	args := m.Called(ctx, planID)
	return args.Get(0).([]debt.Installment), args.Error(1)
}

func (m *MockInstallmentRepository) Save(ctx context.Context, installment *debt.Installment) error {
	args := m.Called(ctx, installment)
	return args.Error(0)
}

func (m *MockInstallmentRepository) SaveAll(ctx context.Context, installments []*debt.Installment) error {
	args := m.Called(ctx, installments)
	return args.Error(0)
}

func (m *MockInstallmentRepository) DeleteUnpaidByPlan(ctx context.Context, planID uuid.UUID) error {
	args := m.Called(ctx, planID)
	return args.Error(0)
}

func (m *MockInstallmentRepository) DeleteByPlan(ctx context.Context, planID uuid.UUID) error {
	args := m.Called(ctx, planID)
	return args.Error(0)
}

func newForecastService(entryRepo *MockEntryRepository, planRepo *MockPlanRepository, installmentRepo *MockInstallmentRepository) *ForecastService {
	scope := &NoOpTransactionScope{EntryRepo: entryRepo, PlanRepo: planRepo, InstallmentRepo: installmentRepo}
	return NewForecastService(entryRepo, planRepo, scope, &fakeProjectionInvalidator{}, zap.NewNop())
}

func TestForecastServiceCreateManual(t *testing.T) {
	ctx := context.Background()

	entryRepo := new(MockEntryRepository)
	service := newForecastService(entryRepo, new(MockPlanRepository), new(MockInstallmentRepository))

	entryRepo.On("Save", ctx, mock.AnythingOfType("*planning.ForecastEntry")).Return(nil)

	resp, err := service.CreateManual(ctx, CreateManualEntryRequest{
		Date:        time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
		FlowType:    "INCOME",
		AmountCents: 80000,
		Description: "Workshop fee",
	})
	require.NoError(t, err)

	assert.Nil(t, resp.SourceID)
	assert.Equal(t, string(planning.ReliabilityUncertain), resp.Reliability)
	entryRepo.AssertExpectations(t)
}

func TestForecastServicePromote(t *testing.T) {
	ctx := context.Background()

	expenseEntry := func(t *testing.T) *planning.ForecastEntry {
		t.Helper()
		entry, err := planning.NewManualEntry(
			time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			planning.FlowTypeExpense,
			valueobject.NewMoney(100003),
			"Supplier invoice",
			planning.ReliabilityConfirmed,
		)
		require.NoError(t, err)
		return entry
	}

	t.Run("spreads the expense over a plan and retires the entry", func(t *testing.T) {
		entryRepo := new(MockEntryRepository)
		planRepo := new(MockPlanRepository)
		installmentRepo := new(MockInstallmentRepository)
		service := newForecastService(entryRepo, planRepo, installmentRepo)

		entry := expenseEntry(t)
		entryRepo.On("FindByID", ctx, entry.ID).Return(entry, nil)
		planRepo.On("FindBySource", ctx, entry.ID).Return(nil, shared.ErrNotFound)

		var savedPlan *debt.AmortizationPlan
		planRepo.On("Save", ctx, mock.Anything).Run(func(args mock.Arguments) {
			savedPlan = args.Get(1).(*debt.AmortizationPlan)
		}).Return(nil)

		var installments []*debt.Installment
		installmentRepo.On("SaveAll", ctx, mock.Anything).Run(func(args mock.Arguments) {
			installments = args.Get(1).([]*debt.Installment)
		}).Return(nil)
		entryRepo.On("Save", ctx, entry).Return(nil)

		resp, err := service.Promote(ctx, entry.ID, PromoteEntryRequest{
			Counterparty:     "Supplier Srl",
			InstallmentCount: 3,
		})
		require.NoError(t, err)

		assert.Equal(t, shared.LifecycleDeleted.String(), resp.State)

		require.NotNil(t, savedPlan)
		assert.Equal(t, debt.PlanKindDebt, savedPlan.Kind)
		require.NotNil(t, savedPlan.SourceID)
		assert.Equal(t, entry.ID, *savedPlan.SourceID)

		require.Len(t, installments, 3)
		var total int64
		for _, inst := range installments {
			total += inst.Amount.Cents()
		}
		assert.Equal(t, int64(100003), total)
	})

	t.Run("income entries cannot be promoted", func(t *testing.T) {
		entryRepo := new(MockEntryRepository)
		planRepo := new(MockPlanRepository)
		service := newForecastService(entryRepo, planRepo, new(MockInstallmentRepository))

		entry, err := planning.NewManualEntry(
			time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			planning.FlowTypeIncome,
			valueobject.NewMoney(50000),
			"Retainer",
			planning.ReliabilityLikely,
		)
		require.NoError(t, err)
		entryRepo.On("FindByID", ctx, entry.ID).Return(entry, nil)

		_, err = service.Promote(ctx, entry.ID, PromoteEntryRequest{Counterparty: "x", InstallmentCount: 2})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_PROMOTABLE", domainErr.Code)
		planRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("a second promotion of the same entry is refused", func(t *testing.T) {
		entryRepo := new(MockEntryRepository)
		planRepo := new(MockPlanRepository)
		service := newForecastService(entryRepo, planRepo, new(MockInstallmentRepository))

		entry := expenseEntry(t)
		existing, err := debt.NewAmortizationPlan("Supplier Srl", debt.PlanKindDebt, entry.Amount, 3, entry.Date, 1)
		require.NoError(t, err)

		entryRepo.On("FindByID", ctx, entry.ID).Return(entry, nil)
		planRepo.On("FindBySource", ctx, entry.ID).Return(existing, nil)

		_, err = service.Promote(ctx, entry.ID, PromoteEntryRequest{Counterparty: "Supplier Srl", InstallmentCount: 3})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_PROMOTED", domainErr.Code)
	})

	t.Run("appends to an existing plan when one is named", func(t *testing.T) {
		entryRepo := new(MockEntryRepository)
		planRepo := new(MockPlanRepository)
		installmentRepo := new(MockInstallmentRepository)
		service := newForecastService(entryRepo, planRepo, installmentRepo)

		entry := expenseEntry(t)
		plan, err := debt.NewAmortizationPlan("Supplier Srl", debt.PlanKindDebt,
			valueobject.NewMoney(60000), 2, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 1)
		require.NoError(t, err)

		rows, err := debt.GenerateSchedule(plan)
		require.NoError(t, err)
		stored := make([]debt.Installment, len(rows))
		for i := range rows {
			stored[i] = *rows[i]
		}

		entryRepo.On("FindByID", ctx, entry.ID).Return(entry, nil)
		planRepo.On("FindBySource", ctx, entry.ID).Return(nil, shared.ErrNotFound)
		planRepo.On("FindByID", ctx, plan.ID).Return(plan, nil)
		planRepo.On("Save", ctx, plan).Return(nil)
		installmentRepo.On("FindByPlan", ctx, plan.ID).Return(stored, nil)
		installmentRepo.On("DeleteUnpaidByPlan", ctx, plan.ID).Return(nil)

		var tail []*debt.Installment
		installmentRepo.On("SaveAll", ctx, mock.Anything).Run(func(args mock.Arguments) {
			tail = args.Get(1).([]*debt.Installment)
		}).Return(nil)
		entryRepo.On("Save", ctx, entry).Return(nil)

		resp, err := service.Promote(ctx, entry.ID, PromoteEntryRequest{
			Counterparty:     "Supplier Srl",
			InstallmentCount: 1,
			PlanID:           &plan.ID,
		})
		require.NoError(t, err)

		// The entry's amount joins the plan as one more installment and the
		// unpaid tail is redistributed over the new total.
		assert.Equal(t, shared.LifecycleDeleted.String(), resp.State)
		assert.Equal(t, 3, plan.InstallmentCount)
		assert.Equal(t, int64(160003), plan.TotalAmount.Cents())

		require.Len(t, tail, 3)
		var total int64
		for _, inst := range tail {
			total += inst.Amount.Cents()
		}
		assert.Equal(t, int64(160003), total)
	})
}

func TestForecastServicePatchAndDelete(t *testing.T) {
	ctx := context.Background()

	entryRepo := new(MockEntryRepository)
	service := newForecastService(entryRepo, new(MockPlanRepository), new(MockInstallmentRepository))

	entry, err := planning.NewManualEntry(
		time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC),
		planning.FlowTypeExpense,
		valueobject.NewMoney(20000),
		"Hosting",
		planning.ReliabilityLikely,
	)
	require.NoError(t, err)

	entryRepo.On("FindByID", ctx, entry.ID).Return(entry, nil)
	entryRepo.On("Save", ctx, entry).Return(nil)

	resp, err := service.Patch(ctx, entry.ID, PatchEntryRequest{
		Date:        time.Date(2026, 5, 15, 0, 0, 0, 0, time.UTC),
		AmountCents: 25000,
		Description: "Hosting (upgraded)",
		Reliability: "CONFIRMED",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(25000), resp.AmountCents)

	require.NoError(t, service.Delete(ctx, entry.ID))
	assert.Equal(t, shared.LifecycleDeleted, entry.State)
}
