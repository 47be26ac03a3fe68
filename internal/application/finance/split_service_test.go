package finance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/liquiplan/backend/internal/domain/finance"
	"github.com/liquiplan/backend/internal/domain/shared"
	"github.com/liquiplan/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockTransactionRepository is a mock implementation of TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]finance.Transaction, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]finance.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) Save(ctx context.Context, tx *finance.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// MockSplitRepository is a mock implementation of SplitRepository
type MockSplitRepository struct {
	mock.Mock
}

func (m *MockSplitRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.IncomeSplit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.IncomeSplit), args.Error(1)
}

func (m *MockSplitRepository) FindByTransaction(ctx context.Context, transactionID uuid.UUID) (*finance.IncomeSplit, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*finance.IncomeSplit), args.Error(1)
}

func (m *MockSplitRepository) FindAll(ctx context.Context) ([]finance.IncomeSplit, error) {
	args := m.Called(ctx)
	return args.Get(0).([]finance.IncomeSplit), args.Error(1)
}

func (m *MockSplitRepository) Save(ctx context.Context, split *finance.IncomeSplit) error {
	args := m.Called(ctx, split)
	return args.Error(0)
}

func newSplitService(txRepo *MockTransactionRepository, splitRepo *MockSplitRepository) *SplitService {
	return NewSplitService(txRepo, splitRepo, newFakeProjectionCache(), zap.NewNop())
}

func receipt(t *testing.T, cents int64) *finance.Transaction {
	t.Helper()
	tx, err := finance.NewTransaction(
		time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
		valueobject.NewMoney(cents),
		"Client payment",
		false,
	)
	require.NoError(t, err)
	return tx
}

func TestSplitServiceCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("records the split and the outbound transfer", func(t *testing.T) {
		txRepo := new(MockTransactionRepository)
		splitRepo := new(MockSplitRepository)
		service := newSplitService(txRepo, splitRepo)

		tx := receipt(t, 122000)
		txRepo.On("FindByID", ctx, tx.ID).Return(tx, nil)
		splitRepo.On("FindByTransaction", ctx, tx.ID).Return(nil, shared.ErrNotFound)
		splitRepo.On("Save", ctx, mock.AnythingOfType("*finance.IncomeSplit")).Return(nil)

		var transfer *finance.Transaction
		txRepo.On("Save", ctx, mock.Anything).Run(func(args mock.Arguments) {
			transfer = args.Get(1).(*finance.Transaction)
		}).Return(nil)

		resp, err := service.Create(ctx, CreateSplitRequest{TransactionID: tx.ID})
		require.NoError(t, err)

		assert.Equal(t, int64(100000), resp.NetCents)
		assert.Equal(t, int64(10000), resp.OwnerShareCents)
		assert.Equal(t, int64(20000), resp.ReserveShareCents)
		assert.Equal(t, int64(70000), resp.OperationsShareCents)
		assert.Equal(t, int64(22000), resp.TaxShareCents)

		// Owner, reserve and tax shares leave the operating account.
		require.NotNil(t, transfer)
		assert.True(t, transfer.Transfer)
		assert.Equal(t, int64(-52000), transfer.Amount.Cents())
		assert.Equal(t, tx.Date, transfer.Date)
	})

	t.Run("a transaction can be split only once", func(t *testing.T) {
		txRepo := new(MockTransactionRepository)
		splitRepo := new(MockSplitRepository)
		service := newSplitService(txRepo, splitRepo)

		tx := receipt(t, 122000)
		breakdown, err := finance.SplitIncome(tx.Amount)
		require.NoError(t, err)
		existing, err := finance.NewIncomeSplit(tx.ID, breakdown)
		require.NoError(t, err)

		txRepo.On("FindByID", ctx, tx.ID).Return(tx, nil)
		splitRepo.On("FindByTransaction", ctx, tx.ID).Return(existing, nil)

		_, err = service.Create(ctx, CreateSplitRequest{TransactionID: tx.ID})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ALREADY_SPLIT", domainErr.Code)
		splitRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("outflows cannot be split", func(t *testing.T) {
		txRepo := new(MockTransactionRepository)
		splitRepo := new(MockSplitRepository)
		service := newSplitService(txRepo, splitRepo)

		tx, err := finance.NewTransaction(
			time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
			valueobject.NewMoney(-50000),
			"Rent",
			false,
		)
		require.NoError(t, err)
		txRepo.On("FindByID", ctx, tx.ID).Return(tx, nil)

		_, err = service.Create(ctx, CreateSplitRequest{TransactionID: tx.ID})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "NOT_AN_INFLOW", domainErr.Code)
	})

	t.Run("transfers cannot be split", func(t *testing.T) {
		txRepo := new(MockTransactionRepository)
		splitRepo := new(MockSplitRepository)
		service := newSplitService(txRepo, splitRepo)

		tx, err := finance.NewTransaction(
			time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
			valueobject.NewMoney(52000),
			"Split transfer",
			true,
		)
		require.NoError(t, err)
		txRepo.On("FindByID", ctx, tx.ID).Return(tx, nil)

		_, err = service.Create(ctx, CreateSplitRequest{TransactionID: tx.ID})
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "IS_TRANSFER", domainErr.Code)
	})
}

// Every write that moves actual flows must drop the cached liquidity
// curves, or the projection keeps serving stale balances until the TTL.
func TestSplitServiceInvalidatesProjections(t *testing.T) {
	ctx := context.Background()

	txRepo := new(MockTransactionRepository)
	splitRepo := new(MockSplitRepository)
	cache := newFakeProjectionCache()
	service := NewSplitService(txRepo, splitRepo, cache, zap.NewNop())

	txRepo.On("Save", ctx, mock.Anything).Return(nil)

	_, err := service.RecordTransaction(ctx, CreateTransactionRequest{
		Date:        time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC),
		AmountCents: 50000,
		Description: "Client payment",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, cache.invalidations)

	tx := receipt(t, 122000)
	txRepo.On("FindByID", ctx, tx.ID).Return(tx, nil)
	splitRepo.On("FindByTransaction", ctx, tx.ID).Return(nil, shared.ErrNotFound)
	splitRepo.On("Save", ctx, mock.Anything).Return(nil)

	_, err = service.Create(ctx, CreateSplitRequest{TransactionID: tx.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, cache.invalidations)
}

func TestSplitServicePreviewSale(t *testing.T) {
	service := newSplitService(new(MockTransactionRepository), new(MockSplitRepository))

	resp, err := service.PreviewSale(context.Background(), SaleSplitRequest{
		GrossCents:     122000,
		CommissionRate: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(100000), resp.NetCents)
	assert.Equal(t, int64(10000), resp.CommissionCents)
	assert.Equal(t, int64(90000), resp.PostCommissionCents)
	assert.Equal(t, int64(22000), resp.TaxShareCents)
	assert.Equal(t, int64(30000), resp.PartnersShareCents)
	assert.Equal(t, int64(38000), resp.AvailableCents)
}
