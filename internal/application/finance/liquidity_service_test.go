package finance

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/liquiplan/backend/internal/domain/finance"
	"github.com/liquiplan/backend/internal/domain/liquidity"
	"github.com/liquiplan/backend/internal/domain/planning"
	"github.com/liquiplan/backend/internal/domain/settings"
	"github.com/liquiplan/backend/internal/domain/shared"
	"github.com/liquiplan/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockEntryRepository is a mock implementation of planning.EntryRepository
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*planning.ForecastEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*planning.ForecastEntry), args.Error(1)
}

func (m *MockEntryRepository) FindBySource(ctx context.Context, sourceID uuid.UUID, from *time.Time) ([]planning.ForecastEntry, error) {
	args := m.Called(ctx, sourceID, from)
	return args.Get(0).([]planning.ForecastEntry), args.Error(1)
}

func (m *MockEntryRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]planning.ForecastEntry, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]planning.ForecastEntry), args.Error(1)
}

func (m *MockEntryRepository) Save(ctx context.Context, entry *planning.ForecastEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockEntryRepository) SaveAll(ctx context.Context, entries []*planning.ForecastEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockEntryRepository) SoftDeleteBySource(ctx context.Context, sourceID uuid.UUID, from *time.Time) error {
	args := m.Called(ctx, sourceID, from)
	return args.Error(0)
}

// MockSettingsRepository is a mock implementation of settings.Repository
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockSettingsRepository) Set(ctx context.Context, key, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

// fakeProjectionCache is an in-memory ProjectionCache for tests
type fakeProjectionCache struct {
	entries       map[int]*liquidity.Projection
	hits          int
	invalidations int
}

func newFakeProjectionCache() *fakeProjectionCache {
	return &fakeProjectionCache{entries: make(map[int]*liquidity.Projection)}
}

func (c *fakeProjectionCache) Get(_ context.Context, year int) (*liquidity.Projection, bool) {
	p, ok := c.entries[year]
	if ok {
		c.hits++
	}
	return p, ok
}

func (c *fakeProjectionCache) Set(_ context.Context, year int, p *liquidity.Projection) {
	c.entries[year] = p
}

func (c *fakeProjectionCache) Invalidate(_ context.Context, year int) {
	delete(c.entries, year)
}

func (c *fakeProjectionCache) InvalidateAll(_ context.Context) {
	c.entries = make(map[int]*liquidity.Projection)
	c.invalidations++
}

func TestLiquidityServiceProject(t *testing.T) {
	ctx := context.Background()

	newService := func(txRepo *MockTransactionRepository, entryRepo *MockEntryRepository, settingsRepo *MockSettingsRepository, cache ProjectionCache) *LiquidityService {
		return NewLiquidityService(txRepo, entryRepo, settingsRepo, cache, zap.NewNop())
	}

	makeTx := func(t *testing.T, month time.Month, cents int64, transfer bool) finance.Transaction {
		t.Helper()
		tx, err := finance.NewTransaction(
			time.Date(2026, month, 10, 0, 0, 0, 0, time.UTC),
			valueobject.NewMoney(cents),
			"tx",
			transfer,
		)
		require.NoError(t, err)
		return *tx
	}

	t.Run("projects the year with stored policy", func(t *testing.T) {
		txRepo := new(MockTransactionRepository)
		entryRepo := new(MockEntryRepository)
		settingsRepo := new(MockSettingsRepository)
		cache := newFakeProjectionCache()
		service := newService(txRepo, entryRepo, settingsRepo, cache)

		transactions := []finance.Transaction{
			makeTx(t, time.January, 300000, false),
			makeTx(t, time.February, -100000, false),
			makeTx(t, time.February, 50000, true),
		}

		entry, err := planning.NewManualEntry(
			time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			planning.FlowTypeExpense,
			valueobject.NewMoney(40000),
			"Insurance",
			planning.ReliabilityLikely,
		)
		require.NoError(t, err)

		txRepo.On("FindByDateRange", ctx, mock.Anything, mock.Anything).Return(transactions, nil)
		entryRepo.On("FindByDateRange", ctx, mock.Anything, mock.Anything).Return([]planning.ForecastEntry{*entry}, nil)
		settingsRepo.On("Get", ctx, settings.KeyOpeningBalanceCents).Return("100000", nil)
		settingsRepo.On("Get", ctx, settings.KeyAttackFloorCents).Return("", shared.ErrNotFound)
		settingsRepo.On("Get", ctx, settings.KeyGrowthFloorCents).Return("", shared.ErrNotFound)

		resp, err := service.Project(ctx, ProjectionRequest{Year: 2026, ReferenceMonth: 2})
		require.NoError(t, err)

		assert.Equal(t, int64(100000), resp.OpeningBalanceCents)
		assert.Equal(t, int64(400000), resp.Points[0].RunningBalanceCents)
		// The transfer does not move February's margin.
		assert.Equal(t, int64(-100000), resp.Points[1].MarginCents)
		assert.Equal(t, int64(300000), resp.Points[1].RunningBalanceCents)
		// The expense entry lands in the expected column, signed.
		assert.Equal(t, int64(-40000), resp.Points[2].ExpectedOutflowCents)
		assert.Equal(t, liquidity.PhaseAttack.String(), resp.Phase)
	})

	t.Run("serves repeated requests from the cache", func(t *testing.T) {
		txRepo := new(MockTransactionRepository)
		entryRepo := new(MockEntryRepository)
		settingsRepo := new(MockSettingsRepository)
		cache := newFakeProjectionCache()
		service := newService(txRepo, entryRepo, settingsRepo, cache)

		txRepo.On("FindByDateRange", ctx, mock.Anything, mock.Anything).Return([]finance.Transaction{}, nil).Once()
		entryRepo.On("FindByDateRange", ctx, mock.Anything, mock.Anything).Return([]planning.ForecastEntry{}, nil).Once()
		settingsRepo.On("Get", ctx, mock.Anything).Return("", shared.ErrNotFound)

		req := ProjectionRequest{Year: 2026, ReferenceMonth: 5}
		_, err := service.Project(ctx, req)
		require.NoError(t, err)
		_, err = service.Project(ctx, req)
		require.NoError(t, err)

		assert.Equal(t, 1, cache.hits)
		txRepo.AssertNumberOfCalls(t, "FindByDateRange", 1)
	})

	t.Run("invalidation forces a recompute", func(t *testing.T) {
		txRepo := new(MockTransactionRepository)
		entryRepo := new(MockEntryRepository)
		settingsRepo := new(MockSettingsRepository)
		cache := newFakeProjectionCache()
		service := newService(txRepo, entryRepo, settingsRepo, cache)

		txRepo.On("FindByDateRange", ctx, mock.Anything, mock.Anything).Return([]finance.Transaction{}, nil)
		entryRepo.On("FindByDateRange", ctx, mock.Anything, mock.Anything).Return([]planning.ForecastEntry{}, nil)
		settingsRepo.On("Get", ctx, mock.Anything).Return("", shared.ErrNotFound)

		req := ProjectionRequest{Year: 2026, ReferenceMonth: 5}
		_, err := service.Project(ctx, req)
		require.NoError(t, err)

		service.Invalidate(ctx, 2026)
		_, err = service.Project(ctx, req)
		require.NoError(t, err)

		txRepo.AssertNumberOfCalls(t, "FindByDateRange", 2)
	})
}
