package finance

import (
	"context"
	"time"

	"github.com/liquiplan/backend/internal/domain/finance"
	"github.com/liquiplan/backend/internal/domain/liquidity"
	"github.com/liquiplan/backend/internal/domain/planning"
	"github.com/liquiplan/backend/internal/domain/settings"
	"github.com/liquiplan/backend/internal/domain/shared/valueobject"
	"go.uber.org/zap"
)

// ProjectionInvalidator drops every cached projection. Write paths that
// move the liquidity curve hold this narrow view of the cache.
type ProjectionInvalidator interface {
	InvalidateAll(ctx context.Context)
}

// ProjectionCache holds computed projections. Projections are cheap but
// the underlying reads are not, so a short TTL cache sits in front.
type ProjectionCache interface {
	ProjectionInvalidator
	Get(ctx context.Context, year int) (*liquidity.Projection, bool)
	Set(ctx context.Context, year int, projection *liquidity.Projection)
	Invalidate(ctx context.Context, year int)
}

// LiquidityService loads a year of actual and expected flows and runs the
// projector over them. Opening balance and phase thresholds come from the
// settings store.
type LiquidityService struct {
	transactionRepo finance.TransactionRepository
	entryRepo       planning.EntryRepository
	settingsRepo    settings.Repository
	cache           ProjectionCache
	logger          *zap.Logger
}

// NewLiquidityService creates a new LiquidityService
func NewLiquidityService(
	transactionRepo finance.TransactionRepository,
	entryRepo planning.EntryRepository,
	settingsRepo settings.Repository,
	cache ProjectionCache,
	logger *zap.Logger,
) *LiquidityService {
	return &LiquidityService{
		transactionRepo: transactionRepo,
		entryRepo:       entryRepo,
		settingsRepo:    settingsRepo,
		cache:           cache,
		logger:          logger,
	}
}

// Project computes the liquidity curve and phase for a year
func (s *LiquidityService) Project(ctx context.Context, req ProjectionRequest) (*ProjectionResponse, error) {
	if cached, ok := s.cache.Get(ctx, req.Year); ok && cached.ReferenceMonth == req.ReferenceMonth {
		return ToProjectionResponse(cached), nil
	}

	from := time.Date(req.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(req.Year, time.December, 31, 23, 59, 59, 0, time.UTC)

	transactions, err := s.transactionRepo.FindByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}
	entries, err := s.entryRepo.FindByDateRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	opening, thresholds, err := s.loadPolicy(ctx)
	if err != nil {
		return nil, err
	}

	actuals := make([]liquidity.ActualFlow, 0, len(transactions))
	for i := range transactions {
		actuals = append(actuals, liquidity.ActualFlow{
			Date:     transactions[i].Date,
			Amount:   transactions[i].Amount,
			Transfer: transactions[i].Transfer,
		})
	}

	forecasts := make([]liquidity.ExpectedFlow, 0, len(entries))
	for i := range entries {
		forecasts = append(forecasts, liquidity.ExpectedFlow{
			Date:   entries[i].Date,
			Amount: entries[i].SignedAmount(),
		})
	}

	projection, err := liquidity.Project(req.Year, req.ReferenceMonth, opening, actuals, forecasts, thresholds)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, req.Year, &projection)
	s.logger.Debug("liquidity projected",
		zap.Int("year", req.Year),
		zap.String("phase", projection.Phase.String()),
		zap.Int64("closing_cents", projection.ClosingBalance.Cents()))

	return ToProjectionResponse(&projection), nil
}

// Invalidate drops the cached projection of a year. The explicit cache
// endpoint calls it; write paths invalidate through ProjectionInvalidator.
func (s *LiquidityService) Invalidate(ctx context.Context, year int) {
	s.cache.Invalidate(ctx, year)
}

func (s *LiquidityService) loadPolicy(ctx context.Context) (valueobject.Money, liquidity.Thresholds, error) {
	defaults := liquidity.DefaultThresholds()

	opening, err := settings.GetInt64(ctx, s.settingsRepo, settings.KeyOpeningBalanceCents, 0)
	if err != nil {
		return valueobject.Money{}, liquidity.Thresholds{}, err
	}
	attack, err := settings.GetInt64(ctx, s.settingsRepo, settings.KeyAttackFloorCents, defaults.AttackFloor.Cents())
	if err != nil {
		return valueobject.Money{}, liquidity.Thresholds{}, err
	}
	growth, err := settings.GetInt64(ctx, s.settingsRepo, settings.KeyGrowthFloorCents, defaults.GrowthFloor.Cents())
	if err != nil {
		return valueobject.Money{}, liquidity.Thresholds{}, err
	}

	return valueobject.NewMoney(opening), liquidity.Thresholds{
		AttackFloor: valueobject.NewMoney(attack),
		GrowthFloor: valueobject.NewMoney(growth),
	}, nil
}
