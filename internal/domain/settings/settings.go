package settings

import (
	"context"
	"errors"
	"strconv"

	"github.com/liquiplan/backend/internal/domain/shared"
)

// Keys of the settings the core reads. Values are stored as strings; the
// typed accessors below do the parsing.
const (
	KeyOpeningBalanceCents = "liquidity.opening_balance_cents"
	KeyAttackFloorCents    = "liquidity.attack_floor_cents"
	KeyGrowthFloorCents    = "liquidity.growth_floor_cents"
)

// Repository is the key/value settings store
type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// GetInt64 reads a setting as an int64, falling back to def when the key
// is absent.
func GetInt64(ctx context.Context, repo Repository, key string, def int64) (int64, error) {
	raw, err := repo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return def, nil
		}
		return 0, err
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, shared.NewDomainError("INVALID_SETTING", "Setting "+key+" is not an integer")
	}
	return value, nil
}
