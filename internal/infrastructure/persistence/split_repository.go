package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/liquiplan/backend/internal/domain/finance"
	"github.com/liquiplan/backend/internal/domain/shared"
	"github.com/liquiplan/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormSplitRepository implements finance.SplitRepository using GORM
type GormSplitRepository struct {
	db *gorm.DB
}

// NewGormSplitRepository creates a new GormSplitRepository
func NewGormSplitRepository(db *gorm.DB) *GormSplitRepository {
	return &GormSplitRepository{db: db}
}

// FindByID finds an income split by its ID
func (r *GormSplitRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.IncomeSplit, error) {
	var model models.IncomeSplitModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTransaction finds the split recorded against a given transaction
func (r *GormSplitRepository) FindByTransaction(ctx context.Context, transactionID uuid.UUID) (*finance.IncomeSplit, error) {
	var model models.IncomeSplitModel
	if err := r.db.WithContext(ctx).
		Where("transaction_id = ? AND state != ?", transactionID, shared.LifecycleDeleted).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll returns all non-deleted splits, newest first
func (r *GormSplitRepository) FindAll(ctx context.Context) ([]finance.IncomeSplit, error) {
	var splitModels []models.IncomeSplitModel
	if err := r.db.WithContext(ctx).Model(&models.IncomeSplitModel{}).
		Where("state != ?", shared.LifecycleDeleted).
		Order("created_at DESC").
		Find(&splitModels).Error; err != nil {
		return nil, err
	}
	splits := make([]finance.IncomeSplit, len(splitModels))
	for i, model := range splitModels {
		splits[i] = *model.ToDomain()
	}
	return splits, nil
}

// Save persists the income split
func (r *GormSplitRepository) Save(ctx context.Context, split *finance.IncomeSplit) error {
	model := models.IncomeSplitModelFromDomain(split)
	return r.db.WithContext(ctx).Save(model).Error
}
