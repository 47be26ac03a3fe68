package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/liquiplan/backend/internal/domain/finance"
	"github.com/liquiplan/backend/internal/domain/shared"
	"github.com/liquiplan/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormTransactionRepository implements finance.TransactionRepository using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GormTransactionRepository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// FindByID finds a transaction by its ID
func (r *GormTransactionRepository) FindByID(ctx context.Context, id uuid.UUID) (*finance.Transaction, error) {
	var model models.TransactionModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByDateRange finds active transactions dated within [from, to]
func (r *GormTransactionRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]finance.Transaction, error) {
	var txModels []models.TransactionModel
	if err := r.db.WithContext(ctx).Model(&models.TransactionModel{}).
		Where("date >= ? AND date <= ?", from, to).
		Where("state = ?", shared.LifecycleActive).
		Order("date ASC").
		Find(&txModels).Error; err != nil {
		return nil, err
	}
	transactions := make([]finance.Transaction, len(txModels))
	for i, model := range txModels {
		transactions[i] = *model.ToDomain()
	}
	return transactions, nil
}

// Save persists the transaction
func (r *GormTransactionRepository) Save(ctx context.Context, tx *finance.Transaction) error {
	model := models.TransactionModelFromDomain(tx)
	return r.db.WithContext(ctx).Save(model).Error
}
