package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/liquiplan/backend/internal/domain/debt"
	"github.com/liquiplan/backend/internal/domain/shared"
	"github.com/liquiplan/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormInstallmentRepository implements debt.InstallmentRepository using GORM
type GormInstallmentRepository struct {
	db *gorm.DB
}

// NewGormInstallmentRepository creates a new GormInstallmentRepository
func NewGormInstallmentRepository(db *gorm.DB) *GormInstallmentRepository {
	return &GormInstallmentRepository{db: db}
}

// FindByID finds an installment by its ID
func (r *GormInstallmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*debt.Installment, error) {
	var model models.InstallmentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByPlan finds all installments of a plan in sequence order
func (r *GormInstallmentRepository) FindByPlan(ctx context.Context, planID uuid.UUID) ([]debt.Installment, error) {
	var installmentModels []models.InstallmentModel
	if err := r.db.WithContext(ctx).
		Where("plan_id = ?", planID).
		Order("sequence ASC").
		Find(&installmentModels).Error; err != nil {
		return nil, err
	}
	installments := make([]debt.Installment, len(installmentModels))
	for i, model := range installmentModels {
		installments[i] = *model.ToDomain()
	}
	return installments, nil
}

// Save persists the installment
func (r *GormInstallmentRepository) Save(ctx context.Context, installment *debt.Installment) error {
	model := models.InstallmentModelFromDomain(installment)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveAll persists a batch of installments in one transaction
func (r *GormInstallmentRepository) SaveAll(ctx context.Context, installments []*debt.Installment) error {
	if len(installments) == 0 {
		return nil
	}
	installmentModels := make([]*models.InstallmentModel, len(installments))
	for i, installment := range installments {
		installmentModels[i] = models.InstallmentModelFromDomain(installment)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range installmentModels {
			if err := tx.Save(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// DeleteUnpaidByPlan removes the unpaid tail of a plan's schedule ahead
// of regeneration. Paid history is never deleted.
func (r *GormInstallmentRepository) DeleteUnpaidByPlan(ctx context.Context, planID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("plan_id = ? AND paid = ?", planID, false).
		Delete(&models.InstallmentModel{}).Error
}

// DeleteByPlan removes the whole schedule, paid rows included
func (r *GormInstallmentRepository) DeleteByPlan(ctx context.Context, planID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("plan_id = ?", planID).
		Delete(&models.InstallmentModel{}).Error
}
