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

// GormPlanRepository implements debt.PlanRepository using GORM
type GormPlanRepository struct {
	db *gorm.DB
}

// NewGormPlanRepository creates a new GormPlanRepository
func NewGormPlanRepository(db *gorm.DB) *GormPlanRepository {
	return &GormPlanRepository{db: db}
}

// FindByID finds an amortization plan by its ID
func (r *GormPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*debt.AmortizationPlan, error) {
	var model models.AmortizationPlanModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds plans matching the given filter
func (r *GormPlanRepository) FindAll(ctx context.Context, filter debt.PlanFilter) ([]debt.AmortizationPlan, error) {
	var planModels []models.AmortizationPlanModel
	query := r.db.WithContext(ctx).Model(&models.AmortizationPlanModel{})
	if !filter.IncludeDeleted {
		query = query.Where("state != ?", shared.LifecycleDeleted)
	}
	if filter.ActiveOnly {
		query = query.Where("active = ?", true)
	}
	if filter.Kind != "" {
		query = query.Where("kind = ?", filter.Kind)
	}
	if err := query.Order("start_date ASC, counterparty ASC").Find(&planModels).Error; err != nil {
		return nil, err
	}
	plans := make([]debt.AmortizationPlan, len(planModels))
	for i, model := range planModels {
		plans[i] = *model.ToDomain()
	}
	return plans, nil
}

// FindBySource looks up the plan generated from a given origin record
func (r *GormPlanRepository) FindBySource(ctx context.Context, sourceID uuid.UUID) (*debt.AmortizationPlan, error) {
	var model models.AmortizationPlanModel
	if err := r.db.WithContext(ctx).
		Where("source_id = ? AND state != ?", sourceID, shared.LifecycleDeleted).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save persists the amortization plan
func (r *GormPlanRepository) Save(ctx context.Context, plan *debt.AmortizationPlan) error {
	model := models.AmortizationPlanModelFromDomain(plan)
	return r.db.WithContext(ctx).Save(model).Error
}
