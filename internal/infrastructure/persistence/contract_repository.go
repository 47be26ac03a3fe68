package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/liquiplan/backend/internal/domain/planning"
	"github.com/liquiplan/backend/internal/domain/shared"
	"github.com/liquiplan/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormContractRepository implements planning.ContractRepository using GORM
type GormContractRepository struct {
	db *gorm.DB
}

// NewGormContractRepository creates a new GormContractRepository
func NewGormContractRepository(db *gorm.DB) *GormContractRepository {
	return &GormContractRepository{db: db}
}

// FindByID finds a recurring contract by its ID
func (r *GormContractRepository) FindByID(ctx context.Context, id uuid.UUID) (*planning.RecurringContract, error) {
	var model models.RecurringContractModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds contracts matching the given filter
func (r *GormContractRepository) FindAll(ctx context.Context, filter planning.ContractFilter) ([]planning.RecurringContract, error) {
	var contractModels []models.RecurringContractModel
	query := r.db.WithContext(ctx).Model(&models.RecurringContractModel{})
	query = r.applyFilter(query, filter)

	if err := query.Order("start_date ASC, name ASC").Find(&contractModels).Error; err != nil {
		return nil, err
	}
	contracts := make([]planning.RecurringContract, len(contractModels))
	for i, model := range contractModels {
		contracts[i] = *model.ToDomain()
	}
	return contracts, nil
}

// Save persists the recurring contract
func (r *GormContractRepository) Save(ctx context.Context, contract *planning.RecurringContract) error {
	model := models.RecurringContractModelFromDomain(contract)
	return r.db.WithContext(ctx).Save(model).Error
}

func (r *GormContractRepository) applyFilter(query *gorm.DB, filter planning.ContractFilter) *gorm.DB {
	if !filter.IncludeDeleted {
		query = query.Where("state != ?", shared.LifecycleDeleted)
	}
	if filter.ActiveOnly {
		query = query.Where("state = ?", shared.LifecycleActive)
	}
	if filter.FlowType != "" {
		query = query.Where("flow_type = ?", filter.FlowType)
	}
	if filter.CenterID != nil {
		query = query.Where("center_id = ?", *filter.CenterID)
	}
	if filter.OverlapsYear > 0 {
		// A contract overlaps the year when it starts before the year ends
		// and either has no end date or ends on or after January 1st.
		yearStart := yearBounds(filter.OverlapsYear)
		yearEnd := yearBounds(filter.OverlapsYear + 1)
		query = query.Where("start_date < ?", yearEnd).
			Where("end_date IS NULL OR end_date >= ?", yearStart)
	}
	return query
}

// yearBounds returns midnight UTC on January 1st of the given year.
func yearBounds(year int) time.Time {
	return time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
}
