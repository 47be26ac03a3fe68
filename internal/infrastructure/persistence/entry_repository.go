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

// GormEntryRepository implements planning.EntryRepository using GORM
type GormEntryRepository struct {
	db *gorm.DB
}

// NewGormEntryRepository creates a new GormEntryRepository
func NewGormEntryRepository(db *gorm.DB) *GormEntryRepository {
	return &GormEntryRepository{db: db}
}

// FindByID finds a forecast entry by its ID
func (r *GormEntryRepository) FindByID(ctx context.Context, id uuid.UUID) (*planning.ForecastEntry, error) {
	var model models.ForecastEntryModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindBySource finds active entries derived from the given contract,
// restricted to entries dated on or after from when from is non-nil.
func (r *GormEntryRepository) FindBySource(ctx context.Context, sourceID uuid.UUID, from *time.Time) ([]planning.ForecastEntry, error) {
	var entryModels []models.ForecastEntryModel
	query := r.db.WithContext(ctx).Model(&models.ForecastEntryModel{}).
		Where("source_id = ?", sourceID).
		Where("state = ?", shared.LifecycleActive)
	if from != nil {
		query = query.Where("date >= ?", *from)
	}
	if err := query.Order("date ASC").Find(&entryModels).Error; err != nil {
		return nil, err
	}
	return toDomainEntries(entryModels), nil
}

// FindByDateRange finds active entries dated within [from, to]
func (r *GormEntryRepository) FindByDateRange(ctx context.Context, from, to time.Time) ([]planning.ForecastEntry, error) {
	var entryModels []models.ForecastEntryModel
	if err := r.db.WithContext(ctx).Model(&models.ForecastEntryModel{}).
		Where("date >= ? AND date <= ?", from, to).
		Where("state = ?", shared.LifecycleActive).
		Order("date ASC").
		Find(&entryModels).Error; err != nil {
		return nil, err
	}
	return toDomainEntries(entryModels), nil
}

// Save persists the forecast entry
func (r *GormEntryRepository) Save(ctx context.Context, entry *planning.ForecastEntry) error {
	model := models.ForecastEntryModelFromDomain(entry)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveAll persists a batch of forecast entries in one transaction
func (r *GormEntryRepository) SaveAll(ctx context.Context, entries []*planning.ForecastEntry) error {
	if len(entries) == 0 {
		return nil
	}
	entryModels := make([]*models.ForecastEntryModel, len(entries))
	for i, entry := range entries {
		entryModels[i] = models.ForecastEntryModelFromDomain(entry)
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range entryModels {
			if err := tx.Save(model).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// SoftDeleteBySource marks all derived entries of a contract as deleted,
// restricted to entries dated on or after from when from is non-nil.
func (r *GormEntryRepository) SoftDeleteBySource(ctx context.Context, sourceID uuid.UUID, from *time.Time) error {
	now := time.Now()
	query := r.db.WithContext(ctx).Model(&models.ForecastEntryModel{}).
		Where("source_id = ?", sourceID).
		Where("state = ?", shared.LifecycleActive)
	if from != nil {
		query = query.Where("date >= ?", *from)
	}
	return query.Updates(map[string]any{
		"state":      shared.LifecycleDeleted,
		"deleted_at": now,
		"updated_at": now,
	}).Error
}

func toDomainEntries(entryModels []models.ForecastEntryModel) []planning.ForecastEntry {
	entries := make([]planning.ForecastEntry, len(entryModels))
	for i, model := range entryModels {
		entries[i] = *model.ToDomain()
	}
	return entries
}
