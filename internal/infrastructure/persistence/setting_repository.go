package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/liquiplan/backend/internal/domain/shared"
	"github.com/liquiplan/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSettingRepository implements settings.Repository using GORM
type GormSettingRepository struct {
	db *gorm.DB
}

// NewGormSettingRepository creates a new GormSettingRepository
func NewGormSettingRepository(db *gorm.DB) *GormSettingRepository {
	return &GormSettingRepository{db: db}
}

// Get returns the raw value stored under the key
func (r *GormSettingRepository) Get(ctx context.Context, key string) (string, error) {
	var model models.SettingModel
	if err := r.db.WithContext(ctx).First(&model, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", shared.ErrNotFound
		}
		return "", err
	}
	return model.Value, nil
}

// Set stores the value under the key, overwriting any previous value
func (r *GormSettingRepository) Set(ctx context.Context, key, value string) error {
	model := models.SettingModel{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&model).Error
}
