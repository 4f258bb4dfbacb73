package repository

import (
	"context"
	"errors"

	"github.com/sangkips/gymcore-api/internal/domain/entity"
	"github.com/sangkips/gymcore-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type settingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *gorm.DB) repository.SettingsRepository {
	return &settingsRepository{db: db}
}

func (r *settingsRepository) GetCommissionSettings(ctx context.Context) (*entity.CommissionSettings, error) {
	var settings entity.CommissionSettings
	err := r.db.WithContext(ctx).First(&settings, entity.CommissionSettingsID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// SaveCommissionSettings upserts the single settings row
func (r *settingsRepository) SaveCommissionSettings(ctx context.Context, settings *entity.CommissionSettings) error {
	settings.ID = entity.CommissionSettingsID
	return r.db.WithContext(ctx).Save(settings).Error
}

func (r *settingsRepository) GetSystemSetting(ctx context.Context, key string) (*entity.SystemSetting, error) {
	var setting entity.SystemSetting
	err := r.db.WithContext(ctx).First(&setting, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (r *settingsRepository) SaveSystemSetting(ctx context.Context, setting *entity.SystemSetting) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_by_id", "updated_at"}),
	}).Create(setting).Error
}
