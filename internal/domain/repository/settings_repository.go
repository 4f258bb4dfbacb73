package repository

import (
	"context"

	"github.com/sangkips/gymcore-api/internal/domain/entity"
)

// SettingsRepository defines the interface for settings data access
type SettingsRepository interface {
	// GetCommissionSettings returns nil, nil when the row does not exist yet
	GetCommissionSettings(ctx context.Context) (*entity.CommissionSettings, error)
	SaveCommissionSettings(ctx context.Context, settings *entity.CommissionSettings) error
	GetSystemSetting(ctx context.Context, key string) (*entity.SystemSetting, error)
	SaveSystemSetting(ctx context.Context, setting *entity.SystemSetting) error
}
