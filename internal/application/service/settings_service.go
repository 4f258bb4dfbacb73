package service

import (
	"context"
	"time"

	"github.com/sangkips/gymcore-api/internal/commission"
	"github.com/sangkips/gymcore-api/internal/domain/entity"
	"github.com/sangkips/gymcore-api/internal/domain/enum"
	"github.com/sangkips/gymcore-api/internal/domain/repository"
	"github.com/sangkips/gymcore-api/pkg/apperror"
	log "github.com/sirupsen/logrus"
)

// SettingsService reads and writes the commission tier table and the default calculation method
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{settingsRepo: settingsRepo}
}

// GetCommissionSettings returns the tier table, storing the defaults on first use
func (s *SettingsService) GetCommissionSettings(ctx context.Context) (*entity.CommissionSettings, error) {
	settings, err := s.settingsRepo.GetCommissionSettings(ctx)
	if err != nil {
		return nil, err
	}
	if settings != nil {
		return settings, nil
	}

	settings = entity.DefaultCommissionSettings()
	if err := s.settingsRepo.SaveCommissionSettings(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// UpdateCommissionSettings validates and stores a new tier table
func (s *SettingsService) UpdateCommissionSettings(ctx context.Context, tiers commission.Tiers) (*entity.CommissionSettings, error) {
	if err := tiers.Validate(); err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}

	settings := &entity.CommissionSettings{ID: entity.CommissionSettingsID}
	tiers.ApplyTo(settings)
	if err := s.settingsRepo.SaveCommissionSettings(ctx, settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// Tiers returns the tier table for a calculation. When the settings cannot be
// read the defaults are used and the failure is logged.
func (s *SettingsService) Tiers(ctx context.Context) commission.Tiers {
	settings, err := s.GetCommissionSettings(ctx)
	if err != nil {
		log.WithField("source", "commission_settings").Warnf("using default tiers: %v", err)
		return commission.DefaultTiers()
	}
	tiers := commission.TiersFromSettings(settings)
	if err := tiers.Validate(); err != nil {
		log.WithField("source", "commission_settings").Warnf("stored tiers rejected, using defaults: %v", err)
		return commission.DefaultTiers()
	}
	return tiers
}

// DefaultMethod returns the stored calculation method, revenue when unset
func (s *SettingsService) DefaultMethod(ctx context.Context) (enum.CommissionMethod, error) {
	setting, err := s.settingsRepo.GetSystemSetting(ctx, entity.SettingDefaultCommissionMethod)
	if err != nil {
		return "", err
	}
	if setting == nil {
		return enum.MethodRevenue, nil
	}
	method, err := enum.ParseCommissionMethod(setting.Value)
	if err != nil {
		log.WithField("value", setting.Value).Warn("stored commission method is invalid, using revenue")
		return enum.MethodRevenue, nil
	}
	return method, nil
}

// ErrSettingsForbidden is returned when a caller without settings access changes the method
var ErrSettingsForbidden = apperror.NewForbiddenError("Only administrators can change the calculation method")

// SetDefaultMethod stores the calculation method. Callers need the ADMIN role or canAccessSettings.
func (s *SettingsService) SetDefaultMethod(ctx context.Context, actor Actor, value string) (enum.CommissionMethod, error) {
	if !actor.Can(enum.PermAccessSettings) {
		return "", ErrSettingsForbidden
	}

	method, err := enum.ParseCommissionMethod(value)
	if err != nil {
		return "", apperror.NewFieldError("default_method", err.Error())
	}

	userID := actor.UserID
	setting := &entity.SystemSetting{
		Key:         entity.SettingDefaultCommissionMethod,
		Value:       method.String(),
		UpdatedByID: &userID,
		UpdatedAt:   time.Now(),
	}
	if err := s.settingsRepo.SaveSystemSetting(ctx, setting); err != nil {
		return "", err
	}
	return method, nil
}
