package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sangkips/gymcore-api/internal/domain/entity"
	"github.com/sangkips/gymcore-api/internal/domain/repository"
	log "github.com/sirupsen/logrus"
)

const (
	commissionSettingsKey = "gymcore:settings:commission"
	systemSettingPrefix   = "gymcore:settings:system:"
	defaultTTL            = 10 * time.Minute
)

// SettingsCache is a cache-aside decorator over a SettingsRepository.
// Writes go to the database first and then drop the cached copy.
// Redis errors are logged and the call falls through to the database.
type SettingsCache struct {
	next   repository.SettingsRepository
	client *redis.Client
	ttl    time.Duration
}

// NewSettingsCache wraps next. A nil client disables caching.
func NewSettingsCache(next repository.SettingsRepository, client *redis.Client, ttl time.Duration) *SettingsCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &SettingsCache{next: next, client: client, ttl: ttl}
}

func (c *SettingsCache) GetCommissionSettings(ctx context.Context) (*entity.CommissionSettings, error) {
	var cached entity.CommissionSettings
	if c.get(ctx, commissionSettingsKey, &cached) {
		return &cached, nil
	}

	settings, err := c.next.GetCommissionSettings(ctx)
	if err != nil || settings == nil {
		return settings, err
	}
	c.set(ctx, commissionSettingsKey, settings)
	return settings, nil
}

func (c *SettingsCache) SaveCommissionSettings(ctx context.Context, settings *entity.CommissionSettings) error {
	if err := c.next.SaveCommissionSettings(ctx, settings); err != nil {
		return err
	}
	c.invalidate(ctx, commissionSettingsKey)
	return nil
}

func (c *SettingsCache) GetSystemSetting(ctx context.Context, key string) (*entity.SystemSetting, error) {
	var cached entity.SystemSetting
	if c.get(ctx, systemSettingPrefix+key, &cached) {
		return &cached, nil
	}

	setting, err := c.next.GetSystemSetting(ctx, key)
	if err != nil || setting == nil {
		return setting, err
	}
	c.set(ctx, systemSettingPrefix+key, setting)
	return setting, nil
}

func (c *SettingsCache) SaveSystemSetting(ctx context.Context, setting *entity.SystemSetting) error {
	if err := c.next.SaveSystemSetting(ctx, setting); err != nil {
		return err
	}
	c.invalidate(ctx, systemSettingPrefix+setting.Key)
	return nil
}

func (c *SettingsCache) get(ctx context.Context, key string, dst interface{}) bool {
	if c.client == nil {
		return false
	}
	val, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.WithField("key", key).Warnf("settings cache read failed: %v", err)
		}
		return false
	}
	if err := json.Unmarshal(val, dst); err != nil {
		log.WithField("key", key).Warnf("discarding unreadable cached settings: %v", err)
		c.invalidate(ctx, key)
		return false
	}
	return true
}

func (c *SettingsCache) set(ctx context.Context, key string, value interface{}) {
	if c.client == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.WithField("key", key).Warnf("settings cache write failed: %v", err)
	}
}

func (c *SettingsCache) invalidate(ctx context.Context, key string) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, key).Err(); err != nil {
		log.WithField("key", key).Warnf("settings cache invalidation failed: %v", err)
	}
}
