package cache

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sangkips/gymcore-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

type countingSettingsRepo struct {
	settings *entity.CommissionSettings
	system   map[string]*entity.SystemSetting
	reads    int
	writes   int
}

func (r *countingSettingsRepo) GetCommissionSettings(ctx context.Context) (*entity.CommissionSettings, error) {
	r.reads++
	return r.settings, nil
}

func (r *countingSettingsRepo) SaveCommissionSettings(ctx context.Context, s *entity.CommissionSettings) error {
	r.writes++
	r.settings = s
	return nil
}

func (r *countingSettingsRepo) GetSystemSetting(ctx context.Context, key string) (*entity.SystemSetting, error) {
	r.reads++
	return r.system[key], nil
}

func (r *countingSettingsRepo) SaveSystemSetting(ctx context.Context, s *entity.SystemSetting) error {
	r.writes++
	r.system[s.Key] = s
	return nil
}

func TestSettingsCacheWithoutClient(t *testing.T) {
	repo := &countingSettingsRepo{settings: entity.DefaultCommissionSettings(), system: map[string]*entity.SystemSetting{}}
	c := NewSettingsCache(repo, nil, 0)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := c.GetCommissionSettings(ctx); err != nil {
			t.Fatalf("GetCommissionSettings: %v", err)
		}
	}
	if repo.reads != 3 {
		t.Errorf("reads = %d, want every call to reach the repository", repo.reads)
	}

	updated := entity.DefaultCommissionSettings()
	updated.Tier5Rate = decimal.NewFromInt(50)
	if err := c.SaveCommissionSettings(ctx, updated); err != nil {
		t.Fatalf("SaveCommissionSettings: %v", err)
	}
	got, _ := c.GetCommissionSettings(ctx)
	if !got.Tier5Rate.Equal(decimal.NewFromInt(50)) {
		t.Errorf("Tier5Rate = %s, want 50", got.Tier5Rate)
	}

	missing, err := c.GetSystemSetting(ctx, entity.SettingDefaultCommissionMethod)
	if err != nil || missing != nil {
		t.Errorf("missing setting = %v, %v; want nil, nil", missing, err)
	}
}

func TestSettingsCacheFallsThroughWhenRedisIsDown(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 100 * time.Millisecond,
	})
	defer client.Close()

	repo := &countingSettingsRepo{system: map[string]*entity.SystemSetting{
		entity.SettingDefaultCommissionMethod: {Key: entity.SettingDefaultCommissionMethod, Value: "sessions"},
	}}
	c := NewSettingsCache(repo, client, time.Minute)

	got, err := c.GetSystemSetting(context.Background(), entity.SettingDefaultCommissionMethod)
	if err != nil {
		t.Fatalf("GetSystemSetting: %v", err)
	}
	if got == nil || got.Value != "sessions" {
		t.Errorf("setting = %+v, want value from the repository", got)
	}
	if repo.reads != 1 {
		t.Errorf("reads = %d, want 1", repo.reads)
	}
}
