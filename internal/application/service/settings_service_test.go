package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/sangkips/gymcore-api/internal/commission"
	"github.com/sangkips/gymcore-api/internal/domain/entity"
	"github.com/sangkips/gymcore-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

func TestGetCommissionSettingsCreatesDefaults(t *testing.T) {
	repo := newFakeSettingsRepo()
	svc := NewSettingsService(repo)

	settings, err := svc.GetCommissionSettings(context.Background())
	if err != nil {
		t.Fatalf("GetCommissionSettings: %v", err)
	}
	if repo.commission == nil {
		t.Fatal("defaults should be stored on first read")
	}
	if !settings.Tier1Limit.Equal(dec("5000")) || !settings.Tier5Rate.Equal(dec("45")) {
		t.Errorf("settings = %+v, want the default table", settings)
	}
}

func TestUpdateCommissionSettingsRejectsUnorderedLimits(t *testing.T) {
	svc := NewSettingsService(newFakeSettingsRepo())
	tiers := commission.DefaultTiers()
	tiers.Limits[2] = dec("1000")

	_, err := svc.UpdateCommissionSettings(context.Background(), tiers)
	assertStatus(t, err, http.StatusBadRequest)
}

func TestTiersFallBackToDefaults(t *testing.T) {
	repo := newFakeSettingsRepo()
	repo.err = errStoreDown
	svc := NewSettingsService(repo)

	tiers := svc.Tiers(context.Background())
	if !tiers.RateForIncome(decimal.Zero).Equal(dec("25")) {
		t.Error("unreadable settings should fall back to the default tiers")
	}
}

func TestSetDefaultMethod(t *testing.T) {
	repo := newFakeSettingsRepo()
	svc := NewSettingsService(repo)
	ctx := context.Background()

	method, err := svc.DefaultMethod(ctx)
	if err != nil || method != enum.MethodRevenue {
		t.Fatalf("DefaultMethod = %s, %v; want revenue when unset", method, err)
	}

	staff := Actor{UserID: uuid.New(), Role: enum.RoleStaff, Permissions: []string{enum.PermViewMembers}}
	_, err = svc.SetDefaultMethod(ctx, staff, "sessions")
	assertStatus(t, err, http.StatusForbidden)
	if len(repo.system) != 0 {
		t.Error("a rejected write must not store anything")
	}

	manager := Actor{UserID: uuid.New(), Role: enum.RoleManager, Permissions: []string{enum.PermAccessSettings}}
	if _, err := svc.SetDefaultMethod(ctx, manager, "sessions"); err != nil {
		t.Fatalf("SetDefaultMethod with canAccessSettings: %v", err)
	}
	if method, _ := svc.DefaultMethod(ctx); method != enum.MethodSessions {
		t.Errorf("DefaultMethod = %s, want sessions", method)
	}

	_, err = svc.SetDefaultMethod(ctx, adminActor(), "hourly")
	assertStatus(t, err, http.StatusUnprocessableEntity)

	repo.system[entity.SettingDefaultCommissionMethod].Value = "garbage"
	if method, _ := svc.DefaultMethod(ctx); method != enum.MethodRevenue {
		t.Errorf("invalid stored method should read as revenue, got %s", method)
	}
}
