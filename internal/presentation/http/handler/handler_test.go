package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/gymcore-api/internal/application/service"
	"github.com/sangkips/gymcore-api/internal/commission"
	"github.com/sangkips/gymcore-api/internal/domain/entity"
	"github.com/sangkips/gymcore-api/internal/domain/enum"
	"github.com/sangkips/gymcore-api/internal/presentation/http/middleware"
	"github.com/shopspring/decimal"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// asUser stands in for the auth middleware
func asUser(role string, permissions ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserID, uuid.New())
		c.Set(middleware.ContextUserRole, role)
		c.Set(middleware.ContextUserPermissions, permissions)
		c.Next()
	}
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type memorySettingsRepo struct {
	commission *entity.CommissionSettings
	system     map[string]*entity.SystemSetting
}

func newMemorySettingsRepo() *memorySettingsRepo {
	return &memorySettingsRepo{system: make(map[string]*entity.SystemSetting)}
}

func (r *memorySettingsRepo) GetCommissionSettings(ctx context.Context) (*entity.CommissionSettings, error) {
	return r.commission, nil
}

func (r *memorySettingsRepo) SaveCommissionSettings(ctx context.Context, s *entity.CommissionSettings) error {
	r.commission = s
	return nil
}

func (r *memorySettingsRepo) GetSystemSetting(ctx context.Context, key string) (*entity.SystemSetting, error) {
	return r.system[key], nil
}

func (r *memorySettingsRepo) SaveSystemSetting(ctx context.Context, s *entity.SystemSetting) error {
	r.system[s.Key] = s
	return nil
}

func TestGetActor(t *testing.T) {
	staffID := uuid.New()
	r := gin.New()
	r.GET("/", func(c *gin.Context) {
		c.Set(middleware.ContextUserID, uuid.New())
		c.Set(middleware.ContextUserRole, enum.RoleCoach)
		c.Set(middleware.ContextUserStaffID, staffID)
		c.Set(middleware.ContextUserPermissions, []string{enum.PermViewCommissions})

		actor := GetActor(c)
		if !actor.IsCoach() {
			t.Errorf("role = %q, want COACH", actor.Role)
		}
		if actor.StaffID == nil || *actor.StaffID != staffID {
			t.Errorf("staff id = %v, want %s", actor.StaffID, staffID)
		}
		if !actor.Can(enum.PermViewCommissions) || actor.Can(enum.PermAccessSettings) {
			t.Errorf("permissions = %v", actor.Permissions)
		}
		c.Status(http.StatusNoContent)
	})

	w := doJSON(r, http.MethodGet, "/", "")
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d", w.Code)
	}
}

func TestSettingsHandler(t *testing.T) {
	h := NewSettingsHandler(service.NewSettingsService(newMemorySettingsRepo()))

	newRouter := func(role string, permissions ...string) *gin.Engine {
		r := gin.New()
		r.Use(asUser(role, permissions...))
		r.GET("/settings/commission", h.GetDefaultMethod)
		r.PUT("/settings/commission", h.SetDefaultMethod)
		r.GET("/commission-settings", h.GetCommissionSettings)
		r.PUT("/commission-settings", h.UpdateCommissionSettings)
		return r
	}

	tests := []struct {
		name   string
		router *gin.Engine
		method string
		path   string
		body   string
		want   int
	}{
		{"staff cannot change method", newRouter(enum.RoleStaff), http.MethodPut, "/settings/commission", `{"default_method":"sessions"}`, http.StatusForbidden},
		{"admin changes method", newRouter(enum.RoleAdmin), http.MethodPut, "/settings/commission", `{"default_method":"sessions"}`, http.StatusOK},
		{"manager with settings access", newRouter(enum.RoleManager, enum.PermAccessSettings), http.MethodPut, "/settings/commission", `{"default_method":"revenue"}`, http.StatusOK},
		{"unknown method", newRouter(enum.RoleAdmin), http.MethodPut, "/settings/commission", `{"default_method":"hourly"}`, http.StatusUnprocessableEntity},
		{"missing method", newRouter(enum.RoleAdmin), http.MethodPut, "/settings/commission", `{}`, http.StatusUnprocessableEntity},
		{"malformed body", newRouter(enum.RoleAdmin), http.MethodPut, "/settings/commission", `{`, http.StatusBadRequest},
		{"read tiers", newRouter(enum.RoleCoach), http.MethodGet, "/commission-settings", "", http.StatusOK},
		{"descending limits", newRouter(enum.RoleAdmin), http.MethodPut, "/commission-settings",
			`{"tier1_limit":"5000","tier2_limit":"3000","tier3_limit":"10000","tier4_limit":"15000","tier1_rate":"25","tier2_rate":"30","tier3_rate":"35","tier4_rate":"40","tier5_rate":"45"}`,
			http.StatusBadRequest},
		{"valid tiers", newRouter(enum.RoleAdmin), http.MethodPut, "/commission-settings",
			`{"tier1_limit":"4000","tier2_limit":"8000","tier3_limit":"12000","tier4_limit":"16000","tier1_rate":"20","tier2_rate":"25","tier3_rate":"30","tier4_rate":"35","tier5_rate":"40"}`,
			http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doJSON(tt.router, tt.method, tt.path, tt.body)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d: %s", w.Code, tt.want, w.Body.String())
			}
		})
	}

	w := doJSON(newRouter(enum.RoleCoach), http.MethodGet, "/settings/commission", "")
	var body struct {
		Data struct {
			DefaultMethod string `json:"default_method"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// the manager's change ran last
	if body.Data.DefaultMethod != "revenue" {
		t.Errorf("default_method = %q, want revenue", body.Data.DefaultMethod)
	}
}

func TestCalculationViewHidesGymShare(t *testing.T) {
	calc := &service.Calculation{
		Domain: enum.DomainPT,
		Result: commission.Result{
			StaffName:  "Sara",
			Commission: decimal.NewFromInt(675),
			GymShare:   decimal.NewFromInt(1875),
		},
		Sessions: &commission.SessionCommission{
			StaffName:  "Sara",
			Commission: decimal.NewFromInt(150),
			GymShare:   decimal.NewFromInt(450),
		},
	}

	tests := []struct {
		role      string
		wantShare bool
	}{
		{enum.RoleAdmin, true},
		{enum.RoleManager, false},
		{enum.RoleCoach, false},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			raw, err := json.Marshal(viewFor(service.Actor{Role: tt.role}, calc))
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			var out struct {
				Domain   string                     `json:"domain"`
				Result   map[string]json.RawMessage `json:"result"`
				Sessions map[string]json.RawMessage `json:"sessions"`
			}
			if err := json.Unmarshal(raw, &out); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if out.Domain != "pt" {
				t.Errorf("domain = %q, want pt", out.Domain)
			}
			if _, ok := out.Result["commission"]; !ok {
				t.Error("commission missing from result")
			}
			if _, ok := out.Result["gym_share"]; ok != tt.wantShare {
				t.Errorf("result gym_share present = %v, want %v", ok, tt.wantShare)
			}
			if _, ok := out.Sessions["commission"]; !ok {
				t.Error("commission missing from sessions")
			}
			if _, ok := out.Sessions["gym_share"]; ok != tt.wantShare {
				t.Errorf("sessions gym_share present = %v, want %v", ok, tt.wantShare)
			}
		})
	}
}

func TestCalculationViewWithoutSessions(t *testing.T) {
	calc := &service.Calculation{Domain: enum.DomainPT, Result: commission.Result{StaffName: "Sara"}}

	raw, err := json.Marshal(viewFor(service.Actor{Role: enum.RoleAdmin}, calc))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if bytes.Contains(raw, []byte(`"sessions"`)) {
		t.Errorf("revenue mode output carries sessions: %s", raw)
	}
}

func TestRankingViewHidesGymShare(t *testing.T) {
	usage := &commission.SessionUsage{
		Rankings: []commission.SessionCommission{
			{StaffName: "Sara", Commission: decimal.NewFromInt(150), GymShare: decimal.NewFromInt(450)},
			{StaffName: "Omar", Commission: decimal.NewFromInt(90), GymShare: decimal.NewFromInt(210)},
		},
		Anomalies: []commission.Anomaly{},
	}

	tests := []struct {
		role      string
		wantShare bool
	}{
		{enum.RoleAdmin, true},
		{enum.RoleStaff, false},
		{enum.RoleCoach, false},
	}

	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			raw, err := json.Marshal(rankingFor(service.Actor{Role: tt.role}, usage))
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			var out struct {
				Rankings []map[string]json.RawMessage `json:"rankings"`
			}
			if err := json.Unmarshal(raw, &out); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if len(out.Rankings) != 2 {
				t.Fatalf("rankings = %d, want 2", len(out.Rankings))
			}
			for i, entry := range out.Rankings {
				if _, ok := entry["staff_name"]; !ok {
					t.Errorf("ranking %d lost staff_name", i)
				}
				if _, ok := entry["gym_share"]; ok != tt.wantShare {
					t.Errorf("ranking %d gym_share present = %v, want %v", i, ok, tt.wantShare)
				}
			}
		})
	}
}
