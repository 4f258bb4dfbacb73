package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/gymcore-api/internal/application/service"
	"github.com/sangkips/gymcore-api/internal/commission"
	"github.com/sangkips/gymcore-api/internal/presentation/http/dto/request"
	"github.com/sangkips/gymcore-api/internal/presentation/http/dto/response"
	"github.com/shopspring/decimal"
)

// SettingsHandler handles the commission tier table and the default calculation method
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetCommissionSettings returns the tier table
// @Summary Commission tiers
// @Tags settings
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /commission-settings [get]
func (h *SettingsHandler) GetCommissionSettings(c *gin.Context) {
	settings, err := h.settingsService.GetCommissionSettings(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Commission settings retrieved successfully", settings)
}

// UpdateCommissionSettings replaces the tier table
// @Summary Update commission tiers
// @Tags settings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.CommissionSettingsRequest true "Tier table"
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /commission-settings [put]
func (h *SettingsHandler) UpdateCommissionSettings(c *gin.Context) {
	var req request.CommissionSettingsRequest
	if !bindJSON(c, &req) {
		return
	}

	tiers := commission.Tiers{
		Limits: [4]decimal.Decimal{req.Tier1Limit, req.Tier2Limit, req.Tier3Limit, req.Tier4Limit},
		Rates:  [5]decimal.Decimal{req.Tier1Rate, req.Tier2Rate, req.Tier3Rate, req.Tier4Rate, req.Tier5Rate},
	}
	settings, err := h.settingsService.UpdateCommissionSettings(c.Request.Context(), tiers)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Commission settings updated successfully", settings)
}

// GetDefaultMethod returns the stored calculation method
func (h *SettingsHandler) GetDefaultMethod(c *gin.Context) {
	method, err := h.settingsService.DefaultMethod(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Commission method retrieved successfully", gin.H{"default_method": method})
}

// SetDefaultMethod stores the calculation method
// @Summary Set default commission method
// @Tags settings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.DefaultMethodRequest true "revenue or sessions"
// @Success 200 {object} response.APIResponse
// @Failure 403 {object} response.APIResponse
// @Router /settings/commission [put]
func (h *SettingsHandler) SetDefaultMethod(c *gin.Context) {
	var req request.DefaultMethodRequest
	if !bindJSON(c, &req) {
		return
	}

	method, err := h.settingsService.SetDefaultMethod(c.Request.Context(), GetActor(c), req.DefaultMethod)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Commission method updated successfully", gin.H{"default_method": method})
}
