package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/gymcore-api/internal/application/service"
	"github.com/sangkips/gymcore-api/internal/commission"
	"github.com/sangkips/gymcore-api/internal/presentation/http/dto/request"
	"github.com/sangkips/gymcore-api/internal/presentation/http/dto/response"
	"github.com/sangkips/gymcore-api/internal/report"
	"github.com/shopspring/decimal"
)

// CommissionHandler handles payout calculations and the commission ledger
type CommissionHandler struct {
	commissionService *service.CommissionService
}

// NewCommissionHandler creates a new commission handler
func NewCommissionHandler(commissionService *service.CommissionService) *CommissionHandler {
	return &CommissionHandler{commissionService: commissionService}
}

// resultView drops the gym share for callers who may not see it
type resultView struct {
	commission.Result
	GymShare *decimal.Decimal `json:"gym_share,omitempty"`
}

type sessionView struct {
	commission.SessionCommission
	GymShare *decimal.Decimal `json:"gym_share,omitempty"`
}

type calculationView struct {
	*service.Calculation
	Result   resultView   `json:"result"`
	Sessions *sessionView `json:"sessions,omitempty"`
}

type rankingView struct {
	Rankings  []sessionView        `json:"rankings"`
	Anomalies []commission.Anomaly `json:"anomalies"`
}

// gymShare returns share when actor is an administrator, nil otherwise
func gymShare(actor service.Actor, share decimal.Decimal) *decimal.Decimal {
	if !actor.IsAdmin() {
		return nil
	}
	return &share
}

func sessionFor(actor service.Actor, sc commission.SessionCommission) sessionView {
	return sessionView{SessionCommission: sc, GymShare: gymShare(actor, sc.GymShare)}
}

func viewFor(actor service.Actor, calc *service.Calculation) calculationView {
	view := calculationView{
		Calculation: calc,
		Result:      resultView{Result: calc.Result, GymShare: gymShare(actor, calc.Result.GymShare)},
	}
	if calc.Sessions != nil {
		sv := sessionFor(actor, *calc.Sessions)
		view.Sessions = &sv
	}
	return view
}

func rankingFor(actor service.Actor, usage *commission.SessionUsage) rankingView {
	view := rankingView{Rankings: make([]sessionView, 0, len(usage.Rankings)), Anomalies: usage.Anomalies}
	for _, sc := range usage.Rankings {
		view.Rankings = append(view.Rankings, sessionFor(actor, sc))
	}
	return view
}

func calculateInput(req *request.CalculateCommissionRequest) *service.CalculateInput {
	return &service.CalculateInput{
		Domain:       req.Domain,
		Method:       req.Method,
		StaffName:    req.StaffName,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		CustomIncome: req.CustomIncome,
		Percentage:   req.Percentage,
	}
}

// Calculate resolves the payout of one staff member
// @Summary Calculate commission
// @Description Revenue or sessions mode payout for a staff member over a date range.
// @Description The gym share is only returned to administrators.
// @Tags commissions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.CalculateCommissionRequest true "Calculation"
// @Success 200 {object} response.APIResponse
// @Failure 422 {object} response.APIResponse
// @Router /commissions/calculate [post]
func (h *CommissionHandler) Calculate(c *gin.Context) {
	var req request.CalculateCommissionRequest
	if !bindJSON(c, &req) {
		return
	}

	actor := GetActor(c)
	calc, err := h.commissionService.Calculate(c.Request.Context(), actor, calculateInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Commission calculated successfully", viewFor(actor, calc))
}

// Sessions returns the session mode ranking. Only administrators see the gym share.
// @Summary Session commission ranking
// @Tags commissions
// @Security BearerAuth
// @Produce json
// @Param domain query string true "pt, nutrition or physiotherapy"
// @Param staffName query string false "Limit to one staff member"
// @Param startDate query string true "YYYY-MM-DD"
// @Param endDate query string true "YYYY-MM-DD"
// @Success 200 {object} response.APIResponse
// @Router /commissions/sessions [get]
func (h *CommissionHandler) Sessions(c *gin.Context) {
	actor := GetActor(c)
	usage, err := h.commissionService.SessionRanking(c.Request.Context(), actor,
		c.DefaultQuery("domain", "pt"), c.Query("staffName"), c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Session commissions retrieved successfully", rankingFor(actor, usage))
}

// Earnings returns per-trainer sales statistics
// @Summary Trainer earnings
// @Tags commissions
// @Security BearerAuth
// @Produce json
// @Param domain query string false "pt, nutrition or physiotherapy" default(pt)
// @Param startDate query string true "YYYY-MM-DD"
// @Param endDate query string true "YYYY-MM-DD"
// @Success 200 {object} response.APIResponse
// @Router /commissions/earnings [get]
func (h *CommissionHandler) Earnings(c *gin.Context) {
	stats, err := h.commissionService.Earnings(c.Request.Context(),
		c.DefaultQuery("domain", "pt"), c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Trainer earnings retrieved successfully", stats)
}

// EarningsExport downloads the trainer earnings as an xlsx workbook
// @Summary Export trainer earnings
// @Tags commissions
// @Security BearerAuth
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param domain query string false "pt, nutrition or physiotherapy" default(pt)
// @Param startDate query string true "YYYY-MM-DD"
// @Param endDate query string true "YYYY-MM-DD"
// @Router /commissions/earnings/export [get]
func (h *CommissionHandler) EarningsExport(c *gin.Context) {
	domain, start, end := c.DefaultQuery("domain", "pt"), c.Query("startDate"), c.Query("endDate")
	stats, err := h.commissionService.Earnings(c.Request.Context(), domain, start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	data, err := report.EarningsWorkbook(fmt.Sprintf("%s earnings %s to %s", domain, start, end), stats)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Attachment(c, fmt.Sprintf("earnings-%s-%s-%s.xlsx", domain, start, end), response.ContentTypeXLSX, data)
}

// MemberSignups groups signup bonuses per staff member
// @Summary Signup commissions
// @Tags commissions
// @Security BearerAuth
// @Produce json
// @Param startDate query string true "YYYY-MM-DD"
// @Param endDate query string true "YYYY-MM-DD"
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse
// @Router /commissions/member-signups [get]
func (h *CommissionHandler) MemberSignups(c *gin.Context) {
	groups, err := h.commissionService.MemberSignups(c.Request.Context(), GetActor(c),
		c.Query("startDate"), c.Query("endDate"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Signup commissions retrieved successfully", groups)
}

// List returns ledger entries, newest first
func (h *CommissionHandler) List(c *gin.Context) {
	raw := c.Query("staffId")
	staffID, err := optionalUUID("staffId", &raw)
	if err != nil {
		response.Error(c, err)
		return
	}

	entries, err := h.commissionService.ListLedger(c.Request.Context(), GetActor(c), c.Query("type"), staffID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Commissions retrieved successfully", entries)
}

// Statement calculates a payout and mails it
// @Summary Mail commission statement
// @Tags commissions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.CommissionStatementRequest true "Calculation and recipient"
// @Success 200 {object} response.APIResponse
// @Failure 503 {object} response.APIResponse "Mail not configured"
// @Router /commissions/statement [post]
func (h *CommissionHandler) Statement(c *gin.Context) {
	var req request.CommissionStatementRequest
	if !bindJSON(c, &req) {
		return
	}

	actor := GetActor(c)
	calc, err := h.commissionService.SendStatement(c.Request.Context(), actor, calculateInput(&req.CalculateCommissionRequest), req.Email)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Commission statement sent", viewFor(actor, calc))
}
