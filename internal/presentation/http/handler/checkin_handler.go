package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/gymcore-api/internal/application/service"
	"github.com/sangkips/gymcore-api/internal/presentation/http/dto/request"
	"github.com/sangkips/gymcore-api/internal/presentation/http/dto/response"
)

// CheckInHandler handles member visits
type CheckInHandler struct {
	checkInService *service.CheckInService
}

// NewCheckInHandler creates a new check-in handler
func NewCheckInHandler(checkInService *service.CheckInService) *CheckInHandler {
	return &CheckInHandler{checkInService: checkInService}
}

// CheckIn records a visit from a scanned QR code or a member ID
// @Summary Check in
// @Tags member-checkin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.CheckInRequest true "QR code or member ID"
// @Success 201 {object} response.APIResponse
// @Success 200 {object} response.APIResponse "Member already inside"
// @Router /member-checkin [post]
func (h *CheckInHandler) CheckIn(c *gin.Context) {
	var req request.CheckInRequest
	if !bindJSON(c, &req) {
		return
	}
	memberID, err := optionalUUID("member_id", req.MemberID)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.checkInService.CheckIn(c.Request.Context(), &service.CheckInInput{
		QRCode:   req.QRCode,
		MemberID: memberID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	if result.AlreadyCheckedIn {
		response.OK(c, "Member is already checked in", result)
		return
	}
	response.Created(c, "Check-in recorded successfully", result)
}

// Current lists the members inside the gym
func (h *CheckInHandler) Current(c *gin.Context) {
	checkIns, err := h.checkInService.Current(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Current check-ins retrieved successfully", gin.H{
		"count":     len(checkIns),
		"check_ins": checkIns,
	})
}

// AutoCheckout closes overdue visits
func (h *CheckInHandler) AutoCheckout(c *gin.Context) {
	closed, err := h.checkInService.AutoCheckout(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Overdue check-ins closed", gin.H{"closed": closed})
}
