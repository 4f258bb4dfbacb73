package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/gymcore-api/internal/application/service"
	"github.com/sangkips/gymcore-api/internal/presentation/http/dto/request"
	"github.com/sangkips/gymcore-api/internal/presentation/http/dto/response"
	"github.com/sangkips/gymcore-api/pkg/pagination"
)

// MemberHandler handles member registration and QR cards
type MemberHandler struct {
	memberService *service.MemberService
	loc           *time.Location
}

// NewMemberHandler creates a new member handler. Dates are read in loc.
func NewMemberHandler(memberService *service.MemberService, loc *time.Location) *MemberHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &MemberHandler{memberService: memberService, loc: loc}
}

// List handles listing members with pagination
// @Summary List Members
// @Tags members
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search query string false "Name, phone or member number"
// @Success 200 {object} response.APIResponse
// @Router /members [get]
func (h *MemberHandler) List(c *gin.Context) {
	params := pagination.FromQuery(c.DefaultQuery("page", "1"), c.Query("per_page"))

	result, err := h.memberService.ListMembers(c.Request.Context(), params, c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, http.StatusOK, "Members retrieved successfully", result)
}

// Create handles registering a member
// @Summary Create Member
// @Description Register a member. A signup staff member earns the signup bonus.
// @Tags members
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.CreateMemberRequest true "Member"
// @Success 201 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /members [post]
func (h *MemberHandler) Create(c *gin.Context) {
	var req request.CreateMemberRequest
	if !bindJSON(c, &req) {
		return
	}

	staffID, err := optionalUUID("signup_staff_id", req.SignupStaffID)
	if err != nil {
		response.Error(c, err)
		return
	}
	start, err := optionalDate("start_date", req.StartDate, h.loc)
	if err != nil {
		response.Error(c, err)
		return
	}
	expiry, err := optionalDate("expiry_date", req.ExpiryDate, h.loc)
	if err != nil {
		response.Error(c, err)
		return
	}

	member, err := h.memberService.CreateMember(c.Request.Context(), &service.CreateMemberInput{
		MemberNumber:      req.MemberNumber,
		Name:              req.Name,
		Phone:             req.Phone,
		SubscriptionPrice: req.SubscriptionPrice,
		RemainingAmount:   req.RemainingAmount,
		StartDate:         start,
		ExpiryDate:        expiry,
		SignupStaffID:     staffID,
		Notes:             req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Member created successfully", member)
}

// Get handles getting a member by ID
func (h *MemberHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	member, err := h.memberService.GetMember(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Member retrieved successfully", member)
}

// SetStatus enables or disables a member
func (h *MemberHandler) SetStatus(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req request.MemberStatusRequest
	if !bindJSON(c, &req) {
		return
	}

	member, err := h.memberService.SetActive(c.Request.Context(), id, *req.IsActive)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Member status updated successfully", member)
}

// RegenerateQRCode issues a new QR code for a member
// @Summary Regenerate QR code
// @Tags members
// @Security BearerAuth
// @Produce json
// @Param id path string true "Member ID"
// @Success 200 {object} response.APIResponse
// @Router /members/{id}/qr/regenerate [post]
func (h *MemberHandler) RegenerateQRCode(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	member, err := h.memberService.RegenerateQRCode(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "QR code regenerated successfully", member)
}

// QRCodeImage streams the member's QR code as a PNG
// @Summary QR code image
// @Tags members
// @Security BearerAuth
// @Produce png
// @Param id path string true "Member ID"
// @Param size query int false "Image size in pixels" default(256)
// @Router /members/{id}/qr [get]
func (h *MemberHandler) QRCodeImage(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	size, _ := strconv.Atoi(c.Query("size"))

	png, err := h.memberService.QRCodePNG(c.Request.Context(), id, size)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Image(c, response.ContentTypePNG, png)
}
