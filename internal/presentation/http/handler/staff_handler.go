package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/gymcore-api/internal/application/service"
	"github.com/sangkips/gymcore-api/internal/presentation/http/dto/request"
	"github.com/sangkips/gymcore-api/internal/presentation/http/dto/response"
)

// StaffHandler handles staff-related HTTP requests
type StaffHandler struct {
	staffService *service.StaffService
}

// NewStaffHandler creates a new staff handler
func NewStaffHandler(staffService *service.StaffService) *StaffHandler {
	return &StaffHandler{staffService: staffService}
}

func staffInput(req *request.StaffRequest) *service.StaffInput {
	return &service.StaffInput{
		Name:     req.Name,
		Phone:    req.Phone,
		Position: req.Position,
		Salary:   req.Salary,
		Notes:    req.Notes,
		IsActive: req.IsActive,
	}
}

// List handles listing staff
// @Summary List Staff
// @Description List staff members. trainers=true keeps active trainers only.
// @Tags staff
// @Security BearerAuth
// @Produce json
// @Param search query string false "Search by name or code"
// @Param trainers query bool false "Trainers only"
// @Success 200 {object} response.APIResponse
// @Router /staff [get]
func (h *StaffHandler) List(c *gin.Context) {
	trainersOnly, _ := strconv.ParseBool(c.DefaultQuery("trainers", "false"))

	staff, err := h.staffService.ListStaff(c.Request.Context(), c.Query("search"), trainersOnly)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Staff retrieved successfully", staff)
}

// Create handles creating a staff member
// @Summary Create Staff
// @Tags staff
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body request.StaffRequest true "Staff"
// @Success 201 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /staff [post]
func (h *StaffHandler) Create(c *gin.Context) {
	var req request.StaffRequest
	if !bindJSON(c, &req) {
		return
	}

	staff, err := h.staffService.CreateStaff(c.Request.Context(), staffInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Staff created successfully", staff)
}

// Get handles getting a staff member by ID
func (h *StaffHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	staff, err := h.staffService.GetStaff(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Staff retrieved successfully", staff)
}

// Update handles updating a staff member
// @Summary Update Staff
// @Tags staff
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Staff ID"
// @Param request body request.StaffRequest true "Staff"
// @Success 200 {object} response.APIResponse
// @Router /staff/{id} [put]
func (h *StaffHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req request.StaffRequest
	if !bindJSON(c, &req) {
		return
	}

	staff, err := h.staffService.UpdateStaff(c.Request.Context(), id, staffInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Staff updated successfully", staff)
}

// Delete handles deleting a staff member
func (h *StaffHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.staffService.DeleteStaff(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Staff deleted successfully", nil)
}
