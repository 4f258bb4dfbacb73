package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/gymcore-api/internal/application/service"
	"github.com/sangkips/gymcore-api/internal/domain/enum"
	"github.com/sangkips/gymcore-api/internal/domain/repository"
	"github.com/sangkips/gymcore-api/internal/presentation/http/dto/request"
	"github.com/sangkips/gymcore-api/internal/presentation/http/dto/response"
)

// SessionHandler serves the session blocks of every service domain. Each method
// returns the handler bound to one domain.
type SessionHandler struct {
	sessionService *service.SessionService
	loc            *time.Location
}

// NewSessionHandler creates a new session handler. Dates are read in loc.
func NewSessionHandler(sessionService *service.SessionService, loc *time.Location) *SessionHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &SessionHandler{sessionService: sessionService, loc: loc}
}

func numberParam(c *gin.Context) (int, bool) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil || number <= 0 {
		response.BadRequest(c, "Invalid session number")
		return 0, false
	}
	return number, true
}

// List returns the domain's blocks
// @Summary List session blocks
// @Tags sessions
// @Security BearerAuth
// @Produce json
// @Param domain path string true "pt, nutrition or physiotherapy"
// @Param staffName query string false "Staff name"
// @Param search query string false "Client name, phone or number"
// @Success 200 {object} response.APIResponse
// @Router /{domain} [get]
func (h *SessionHandler) List(domain enum.ServiceDomain) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessions, err := h.sessionService.ListSessions(c.Request.Context(), domain, repository.SessionFilter{
			StaffName: c.Query("staffName"),
			Search:    c.Query("search"),
		})
		if err != nil {
			response.Error(c, err)
			return
		}

		response.OK(c, "Sessions retrieved successfully", sessions)
	}
}

// Create sells a block in the domain
// @Summary Sell a session block
// @Description Writes the block, its receipt and the staff payment commission together.
// @Tags sessions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param domain path string true "pt, nutrition or physiotherapy"
// @Param Idempotency-Key header string false "Replay protection key"
// @Param request body request.CreateSessionRequest true "Block"
// @Success 201 {object} response.APIResponse
// @Failure 409 {object} response.APIResponse
// @Router /{domain} [post]
func (h *SessionHandler) Create(domain enum.ServiceDomain) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req request.CreateSessionRequest
		if !bindJSON(c, &req) {
			return
		}

		memberID, err := optionalUUID("member_id", req.MemberID)
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

		result, err := h.sessionService.CreateSession(c.Request.Context(), domain, &service.CreateSessionInput{
			Number:            req.Number,
			ClientName:        req.ClientName,
			Phone:             req.Phone,
			MemberID:          memberID,
			SessionsPurchased: req.SessionsPurchased,
			PricePerSession:   req.PricePerSession,
			StaffName:         req.StaffName,
			StartDate:         start,
			ExpiryDate:        expiry,
			PaymentMethod:     req.PaymentMethod,
			CreatedByID:       GetUserID(c),
		})
		if err != nil {
			response.Error(c, err)
			return
		}

		response.Created(c, "Session block created successfully", result)
	}
}

// Get returns a block with its attendance
func (h *SessionHandler) Get(domain enum.ServiceDomain) gin.HandlerFunc {
	return func(c *gin.Context) {
		number, ok := numberParam(c)
		if !ok {
			return
		}

		detail, err := h.sessionService.GetSession(c.Request.Context(), domain, number)
		if err != nil {
			response.Error(c, err)
			return
		}

		response.OK(c, "Session retrieved successfully", detail)
	}
}

// Attend uses one session of a block
// @Summary Record attendance
// @Tags sessions
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param domain path string true "pt, nutrition or physiotherapy"
// @Param number path int true "Block number"
// @Success 200 {object} response.APIResponse
// @Failure 400 {object} response.APIResponse "No sessions remaining"
// @Router /{domain}/{number}/attendance [post]
func (h *SessionHandler) Attend(domain enum.ServiceDomain) gin.HandlerFunc {
	return func(c *gin.Context) {
		number, ok := numberParam(c)
		if !ok {
			return
		}

		// an empty body is a plain attendance without notes
		var req request.AttendanceRequest
		if c.Request.ContentLength > 0 && !bindJSON(c, &req) {
			return
		}

		session, err := h.sessionService.RecordAttendance(c.Request.Context(), GetActor(c), domain, number, req.Notes)
		if err != nil {
			response.Error(c, err)
			return
		}

		response.OK(c, "Attendance recorded successfully", session)
	}
}
