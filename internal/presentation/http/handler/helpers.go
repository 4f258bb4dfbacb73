package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/gymcore-api/internal/application/service"
	"github.com/sangkips/gymcore-api/internal/commission"
	"github.com/sangkips/gymcore-api/internal/presentation/http/dto/response"
	"github.com/sangkips/gymcore-api/internal/presentation/http/middleware"
	"github.com/sangkips/gymcore-api/pkg/apperror"
	"github.com/sangkips/gymcore-api/pkg/validation"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get(middleware.ContextUserID)
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetActor builds the service caller from the claims set by the auth middleware
func GetActor(c *gin.Context) service.Actor {
	actor := service.Actor{Role: c.GetString(middleware.ContextUserRole)}
	if id := GetUserID(c); id != nil {
		actor.UserID = *id
	}
	if v, ok := c.Get(middleware.ContextUserStaffID); ok {
		if staffID, ok := v.(uuid.UUID); ok {
			actor.StaffID = &staffID
		}
	}
	if v, ok := c.Get(middleware.ContextUserPermissions); ok {
		actor.Permissions, _ = v.([]string)
	}
	return actor
}

// bindJSON decodes and validates the request body. On failure the error
// response has already been written.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return false
	}
	if err := validation.Struct(req); err != nil {
		response.ValidationError(c, apperror.GetAppError(err))
		return false
	}
	return true
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.BadRequest(c, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

func optionalUUID(field string, raw *string) (*uuid.UUID, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	id, err := uuid.Parse(strings.TrimSpace(*raw))
	if err != nil {
		return nil, apperror.NewFieldError(field, "must be a valid UUID")
	}
	return &id, nil
}

// optionalDate parses a calendar date at midnight in loc
func optionalDate(field, raw string, loc *time.Location) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(commission.DateLayout, raw, loc)
	if err != nil {
		return nil, apperror.NewFieldError(field, "must be a date in the form YYYY-MM-DD")
	}
	return &t, nil
}
