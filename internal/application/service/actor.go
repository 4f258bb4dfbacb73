package service

import (
	"github.com/google/uuid"
	"github.com/sangkips/gymcore-api/internal/domain/enum"
)

// Actor is the authenticated caller of a service operation
type Actor struct {
	UserID      uuid.UUID
	Role        string
	StaffID     *uuid.UUID
	Permissions []string
}

// IsAdmin reports whether the caller holds the ADMIN role
func (a Actor) IsAdmin() bool {
	return a.Role == enum.RoleAdmin
}

// IsCoach reports whether the caller is restricted to their own staff record
func (a Actor) IsCoach() bool {
	return a.Role == enum.RoleCoach
}

// Can reports whether the caller holds permission. Admins hold every permission.
func (a Actor) Can(permission string) bool {
	if a.IsAdmin() {
		return true
	}
	for _, p := range a.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}
