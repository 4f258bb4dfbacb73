package request

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// RefreshTokenRequest represents a token refresh request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// CreateUserRequest is sent by an admin creating a back office account
type CreateUserRequest struct {
	Name     string  `json:"name" validate:"required,min=2,max=255"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Role     string  `json:"role" validate:"required,oneof=ADMIN MANAGER STAFF COACH"`
	StaffID  *string `json:"staff_id" validate:"omitempty,uuid"`
}

// UpdateUserRequest changes the role, staff link, status or password of an account
type UpdateUserRequest struct {
	Role     *string `json:"role" validate:"omitempty,oneof=ADMIN MANAGER STAFF COACH"`
	StaffID  *string `json:"staff_id" validate:"omitempty,uuid"`
	IsActive *bool   `json:"is_active"`
	Password *string `json:"password" validate:"omitempty,min=8"`
}

// RolePermissionsRequest replaces the permissions of a role
type RolePermissionsRequest struct {
	Permissions []string `json:"permissions" validate:"required"`
}
