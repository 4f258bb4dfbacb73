package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/gymcore-api/internal/domain/entity"
	"github.com/sangkips/gymcore-api/internal/domain/enum"
	"github.com/sangkips/gymcore-api/internal/domain/repository"
	"github.com/sangkips/gymcore-api/pkg/apperror"
	"github.com/sangkips/gymcore-api/pkg/pagination"
	"github.com/sangkips/gymcore-api/pkg/utils"
)

// UserService handles back office account management
type UserService struct {
	userRepo       repository.UserRepository
	roleRepo       repository.RoleRepository
	permissionRepo repository.PermissionRepository
	staffRepo      repository.StaffRepository
}

// NewUserService creates a new user service
func NewUserService(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	permissionRepo repository.PermissionRepository,
	staffRepo repository.StaffRepository,
) *UserService {
	return &UserService{
		userRepo:       userRepo,
		roleRepo:       roleRepo,
		permissionRepo: permissionRepo,
		staffRepo:      staffRepo,
	}
}

// ListUsersInput represents the input for listing users
type ListUsersInput struct {
	Page    int
	PerPage int
	Search  string
}

// ListUsers returns a page of users with their roles
func (s *UserService) ListUsers(ctx context.Context, input *ListUsersInput) (*pagination.PaginatedResult[entity.User], error) {
	params := &pagination.PaginationParams{Page: input.Page, PerPage: input.PerPage}
	params.Validate()

	users, total, err := s.userRepo.List(ctx, params, strings.TrimSpace(input.Search))
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(users, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// GetUser returns a user by ID with roles and permissions
func (s *UserService) GetUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.GetWithRoles(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}
	return user, nil
}

// CreateUserInput represents the input for creating an account
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	StaffID  *uuid.UUID
}

// CreateUser creates an account with a single role. COACH accounts must be linked to a staff record.
func (s *UserService) CreateUser(ctx context.Context, input *CreateUserInput) (*entity.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError("Email already registered")
	}

	role, err := s.roleRepo.GetByName(ctx, input.Role)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, apperror.NewFieldError("role", "unknown role")
	}

	if err := s.checkStaffLink(ctx, input.Role, input.StaffID); err != nil {
		return nil, err
	}

	hashedPassword, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Name:     strings.TrimSpace(input.Name),
		Email:    email,
		Password: hashedPassword,
		IsActive: true,
		StaffID:  input.StaffID,
		Roles:    []entity.Role{*role},
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return s.userRepo.GetWithRoles(ctx, user.ID)
}

// UpdateUserInput represents the input for changing an account's role or status
type UpdateUserInput struct {
	UserID   uuid.UUID
	Role     *string
	StaffID  *uuid.UUID
	IsActive *bool
	Password *string
}

// UpdateUser changes the role, staff link, active flag or password of an account.
// An admin cannot demote or disable their own account.
func (s *UserService) UpdateUser(ctx context.Context, actor Actor, input *UpdateUserInput) (*entity.User, error) {
	user, err := s.userRepo.GetWithRoles(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NewNotFoundError("User")
	}

	self := user.ID == actor.UserID
	if self && input.Role != nil && *input.Role != enum.RoleAdmin && user.IsAdmin() {
		return nil, apperror.NewBadRequestError("You cannot remove your own admin role")
	}
	if self && input.IsActive != nil && !*input.IsActive {
		return nil, apperror.NewBadRequestError("You cannot disable your own account")
	}

	roleName := user.PrimaryRole()
	if input.Role != nil {
		roleName = *input.Role
	}
	staffID := user.StaffID
	if input.StaffID != nil {
		staffID = input.StaffID
	}
	if err := s.checkStaffLink(ctx, roleName, staffID); err != nil {
		return nil, err
	}

	if input.Role != nil {
		role, err := s.roleRepo.GetByName(ctx, *input.Role)
		if err != nil {
			return nil, err
		}
		if role == nil {
			return nil, apperror.NewFieldError("role", "unknown role")
		}
		if err := s.userRepo.SetRoles(ctx, user.ID, []uint{role.ID}); err != nil {
			return nil, err
		}
	}

	user.StaffID = staffID
	if input.IsActive != nil {
		user.IsActive = *input.IsActive
	}
	if input.Password != nil {
		hashedPassword, err := utils.HashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hashedPassword
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return s.userRepo.GetWithRoles(ctx, user.ID)
}

// DeleteUser soft deletes a user. Admins cannot delete themselves.
func (s *UserService) DeleteUser(ctx context.Context, actor Actor, userID uuid.UUID) error {
	if userID == actor.UserID {
		return apperror.NewBadRequestError("You cannot delete your own account")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return apperror.NewNotFoundError("User")
	}

	return s.userRepo.Delete(ctx, userID)
}

// ListRoles returns all roles with their permissions
func (s *UserService) ListRoles(ctx context.Context) ([]entity.Role, error) {
	return s.roleRepo.List(ctx)
}

// ListPermissions returns all available permissions
func (s *UserService) ListPermissions(ctx context.Context) ([]entity.Permission, error) {
	return s.permissionRepo.List(ctx)
}

// UpdateRolePermissions replaces the permission set of a role. ADMIN always holds every permission.
func (s *UserService) UpdateRolePermissions(ctx context.Context, roleName string, permissions []string) (*entity.Role, error) {
	if roleName == enum.RoleAdmin {
		return nil, apperror.NewBadRequestError("The ADMIN role always holds every permission")
	}

	role, err := s.roleRepo.GetByName(ctx, roleName)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, apperror.NewNotFoundError("Role")
	}

	found, err := s.permissionRepo.GetByNames(ctx, permissions)
	if err != nil {
		return nil, err
	}
	known := make(map[string]uint, len(found))
	for _, p := range found {
		known[p.Name] = p.ID
	}

	ids := make([]uint, 0, len(permissions))
	var unknown []apperror.FieldError
	for _, name := range permissions {
		id, ok := known[name]
		if !ok {
			unknown = append(unknown, apperror.FieldError{Field: "permissions", Message: "unknown permission " + name})
			continue
		}
		ids = append(ids, id)
	}
	if len(unknown) > 0 {
		return nil, apperror.NewValidationError(unknown)
	}

	if err := s.roleRepo.SyncPermissions(ctx, role.ID, ids); err != nil {
		return nil, err
	}
	return s.roleRepo.GetWithPermissions(ctx, role.ID)
}

func (s *UserService) checkStaffLink(ctx context.Context, role string, staffID *uuid.UUID) error {
	if staffID == nil {
		if role == enum.RoleCoach {
			return apperror.NewFieldError("staff_id", "is required for COACH accounts")
		}
		return nil
	}
	staff, err := s.staffRepo.GetByID(ctx, *staffID)
	if err != nil {
		return err
	}
	if staff == nil {
		return apperror.NewFieldError("staff_id", "staff member not found")
	}
	return nil
}
