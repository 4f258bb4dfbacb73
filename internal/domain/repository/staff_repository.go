package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/gymcore-api/internal/domain/entity"
)

// StaffFilter narrows staff listings
type StaffFilter struct {
	Search     string
	ActiveOnly bool
}

// StaffRepository defines the interface for staff data operations
type StaffRepository interface {
	Create(ctx context.Context, staff *entity.Staff) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Staff, error)
	// GetByName matches the trimmed name exactly
	GetByName(ctx context.Context, name string) (*entity.Staff, error)
	Update(ctx context.Context, staff *entity.Staff) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter StaffFilter) ([]entity.Staff, error)
	Count(ctx context.Context) (int64, error)
}
