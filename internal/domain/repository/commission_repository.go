package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/gymcore-api/internal/domain/entity"
	"github.com/sangkips/gymcore-api/internal/domain/enum"
)

// ErrNoSessionsRemaining is returned when attendance is recorded against a used up block
var ErrNoSessionsRemaining = errors.New("no sessions remaining")

// CommissionFilter contains filtering parameters for ledger queries.
// From and To are inclusive.
type CommissionFilter struct {
	Type    *enum.CommissionType
	StaffID *uuid.UUID
	From    *time.Time
	To      *time.Time
}

// CommissionRepository defines the interface for the commission ledger
type CommissionRepository interface {
	Create(ctx context.Context, commission *entity.Commission) error
	// List returns entries newest first with the staff member loaded
	List(ctx context.Context, filter CommissionFilter) ([]entity.Commission, error)
}
