package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/gymcore-api/internal/domain/entity"
	"github.com/sangkips/gymcore-api/pkg/pagination"
)

// MemberRepository defines the interface for member data operations
type MemberRepository interface {
	// Create stores the member and, when signup is not nil, the signup ledger entry in one transaction.
	// MemberNumber is assigned when zero.
	Create(ctx context.Context, member *entity.Member, signup *entity.Commission) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Member, error)
	GetByQRCode(ctx context.Context, code string) (*entity.Member, error)
	GetByNumber(ctx context.Context, number int) (*entity.Member, error)
	Update(ctx context.Context, member *entity.Member) error
	List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Member, int64, error)
}

// CheckInRepository defines the interface for member check-in records
type CheckInRepository interface {
	Create(ctx context.Context, checkIn *entity.MemberCheckIn) error
	// GetOpenByMember returns the member's check-in that is still open at now, if any
	GetOpenByMember(ctx context.Context, memberID uuid.UUID, now time.Time) (*entity.MemberCheckIn, error)
	// ListOpen returns every check-in still open at now, newest first, with the member loaded
	ListOpen(ctx context.Context, now time.Time) ([]entity.MemberCheckIn, error)
	// CloseOverdue sets the checkout time of every open check-in whose expected checkout has passed
	CloseOverdue(ctx context.Context, now time.Time) (int64, error)
}
