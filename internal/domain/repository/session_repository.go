package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/gymcore-api/internal/domain/entity"
	"github.com/sangkips/gymcore-api/internal/domain/enum"
)

// SessionFilter narrows session block listings
type SessionFilter struct {
	StaffName   string
	Search      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
}

// SessionRepository defines the interface for PT, nutrition and physiotherapy session blocks
type SessionRepository interface {
	// CreateSale stores a new block together with its receipt and, when not nil, the
	// staff ledger entry. Either everything is written or nothing is.
	CreateSale(ctx context.Context, session *entity.ServiceSession, receipt *entity.Receipt, commission *entity.Commission) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ServiceSession, error)
	GetByNumber(ctx context.Context, domain enum.ServiceDomain, number int) (*entity.ServiceSession, error)
	List(ctx context.Context, domain enum.ServiceDomain, filter SessionFilter) ([]entity.ServiceSession, error)
	// RecordAttendance decrements the remaining count of the block and stores the attendance.
	// It returns ErrNoSessionsRemaining when the block is used up.
	RecordAttendance(ctx context.Context, sessionID uuid.UUID, attendance *entity.SessionAttendance) (*entity.ServiceSession, error)
	ListAttendance(ctx context.Context, sessionID uuid.UUID) ([]entity.SessionAttendance, error)
}
