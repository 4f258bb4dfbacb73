package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/gymcore-api/internal/domain/entity"
	"github.com/sangkips/gymcore-api/internal/domain/enum"
	"github.com/sangkips/gymcore-api/pkg/pagination"
)

// ReceiptFilter contains filtering parameters for receipt queries.
// From and To are inclusive.
type ReceiptFilter struct {
	Pagination *pagination.PaginationParams
	Domain     *enum.ServiceDomain
	Types      []enum.ReceiptType
	From       *time.Time
	To         *time.Time
}

// ReceiptRepository defines the interface for receipt data operations.
// Receipts are never updated or deleted.
type ReceiptRepository interface {
	// Create assigns the next receipt number and stores the receipt
	Create(ctx context.Context, receipt *entity.Receipt) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error)
	List(ctx context.Context, filter ReceiptFilter) ([]entity.Receipt, int64, error)
}
