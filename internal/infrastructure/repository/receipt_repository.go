package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/gymcore-api/internal/domain/entity"
	domainRepo "github.com/sangkips/gymcore-api/internal/domain/repository"
	"gorm.io/gorm"
)

type receiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository creates a new receipt repository
func NewReceiptRepository(db *gorm.DB) domainRepo.ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) Create(ctx context.Context, receipt *entity.Receipt) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return createReceipt(tx, receipt)
	})
}

func createReceipt(tx *gorm.DB, receipt *entity.Receipt) error {
	next, err := nextNumber(tx, receiptNumberLock, "receipts", "receipt_number")
	if err != nil {
		return err
	}
	receipt.ReceiptNumber = next
	return tx.Create(receipt).Error
}

func (r *receiptRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	var receipt entity.Receipt
	err := r.db.WithContext(ctx).First(&receipt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &receipt, err
}

// List returns every match when no pagination is given
func (r *receiptRepository) List(ctx context.Context, filter domainRepo.ReceiptFilter) ([]entity.Receipt, int64, error) {
	var receipts []entity.Receipt
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Receipt{})

	if filter.Domain != nil {
		query = query.Where("domain = ?", *filter.Domain)
	}
	if len(filter.Types) > 0 {
		query = query.Where("type IN ?", filter.Types)
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at <= ?", *filter.To)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC")
	if filter.Pagination != nil {
		filter.Pagination.Validate()
		query = query.Offset(filter.Pagination.Offset()).Limit(filter.Pagination.PerPage)
	}

	err := query.Find(&receipts).Error
	return receipts, total, err
}
