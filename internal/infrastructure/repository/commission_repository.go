package repository

import (
	"context"

	"github.com/sangkips/gymcore-api/internal/domain/entity"
	domainRepo "github.com/sangkips/gymcore-api/internal/domain/repository"
	"gorm.io/gorm"
)

type commissionRepository struct {
	db *gorm.DB
}

// NewCommissionRepository creates a new commission ledger repository
func NewCommissionRepository(db *gorm.DB) domainRepo.CommissionRepository {
	return &commissionRepository{db: db}
}

func (r *commissionRepository) Create(ctx context.Context, commission *entity.Commission) error {
	return r.db.WithContext(ctx).Omit("Staff").Create(commission).Error
}

func (r *commissionRepository) List(ctx context.Context, filter domainRepo.CommissionFilter) ([]entity.Commission, error) {
	var commissions []entity.Commission

	// deleted staff keep their name on historical entries
	query := r.db.WithContext(ctx).Preload("Staff", func(db *gorm.DB) *gorm.DB {
		return db.Unscoped()
	})
	if filter.Type != nil {
		query = query.Where("type = ?", *filter.Type)
	}
	if filter.StaffID != nil {
		query = query.Where("staff_id = ?", *filter.StaffID)
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at <= ?", *filter.To)
	}

	err := query.Order("created_at DESC").Find(&commissions).Error
	return commissions, err
}
