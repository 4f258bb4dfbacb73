package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/gymcore-api/internal/domain/entity"
	"github.com/sangkips/gymcore-api/internal/domain/enum"
	domainRepo "github.com/sangkips/gymcore-api/internal/domain/repository"
	"gorm.io/gorm"
)

type sessionRepository struct {
	db *gorm.DB
}

// NewSessionRepository creates a new service session repository
func NewSessionRepository(db *gorm.DB) domainRepo.SessionRepository {
	return &sessionRepository{db: db}
}

func (r *sessionRepository) CreateSale(ctx context.Context, session *entity.ServiceSession, receipt *entity.Receipt, commission *entity.Commission) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(session).Error; err != nil {
			return err
		}
		if err := createReceipt(tx, receipt); err != nil {
			return err
		}
		if commission != nil {
			return tx.Omit("Staff").Create(commission).Error
		}
		return nil
	})
}

func (r *sessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ServiceSession, error) {
	var session entity.ServiceSession
	err := r.db.WithContext(ctx).First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &session, err
}

func (r *sessionRepository) GetByNumber(ctx context.Context, domain enum.ServiceDomain, number int) (*entity.ServiceSession, error) {
	var session entity.ServiceSession
	err := r.db.WithContext(ctx).First(&session, "domain = ? AND number = ?", domain, number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &session, err
}

func (r *sessionRepository) List(ctx context.Context, domain enum.ServiceDomain, filter domainRepo.SessionFilter) ([]entity.ServiceSession, error) {
	var sessions []entity.ServiceSession

	query := r.db.WithContext(ctx).Where("domain = ?", domain)
	if name := strings.TrimSpace(filter.StaffName); name != "" {
		query = query.Where("LOWER(TRIM(staff_name)) = LOWER(?)", name)
	}
	if filter.Search != "" {
		query = query.Where("client_name ILIKE ? OR phone ILIKE ?", "%"+filter.Search+"%", "%"+filter.Search+"%")
	}
	if filter.CreatedFrom != nil {
		query = query.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		query = query.Where("created_at <= ?", *filter.CreatedTo)
	}

	err := query.Order("number DESC").Find(&sessions).Error
	return sessions, err
}

func (r *sessionRepository) RecordAttendance(ctx context.Context, sessionID uuid.UUID, attendance *entity.SessionAttendance) (*entity.ServiceSession, error) {
	var session entity.ServiceSession
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&entity.ServiceSession{}).
			Where("id = ? AND sessions_remaining > 0", sessionID).
			Update("sessions_remaining", gorm.Expr("sessions_remaining - 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domainRepo.ErrNoSessionsRemaining
		}

		attendance.SessionID = sessionID
		if err := tx.Create(attendance).Error; err != nil {
			return err
		}
		return tx.First(&session, "id = ?", sessionID).Error
	})
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *sessionRepository) ListAttendance(ctx context.Context, sessionID uuid.UUID) ([]entity.SessionAttendance, error) {
	var attendance []entity.SessionAttendance
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("attended_at DESC").
		Find(&attendance).Error
	return attendance, err
}
