package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/gymcore-api/internal/domain/entity"
	domainRepo "github.com/sangkips/gymcore-api/internal/domain/repository"
	"github.com/sangkips/gymcore-api/pkg/pagination"
	"gorm.io/gorm"
)

type memberRepository struct {
	db *gorm.DB
}

// NewMemberRepository creates a new member repository
func NewMemberRepository(db *gorm.DB) domainRepo.MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) Create(ctx context.Context, member *entity.Member, signup *entity.Commission) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if member.MemberNumber == 0 {
			next, err := nextNumber(tx, memberNumberLock, "members", "member_number")
			if err != nil {
				return err
			}
			member.MemberNumber = next
		}
		if err := tx.Create(member).Error; err != nil {
			return err
		}
		if signup != nil {
			return tx.Omit("Staff").Create(signup).Error
		}
		return nil
	})
}

func (r *memberRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Member, error) {
	var member entity.Member
	err := r.db.WithContext(ctx).First(&member, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &member, err
}

func (r *memberRepository) GetByQRCode(ctx context.Context, code string) (*entity.Member, error) {
	var member entity.Member
	err := r.db.WithContext(ctx).First(&member, "qr_code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &member, err
}

func (r *memberRepository) GetByNumber(ctx context.Context, number int) (*entity.Member, error) {
	var member entity.Member
	err := r.db.WithContext(ctx).First(&member, "member_number = ?", number).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &member, err
}

func (r *memberRepository) Update(ctx context.Context, member *entity.Member) error {
	return r.db.WithContext(ctx).Save(member).Error
}

func (r *memberRepository) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Member, int64, error) {
	var members []entity.Member
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Member{})
	if search != "" {
		query = query.Where("name ILIKE ? OR phone ILIKE ? OR CAST(member_number AS TEXT) = ?",
			"%"+search+"%", "%"+search+"%", search)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Validate()
	err := query.Offset(params.Offset()).Limit(params.PerPage).
		Order("member_number DESC").
		Find(&members).Error

	return members, total, err
}

type checkInRepository struct {
	db *gorm.DB
}

// NewCheckInRepository creates a new check-in repository
func NewCheckInRepository(db *gorm.DB) domainRepo.CheckInRepository {
	return &checkInRepository{db: db}
}

func (r *checkInRepository) Create(ctx context.Context, checkIn *entity.MemberCheckIn) error {
	return r.db.WithContext(ctx).Omit("Member").Create(checkIn).Error
}

func (r *checkInRepository) GetOpenByMember(ctx context.Context, memberID uuid.UUID, now time.Time) (*entity.MemberCheckIn, error) {
	var checkIn entity.MemberCheckIn
	err := r.db.WithContext(ctx).
		Where("member_id = ? AND check_out_time IS NULL AND expected_check_out > ?", memberID, now).
		Order("check_in_time DESC").
		First(&checkIn).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &checkIn, err
}

func (r *checkInRepository) ListOpen(ctx context.Context, now time.Time) ([]entity.MemberCheckIn, error) {
	var checkIns []entity.MemberCheckIn
	err := r.db.WithContext(ctx).
		Preload("Member").
		Where("check_out_time IS NULL AND expected_check_out > ?", now).
		Order("check_in_time DESC").
		Find(&checkIns).Error
	return checkIns, err
}

func (r *checkInRepository) CloseOverdue(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&entity.MemberCheckIn{}).
		Where("check_out_time IS NULL AND expected_check_out <= ?", now).
		Update("check_out_time", gorm.Expr("expected_check_out"))
	return res.RowsAffected, res.Error
}
