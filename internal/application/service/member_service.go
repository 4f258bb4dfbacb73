package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/gymcore-api/internal/domain/entity"
	"github.com/sangkips/gymcore-api/internal/domain/enum"
	"github.com/sangkips/gymcore-api/internal/domain/repository"
	"github.com/sangkips/gymcore-api/pkg/apperror"
	"github.com/sangkips/gymcore-api/pkg/pagination"
	"github.com/sangkips/gymcore-api/pkg/qrcode"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

const qrGenerateAttempts = 5

// MemberService manages gym members and their QR codes
type MemberService struct {
	memberRepo  repository.MemberRepository
	staffRepo   repository.StaffRepository
	signupBonus decimal.Decimal
}

// NewMemberService creates a new member service. signupBonus is credited to the
// staff member who registered each new member.
func NewMemberService(memberRepo repository.MemberRepository, staffRepo repository.StaffRepository, signupBonus decimal.Decimal) *MemberService {
	return &MemberService{
		memberRepo:  memberRepo,
		staffRepo:   staffRepo,
		signupBonus: signupBonus,
	}
}

// CreateMemberInput represents the input for registering a member
type CreateMemberInput struct {
	MemberNumber      int
	Name              string
	Phone             string
	SubscriptionPrice decimal.Decimal
	RemainingAmount   decimal.Decimal
	StartDate         *time.Time
	ExpiryDate        *time.Time
	SignupStaffID     *uuid.UUID
	Notes             *string
}

// CreateMember registers a member with a fresh QR code. When a signup staff member
// is given, a member_signup ledger entry is written in the same transaction.
func (s *MemberService) CreateMember(ctx context.Context, input *CreateMemberInput) (*entity.Member, error) {
	if input.StartDate != nil && input.ExpiryDate != nil && !input.ExpiryDate.After(*input.StartDate) {
		return nil, apperror.NewFieldError("expiry_date", "must be after the start date")
	}
	if input.RemainingAmount.GreaterThan(input.SubscriptionPrice) {
		return nil, apperror.NewFieldError("remaining_amount", "cannot exceed the subscription price")
	}

	code, err := s.uniqueQRCode(ctx)
	if err != nil {
		return nil, err
	}

	member := &entity.Member{
		MemberNumber:      input.MemberNumber,
		Name:              strings.TrimSpace(input.Name),
		Phone:             strings.TrimSpace(input.Phone),
		IsActive:          true,
		SubscriptionPrice: input.SubscriptionPrice,
		RemainingAmount:   input.RemainingAmount,
		StartDate:         input.StartDate,
		ExpiryDate:        input.ExpiryDate,
		QRCode:            code,
		SignupStaffID:     input.SignupStaffID,
		Notes:             input.Notes,
	}

	var signup *entity.Commission
	if input.SignupStaffID != nil {
		staff, err := s.staffRepo.GetByID(ctx, *input.SignupStaffID)
		if err != nil {
			return nil, err
		}
		if staff == nil {
			return nil, apperror.NewFieldError("signup_staff_id", "staff member not found")
		}
		signup = &entity.Commission{
			StaffID:     staff.ID,
			Amount:      s.signupBonus,
			Type:        enum.CommissionMemberSignup,
			Description: fmt.Sprintf("Signup bonus for member %s", member.Name),
		}
	}

	if input.MemberNumber > 0 {
		if err := s.ensureNumberFree(ctx, input.MemberNumber); err != nil {
			return nil, err
		}
	}

	if err := s.memberRepo.Create(ctx, member, signup); err != nil {
		return nil, err
	}
	if signup != nil {
		log.WithFields(log.Fields{
			"member_id": member.ID,
			"staff_id":  signup.StaffID,
			"amount":    signup.Amount.String(),
		}).Info("signup commission recorded")
	}
	return member, nil
}

// GetMember returns a member by ID
func (s *MemberService) GetMember(ctx context.Context, id uuid.UUID) (*entity.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, apperror.NewNotFoundError("Member")
	}
	return member, nil
}

// ListMembers returns a page of members, newest number first
func (s *MemberService) ListMembers(ctx context.Context, params *pagination.PaginationParams, search string) (*pagination.PaginatedResult[entity.Member], error) {
	params.Validate()
	members, total, err := s.memberRepo.List(ctx, params, strings.TrimSpace(search))
	if err != nil {
		return nil, err
	}
	return pagination.NewPaginatedResult(members, pagination.NewPagination(params.Page, params.PerPage, total)), nil
}

// SetActive enables or disables check-in for a member
func (s *MemberService) SetActive(ctx context.Context, id uuid.UUID, active bool) (*entity.Member, error) {
	member, err := s.GetMember(ctx, id)
	if err != nil {
		return nil, err
	}
	member.IsActive = active
	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// RegenerateQRCode replaces a member's QR code, invalidating printed cards
func (s *MemberService) RegenerateQRCode(ctx context.Context, id uuid.UUID) (*entity.Member, error) {
	member, err := s.GetMember(ctx, id)
	if err != nil {
		return nil, err
	}
	code, err := s.uniqueQRCode(ctx)
	if err != nil {
		return nil, err
	}
	member.QRCode = code
	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, err
	}
	return member, nil
}

// QRCodePNG renders the member's QR code as a PNG image
func (s *MemberService) QRCodePNG(ctx context.Context, id uuid.UUID, size int) ([]byte, error) {
	member, err := s.GetMember(ctx, id)
	if err != nil {
		return nil, err
	}
	if size <= 0 || size > 1024 {
		size = qrcode.DefaultSize
	}
	return qrcode.EncodePNG(member.QRCode, size)
}

func (s *MemberService) uniqueQRCode(ctx context.Context) (string, error) {
	for i := 0; i < qrGenerateAttempts; i++ {
		code, err := qrcode.Generate()
		if err != nil {
			return "", err
		}
		existing, err := s.memberRepo.GetByQRCode(ctx, code)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique QR code after %d attempts", qrGenerateAttempts)
}

func (s *MemberService) ensureNumberFree(ctx context.Context, number int) error {
	existing, err := s.memberRepo.GetByNumber(ctx, number)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperror.NewConflictError(fmt.Sprintf("Member number %d is already in use", number))
	}
	return nil
}
