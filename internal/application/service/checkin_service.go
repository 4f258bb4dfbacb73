package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/gymcore-api/internal/domain/entity"
	"github.com/sangkips/gymcore-api/internal/domain/repository"
	"github.com/sangkips/gymcore-api/pkg/apperror"
	log "github.com/sirupsen/logrus"
)

// CheckInService records member visits
type CheckInService struct {
	memberRepo  repository.MemberRepository
	checkInRepo repository.CheckInRepository
	duration    time.Duration
	now         func() time.Time
}

// NewCheckInService creates a new check-in service. duration is how long a visit
// stays open before it is closed automatically.
func NewCheckInService(memberRepo repository.MemberRepository, checkInRepo repository.CheckInRepository, duration time.Duration) *CheckInService {
	if duration <= 0 {
		duration = 2 * time.Hour
	}
	return &CheckInService{
		memberRepo:  memberRepo,
		checkInRepo: checkInRepo,
		duration:    duration,
		now:         time.Now,
	}
}

// CheckInInput identifies the member by scanned QR code or by ID
type CheckInInput struct {
	QRCode   string
	MemberID *uuid.UUID
}

// CheckInResult is returned by CheckIn
type CheckInResult struct {
	CheckIn          *entity.MemberCheckIn `json:"check_in"`
	Member           *entity.Member        `json:"member"`
	AlreadyCheckedIn bool                  `json:"already_checked_in"`
}

// CheckIn opens a visit for the member. A member who is still inside gets the open
// visit back with AlreadyCheckedIn set instead of a second one.
func (s *CheckInService) CheckIn(ctx context.Context, input *CheckInInput) (*CheckInResult, error) {
	member, err := s.findMember(ctx, input)
	if err != nil {
		return nil, err
	}
	if !member.IsActive {
		return nil, apperror.NewBadRequestError("Member is not active")
	}

	now := s.now()
	open, err := s.checkInRepo.GetOpenByMember(ctx, member.ID, now)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return &CheckInResult{CheckIn: open, Member: member, AlreadyCheckedIn: true}, nil
	}

	checkIn := &entity.MemberCheckIn{
		MemberID:         member.ID,
		CheckInTime:      now,
		ExpectedCheckOut: now.Add(s.duration),
		Method:           entity.CheckInMethodScan,
	}
	if err := s.checkInRepo.Create(ctx, checkIn); err != nil {
		return nil, err
	}
	return &CheckInResult{CheckIn: checkIn, Member: member}, nil
}

// Current lists the members inside the gym now
func (s *CheckInService) Current(ctx context.Context) ([]entity.MemberCheckIn, error) {
	return s.checkInRepo.ListOpen(ctx, s.now())
}

// AutoCheckout closes every visit whose expected checkout has passed
func (s *CheckInService) AutoCheckout(ctx context.Context) (int64, error) {
	closed, err := s.checkInRepo.CloseOverdue(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if closed > 0 {
		log.WithField("closed", closed).Info("overdue check-ins closed")
	}
	return closed, nil
}

func (s *CheckInService) findMember(ctx context.Context, input *CheckInInput) (*entity.Member, error) {
	var (
		member *entity.Member
		err    error
	)
	switch {
	case strings.TrimSpace(input.QRCode) != "":
		member, err = s.memberRepo.GetByQRCode(ctx, strings.TrimSpace(input.QRCode))
	case input.MemberID != nil:
		member, err = s.memberRepo.GetByID(ctx, *input.MemberID)
	default:
		return nil, apperror.NewBadRequestError("qr_code or member_id is required")
	}
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, apperror.NewNotFoundError("Member")
	}
	return member, nil
}
