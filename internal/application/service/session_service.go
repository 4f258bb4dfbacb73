package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/gymcore-api/internal/commission"
	"github.com/sangkips/gymcore-api/internal/domain/entity"
	"github.com/sangkips/gymcore-api/internal/domain/enum"
	"github.com/sangkips/gymcore-api/internal/domain/repository"
	"github.com/sangkips/gymcore-api/pkg/apperror"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// SessionService sells and tracks PT, nutrition and physiotherapy session blocks
type SessionService struct {
	sessionRepo repository.SessionRepository
	staffRepo   repository.StaffRepository
	settings    *SettingsService
	now         func() time.Time
}

// NewSessionService creates a new session service
func NewSessionService(sessionRepo repository.SessionRepository, staffRepo repository.StaffRepository, settings *SettingsService) *SessionService {
	return &SessionService{
		sessionRepo: sessionRepo,
		staffRepo:   staffRepo,
		settings:    settings,
		now:         time.Now,
	}
}

// CreateSessionInput represents the input for selling a session block
type CreateSessionInput struct {
	Number            int
	ClientName        string
	Phone             string
	MemberID          *uuid.UUID
	SessionsPurchased int
	PricePerSession   decimal.Decimal
	StaffName         string
	StartDate         *time.Time
	ExpiryDate        *time.Time
	PaymentMethod     string
	CreatedByID       *uuid.UUID
}

// SaleResult is everything written when a block is sold
type SaleResult struct {
	Session    *entity.ServiceSession `json:"session"`
	Receipt    *entity.Receipt        `json:"receipt"`
	Commission *entity.Commission     `json:"commission,omitempty"`
}

// CreateSession sells a block of sessions. It writes the block, a receipt of the
// domain's sale type and, when the staff member exists, a pt_payment ledger entry
// priced at the tier rate of the payment.
func (s *SessionService) CreateSession(ctx context.Context, domain enum.ServiceDomain, input *CreateSessionInput) (*SaleResult, error) {
	if !domain.IsValid() {
		return nil, apperror.NewBadRequestError("unknown service domain")
	}
	if err := validateSale(input); err != nil {
		return nil, err
	}

	existing, err := s.sessionRepo.GetByNumber(ctx, domain, input.Number)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperror.NewConflictError(fmt.Sprintf("%s number %d already exists", domain.StaffTitle(), input.Number))
	}

	staffName := strings.TrimSpace(input.StaffName)
	session := &entity.ServiceSession{
		Domain:            domain,
		Number:            input.Number,
		ClientName:        strings.TrimSpace(input.ClientName),
		Phone:             strings.TrimSpace(input.Phone),
		MemberID:          input.MemberID,
		SessionsPurchased: input.SessionsPurchased,
		SessionsRemaining: input.SessionsPurchased,
		StaffName:         staffName,
		PricePerSession:   input.PricePerSession,
		StartDate:         input.StartDate,
		ExpiryDate:        input.ExpiryDate,
	}
	total := session.TotalPrice()

	details, err := saleItemDetails(domain, session, total)
	if err != nil {
		return nil, err
	}
	receipt := &entity.Receipt{
		Type:          domain.SaleReceiptType(),
		RawType:       domain.SaleReceiptType().String(),
		Domain:        domain,
		Amount:        total,
		PaymentMethod: paymentMethodOrCash(input.PaymentMethod),
		ItemDetails:   details,
		MemberID:      input.MemberID,
		CreatedByID:   input.CreatedByID,
	}

	ledger, err := s.paymentCommission(ctx, domain, session, total)
	if err != nil {
		return nil, err
	}

	if err := s.sessionRepo.CreateSale(ctx, session, receipt, ledger); err != nil {
		return nil, err
	}
	return &SaleResult{Session: session, Receipt: receipt, Commission: ledger}, nil
}

func validateSale(input *CreateSessionInput) error {
	var fields []apperror.FieldError
	if input.Number <= 0 {
		fields = append(fields, apperror.FieldError{Field: "number", Message: "must be greater than 0"})
	}
	if strings.TrimSpace(input.ClientName) == "" {
		fields = append(fields, apperror.FieldError{Field: "client_name", Message: "is required"})
	}
	if strings.TrimSpace(input.StaffName) == "" {
		fields = append(fields, apperror.FieldError{Field: "staff_name", Message: "is required"})
	}
	if input.SessionsPurchased <= 0 {
		fields = append(fields, apperror.FieldError{Field: "sessions_purchased", Message: "must be greater than 0"})
	}
	if input.PricePerSession.IsNegative() {
		fields = append(fields, apperror.FieldError{Field: "price_per_session", Message: "cannot be negative"})
	}
	if input.StartDate != nil && input.ExpiryDate != nil && !input.ExpiryDate.After(*input.StartDate) {
		fields = append(fields, apperror.FieldError{Field: "expiry_date", Message: "must be after the start date"})
	}
	if len(fields) > 0 {
		return apperror.NewValidationError(fields)
	}
	return nil
}

func saleItemDetails(domain enum.ServiceDomain, session *entity.ServiceSession, total decimal.Decimal) (string, error) {
	details := map[string]interface{}{
		"number":            session.Number,
		"clientName":        session.ClientName,
		"sessionsPurchased": session.SessionsPurchased,
		"pricePerSession":   session.PricePerSession,
		"totalAmount":       total,
		"phone":             session.Phone,
	}
	details[domain.StaffNameKey()] = session.StaffName
	if domain == enum.DomainPT {
		details["ptNumber"] = session.Number
	}
	if session.StartDate != nil {
		details["startDate"] = session.StartDate.Format(commission.DateLayout)
	}
	if session.ExpiryDate != nil {
		details["expiryDate"] = session.ExpiryDate.Format(commission.DateLayout)
	}
	if session.StartDate != nil && session.ExpiryDate != nil {
		details["subscriptionDays"] = int(session.ExpiryDate.Sub(*session.StartDate).Hours() / 24)
	}

	b, err := json.Marshal(details)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s *SessionService) paymentCommission(ctx context.Context, domain enum.ServiceDomain, session *entity.ServiceSession, total decimal.Decimal) (*entity.Commission, error) {
	if !total.IsPositive() {
		return nil, nil
	}
	staff, err := s.staffRepo.GetByName(ctx, session.StaffName)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		log.WithFields(log.Fields{
			"domain": domain,
			"staff":  session.StaffName,
			"number": session.Number,
		}).Info("no staff record for session block, payment commission skipped")
		return nil, nil
	}

	number := session.Number
	payment := s.settings.Tiers(ctx).PaymentCommission(total, &number)
	notes := commission.EncodePaymentNotes(payment)

	return &entity.Commission{
		StaffID:     staff.ID,
		Amount:      payment.Commission,
		Type:        enum.CommissionPTPayment,
		Description: fmt.Sprintf("%s block #%d for %s - amount %s at %s%%",
			domain, session.Number, session.ClientName, total.StringFixed(2), payment.Percentage),
		Notes: &notes,
	}, nil
}

// ListSessions returns the blocks of a domain, newest number first
func (s *SessionService) ListSessions(ctx context.Context, domain enum.ServiceDomain, filter repository.SessionFilter) ([]entity.ServiceSession, error) {
	return s.sessionRepo.List(ctx, domain, filter)
}

// SessionDetail is a block with its attendance history
type SessionDetail struct {
	Session    *entity.ServiceSession     `json:"session"`
	Attendance []entity.SessionAttendance `json:"attendance"`
}

// GetSession returns a block by number with its attendance history
func (s *SessionService) GetSession(ctx context.Context, domain enum.ServiceDomain, number int) (*SessionDetail, error) {
	session, err := s.findByNumber(ctx, domain, number)
	if err != nil {
		return nil, err
	}
	attendance, err := s.sessionRepo.ListAttendance(ctx, session.ID)
	if err != nil {
		return nil, err
	}
	if attendance == nil {
		attendance = []entity.SessionAttendance{}
	}
	return &SessionDetail{Session: session, Attendance: attendance}, nil
}

// RecordAttendance uses one session of a block
func (s *SessionService) RecordAttendance(ctx context.Context, actor Actor, domain enum.ServiceDomain, number int, notes *string) (*entity.ServiceSession, error) {
	session, err := s.findByNumber(ctx, domain, number)
	if err != nil {
		return nil, err
	}
	if session.SessionsRemaining <= 0 {
		return nil, apperror.NewBadRequestError("No sessions remaining")
	}

	userID := actor.UserID
	attendance := &entity.SessionAttendance{
		AttendedAt:   s.now(),
		RecordedByID: &userID,
		Notes:        notes,
	}
	updated, err := s.sessionRepo.RecordAttendance(ctx, session.ID, attendance)
	if errors.Is(err, repository.ErrNoSessionsRemaining) {
		return nil, apperror.NewBadRequestError("No sessions remaining")
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *SessionService) findByNumber(ctx context.Context, domain enum.ServiceDomain, number int) (*entity.ServiceSession, error) {
	if !domain.IsValid() {
		return nil, apperror.NewBadRequestError("unknown service domain")
	}
	session, err := s.sessionRepo.GetByNumber(ctx, domain, number)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, apperror.NewNotFoundError("Session block")
	}
	return session, nil
}
