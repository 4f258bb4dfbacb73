package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/gymcore-api/internal/commission"
	"github.com/sangkips/gymcore-api/internal/domain/entity"
	"github.com/sangkips/gymcore-api/internal/domain/enum"
	"github.com/sangkips/gymcore-api/internal/domain/repository"
	"github.com/sangkips/gymcore-api/pkg/apperror"
	"github.com/sangkips/gymcore-api/pkg/email"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// Collaborator names reported when a calculation runs on partial data
const (
	SourceReceipts = "receipts"
	SourceSessions = "sessions"
	SourceSignups  = "member_signups"
	SourcePayments = "pt_payments"
)

// CommissionService computes staff payouts from receipts, session blocks and the ledger
type CommissionService struct {
	receiptRepo    repository.ReceiptRepository
	sessionRepo    repository.SessionRepository
	commissionRepo repository.CommissionRepository
	staffRepo      repository.StaffRepository
	staffService   *StaffService
	settings       *SettingsService
	mailer         *email.EmailService
	loc            *time.Location
}

// NewCommissionService creates a new commission service. Dates are read in loc.
func NewCommissionService(
	receiptRepo repository.ReceiptRepository,
	sessionRepo repository.SessionRepository,
	commissionRepo repository.CommissionRepository,
	staffRepo repository.StaffRepository,
	staffService *StaffService,
	settings *SettingsService,
	mailer *email.EmailService,
	loc *time.Location,
) *CommissionService {
	if loc == nil {
		loc = time.UTC
	}
	return &CommissionService{
		receiptRepo:    receiptRepo,
		sessionRepo:    sessionRepo,
		commissionRepo: commissionRepo,
		staffRepo:      staffRepo,
		staffService:   staffService,
		settings:       settings,
		mailer:         mailer,
		loc:            loc,
	}
}

// CalculateInput represents a commission calculation request
type CalculateInput struct {
	Domain       string
	Method       string
	StaffName    string
	StartDate    string
	EndDate      string
	CustomIncome *decimal.Decimal
	Percentage   *decimal.Decimal
}

// Calculation is a resolved payout with the data it was computed from
type Calculation struct {
	Domain    enum.ServiceDomain            `json:"domain"`
	StartDate string                        `json:"start_date"`
	EndDate   string                        `json:"end_date"`
	Result    commission.Result             `json:"result"`
	Revenue   *commission.RevenueAggregate  `json:"revenue,omitempty"`
	Sessions  *commission.SessionCommission `json:"sessions,omitempty"`
	Payments  []commission.PaymentLine      `json:"payments"`
	Anomalies []commission.Anomaly          `json:"anomalies"`
	Degraded  []string                      `json:"degraded"`
}

// Calculate resolves the commission of one staff member over a date range.
// COACH callers always get their own figures whatever name they send.
// A collaborator that fails to load counts as empty and is listed in Degraded.
func (s *CommissionService) Calculate(ctx context.Context, actor Actor, input *CalculateInput) (*Calculation, error) {
	domain, err := enum.ParseServiceDomain(input.Domain)
	if err != nil {
		return nil, apperror.NewFieldError("domain", err.Error())
	}
	w, err := commission.ParseWindow(input.StartDate, input.EndDate, s.loc)
	if err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}
	staffName, err := s.resolveStaffName(ctx, actor, input.StaffName)
	if err != nil {
		return nil, err
	}
	if staffName == "" {
		return nil, apperror.NewFieldError("staff_name", "is required")
	}
	method, err := s.resolveMethod(ctx, input.Method)
	if err != nil {
		return nil, err
	}
	if input.CustomIncome != nil && input.CustomIncome.IsNegative() {
		return nil, apperror.NewFieldError("custom_income", commission.ErrNegativeIncome.Error())
	}
	if input.Percentage != nil && !commission.ValidPercentage(*input.Percentage) {
		return nil, apperror.NewFieldError("percentage", commission.ErrInvalidPercentage.Error())
	}

	calc := &Calculation{
		Domain:    domain,
		StartDate: w.Start.Format(commission.DateLayout),
		EndDate:   w.End.Format(commission.DateLayout),
		Anomalies: []commission.Anomaly{},
		Degraded:  []string{},
	}
	tiers := s.settings.Tiers(ctx)
	req := commission.Request{
		Method:       method,
		StaffName:    staffName,
		Tiers:        tiers,
		CustomIncome: input.CustomIncome,
		Percentage:   input.Percentage,
	}

	switch method {
	case enum.MethodRevenue:
		if input.CustomIncome == nil {
			receipts := s.loadReceipts(ctx, calc, domain, w)
			signups := s.loadLedger(ctx, calc, enum.CommissionMemberSignup, w)
			agg := commission.AggregateRevenue(domain, staffName, w, receipts, signups)
			calc.Revenue = &agg
			calc.Anomalies = append(calc.Anomalies, agg.Anomalies...)
			req.Revenue = &agg
		}
	case enum.MethodSessions:
		sessions := s.loadSessions(ctx, calc, domain, repository.SessionFilter{StaffName: staffName})
		usage := commission.AggregateSessionUsage(staffName, w, sessions, tiers)
		calc.Anomalies = append(calc.Anomalies, usage.Anomalies...)
		if sc, ok := usage.For(staffName); ok {
			calc.Sessions = &sc
			req.Sessions = &sc
		}
	}

	payments := s.loadLedger(ctx, calc, enum.CommissionPTPayment, w)
	lines, anomalies := commission.PaymentLines(staffName, w, payments)
	calc.Payments = lines
	calc.Anomalies = append(calc.Anomalies, anomalies...)

	result, err := commission.Resolve(req)
	if err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}
	calc.Result = result

	if len(calc.Anomalies) > 0 {
		log.WithFields(log.Fields{
			"staff":     staffName,
			"domain":    domain,
			"anomalies": len(calc.Anomalies),
		}).Debug("records excluded from commission calculation")
	}
	return calc, nil
}

// SessionRanking returns the session mode payouts of a domain, highest commission first.
// An empty staffName ranks every staff member.
func (s *CommissionService) SessionRanking(ctx context.Context, actor Actor, domainName, staffName, start, end string) (*commission.SessionUsage, error) {
	domain, err := enum.ParseServiceDomain(domainName)
	if err != nil {
		return nil, apperror.NewFieldError("domain", err.Error())
	}
	w, err := commission.ParseWindow(start, end, s.loc)
	if err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}
	staffName, err = s.resolveStaffName(ctx, actor, staffName)
	if err != nil {
		return nil, err
	}

	calc := &Calculation{}
	sessions := s.loadSessions(ctx, calc, domain, repository.SessionFilter{StaffName: staffName})
	usage := commission.AggregateSessionUsage(staffName, w, sessions, s.settings.Tiers(ctx))
	return &usage, nil
}

// Earnings returns the sales statistics of every active trainer for blocks created in the range
func (s *CommissionService) Earnings(ctx context.Context, domainName, start, end string) ([]commission.EarningsStats, error) {
	domain, err := enum.ParseServiceDomain(domainName)
	if err != nil {
		return nil, apperror.NewFieldError("domain", err.Error())
	}
	w, err := commission.ParseWindow(start, end, s.loc)
	if err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}

	trainers, err := s.staffService.Trainers(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(trainers))
	for i := range trainers {
		names = append(names, trainers[i].Name)
	}

	calc := &Calculation{}
	sessions := s.loadSessions(ctx, calc, domain, repository.SessionFilter{
		CreatedFrom: &w.Start,
		CreatedTo:   &w.End,
	})
	return commission.TrainerEarnings(names, w, sessions), nil
}

// MemberSignups groups the signup bonuses of the range per staff member.
// COACH callers only see their own group.
func (s *CommissionService) MemberSignups(ctx context.Context, actor Actor, start, end string) ([]commission.SignupGroup, error) {
	if strings.TrimSpace(start) == "" || strings.TrimSpace(end) == "" {
		return nil, apperror.NewBadRequestError("startDate and endDate are required")
	}
	w, err := commission.ParseWindow(start, end, s.loc)
	if err != nil {
		return nil, apperror.NewBadRequestError(err.Error())
	}

	typ := enum.CommissionMemberSignup
	filter := repository.CommissionFilter{Type: &typ, From: &w.Start, To: &w.End}
	if actor.IsCoach() {
		if actor.StaffID == nil {
			return []commission.SignupGroup{}, nil
		}
		filter.StaffID = actor.StaffID
	}

	entries, err := s.commissionRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	return commission.GroupSignups(w, entries), nil
}

// ListLedger returns ledger entries newest first. COACH callers only see their own.
func (s *CommissionService) ListLedger(ctx context.Context, actor Actor, typeName string, staffID *uuid.UUID) ([]entity.Commission, error) {
	filter := repository.CommissionFilter{StaffID: staffID}
	if typeName != "" {
		typ := enum.CommissionType(typeName)
		if !typ.IsValid() {
			return nil, apperror.NewFieldError("type", "must be member_signup or pt_payment")
		}
		filter.Type = &typ
	}
	if actor.IsCoach() {
		if actor.StaffID == nil {
			return []entity.Commission{}, nil
		}
		filter.StaffID = actor.StaffID
	}

	entries, err := s.commissionRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []entity.Commission{}
	}
	return entries, nil
}

// SendStatement calculates a payout and mails it to the given address
func (s *CommissionService) SendStatement(ctx context.Context, actor Actor, input *CalculateInput, to string) (*Calculation, error) {
	to = strings.TrimSpace(to)
	if to == "" {
		return nil, apperror.NewFieldError("email", "is required")
	}

	calc, err := s.Calculate(ctx, actor, input)
	if err != nil {
		return nil, err
	}

	r := calc.Result
	err = s.mailer.SendCommissionStatement(to, email.CommissionStatement{
		StaffName:      r.StaffName,
		Domain:         calc.Domain.String(),
		Method:         r.Method.String(),
		PeriodStart:    calc.StartDate,
		PeriodEnd:      calc.EndDate,
		ServiceRevenue: r.ServiceRevenue.StringFixed(2),
		SignupRevenue:  r.SignupRevenue.StringFixed(2),
		Income:         r.Income.StringFixed(2),
		Percentage:     r.Percentage.String(),
		Commission:     r.Commission.StringFixed(2),
	})
	if errors.Is(err, email.ErrNotConfigured) {
		return nil, apperror.NewAppError(http.StatusServiceUnavailable, "Email delivery is not configured")
	}
	if err != nil {
		log.WithFields(log.Fields{"staff": r.StaffName, "to": to}).Errorf("failed to send commission statement: %v", err)
		return nil, apperror.NewAppError(http.StatusBadGateway, "Failed to send commission statement")
	}
	return calc, nil
}

func (s *CommissionService) resolveStaffName(ctx context.Context, actor Actor, requested string) (string, error) {
	if !actor.IsCoach() {
		return strings.TrimSpace(requested), nil
	}
	if actor.StaffID == nil {
		return "", apperror.NewForbiddenError("Your account is not linked to a staff member")
	}
	staff, err := s.staffRepo.GetByID(ctx, *actor.StaffID)
	if err != nil {
		return "", err
	}
	if staff == nil {
		return "", apperror.NewForbiddenError("Your account is not linked to a staff member")
	}
	return strings.TrimSpace(staff.Name), nil
}

func (s *CommissionService) resolveMethod(ctx context.Context, requested string) (enum.CommissionMethod, error) {
	if strings.TrimSpace(requested) != "" {
		method, err := enum.ParseCommissionMethod(requested)
		if err != nil {
			return "", apperror.NewFieldError("method", err.Error())
		}
		return method, nil
	}
	method, err := s.settings.DefaultMethod(ctx)
	if err != nil {
		log.WithField("source", "settings").Warnf("default method unavailable, using revenue: %v", err)
		return enum.MethodRevenue, nil
	}
	return method, nil
}

func (s *CommissionService) loadReceipts(ctx context.Context, calc *Calculation, domain enum.ServiceDomain, w commission.Window) []entity.Receipt {
	receipts, _, err := s.receiptRepo.List(ctx, repository.ReceiptFilter{
		Types: domain.ReceiptTypes(),
		From:  &w.Start,
		To:    &w.End,
	})
	if err != nil {
		degrade(calc, SourceReceipts, err)
		return nil
	}
	return receipts
}

func (s *CommissionService) loadSessions(ctx context.Context, calc *Calculation, domain enum.ServiceDomain, filter repository.SessionFilter) []entity.ServiceSession {
	sessions, err := s.sessionRepo.List(ctx, domain, filter)
	if err != nil {
		degrade(calc, SourceSessions, err)
		return nil
	}
	return sessions
}

func (s *CommissionService) loadLedger(ctx context.Context, calc *Calculation, typ enum.CommissionType, w commission.Window) []entity.Commission {
	entries, err := s.commissionRepo.List(ctx, repository.CommissionFilter{Type: &typ, From: &w.Start, To: &w.End})
	if err != nil {
		source := SourceSignups
		if typ == enum.CommissionPTPayment {
			source = SourcePayments
		}
		degrade(calc, source, err)
		return nil
	}
	return entries
}

func degrade(calc *Calculation, source string, err error) {
	log.WithField("source", source).Warnf("collaborator fetch failed, continuing without it: %v", err)
	calc.Degraded = append(calc.Degraded, source)
}
