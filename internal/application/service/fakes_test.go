package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/gymcore-api/internal/domain/entity"
	"github.com/sangkips/gymcore-api/internal/domain/enum"
	"github.com/sangkips/gymcore-api/internal/domain/repository"
	"github.com/sangkips/gymcore-api/pkg/pagination"
)

var errStoreDown = errors.New("store unavailable")

type fakeStaffRepo struct {
	staff map[uuid.UUID]*entity.Staff
}

func newFakeStaffRepo(staff ...entity.Staff) *fakeStaffRepo {
	r := &fakeStaffRepo{staff: make(map[uuid.UUID]*entity.Staff)}
	for i := range staff {
		s := staff[i]
		if s.ID == uuid.Nil {
			s.ID = uuid.New()
		}
		r.staff[s.ID] = &s
	}
	return r
}

func (r *fakeStaffRepo) byName(name string) *entity.Staff {
	for _, s := range r.staff {
		if s.Name == name {
			return s
		}
	}
	return nil
}

func (r *fakeStaffRepo) Create(ctx context.Context, staff *entity.Staff) error {
	if staff.ID == uuid.Nil {
		staff.ID = uuid.New()
	}
	r.staff[staff.ID] = staff
	return nil
}

func (r *fakeStaffRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Staff, error) {
	return r.staff[id], nil
}

func (r *fakeStaffRepo) GetByName(ctx context.Context, name string) (*entity.Staff, error) {
	return r.byName(strings.TrimSpace(name)), nil
}

func (r *fakeStaffRepo) Update(ctx context.Context, staff *entity.Staff) error {
	r.staff[staff.ID] = staff
	return nil
}

func (r *fakeStaffRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(r.staff, id)
	return nil
}

func (r *fakeStaffRepo) List(ctx context.Context, filter repository.StaffFilter) ([]entity.Staff, error) {
	var out []entity.Staff
	for _, s := range r.staff {
		if filter.ActiveOnly && !s.IsActive {
			continue
		}
		if filter.Search != "" && !strings.Contains(s.Name, filter.Search) {
			continue
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *fakeStaffRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.staff)), nil
}

type fakeReceiptRepo struct {
	receipts []entity.Receipt
	next     int
	err      error
}

func (r *fakeReceiptRepo) Create(ctx context.Context, receipt *entity.Receipt) error {
	if r.err != nil {
		return r.err
	}
	r.next++
	receipt.ID = uuid.New()
	receipt.ReceiptNumber = r.next
	if receipt.CreatedAt.IsZero() {
		receipt.CreatedAt = time.Now()
	}
	r.receipts = append(r.receipts, *receipt)
	return nil
}

func (r *fakeReceiptRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	for i := range r.receipts {
		if r.receipts[i].ID == id {
			return &r.receipts[i], nil
		}
	}
	return nil, nil
}

func (r *fakeReceiptRepo) List(ctx context.Context, filter repository.ReceiptFilter) ([]entity.Receipt, int64, error) {
	if r.err != nil {
		return nil, 0, r.err
	}
	allowed := make(map[enum.ReceiptType]bool)
	for _, t := range filter.Types {
		allowed[t] = true
	}
	var out []entity.Receipt
	for _, rc := range r.receipts {
		if filter.Domain != nil && rc.Domain != *filter.Domain {
			continue
		}
		if len(allowed) > 0 && !allowed[rc.Type] {
			continue
		}
		if filter.From != nil && rc.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && rc.CreatedAt.After(*filter.To) {
			continue
		}
		out = append(out, rc)
	}
	return out, int64(len(out)), nil
}

type fakeSessionRepo struct {
	sessions   []*entity.ServiceSession
	attendance []entity.SessionAttendance
	receipts   *fakeReceiptRepo
	ledger     *fakeCommissionRepo
	err        error
}

func (r *fakeSessionRepo) CreateSale(ctx context.Context, session *entity.ServiceSession, receipt *entity.Receipt, commission *entity.Commission) error {
	if r.err != nil {
		return r.err
	}
	session.ID = uuid.New()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	r.sessions = append(r.sessions, session)
	if r.receipts != nil {
		if err := r.receipts.Create(ctx, receipt); err != nil {
			return err
		}
	}
	if commission != nil && r.ledger != nil {
		return r.ledger.Create(ctx, commission)
	}
	return nil
}

func (r *fakeSessionRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.ServiceSession, error) {
	for _, s := range r.sessions {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) GetByNumber(ctx context.Context, domain enum.ServiceDomain, number int) (*entity.ServiceSession, error) {
	for _, s := range r.sessions {
		if s.Domain == domain && s.Number == number {
			return s, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) List(ctx context.Context, domain enum.ServiceDomain, filter repository.SessionFilter) ([]entity.ServiceSession, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []entity.ServiceSession
	for _, s := range r.sessions {
		if s.Domain != domain {
			continue
		}
		if name := strings.TrimSpace(filter.StaffName); name != "" && strings.TrimSpace(s.StaffName) != name {
			continue
		}
		if filter.CreatedFrom != nil && s.CreatedAt.Before(*filter.CreatedFrom) {
			continue
		}
		if filter.CreatedTo != nil && s.CreatedAt.After(*filter.CreatedTo) {
			continue
		}
		out = append(out, *s)
	}
	return out, nil
}

func (r *fakeSessionRepo) RecordAttendance(ctx context.Context, sessionID uuid.UUID, attendance *entity.SessionAttendance) (*entity.ServiceSession, error) {
	s, _ := r.GetByID(ctx, sessionID)
	if s == nil || s.SessionsRemaining <= 0 {
		return nil, repository.ErrNoSessionsRemaining
	}
	s.SessionsRemaining--
	attendance.ID = uuid.New()
	attendance.SessionID = sessionID
	r.attendance = append(r.attendance, *attendance)
	return s, nil
}

func (r *fakeSessionRepo) ListAttendance(ctx context.Context, sessionID uuid.UUID) ([]entity.SessionAttendance, error) {
	var out []entity.SessionAttendance
	for _, a := range r.attendance {
		if a.SessionID == sessionID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeCommissionRepo struct {
	entries []entity.Commission
	staff   *fakeStaffRepo
	err     error
}

func (r *fakeCommissionRepo) Create(ctx context.Context, c *entity.Commission) error {
	c.ID = uuid.New()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	r.entries = append(r.entries, *c)
	return nil
}

func (r *fakeCommissionRepo) List(ctx context.Context, filter repository.CommissionFilter) ([]entity.Commission, error) {
	if r.err != nil {
		return nil, r.err
	}
	var out []entity.Commission
	for _, c := range r.entries {
		if filter.Type != nil && c.Type != *filter.Type {
			continue
		}
		if filter.StaffID != nil && c.StaffID != *filter.StaffID {
			continue
		}
		if filter.From != nil && c.CreatedAt.Before(*filter.From) {
			continue
		}
		if filter.To != nil && c.CreatedAt.After(*filter.To) {
			continue
		}
		if r.staff != nil {
			c.Staff = r.staff.staff[c.StaffID]
		}
		out = append(out, c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

type fakeSettingsRepo struct {
	commission *entity.CommissionSettings
	system     map[string]*entity.SystemSetting
	err        error
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{system: make(map[string]*entity.SystemSetting)}
}

func (r *fakeSettingsRepo) GetCommissionSettings(ctx context.Context) (*entity.CommissionSettings, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.commission, nil
}

func (r *fakeSettingsRepo) SaveCommissionSettings(ctx context.Context, s *entity.CommissionSettings) error {
	if r.err != nil {
		return r.err
	}
	r.commission = s
	return nil
}

func (r *fakeSettingsRepo) GetSystemSetting(ctx context.Context, key string) (*entity.SystemSetting, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.system[key], nil
}

func (r *fakeSettingsRepo) SaveSystemSetting(ctx context.Context, s *entity.SystemSetting) error {
	if r.err != nil {
		return r.err
	}
	r.system[s.Key] = s
	return nil
}

type fakeMemberRepo struct {
	members map[uuid.UUID]*entity.Member
	ledger  *fakeCommissionRepo
	next    int
}

func newFakeMemberRepo(ledger *fakeCommissionRepo) *fakeMemberRepo {
	return &fakeMemberRepo{members: make(map[uuid.UUID]*entity.Member), ledger: ledger}
}

func (r *fakeMemberRepo) Create(ctx context.Context, member *entity.Member, signup *entity.Commission) error {
	member.ID = uuid.New()
	if member.MemberNumber == 0 {
		r.next++
		member.MemberNumber = r.next
	}
	r.members[member.ID] = member
	if signup != nil && r.ledger != nil {
		return r.ledger.Create(ctx, signup)
	}
	return nil
}

func (r *fakeMemberRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Member, error) {
	return r.members[id], nil
}

func (r *fakeMemberRepo) GetByQRCode(ctx context.Context, code string) (*entity.Member, error) {
	for _, m := range r.members {
		if m.QRCode == code {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMemberRepo) GetByNumber(ctx context.Context, number int) (*entity.Member, error) {
	for _, m := range r.members {
		if m.MemberNumber == number {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMemberRepo) Update(ctx context.Context, member *entity.Member) error {
	r.members[member.ID] = member
	return nil
}

func (r *fakeMemberRepo) List(ctx context.Context, params *pagination.PaginationParams, search string) ([]entity.Member, int64, error) {
	var out []entity.Member
	for _, m := range r.members {
		out = append(out, *m)
	}
	return out, int64(len(out)), nil
}

type fakeCheckInRepo struct {
	checkIns []*entity.MemberCheckIn
}

func (r *fakeCheckInRepo) Create(ctx context.Context, c *entity.MemberCheckIn) error {
	c.ID = uuid.New()
	r.checkIns = append(r.checkIns, c)
	return nil
}

func (r *fakeCheckInRepo) GetOpenByMember(ctx context.Context, memberID uuid.UUID, now time.Time) (*entity.MemberCheckIn, error) {
	for _, c := range r.checkIns {
		if c.MemberID == memberID && c.IsOpen(now) {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCheckInRepo) ListOpen(ctx context.Context, now time.Time) ([]entity.MemberCheckIn, error) {
	var out []entity.MemberCheckIn
	for _, c := range r.checkIns {
		if c.IsOpen(now) {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeCheckInRepo) CloseOverdue(ctx context.Context, now time.Time) (int64, error) {
	var closed int64
	for _, c := range r.checkIns {
		if c.CheckOutTime == nil && !c.ExpectedCheckOut.After(now) {
			out := c.ExpectedCheckOut
			c.CheckOutTime = &out
			closed++
		}
	}
	return closed, nil
}
