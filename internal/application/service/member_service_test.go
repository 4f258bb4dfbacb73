package service

import (
	"bytes"
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/gymcore-api/internal/domain/entity"
	"github.com/sangkips/gymcore-api/internal/domain/enum"
)

func TestCreateMemberRecordsSignupBonus(t *testing.T) {
	staff := newFakeStaffRepo(entity.Staff{ID: saraID, Name: "Sara", IsActive: true})
	ledger := &fakeCommissionRepo{staff: staff}
	members := newFakeMemberRepo(ledger)
	svc := NewMemberService(members, staff, dec("50"))

	staffID := saraID
	member, err := svc.CreateMember(context.Background(), &CreateMemberInput{
		Name:              " Khaled ",
		Phone:             "0111",
		SubscriptionPrice: dec("1200"),
		RemainingAmount:   dec("200"),
		SignupStaffID:     &staffID,
	})
	if err != nil {
		t.Fatalf("CreateMember: %v", err)
	}

	if member.Name != "Khaled" || len(member.QRCode) != 32 || !member.IsActive {
		t.Errorf("member = %+v, want trimmed name, 32 char QR code, active", member)
	}
	if len(ledger.entries) != 1 {
		t.Fatalf("ledger entries = %d, want 1", len(ledger.entries))
	}
	e := ledger.entries[0]
	if e.Type != enum.CommissionMemberSignup || e.StaffID != saraID || !e.Amount.Equal(dec("50")) {
		t.Errorf("ledger entry = %+v, want a 50 member_signup for Sara", e)
	}
}

func TestCreateMemberValidation(t *testing.T) {
	staff := newFakeStaffRepo()
	members := newFakeMemberRepo(&fakeCommissionRepo{})
	svc := NewMemberService(members, staff, dec("50"))
	ctx := context.Background()

	_, err := svc.CreateMember(ctx, &CreateMemberInput{
		Name: "A", StartDate: dayPtr("2024-03-10 00:00"), ExpiryDate: dayPtr("2024-03-01 00:00"),
	})
	assertStatus(t, err, http.StatusUnprocessableEntity)

	_, err = svc.CreateMember(ctx, &CreateMemberInput{Name: "A", SubscriptionPrice: dec("100"), RemainingAmount: dec("150")})
	assertStatus(t, err, http.StatusUnprocessableEntity)

	unknown := uuid.New()
	_, err = svc.CreateMember(ctx, &CreateMemberInput{Name: "A", SignupStaffID: &unknown})
	assertStatus(t, err, http.StatusUnprocessableEntity)

	if _, err := svc.CreateMember(ctx, &CreateMemberInput{Name: "A", MemberNumber: 5}); err != nil {
		t.Fatalf("CreateMember: %v", err)
	}
	_, err = svc.CreateMember(ctx, &CreateMemberInput{Name: "B", MemberNumber: 5})
	assertStatus(t, err, http.StatusConflict)
}

func TestQRCodePNG(t *testing.T) {
	members := newFakeMemberRepo(nil)
	svc := NewMemberService(members, newFakeStaffRepo(), dec("50"))
	ctx := context.Background()

	member, err := svc.CreateMember(ctx, &CreateMemberInput{Name: "A"})
	if err != nil {
		t.Fatalf("CreateMember: %v", err)
	}
	png, err := svc.QRCodePNG(ctx, member.ID, 0)
	if err != nil {
		t.Fatalf("QRCodePNG: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Error("QRCodePNG should return a PNG image")
	}

	old := member.QRCode
	updated, err := svc.RegenerateQRCode(ctx, member.ID)
	if err != nil {
		t.Fatalf("RegenerateQRCode: %v", err)
	}
	if updated.QRCode == old {
		t.Error("RegenerateQRCode should issue a new code")
	}
}

func TestCheckIn(t *testing.T) {
	members := newFakeMemberRepo(nil)
	checkIns := &fakeCheckInRepo{}
	memberSvc := NewMemberService(members, newFakeStaffRepo(), dec("50"))
	svc := NewCheckInService(members, checkIns, 2*time.Hour)
	now := day("2024-03-10 18:00")
	svc.now = func() time.Time { return now }
	ctx := context.Background()

	member, err := memberSvc.CreateMember(ctx, &CreateMemberInput{Name: "A"})
	if err != nil {
		t.Fatalf("CreateMember: %v", err)
	}

	first, err := svc.CheckIn(ctx, &CheckInInput{QRCode: member.QRCode})
	if err != nil {
		t.Fatalf("CheckIn: %v", err)
	}
	if first.AlreadyCheckedIn || !first.CheckIn.ExpectedCheckOut.Equal(now.Add(2*time.Hour)) {
		t.Errorf("first check-in = %+v, want a new visit until 20:00", first.CheckIn)
	}
	if first.CheckIn.Method != entity.CheckInMethodScan {
		t.Errorf("Method = %q, want scan", first.CheckIn.Method)
	}

	again, err := svc.CheckIn(ctx, &CheckInInput{MemberID: &member.ID})
	if err != nil {
		t.Fatalf("second CheckIn: %v", err)
	}
	if !again.AlreadyCheckedIn || again.CheckIn.ID != first.CheckIn.ID {
		t.Error("a member still inside should get the open visit back")
	}

	current, _ := svc.Current(ctx)
	if len(current) != 1 {
		t.Errorf("Current = %d visits, want 1", len(current))
	}

	now = now.Add(3 * time.Hour)
	closed, err := svc.AutoCheckout(ctx)
	if err != nil || closed != 1 {
		t.Errorf("AutoCheckout = %d, %v; want 1 closed", closed, err)
	}
}

func TestCheckInRejects(t *testing.T) {
	members := newFakeMemberRepo(nil)
	memberSvc := NewMemberService(members, newFakeStaffRepo(), dec("50"))
	svc := NewCheckInService(members, &fakeCheckInRepo{}, 0)
	ctx := context.Background()

	_, err := svc.CheckIn(ctx, &CheckInInput{QRCode: "UNKNOWN"})
	assertStatus(t, err, http.StatusNotFound)

	_, err = svc.CheckIn(ctx, &CheckInInput{})
	assertStatus(t, err, http.StatusBadRequest)

	member, _ := memberSvc.CreateMember(ctx, &CreateMemberInput{Name: "A"})
	if _, err := memberSvc.SetActive(ctx, member.ID, false); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	_, err = svc.CheckIn(ctx, &CheckInInput{MemberID: &member.ID})
	assertStatus(t, err, http.StatusBadRequest)
}
