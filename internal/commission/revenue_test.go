package commission

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/gymcore-api/internal/domain/entity"
	"github.com/sangkips/gymcore-api/internal/domain/enum"
)

func receipt(typ enum.ReceiptType, amount, details string, at time.Time) entity.Receipt {
	return entity.Receipt{ID: uuid.New(), Type: typ, Amount: d(amount), ItemDetails: details, CreatedAt: at}
}

func ledgerEntry(typ enum.CommissionType, staff, amount string, at time.Time) entity.Commission {
	id := uuid.New()
	return entity.Commission{
		ID:        uuid.New(),
		StaffID:   id,
		Staff:     &entity.Staff{ID: id, Name: staff},
		Type:      typ,
		Amount:    d(amount),
		CreatedAt: at,
	}
}

func TestAggregateRevenue(t *testing.T) {
	w := testWindow(t)
	mid := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	lastMilli := w.End

	receipts := []entity.Receipt{
		receipt(enum.ReceiptNewPT, "2000", `{"coachName":" Sara ","sessionsPurchased":10}`, mid),
		receipt(enum.ReceiptPTRenewal, "500", `{"coachName":"Sara"}`, lastMilli),
		receipt(enum.ReceiptPTRenewal, "700", `{"coachName":"Sara"}`, lastMilli.Add(time.Millisecond)),
		receipt(enum.ReceiptNewNutrition, "900", `{"nutritionistName":"Sara"}`, mid),
		receipt(enum.ReceiptNewPT, "300", `{"coachName":`, mid),
		receipt(enum.ReceiptNewPT, "400", `{"coachName":"Omar"}`, mid),
		receipt(enum.ReceiptDayUse, "100", `{"coachName":"Sara"}`, mid),
		receipt(enum.ReceiptPTDayUse, "80", `{"clientName":"walk in"}`, mid),
	}
	signups := []entity.Commission{
		ledgerEntry(enum.CommissionMemberSignup, "Sara", "50", mid),
		ledgerEntry(enum.CommissionMemberSignup, "Omar", "50", mid),
		ledgerEntry(enum.CommissionMemberSignup, "Sara", "50", lastMilli.Add(time.Millisecond)),
		ledgerEntry(enum.CommissionPTPayment, "Sara", "75", mid),
	}

	agg := AggregateRevenue(enum.DomainPT, "Sara", w, receipts, signups)

	if !agg.ServiceRevenue.Equal(d("2500")) {
		t.Errorf("ServiceRevenue = %s, want 2500", agg.ServiceRevenue)
	}
	if !agg.SignupRevenue.Equal(d("50")) {
		t.Errorf("SignupRevenue = %s, want 50", agg.SignupRevenue)
	}
	if !agg.TotalIncome.Equal(d("2550")) {
		t.Errorf("TotalIncome = %s, want 2550", agg.TotalIncome)
	}
	if agg.ReceiptCount != 2 || agg.SignupCount != 1 {
		t.Errorf("counts = %d receipts, %d signups, want 2 and 1", agg.ReceiptCount, agg.SignupCount)
	}
	if len(agg.Anomalies) != 1 || agg.Anomalies[0].ID != receipts[4].ID {
		t.Errorf("anomalies = %+v, want the truncated receipt only", agg.Anomalies)
	}
}

func TestAggregateRevenueTrimsQuery(t *testing.T) {
	w := testWindow(t)
	at := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	receipts := []entity.Receipt{
		receipt(enum.ReceiptNewPhysiotherapy, "1200", `{"therapistName":"Alice"}`, at),
	}

	agg := AggregateRevenue(enum.DomainPhysiotherapy, "  Alice ", w, receipts, nil)
	if !agg.ServiceRevenue.Equal(d("1200")) {
		t.Errorf("ServiceRevenue = %s, want 1200", agg.ServiceRevenue)
	}
	if agg.StaffName != "Alice" {
		t.Errorf("StaffName = %q, want trimmed", agg.StaffName)
	}
}

func TestAggregateRevenueEmpty(t *testing.T) {
	agg := AggregateRevenue(enum.DomainNutrition, "Nobody", testWindow(t), nil, nil)
	if !agg.TotalIncome.IsZero() || agg.Anomalies == nil {
		t.Errorf("empty aggregate = %+v", agg)
	}
}

func TestAggregateRevenueIgnoresNameCase(t *testing.T) {
	w := testWindow(t)
	at := time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC)
	receipts := []entity.Receipt{
		receipt(enum.ReceiptNewPT, "900", `{"coachName":" sara "}`, at),
		receipt(enum.ReceiptPTRenewal, "100", `{"coachName":"SARA"}`, at),
	}
	signups := []entity.Commission{ledgerEntry(enum.CommissionMemberSignup, "sara", "50", at)}

	agg := AggregateRevenue(enum.DomainPT, "Sara", w, receipts, signups)
	if !agg.ServiceRevenue.Equal(d("1000")) {
		t.Errorf("ServiceRevenue = %s, want 1000", agg.ServiceRevenue)
	}
	if !agg.SignupRevenue.Equal(d("50")) {
		t.Errorf("SignupRevenue = %s, want 50", agg.SignupRevenue)
	}
}
