package commission

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/gymcore-api/internal/domain/entity"
	"github.com/sangkips/gymcore-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// SignupGroup totals the signup bonuses of one staff member
type SignupGroup struct {
	StaffID     uuid.UUID           `json:"coach_id"`
	StaffName   string              `json:"coach_name"`
	StaffCode   string              `json:"staff_code"`
	Count       int                 `json:"count"`
	TotalAmount decimal.Decimal     `json:"total_amount"`
	Commissions []entity.Commission `json:"commissions"`
}

// GroupSignups groups the member_signup entries created inside w by staff member,
// largest total first.
func GroupSignups(w Window, entries []entity.Commission) []SignupGroup {
	groups := make(map[uuid.UUID]*SignupGroup)
	var order []uuid.UUID

	for _, c := range entries {
		if c.Type != enum.CommissionMemberSignup || !w.Contains(c.CreatedAt) {
			continue
		}
		g, ok := groups[c.StaffID]
		if !ok {
			g = &SignupGroup{StaffID: c.StaffID, TotalAmount: decimal.Zero, Commissions: []entity.Commission{}}
			if c.Staff != nil {
				g.StaffName = c.Staff.Name
				g.StaffCode = c.Staff.StaffCode
			}
			groups[c.StaffID] = g
			order = append(order, c.StaffID)
		}
		g.Count++
		g.TotalAmount = g.TotalAmount.Add(c.Amount)
		g.Commissions = append(g.Commissions, c)
	}

	result := make([]SignupGroup, 0, len(order))
	for _, id := range order {
		result = append(result, *groups[id])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TotalAmount.GreaterThan(result[j].TotalAmount)
	})
	return result
}

// PaymentLine is a decoded pt_payment ledger entry
type PaymentLine struct {
	ID            uuid.UUID       `json:"id"`
	CreatedAt     time.Time       `json:"created_at"`
	PaymentAmount decimal.Decimal `json:"payment_amount"`
	Percentage    decimal.Decimal `json:"percentage"`
	Commission    decimal.Decimal `json:"commission"`
	Number        *int            `json:"number,omitempty"`
}

// PaymentLines returns the pt_payment entries of staffName created inside w.
// Entries whose notes fail to decode are reported as anomalies.
func PaymentLines(staffName string, w Window, entries []entity.Commission) ([]PaymentLine, []Anomaly) {
	lines := []PaymentLine{}
	anomalies := []Anomaly{}
	for _, c := range entries {
		if c.Type != enum.CommissionPTPayment || c.Staff == nil {
			continue
		}
		if !SameStaff(c.Staff.Name, staffName) || !w.Contains(c.CreatedAt) {
			continue
		}
		if c.Notes == nil {
			anomalies = append(anomalies, Anomaly{Source: SourceCommission, ID: c.ID, Reason: "missing notes"})
			continue
		}
		notes, err := DecodePaymentNotes(*c.Notes)
		if err != nil {
			anomalies = append(anomalies, Anomaly{Source: SourceCommission, ID: c.ID, Reason: err.Error()})
			continue
		}
		lines = append(lines, PaymentLine{
			ID:            c.ID,
			CreatedAt:     c.CreatedAt,
			PaymentAmount: notes.PaymentAmount,
			Percentage:    notes.Percentage,
			Commission:    notes.Commission,
			Number:        notes.PTNumber,
		})
	}
	return lines, anomalies
}
