package commission

import (
	"errors"
	"strings"

	"github.com/sangkips/gymcore-api/internal/domain/entity"
	"github.com/sangkips/gymcore-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// RevenueAggregate is the income attributed to one staff member in a window
type RevenueAggregate struct {
	StaffName      string          `json:"staff_name"`
	ServiceRevenue decimal.Decimal `json:"service_revenue"`
	SignupRevenue  decimal.Decimal `json:"signup_revenue"`
	TotalIncome    decimal.Decimal `json:"total_income"`
	ReceiptCount   int             `json:"receipt_count"`
	SignupCount    int             `json:"signup_count"`
	Anomalies      []Anomaly       `json:"anomalies"`
}

// AggregateRevenue sums the domain receipts and signup bonuses of staffName inside w.
//
// A receipt counts when its canonical type belongs to domain, it was created inside w
// and the staff name stored under the domain key of its item details matches.
// Receipts whose item details cannot be decoded are skipped and reported as anomalies;
// receipts that simply name nobody are skipped silently.
// Signups are member_signup ledger entries whose staff member carries the same name.
func AggregateRevenue(domain enum.ServiceDomain, staffName string, w Window, receipts []entity.Receipt, signups []entity.Commission) RevenueAggregate {
	staffName = strings.TrimSpace(staffName)
	agg := RevenueAggregate{
		StaffName:      staffName,
		ServiceRevenue: decimal.Zero,
		SignupRevenue:  decimal.Zero,
		Anomalies:      []Anomaly{},
	}

	allowed := make(map[enum.ReceiptType]bool)
	for _, t := range domain.ReceiptTypes() {
		allowed[t] = true
	}

	key := domain.StaffNameKey()
	for i := range receipts {
		r := &receipts[i]
		if !allowed[r.Type] || !w.Contains(r.CreatedAt) {
			continue
		}
		name, err := StaffNameFromItemDetails(r.ItemDetails, key)
		if err != nil {
			if errors.Is(err, ErrMalformedItemDetails) {
				agg.Anomalies = append(agg.Anomalies, Anomaly{Source: SourceReceipt, ID: r.ID, Reason: err.Error()})
			}
			continue
		}
		if !SameStaff(name, staffName) {
			continue
		}
		agg.ServiceRevenue = agg.ServiceRevenue.Add(r.Amount)
		agg.ReceiptCount++
	}

	for i := range signups {
		c := &signups[i]
		if c.Type != enum.CommissionMemberSignup || c.Staff == nil {
			continue
		}
		if !SameStaff(c.Staff.Name, staffName) || !w.Contains(c.CreatedAt) {
			continue
		}
		agg.SignupRevenue = agg.SignupRevenue.Add(c.Amount)
		agg.SignupCount++
	}

	agg.TotalIncome = agg.ServiceRevenue.Add(agg.SignupRevenue)
	return agg
}
