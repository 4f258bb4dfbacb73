package commission

import (
	"github.com/sangkips/gymcore-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// EarningsStats summarizes the session blocks one trainer sold in a window
type EarningsStats struct {
	StaffName         string          `json:"staff_name"`
	TotalSessions     int             `json:"total_sessions"`
	CompletedSessions int             `json:"completed_sessions"`
	RemainingSessions int             `json:"remaining_sessions"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	Clients           int             `json:"clients"`
}

// TrainerEarnings returns one entry per name in staffNames, in the same order,
// over the blocks created inside w. Trainers without blocks get zero stats.
func TrainerEarnings(staffNames []string, w Window, sessions []entity.ServiceSession) []EarningsStats {
	stats := make([]EarningsStats, 0, len(staffNames))
	for _, name := range staffNames {
		st := EarningsStats{StaffName: name, TotalRevenue: decimal.Zero}
		clients := make(map[string]struct{})
		for i := range sessions {
			s := &sessions[i]
			if !SameStaff(s.StaffName, name) || !w.Contains(s.CreatedAt) {
				continue
			}
			st.TotalSessions += s.SessionsPurchased
			st.RemainingSessions += s.SessionsRemaining
			st.TotalRevenue = st.TotalRevenue.Add(s.TotalPrice())
			clients[s.ClientName] = struct{}{}
		}
		st.CompletedSessions = st.TotalSessions - st.RemainingSessions
		st.Clients = len(clients)
		stats = append(stats, st)
	}
	return stats
}
