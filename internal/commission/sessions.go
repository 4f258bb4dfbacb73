package commission

import (
	"sort"
	"strings"

	"github.com/sangkips/gymcore-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// SessionCommission is the session mode payout of one staff member
type SessionCommission struct {
	StaffName          string                  `json:"staff_name"`
	TotalUsedSessions  int                     `json:"total_used_sessions"`
	TotalSessionsValue decimal.Decimal         `json:"total_sessions_value"`
	Percentage         decimal.Decimal         `json:"percentage"`
	Commission         decimal.Decimal         `json:"commission"`
	GymShare           decimal.Decimal         `json:"gym_share"`
	Sessions           []entity.ServiceSession `json:"sessions"`
}

// SessionUsage is the result of AggregateSessionUsage
type SessionUsage struct {
	Rankings  []SessionCommission `json:"rankings"`
	Anomalies []Anomaly           `json:"anomalies"`
}

// For returns the entry of staffName, if present
func (u SessionUsage) For(staffName string) (SessionCommission, bool) {
	for _, sc := range u.Rankings {
		if SameStaff(sc.StaffName, staffName) {
			return sc, true
		}
	}
	return SessionCommission{}, false
}

// AggregateSessionUsage values the sessions consumed per staff member.
//
// An empty staffName keeps every staff member. A block is kept when its lifetime
// overlaps w. Blocks with counts outside 0 <= remaining <= purchased, a negative
// price or no staff name add nothing and are reported as anomalies.
// Rankings are ordered by commission, highest first.
func AggregateSessionUsage(staffName string, w Window, sessions []entity.ServiceSession, tiers Tiers) SessionUsage {
	staffName = strings.TrimSpace(staffName)
	usage := SessionUsage{Rankings: []SessionCommission{}, Anomalies: []Anomaly{}}

	groups := make(map[string]*SessionCommission)
	var order []string

	for i := range sessions {
		s := sessions[i]
		name := strings.TrimSpace(s.StaffName)
		if staffName != "" && !SameStaff(name, staffName) {
			continue
		}
		if !w.Overlaps(s.StartDate, s.ExpiryDate) {
			continue
		}
		if reason := sessionDefect(&s, name); reason != "" {
			usage.Anomalies = append(usage.Anomalies, Anomaly{Source: SourceSession, ID: s.ID, Reason: reason})
			continue
		}

		key := staffKey(name)
		g, ok := groups[key]
		if !ok {
			g = &SessionCommission{StaffName: name, TotalSessionsValue: decimal.Zero, Sessions: []entity.ServiceSession{}}
			groups[key] = g
			order = append(order, key)
		}
		used := s.UsedSessions()
		g.TotalUsedSessions += used
		g.TotalSessionsValue = g.TotalSessionsValue.Add(s.PricePerSession.Mul(decimal.NewFromInt(int64(used))))
		g.Sessions = append(g.Sessions, s)
	}

	for _, key := range order {
		g := groups[key]
		g.Percentage = tiers.RateForIncome(g.TotalSessionsValue)
		g.Commission = percentOf(g.TotalSessionsValue, g.Percentage)
		g.GymShare = g.TotalSessionsValue.Sub(g.Commission)
		usage.Rankings = append(usage.Rankings, *g)
	}

	sort.SliceStable(usage.Rankings, func(i, j int) bool {
		return usage.Rankings[i].Commission.GreaterThan(usage.Rankings[j].Commission)
	})
	return usage
}

func sessionDefect(s *entity.ServiceSession, name string) string {
	switch {
	case name == "":
		return "no staff name"
	case s.SessionsPurchased < 0:
		return "negative sessions purchased"
	case s.SessionsRemaining < 0:
		return "negative sessions remaining"
	case s.SessionsRemaining > s.SessionsPurchased:
		return "more sessions remaining than purchased"
	case s.PricePerSession.IsNegative():
		return "negative price per session"
	}
	return ""
}
