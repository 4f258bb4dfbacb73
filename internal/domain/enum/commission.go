package enum

import (
	"fmt"
	"strings"
)

// CommissionMethod selects how a staff member's payable income is derived
type CommissionMethod string

const (
	MethodRevenue  CommissionMethod = "revenue"
	MethodSessions CommissionMethod = "sessions"
)

// ParseCommissionMethod validates a method name
func ParseCommissionMethod(s string) (CommissionMethod, error) {
	switch CommissionMethod(strings.TrimSpace(s)) {
	case MethodRevenue:
		return MethodRevenue, nil
	case MethodSessions:
		return MethodSessions, nil
	}
	return "", fmt.Errorf("calculation method must be %q or %q", MethodRevenue, MethodSessions)
}

func (m CommissionMethod) String() string {
	return string(m)
}

// CommissionType tags a commission ledger entry
type CommissionType string

const (
	CommissionMemberSignup CommissionType = "member_signup"
	CommissionPTPayment    CommissionType = "pt_payment"
)

func (t CommissionType) IsValid() bool {
	return t == CommissionMemberSignup || t == CommissionPTPayment
}

func (t CommissionType) String() string {
	return string(t)
}
