package commission

import (
	"fmt"

	"github.com/sangkips/gymcore-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Request carries everything Resolve needs. Revenue is read in revenue mode
// and Sessions in sessions mode; a nil aggregate counts as no income.
type Request struct {
	Method    enum.CommissionMethod
	StaffName string
	Tiers     Tiers

	Revenue      *RevenueAggregate
	CustomIncome *decimal.Decimal

	Sessions   *SessionCommission
	Percentage *decimal.Decimal
}

// Result is the payable amount of one staff member.
// Commission + GymShare always equals Income.
type Result struct {
	StaffName      string                `json:"staff_name"`
	Method         enum.CommissionMethod `json:"method"`
	Income         decimal.Decimal       `json:"income"`
	ServiceRevenue decimal.Decimal       `json:"service_revenue"`
	SignupRevenue  decimal.Decimal       `json:"signup_revenue"`
	Percentage     decimal.Decimal       `json:"percentage"`
	Commission     decimal.Decimal       `json:"commission"`
	GymShare       decimal.Decimal       `json:"gym_share"`
	CustomIncome   bool                  `json:"custom_income"`
}

// Resolve turns an aggregate into a payout.
//
// Revenue mode looks up the rate with the whole income (service revenue plus
// signup bonuses) but only splits the service revenue; the bonus is paid in full.
// A custom income replaces the aggregate and is treated as service revenue.
//
// Sessions mode splits the consumed session value at the tier rate unless the
// operator supplied a percentage.
func Resolve(req Request) (Result, error) {
	switch req.Method {
	case enum.MethodRevenue:
		return resolveRevenue(req)
	case enum.MethodSessions:
		return resolveSessions(req)
	}
	return Result{}, fmt.Errorf("unknown calculation method %q", req.Method)
}

func resolveRevenue(req Request) (Result, error) {
	res := Result{StaffName: req.StaffName, Method: enum.MethodRevenue}

	service, signup := decimal.Zero, decimal.Zero
	if req.CustomIncome != nil {
		if req.CustomIncome.IsNegative() {
			return Result{}, ErrNegativeIncome
		}
		service = *req.CustomIncome
		res.CustomIncome = true
	} else if req.Revenue != nil {
		service, signup = req.Revenue.ServiceRevenue, req.Revenue.SignupRevenue
	}

	res.ServiceRevenue = service
	res.SignupRevenue = signup
	res.Income = service.Add(signup)
	res.Percentage = decimal.Zero
	if res.Income.IsPositive() {
		res.Percentage = req.Tiers.RateForIncome(res.Income)
	}

	serviceCommission := percentOf(service, res.Percentage)
	res.Commission = serviceCommission.Add(signup)
	res.GymShare = service.Sub(serviceCommission)
	return res, nil
}

func resolveSessions(req Request) (Result, error) {
	res := Result{StaffName: req.StaffName, Method: enum.MethodSessions}

	value := decimal.Zero
	pct := decimal.Zero
	if req.Sessions != nil {
		value = req.Sessions.TotalSessionsValue
		pct = req.Sessions.Percentage
	}
	if req.Percentage != nil {
		if !ValidPercentage(*req.Percentage) {
			return Result{}, ErrInvalidPercentage
		}
		pct = *req.Percentage
	}

	res.Income = value
	res.ServiceRevenue = value
	res.SignupRevenue = decimal.Zero
	res.Percentage = pct
	res.Commission = percentOf(value, pct)
	res.GymShare = value.Sub(res.Commission)
	return res, nil
}
