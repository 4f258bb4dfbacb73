// Package commission computes staff commissions from receipts, session usage
// and signup bonuses. It performs no I/O; callers fetch the records.
package commission

import (
	"errors"
	"fmt"

	"github.com/sangkips/gymcore-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidTiers      = errors.New("invalid commission tiers")
	ErrInvalidPercentage = errors.New("percentage must be between 0 and 100")
	ErrNegativeIncome    = errors.New("income cannot be negative")
)

var hundred = decimal.NewFromInt(100)

// Tiers is the income band table. An income below Limits[i] pays Rates[i];
// an income at or above the last limit pays Rates[4].
type Tiers struct {
	Limits [4]decimal.Decimal
	Rates  [5]decimal.Decimal
}

// DefaultTiers returns the stock band table
func DefaultTiers() Tiers {
	return TiersFromSettings(entity.DefaultCommissionSettings())
}

// TiersFromSettings reads the band table out of the stored settings row
func TiersFromSettings(s *entity.CommissionSettings) Tiers {
	if s == nil {
		return DefaultTiers()
	}
	return Tiers{
		Limits: [4]decimal.Decimal{s.Tier1Limit, s.Tier2Limit, s.Tier3Limit, s.Tier4Limit},
		Rates:  [5]decimal.Decimal{s.Tier1Rate, s.Tier2Rate, s.Tier3Rate, s.Tier4Rate, s.Tier5Rate},
	}
}

// ApplyTo copies the band table into a settings row
func (t Tiers) ApplyTo(s *entity.CommissionSettings) {
	s.Tier1Limit, s.Tier2Limit, s.Tier3Limit, s.Tier4Limit = t.Limits[0], t.Limits[1], t.Limits[2], t.Limits[3]
	s.Tier1Rate, s.Tier2Rate, s.Tier3Rate, s.Tier4Rate, s.Tier5Rate = t.Rates[0], t.Rates[1], t.Rates[2], t.Rates[3], t.Rates[4]
}

// Validate checks that limits are non-negative and strictly ascending and
// that every rate is a percentage.
func (t Tiers) Validate() error {
	for i, limit := range t.Limits {
		if limit.IsNegative() {
			return fmt.Errorf("%w: tier%d limit cannot be negative", ErrInvalidTiers, i+1)
		}
		if i > 0 && !limit.GreaterThan(t.Limits[i-1]) {
			return fmt.Errorf("%w: income limits must be strictly ascending", ErrInvalidTiers)
		}
	}
	for i, rate := range t.Rates {
		if !ValidPercentage(rate) {
			return fmt.Errorf("%w: tier%d rate must be between 0 and 100", ErrInvalidTiers, i+1)
		}
	}
	return nil
}

// RateForIncome returns the percentage paid for income. Bands are half open:
// an income equal to a limit falls into the next band.
func (t Tiers) RateForIncome(income decimal.Decimal) decimal.Decimal {
	for i, limit := range t.Limits {
		if income.LessThan(limit) {
			return t.Rates[i]
		}
	}
	return t.Rates[len(t.Rates)-1]
}

// ValidPercentage reports whether p lies in [0, 100]
func ValidPercentage(p decimal.Decimal) bool {
	return !p.IsNegative() && p.LessThanOrEqual(hundred)
}

// percentOf returns amount * pct / 100 rounded to cents
func percentOf(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Div(hundred).Round(2)
}

// PaymentCommission prices the ledger entry written when a session block is sold.
// The rate is looked up with the payment itself as the income figure.
func (t Tiers) PaymentCommission(payment decimal.Decimal, ptNumber *int) entity.PaymentNotes {
	pct := t.RateForIncome(payment)
	return entity.PaymentNotes{
		PaymentAmount: payment,
		Percentage:    pct,
		Commission:    percentOf(payment, pct),
		PTNumber:      ptNumber,
	}
}
