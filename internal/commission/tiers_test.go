package commission

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testTiers() Tiers {
	return Tiers{
		Limits: [4]decimal.Decimal{d("1000"), d("3000"), d("6000"), d("9000")},
		Rates:  [5]decimal.Decimal{d("25"), d("30"), d("35"), d("40"), d("45")},
	}
}

func TestRateForIncomeDefaults(t *testing.T) {
	tiers := DefaultTiers()
	tests := []struct {
		income string
		want   string
	}{
		{"0", "25"},
		{"4999.99", "25"},
		{"5000", "30"},
		{"10999", "30"},
		{"11000", "35"},
		{"15000", "40"},
		{"19999.99", "40"},
		{"20000", "45"},
		{"1000000", "45"},
	}

	for _, tt := range tests {
		t.Run(tt.income, func(t *testing.T) {
			got := tiers.RateForIncome(d(tt.income))
			if !got.Equal(d(tt.want)) {
				t.Errorf("RateForIncome(%s) = %s, want %s", tt.income, got, tt.want)
			}
		})
	}
}

func TestRateForIncomeBoundary(t *testing.T) {
	tiers := testTiers()

	if got := tiers.RateForIncome(tiers.Limits[0]); !got.Equal(tiers.Rates[1]) {
		t.Errorf("income at tier1 limit = %s, want tier2 rate %s", got, tiers.Rates[1])
	}
	below := tiers.Limits[0].Sub(decimal.NewFromInt(1))
	if got := tiers.RateForIncome(below); !got.Equal(tiers.Rates[0]) {
		t.Errorf("income below tier1 limit = %s, want tier1 rate %s", got, tiers.Rates[0])
	}
}

func TestRateForIncomeMonotonic(t *testing.T) {
	tiers := DefaultTiers()
	prev := tiers.RateForIncome(decimal.Zero)
	for income := int64(0); income <= 30000; income += 250 {
		got := tiers.RateForIncome(decimal.NewFromInt(income))
		if got.LessThan(prev) {
			t.Fatalf("rate dropped from %s to %s at income %d", prev, got, income)
		}
		prev = got
	}
}

func TestTiersValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Tiers)
		wantErr bool
	}{
		{"defaults", func(*Tiers) {}, false},
		{"equal limits", func(t *Tiers) { t.Limits[1] = t.Limits[0] }, true},
		{"descending limits", func(t *Tiers) { t.Limits[3] = d("10") }, true},
		{"negative limit", func(t *Tiers) { t.Limits[0] = d("-1") }, true},
		{"rate above 100", func(t *Tiers) { t.Rates[4] = d("100.5") }, true},
		{"negative rate", func(t *Tiers) { t.Rates[0] = d("-5") }, true},
		{"rate of 100", func(t *Tiers) { t.Rates[4] = d("100") }, false},
		{"descending rates", func(t *Tiers) { t.Rates[0] = d("50") }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiers := DefaultTiers()
			tt.mutate(&tiers)
			err := tiers.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidTiers) {
				t.Errorf("error %v does not wrap ErrInvalidTiers", err)
			}
		})
	}
}

func TestPaymentCommission(t *testing.T) {
	number := 7
	notes := DefaultTiers().PaymentCommission(d("6000"), &number)

	if !notes.Percentage.Equal(d("30")) {
		t.Errorf("Percentage = %s, want 30", notes.Percentage)
	}
	if !notes.Commission.Equal(d("1800")) {
		t.Errorf("Commission = %s, want 1800", notes.Commission)
	}
	if notes.PTNumber == nil || *notes.PTNumber != 7 {
		t.Errorf("PTNumber = %v, want 7", notes.PTNumber)
	}
}
