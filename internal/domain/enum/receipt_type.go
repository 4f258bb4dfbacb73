package enum

import (
	"errors"
	"strings"
)

// ReceiptType is the canonical tag of what a receipt was issued for
type ReceiptType string

const (
	ReceiptNewPT          ReceiptType = "newPT"
	ReceiptPTDayUse       ReceiptType = "ptDayUse"
	ReceiptPTRenewal      ReceiptType = "ptRenewal"
	ReceiptPTPayRemaining ReceiptType = "ptPayRemaining"

	ReceiptNewNutrition          ReceiptType = "newNutrition"
	ReceiptNutritionDayUse       ReceiptType = "nutritionDayUse"
	ReceiptNutritionRenewal      ReceiptType = "nutritionRenewal"
	ReceiptNutritionPayRemaining ReceiptType = "nutritionPayRemaining"

	ReceiptNewPhysiotherapy          ReceiptType = "newPhysiotherapy"
	ReceiptPhysiotherapyDayUse       ReceiptType = "physiotherapyDayUse"
	ReceiptPhysiotherapyRenewal      ReceiptType = "physiotherapyRenewal"
	ReceiptPhysiotherapyPayRemaining ReceiptType = "physiotherapyPayRemaining"

	ReceiptNewGroupClass     ReceiptType = "newGroupClass"
	ReceiptGroupClassDayUse  ReceiptType = "groupClassDayUse"
	ReceiptGroupClassRenewal ReceiptType = "groupClassRenewal"
	ReceiptMember            ReceiptType = "member"
	ReceiptMembershipRenewal ReceiptType = "membershipRenewal"
	ReceiptDayUse            ReceiptType = "dayUse"
	ReceiptInBody            ReceiptType = "inBody"
	ReceiptPayment           ReceiptType = "payment"
)

var ErrUnknownReceiptType = errors.New("unknown receipt type")

// receiptAliases lists every historical spelling of each canonical type
var receiptAliases = []struct {
	canonical ReceiptType
	aliases   []string
}{
	{ReceiptNewPT, []string{"PT", "pt", "برايفت جديد", "اشتراك برايفت"}},
	{ReceiptPTDayUse, []string{"PT Day Use"}},
	{ReceiptPTRenewal, []string{"تجديد برايفت"}},
	{ReceiptPTPayRemaining, []string{"دفع باقي برايفت"}},

	{ReceiptNewNutrition, []string{"تغذية جديدة", "اشتراك تغذية", "اشتراك تغذية جديد", "new nutrition"}},
	{ReceiptNutritionDayUse, []string{"Nutrition Day Use"}},
	{ReceiptNutritionRenewal, []string{"تجديد تغذية"}},
	{ReceiptNutritionPayRemaining, []string{"دفع باقي تغذية"}},

	{ReceiptNewPhysiotherapy, []string{"علاج طبيعي جديد", "اشتراك علاج طبيعي", "اشتراك علاج طبيعي جديد", "new physiotherapy"}},
	{ReceiptPhysiotherapyDayUse, []string{"Physiotherapy Day Use"}},
	{ReceiptPhysiotherapyRenewal, []string{"تجديد علاج طبيعي"}},
	{ReceiptPhysiotherapyPayRemaining, []string{"دفع باقي علاج طبيعي"}},

	{ReceiptNewGroupClass, []string{"اشتراك جروب كلاسيس جديد"}},
	{ReceiptGroupClassDayUse, []string{"GroupClass Day Use"}},
	{ReceiptGroupClassRenewal, []string{"تجديد جروب كلاسيس"}},
	{ReceiptMember, []string{"Member"}},
	{ReceiptMembershipRenewal, []string{"تجديد عضويه", "تجديد عضوية"}},
	{ReceiptPayment, []string{"Payment"}},
}

var legacyReceiptTypes = func() map[string]ReceiptType {
	m := make(map[string]ReceiptType)
	for _, a := range receiptAliases {
		for _, alias := range a.aliases {
			m[alias] = a.canonical
		}
	}
	return m
}()

var generalReceiptTypes = []ReceiptType{
	ReceiptNewGroupClass, ReceiptGroupClassDayUse, ReceiptGroupClassRenewal,
	ReceiptMember, ReceiptMembershipRenewal, ReceiptDayUse, ReceiptInBody, ReceiptPayment,
}

// ParseReceiptType resolves a raw receipt type, current or legacy, to its canonical form
func ParseReceiptType(raw string) (ReceiptType, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", ErrUnknownReceiptType
	}

	if t, ok := legacyReceiptTypes[s]; ok {
		return t, nil
	}
	if t := ReceiptType(s); t.IsKnown() {
		return t, nil
	}

	// tolerate casing drift on latin spellings
	for alias, t := range legacyReceiptTypes {
		if strings.EqualFold(alias, s) {
			return t, nil
		}
	}
	for _, d := range AllServiceDomains() {
		for _, t := range d.ReceiptTypes() {
			if strings.EqualFold(string(t), s) {
				return t, nil
			}
		}
	}
	for _, t := range generalReceiptTypes {
		if strings.EqualFold(string(t), s) {
			return t, nil
		}
	}

	return "", ErrUnknownReceiptType
}

// IsKnown reports whether t is one of the canonical receipt types
func (t ReceiptType) IsKnown() bool {
	if _, ok := t.Domain(); ok {
		return true
	}
	for _, g := range generalReceiptTypes {
		if g == t {
			return true
		}
	}
	return false
}

// Domain returns the service domain whose revenue this receipt counts toward
func (t ReceiptType) Domain() (ServiceDomain, bool) {
	for _, d := range AllServiceDomains() {
		for _, rt := range d.ReceiptTypes() {
			if rt == t {
				return d, true
			}
		}
	}
	return "", false
}

func (t ReceiptType) String() string {
	return string(t)
}
