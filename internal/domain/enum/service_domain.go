package enum

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// ServiceDomain identifies a line of paid one-on-one services
type ServiceDomain string

const (
	DomainPT            ServiceDomain = "pt"
	DomainNutrition     ServiceDomain = "nutrition"
	DomainPhysiotherapy ServiceDomain = "physiotherapy"
)

// domainDescriptor holds what differs between service domains
type domainDescriptor struct {
	staffNameKey    string
	staffTitle      string
	saleReceiptType ReceiptType
	receiptTypes    []ReceiptType
}

var descriptors = map[ServiceDomain]domainDescriptor{
	DomainPT: {
		staffNameKey:    "coachName",
		staffTitle:      "coach",
		saleReceiptType: ReceiptNewPT,
		receiptTypes:    []ReceiptType{ReceiptNewPT, ReceiptPTDayUse, ReceiptPTRenewal, ReceiptPTPayRemaining},
	},
	DomainNutrition: {
		staffNameKey:    "nutritionistName",
		staffTitle:      "nutritionist",
		saleReceiptType: ReceiptNewNutrition,
		receiptTypes:    []ReceiptType{ReceiptNewNutrition, ReceiptNutritionDayUse, ReceiptNutritionRenewal, ReceiptNutritionPayRemaining},
	},
	DomainPhysiotherapy: {
		staffNameKey:    "therapistName",
		staffTitle:      "therapist",
		saleReceiptType: ReceiptNewPhysiotherapy,
		receiptTypes:    []ReceiptType{ReceiptNewPhysiotherapy, ReceiptPhysiotherapyDayUse, ReceiptPhysiotherapyRenewal, ReceiptPhysiotherapyPayRemaining},
	},
}

// AllServiceDomains returns every known domain in display order
func AllServiceDomains() []ServiceDomain {
	return []ServiceDomain{DomainPT, DomainNutrition, DomainPhysiotherapy}
}

// ParseServiceDomain accepts the canonical names plus the short "physio" form
func ParseServiceDomain(s string) (ServiceDomain, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pt":
		return DomainPT, nil
	case "nutrition":
		return DomainNutrition, nil
	case "physiotherapy", "physio":
		return DomainPhysiotherapy, nil
	}
	return "", fmt.Errorf("unknown service domain %q", s)
}

func (d ServiceDomain) IsValid() bool {
	_, ok := descriptors[d]
	return ok
}

func (d ServiceDomain) String() string {
	return string(d)
}

// StaffNameKey is the item details key carrying the assigned staff member
func (d ServiceDomain) StaffNameKey() string {
	return descriptors[d].staffNameKey
}

// StaffTitle is the singular noun for the staff member who delivers the service
func (d ServiceDomain) StaffTitle() string {
	return descriptors[d].staffTitle
}

// SaleReceiptType is the receipt type written when a new session block is sold
func (d ServiceDomain) SaleReceiptType() ReceiptType {
	return descriptors[d].saleReceiptType
}

// ReceiptTypes lists the canonical receipt types that count as revenue for d
func (d ServiceDomain) ReceiptTypes() []ReceiptType {
	return descriptors[d].receiptTypes
}

func (d ServiceDomain) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(d))
}

func (d *ServiceDomain) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	parsed, err := ParseServiceDomain(str)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d ServiceDomain) Value() (driver.Value, error) {
	return string(d), nil
}

func (d *ServiceDomain) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = ""
	case string:
		*d = ServiceDomain(v)
	case []byte:
		*d = ServiceDomain(string(v))
	default:
		return fmt.Errorf("cannot scan %T into ServiceDomain", value)
	}
	return nil
}
