package request

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// StaffRequest creates or updates a staff member
type StaffRequest struct {
	Name     string          `json:"name" validate:"required,max=255"`
	Phone    *string         `json:"phone" validate:"omitempty,max=50"`
	Position string          `json:"position" validate:"max=100"`
	Salary   decimal.Decimal `json:"salary"`
	Notes    *string         `json:"notes"`
	IsActive *bool           `json:"is_active"`
}

// CreateMemberRequest registers a member. Dates use YYYY-MM-DD.
type CreateMemberRequest struct {
	MemberNumber      int             `json:"member_number" validate:"gte=0"`
	Name              string          `json:"name" validate:"required,max=255"`
	Phone             string          `json:"phone" validate:"max=50"`
	SubscriptionPrice decimal.Decimal `json:"subscription_price"`
	RemainingAmount   decimal.Decimal `json:"remaining_amount"`
	StartDate         string          `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	ExpiryDate        string          `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
	SignupStaffID     *string         `json:"signup_staff_id" validate:"omitempty,uuid"`
	Notes             *string         `json:"notes"`
}

// MemberStatusRequest enables or disables a member
type MemberStatusRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

// CheckInRequest identifies a member by scanned code or ID
type CheckInRequest struct {
	QRCode   string  `json:"qr_code"`
	MemberID *string `json:"member_id" validate:"omitempty,uuid"`
}

// CreateReceiptRequest issues a receipt. Type accepts current and legacy names.
type CreateReceiptRequest struct {
	Type          string          `json:"type" validate:"required"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method" validate:"max=50"`
	ItemDetails   json.RawMessage `json:"item_details"`
	MemberID      *string         `json:"member_id" validate:"omitempty,uuid"`
}

// CreateSessionRequest sells a block of sessions
type CreateSessionRequest struct {
	Number            int             `json:"number" validate:"required,gt=0"`
	ClientName        string          `json:"client_name" validate:"required,max=255"`
	Phone             string          `json:"phone" validate:"max=50"`
	MemberID          *string         `json:"member_id" validate:"omitempty,uuid"`
	SessionsPurchased int             `json:"sessions_purchased" validate:"required,gt=0"`
	PricePerSession   decimal.Decimal `json:"price_per_session"`
	StaffName         string          `json:"staff_name" validate:"required,max=255"`
	StartDate         string          `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	ExpiryDate        string          `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
	PaymentMethod     string          `json:"payment_method" validate:"max=50"`
}

// AttendanceRequest records an attended session
type AttendanceRequest struct {
	Notes *string `json:"notes"`
}

// CalculateCommissionRequest asks for the payout of one staff member
type CalculateCommissionRequest struct {
	Domain       string           `json:"domain" validate:"required"`
	Method       string           `json:"method" validate:"omitempty,oneof=revenue sessions"`
	StaffName    string           `json:"staff_name"`
	StartDate    string           `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate      string           `json:"end_date" validate:"required,datetime=2006-01-02"`
	CustomIncome *decimal.Decimal `json:"custom_income"`
	Percentage   *decimal.Decimal `json:"percentage"`
}

// CommissionStatementRequest mails a calculated payout
type CommissionStatementRequest struct {
	CalculateCommissionRequest
	Email string `json:"email" validate:"required,email"`
}

// CommissionSettingsRequest replaces the tier table
type CommissionSettingsRequest struct {
	Tier1Limit decimal.Decimal `json:"tier1_limit"`
	Tier2Limit decimal.Decimal `json:"tier2_limit"`
	Tier3Limit decimal.Decimal `json:"tier3_limit"`
	Tier4Limit decimal.Decimal `json:"tier4_limit"`
	Tier1Rate  decimal.Decimal `json:"tier1_rate"`
	Tier2Rate  decimal.Decimal `json:"tier2_rate"`
	Tier3Rate  decimal.Decimal `json:"tier3_rate"`
	Tier4Rate  decimal.Decimal `json:"tier4_rate"`
	Tier5Rate  decimal.Decimal `json:"tier5_rate"`
}

// DefaultMethodRequest changes the default calculation method
type DefaultMethodRequest struct {
	DefaultMethod string `json:"default_method" validate:"required"`
}
