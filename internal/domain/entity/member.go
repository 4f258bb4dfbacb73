package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Member is a gym client holding a membership
type Member struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	MemberNumber      int             `gorm:"uniqueIndex" json:"member_number"`
	Name              string          `gorm:"size:255;not null;index" json:"name"`
	Phone             string          `gorm:"size:50;index" json:"phone"`
	IsActive          bool            `gorm:"default:true" json:"is_active"`
	SubscriptionPrice decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"subscription_price"`
	RemainingAmount   decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"remaining_amount"`
	StartDate         *time.Time      `json:"start_date,omitempty"`
	ExpiryDate        *time.Time      `json:"expiry_date,omitempty"`
	QRCode            string          `gorm:"size:32;uniqueIndex" json:"qr_code"`
	SignupStaffID     *uuid.UUID      `gorm:"type:uuid;index" json:"signup_staff_id,omitempty"`
	Notes             *string         `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
	DeletedAt         gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new member
func (m *Member) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Member model
func (Member) TableName() string {
	return "members"
}

// CheckInMethodScan is recorded when a member checks in with their QR code
const CheckInMethodScan = "scan"

// MemberCheckIn records one visit of a member to the gym
type MemberCheckIn struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	MemberID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"member_id"`
	CheckInTime      time.Time  `gorm:"not null;index" json:"check_in_time"`
	ExpectedCheckOut time.Time  `gorm:"not null;index" json:"expected_check_out"`
	CheckOutTime     *time.Time `json:"check_out_time,omitempty"`
	Method           string     `gorm:"size:20;default:'scan'" json:"method"`
	CreatedAt        time.Time  `json:"created_at"`

	Member *Member `gorm:"foreignKey:MemberID" json:"member,omitempty"`
}

// BeforeCreate generates a UUID before creating a new check-in
func (c *MemberCheckIn) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the MemberCheckIn model
func (MemberCheckIn) TableName() string {
	return "member_check_ins"
}

// IsOpen reports whether the member is still considered inside the gym at now
func (c *MemberCheckIn) IsOpen(now time.Time) bool {
	return c.CheckOutTime == nil && c.ExpectedCheckOut.After(now)
}
