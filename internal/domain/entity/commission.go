package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/gymcore-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Commission is a ledger entry of money owed to a staff member
type Commission struct {
	ID          uuid.UUID           `gorm:"type:uuid;primary_key" json:"id"`
	StaffID     uuid.UUID           `gorm:"type:uuid;not null;index" json:"staff_id"`
	Amount      decimal.Decimal     `gorm:"type:numeric(12,2);not null" json:"amount"`
	Type        enum.CommissionType `gorm:"size:30;not null;index" json:"type"`
	Description string              `gorm:"type:text" json:"description"`
	Notes       *string             `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time           `gorm:"index" json:"created_at"`

	Staff *Staff `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
}

// BeforeCreate generates a UUID before creating a new ledger entry
func (c *Commission) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Commission model
func (Commission) TableName() string {
	return "commissions"
}

// PaymentNotes is the JSON stored in Notes of a pt_payment entry
type PaymentNotes struct {
	PaymentAmount decimal.Decimal `json:"paymentAmount"`
	Percentage    decimal.Decimal `json:"percentage"`
	Commission    decimal.Decimal `json:"commission"`
	PTNumber      *int            `json:"ptNumber,omitempty"`
}

// CommissionSettingsID is the primary key of the single settings row
const CommissionSettingsID uint = 1

// CommissionSettings holds the income bands used to pick a commission rate.
// There is exactly one row.
type CommissionSettings struct {
	ID         uint            `gorm:"primary_key" json:"id"`
	Tier1Limit decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"tier1_limit"`
	Tier2Limit decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"tier2_limit"`
	Tier3Limit decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"tier3_limit"`
	Tier4Limit decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"tier4_limit"`
	Tier1Rate  decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"tier1_rate"`
	Tier2Rate  decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"tier2_rate"`
	Tier3Rate  decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"tier3_rate"`
	Tier4Rate  decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"tier4_rate"`
	Tier5Rate  decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"tier5_rate"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// TableName returns the table name for the CommissionSettings model
func (CommissionSettings) TableName() string {
	return "commission_settings"
}

// DefaultCommissionSettings returns the stock band table:
// below 5000 pays 25%, below 11000 30%, below 15000 35%, below 20000 40%, else 45%.
func DefaultCommissionSettings() *CommissionSettings {
	return &CommissionSettings{
		ID:         CommissionSettingsID,
		Tier1Limit: decimal.NewFromInt(5000),
		Tier2Limit: decimal.NewFromInt(11000),
		Tier3Limit: decimal.NewFromInt(15000),
		Tier4Limit: decimal.NewFromInt(20000),
		Tier1Rate:  decimal.NewFromInt(25),
		Tier2Rate:  decimal.NewFromInt(30),
		Tier3Rate:  decimal.NewFromInt(35),
		Tier4Rate:  decimal.NewFromInt(40),
		Tier5Rate:  decimal.NewFromInt(45),
	}
}

// SettingDefaultCommissionMethod is the system setting key of the default calculation method
const SettingDefaultCommissionMethod = "commission.default_method"

// SystemSetting is a global key/value setting
type SystemSetting struct {
	Key         string     `gorm:"size:100;primary_key" json:"key"`
	Value       string     `gorm:"type:text;not null" json:"value"`
	UpdatedByID *uuid.UUID `gorm:"type:uuid" json:"updated_by_id,omitempty"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TableName returns the table name for the SystemSetting model
func (SystemSetting) TableName() string {
	return "system_settings"
}
