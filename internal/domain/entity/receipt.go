package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/gymcore-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Receipt is an immutable payment record. Type is resolved to its canonical
// form when the receipt is written; RawType keeps the spelling that was submitted.
type Receipt struct {
	ID            uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	ReceiptNumber int                `gorm:"uniqueIndex;not null" json:"receipt_number"`
	Type          enum.ReceiptType   `gorm:"size:50;not null;index" json:"type"`
	RawType       string             `gorm:"size:100" json:"raw_type"`
	Domain        enum.ServiceDomain `gorm:"size:20;index" json:"domain,omitempty"`
	Amount        decimal.Decimal    `gorm:"type:numeric(12,2);not null" json:"amount"`
	PaymentMethod string             `gorm:"size:30;default:'cash'" json:"payment_method"`
	ItemDetails   string             `gorm:"type:text" json:"item_details"`
	MemberID      *uuid.UUID         `gorm:"type:uuid;index" json:"member_id,omitempty"`
	CreatedByID   *uuid.UUID         `gorm:"type:uuid" json:"created_by_id,omitempty"`
	CreatedAt     time.Time          `gorm:"index" json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new receipt
func (r *Receipt) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Receipt model
func (Receipt) TableName() string {
	return "receipts"
}
