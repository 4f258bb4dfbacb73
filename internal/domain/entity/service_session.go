package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/gymcore-api/internal/domain/enum"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ServiceSession is a block of PT, nutrition or physiotherapy sessions bought by a client.
// SessionsRemaining stays within [0, SessionsPurchased].
type ServiceSession struct {
	ID                uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	Domain            enum.ServiceDomain `gorm:"size:20;not null;uniqueIndex:idx_session_domain_number" json:"domain"`
	Number            int                `gorm:"not null;uniqueIndex:idx_session_domain_number" json:"number"`
	ClientName        string             `gorm:"size:255;not null" json:"client_name"`
	Phone             string             `gorm:"size:50" json:"phone"`
	MemberID          *uuid.UUID         `gorm:"type:uuid;index" json:"member_id,omitempty"`
	SessionsPurchased int                `gorm:"not null" json:"sessions_purchased"`
	SessionsRemaining int                `gorm:"not null" json:"sessions_remaining"`
	StaffName         string             `gorm:"size:255;not null;index" json:"staff_name"`
	PricePerSession   decimal.Decimal    `gorm:"type:numeric(12,2);not null" json:"price_per_session"`
	StartDate         *time.Time         `json:"start_date,omitempty"`
	ExpiryDate        *time.Time         `json:"expiry_date,omitempty"`
	CreatedAt         time.Time          `gorm:"index" json:"created_at"`
	UpdatedAt         time.Time          `json:"updated_at"`
	DeletedAt         gorm.DeletedAt     `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new session block
func (s *ServiceSession) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ServiceSession model
func (ServiceSession) TableName() string {
	return "service_sessions"
}

// UsedSessions is the number of sessions already attended
func (s *ServiceSession) UsedSessions() int {
	return s.SessionsPurchased - s.SessionsRemaining
}

// TotalPrice is what the client paid for the whole block
func (s *ServiceSession) TotalPrice() decimal.Decimal {
	return s.PricePerSession.Mul(decimal.NewFromInt(int64(s.SessionsPurchased)))
}

// SessionAttendance records one attended session taken from a block
type SessionAttendance struct {
	ID           uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	SessionID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"session_id"`
	AttendedAt   time.Time  `gorm:"not null;index" json:"attended_at"`
	RecordedByID *uuid.UUID `gorm:"type:uuid" json:"recorded_by_id,omitempty"`
	Notes        *string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// BeforeCreate generates a UUID before creating a new attendance record
func (a *SessionAttendance) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SessionAttendance model
func (SessionAttendance) TableName() string {
	return "session_attendances"
}
