package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultTrainerMarker is the position keyword that marks a staff member as a trainer
const DefaultTrainerMarker = "مدرب"

// Staff is an employee of the gym. Trainers are the commission recipients.
type Staff struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	StaffCode string          `gorm:"size:20;uniqueIndex" json:"staff_code"`
	Name      string          `gorm:"size:255;not null;index" json:"name"`
	Phone     *string         `gorm:"size:50" json:"phone,omitempty"`
	Position  string          `gorm:"size:100" json:"position"`
	Salary    decimal.Decimal `gorm:"type:numeric(12,2);default:0" json:"salary"`
	Notes     *string         `gorm:"type:text" json:"notes,omitempty"`
	IsActive  bool            `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating a new staff member
func (s *Staff) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Staff model
func (Staff) TableName() string {
	return "staff"
}

// IsTrainer reports whether the staff member is active and holds a trainer position
func (s *Staff) IsTrainer(marker string) bool {
	if marker == "" {
		marker = DefaultTrainerMarker
	}
	return s.IsActive && strings.Contains(strings.ToLower(s.Position), strings.ToLower(marker))
}
