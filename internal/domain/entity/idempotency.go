package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IdempotencyTTL is how long a stored receipt response can be replayed
const IdempotencyTTL = 24 * time.Hour

// IdempotencyKey remembers the response of a write so a retried request
// with the same Idempotency-Key header replays it instead of writing twice.
type IdempotencyKey struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Key          string    `gorm:"size:255;not null;uniqueIndex:idx_idempotency_user_key" json:"key"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_idempotency_user_key" json:"user_id"`
	Endpoint     string    `gorm:"size:255;not null" json:"endpoint"`
	RequestHash  string    `gorm:"size:64" json:"request_hash"`
	ResponseCode int       `gorm:"not null" json:"response_code"`
	ResponseBody string    `gorm:"type:text" json:"response_body"`
	CreatedAt    time.Time `json:"created_at"`
	ExpiresAt    time.Time `gorm:"not null;index" json:"expires_at"`
}

// TableName returns the table name for IdempotencyKey
func (IdempotencyKey) TableName() string {
	return "idempotency_keys"
}

// BeforeCreate generates a UUID and the expiry before storing the key
func (i *IdempotencyKey) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.ExpiresAt.IsZero() {
		i.ExpiresAt = time.Now().Add(IdempotencyTTL)
	}
	return nil
}

// IsExpiredAt reports whether the key can no longer be replayed at now
func (i *IdempotencyKey) IsExpiredAt(now time.Time) bool {
	return !now.Before(i.ExpiresAt)
}

// SameRequest reports whether hash identifies the request that produced the stored response.
// Keys stored without a hash match any request.
func (i *IdempotencyKey) SameRequest(endpoint, hash string) bool {
	if i.Endpoint != endpoint {
		return false
	}
	return i.RequestHash == "" || i.RequestHash == hash
}
