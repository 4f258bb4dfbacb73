package commission

import "github.com/google/uuid"

// Anomaly is a record left out of a calculation because its data could not be trusted
type Anomaly struct {
	Source string    `json:"source"`
	ID     uuid.UUID `json:"id"`
	Reason string    `json:"reason"`
}

const (
	SourceReceipt    = "receipt"
	SourceSession    = "session"
	SourceCommission = "commission"
)
