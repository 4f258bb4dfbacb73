package commission

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/sangkips/gymcore-api/internal/domain/entity"
)

var (
	ErrMalformedItemDetails = errors.New("malformed item details")
	ErrMissingStaffName     = errors.New("item details carry no staff name")
	ErrMalformedNotes       = errors.New("malformed commission notes")
)

// StaffNameFromItemDetails decodes a receipt's item details object and returns
// the trimmed staff name stored under key.
func StaffNameFromItemDetails(raw, key string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrMissingStaffName
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedItemDetails, err)
	}
	if fields == nil {
		return "", fmt.Errorf("%w: not an object", ErrMalformedItemDetails)
	}

	value, ok := fields[key]
	if !ok || string(value) == "null" {
		return "", ErrMissingStaffName
	}

	var name string
	if err := json.Unmarshal(value, &name); err != nil {
		return "", fmt.Errorf("%w: %s is not a string", ErrMalformedItemDetails, key)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrMissingStaffName
	}
	return name, nil
}

// DecodePaymentNotes strictly decodes the notes of a pt_payment ledger entry
func DecodePaymentNotes(raw string) (*entity.PaymentNotes, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.DisallowUnknownFields()

	var notes entity.PaymentNotes
	if err := dec.Decode(&notes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedNotes, err)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data", ErrMalformedNotes)
	}
	return &notes, nil
}

// EncodePaymentNotes renders notes the way DecodePaymentNotes reads them
func EncodePaymentNotes(notes entity.PaymentNotes) string {
	b, _ := json.Marshal(notes)
	return string(b)
}

// SameStaff compares two staff names ignoring case and surrounding whitespace
func SameStaff(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// staffKey groups names the way SameStaff compares them
func staffKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
