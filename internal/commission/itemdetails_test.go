package commission

import (
	"errors"
	"testing"
)

func TestStaffNameFromItemDetails(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr error
	}{
		{"padded name", `{"coachName":"  Alice  ","sessionsPurchased":8}`, "Alice", nil},
		{"empty blob", "", "", ErrMissingStaffName},
		{"missing key", `{"clientName":"Bob"}`, "", ErrMissingStaffName},
		{"blank name", `{"coachName":"   "}`, "", ErrMissingStaffName},
		{"null name", `{"coachName":null}`, "", ErrMissingStaffName},
		{"truncated", `{"coachName":"Al`, "", ErrMalformedItemDetails},
		{"array", `["Alice"]`, "", ErrMalformedItemDetails},
		{"null document", `null`, "", ErrMalformedItemDetails},
		{"number name", `{"coachName":42}`, "", ErrMalformedItemDetails},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := StaffNameFromItemDetails(tt.raw, "coachName")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("name = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodePaymentNotes(t *testing.T) {
	notes, err := DecodePaymentNotes(`{"paymentAmount":1000,"percentage":25,"commission":250,"ptNumber":12}`)
	if err != nil {
		t.Fatalf("DecodePaymentNotes: %v", err)
	}
	if !notes.Commission.Equal(d("250")) || notes.PTNumber == nil || *notes.PTNumber != 12 {
		t.Errorf("decoded notes = %+v", notes)
	}

	for _, raw := range []string{`{`, `{"paymentAmount":1,"extra":true}`, `{"paymentAmount":1} {}`} {
		if _, err := DecodePaymentNotes(raw); !errors.Is(err, ErrMalformedNotes) {
			t.Errorf("DecodePaymentNotes(%q) error = %v, want ErrMalformedNotes", raw, err)
		}
	}
}

func TestEncodePaymentNotesRoundTrip(t *testing.T) {
	number := 3
	in := DefaultTiers().PaymentCommission(d("12000"), &number)

	out, err := DecodePaymentNotes(EncodePaymentNotes(in))
	if err != nil {
		t.Fatalf("DecodePaymentNotes: %v", err)
	}
	if !out.PaymentAmount.Equal(in.PaymentAmount) || !out.Commission.Equal(in.Commission) {
		t.Errorf("round trip = %+v, want %+v", out, in)
	}
}
