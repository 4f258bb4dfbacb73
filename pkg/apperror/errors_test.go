package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestGetAppError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"sentinel", ErrNotFound, http.StatusNotFound},
		{"wrapped", fmt.Errorf("loading member: %w", ErrForbidden), http.StatusForbidden},
		{"field", NewFieldError("staffName", "required"), http.StatusUnprocessableEntity},
		{"plain", errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GetAppError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("GetAppError(%v).Code = %d, want %d", tt.err, got.Code, tt.wantCode)
			}
		})
	}
}

func TestGetAppErrorHidesInternalMessage(t *testing.T) {
	got := GetAppError(errors.New("pq: password authentication failed"))
	if got.Message != ErrInternalServer.Message {
		t.Errorf("Message = %q, want %q", got.Message, ErrInternalServer.Message)
	}
}

func TestNewFieldError(t *testing.T) {
	err := NewFieldError("percentage", "must be between 0 and 100")
	if len(err.Errors) != 1 {
		t.Fatalf("len(Errors) = %d, want 1", len(err.Errors))
	}
	if err.Errors[0].Field != "percentage" {
		t.Errorf("Field = %q, want %q", err.Errors[0].Field, "percentage")
	}
}
