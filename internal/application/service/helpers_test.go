package service

import (
	"testing"
	"time"

	"github.com/sangkips/gymcore-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	v := dec(s)
	return &v
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", s)
	if err != nil {
		panic(err)
	}
	return t
}

func dayPtr(s string) *time.Time {
	t := day(s)
	return &t
}

func assertStatus(t *testing.T, err error, want int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected an error with status %d, got nil", want)
	}
	if !apperror.IsAppError(err) {
		t.Fatalf("expected an AppError with status %d, got %v", want, err)
	}
	if got := apperror.GetAppError(err).Code; got != want {
		t.Fatalf("status = %d, want %d (%v)", got, want, err)
	}
}
