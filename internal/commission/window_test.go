package commission

import (
	"errors"
	"testing"
	"time"
)

func testWindow(t *testing.T) Window {
	t.Helper()
	w, err := ParseWindow("2024-03-01", "2024-03-31", time.UTC)
	if err != nil {
		t.Fatalf("ParseWindow: %v", err)
	}
	return w
}

func TestWindowInclusiveEnd(t *testing.T) {
	w := testWindow(t)
	lastMilli := time.Date(2024, 3, 31, 23, 59, 59, int(999*time.Millisecond), time.UTC)

	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"start of first day", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), true},
		{"before start", time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC), false},
		{"last millisecond", lastMilli, true},
		{"one millisecond later", lastMilli.Add(time.Millisecond), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.Contains(tt.at); got != tt.want {
				t.Errorf("Contains(%s) = %v, want %v", tt.at, got, tt.want)
			}
		})
	}
}

func TestParseWindowErrors(t *testing.T) {
	tests := []struct {
		start, end string
	}{
		{"", "2024-03-01"},
		{"2024-03-01", "31/03/2024"},
		{"2024-03-10", "2024-03-01"},
	}

	for _, tt := range tests {
		if _, err := ParseWindow(tt.start, tt.end, time.UTC); !errors.Is(err, ErrInvalidWindow) {
			t.Errorf("ParseWindow(%q, %q) error = %v, want ErrInvalidWindow", tt.start, tt.end, err)
		}
	}
}

func TestWindowOverlaps(t *testing.T) {
	w := testWindow(t)
	before := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	inside := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	after := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		from, until *time.Time
		want        bool
	}{
		{"open lifetime", nil, nil, true},
		{"starts after window", &after, nil, false},
		{"expired before window", nil, &before, false},
		{"spans window", &before, &after, true},
		{"starts inside", &inside, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.Overlaps(tt.from, tt.until); got != tt.want {
				t.Errorf("Overlaps() = %v, want %v", got, tt.want)
			}
		})
	}
}
