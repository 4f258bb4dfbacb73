package commission

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format accepted in queries
const DateLayout = "2006-01-02"

var ErrInvalidWindow = errors.New("invalid date range")

// Window is an inclusive time range. End is the last millisecond of the end day.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow spans from midnight of start to 23:59:59.999 of end, in the location of each date
func NewWindow(start, end time.Time) (Window, error) {
	w := Window{Start: startOfDay(start), End: endOfDay(end)}
	if w.End.Before(w.Start) {
		return Window{}, fmt.Errorf("%w: end date is before start date", ErrInvalidWindow)
	}
	return w, nil
}

// ParseWindow parses two calendar dates in loc
func ParseWindow(start, end string, loc *time.Location) (Window, error) {
	if loc == nil {
		loc = time.UTC
	}
	s, err := time.ParseInLocation(DateLayout, strings.TrimSpace(start), loc)
	if err != nil {
		return Window{}, fmt.Errorf("%w: start date must be YYYY-MM-DD", ErrInvalidWindow)
	}
	e, err := time.ParseInLocation(DateLayout, strings.TrimSpace(end), loc)
	if err != nil {
		return Window{}, fmt.Errorf("%w: end date must be YYYY-MM-DD", ErrInvalidWindow)
	}
	return NewWindow(s, e)
}

// Contains reports whether t lies in the window, both ends included
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// Overlaps reports whether a lifetime [from, until] intersects the window.
// A nil bound is open.
func (w Window) Overlaps(from, until *time.Time) bool {
	if from != nil && from.After(w.End) {
		return false
	}
	if until != nil && until.Before(w.Start) {
		return false
	}
	return true
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}
