package printer

import (
	"bytes"
	"strings"
	"unicode/utf8"
)

const (
	esc = 0x1B
	gs  = 0x1D
	lf  = 0x0A
)

// Slip accumulates an ESC/POS receipt. Width is the paper width in characters:
// 32 for 58mm rolls, 48 for 80mm.
type Slip struct {
	buf   bytes.Buffer
	width int
}

// NewSlip starts a slip with the printer reset
func NewSlip(width int) *Slip {
	if width <= 0 {
		width = 32
	}
	s := &Slip{width: width}
	s.buf.Write([]byte{esc, '@'})
	return s
}

// Heading prints centred double-size bold text
func (s *Slip) Heading(text string) *Slip {
	s.buf.Write([]byte{esc, 'a', 1, esc, 'E', 1, gs, '!', 0x11})
	s.line(text)
	s.buf.Write([]byte{gs, '!', 0x00, esc, 'E', 0, esc, 'a', 0})
	return s
}

// Centered prints one centred line
func (s *Slip) Centered(text string) *Slip {
	s.buf.Write([]byte{esc, 'a', 1})
	s.line(text)
	s.buf.Write([]byte{esc, 'a', 0})
	return s
}

// Rule prints a full-width dashed line
func (s *Slip) Rule() *Slip {
	s.line(strings.Repeat("-", s.width))
	return s
}

// Pair prints label on the left and value flush right. Values that do not fit
// go on their own line.
func (s *Slip) Pair(label, value string) *Slip {
	gap := s.width - utf8.RuneCountInString(label) - utf8.RuneCountInString(value)
	if gap < 1 {
		s.line(label)
		gap = s.width - utf8.RuneCountInString(value)
		if gap < 0 {
			gap = 0
		}
		s.line(strings.Repeat(" ", gap) + value)
		return s
	}
	s.line(label + strings.Repeat(" ", gap) + value)
	return s
}

// Bold prints a Pair in bold
func (s *Slip) Bold(label, value string) *Slip {
	s.buf.Write([]byte{esc, 'E', 1})
	s.Pair(label, value)
	s.buf.Write([]byte{esc, 'E', 0})
	return s
}

// Finish feeds the paper past the cutter and cuts. It returns the slip bytes.
func (s *Slip) Finish() []byte {
	s.buf.Write([]byte{esc, 'd', 3, gs, 'V', 1})
	return s.buf.Bytes()
}

func (s *Slip) line(text string) {
	s.buf.WriteString(text)
	s.buf.WriteByte(lf)
}
