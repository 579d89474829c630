// Package otp implements the six-cell one-time-password entry and its
// submission to the account verification endpoint.
package otp

import (
	"errors"
	"strings"
)

// Length is the number of digits in a one-time password.
const Length = 6

var (
	ErrInvalidLength = errors.New("please enter a valid 6-digit OTP")
	ErrNotDigit      = errors.New("otp cells accept a single digit")
	ErrCellRange     = errors.New("otp cell index out of range")
)

// Field is the state of the entry widget: one value per cell and the
// index of the focused cell.
type Field struct {
	cells [Length]string
	focus int
}

func (f *Field) Focus() int {
	return f.focus
}

// Cell returns the value of cell i, or "" when i is out of range.
func (f *Field) Cell(i int) string {
	if i < 0 || i >= Length {
		return ""
	}
	return f.cells[i]
}

// Type sets cell i to s. Anything other than one digit leaves the cell
// empty and keeps the focus. A digit moves the focus to the next cell,
// never past the last one.
func (f *Field) Type(i int, s string) error {
	if i < 0 || i >= Length {
		return ErrCellRange
	}
	f.focus = i
	if s == "" {
		f.cells[i] = ""
		return nil
	}
	if len(s) != 1 || !isDigit(s[0]) {
		f.cells[i] = ""
		return ErrNotDigit
	}
	f.cells[i] = s
	if i < Length-1 {
		f.focus = i + 1
	}
	return nil
}

// Backspace on an empty cell moves the focus back one cell; on a filled
// cell it clears the value.
func (f *Field) Backspace(i int) error {
	if i < 0 || i >= Length {
		return ErrCellRange
	}
	if f.cells[i] != "" {
		f.cells[i] = ""
		f.focus = i
		return nil
	}
	if i > 0 {
		f.focus = i - 1
	}
	return nil
}

// Paste keeps the digits of text, at most Length of them, and writes them
// into the cells from the left. Cells past the pasted digits are left as
// they were. It returns the number of cells filled.
func (f *Field) Paste(text string) int {
	digits := Digits(text)
	for i := 0; i < len(digits); i++ {
		f.cells[i] = digits[i : i+1]
	}
	if len(digits) > 0 {
		f.focus = len(digits) - 1
	}
	return len(digits)
}

// Value is the concatenation of the cells in order.
func (f *Field) Value() string {
	return strings.Join(f.cells[:], "")
}

func (f *Field) Complete() bool {
	return Validate(f.Value()) == nil
}

func (f *Field) Reset() {
	*f = Field{}
}

// Digits returns the first Length ASCII digits of s.
func Digits(s string) string {
	var b strings.Builder
	for i := 0; i < len(s) && b.Len() < Length; i++ {
		if isDigit(s[i]) {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// Validate accepts exactly Length ASCII digits.
func Validate(code string) error {
	if len(code) != Length {
		return ErrInvalidLength
	}
	for i := 0; i < len(code); i++ {
		if !isDigit(code[i]) {
			return ErrNotDigit
		}
	}
	return nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
