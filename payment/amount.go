// Package payment holds the money-movement core: amount entry, fee
// preview, validation, and the orchestrator that drives remote
// submissions. Everything here is terminal-agnostic so the rules can
// be tested without a running UI.
package payment

import (
	"strings"

	"github.com/shopspring/decimal"
)

// maxDigits caps the keypad entry. Nine significant digits is far past
// any realistic transfer and keeps the display from overflowing.
const maxDigits = 9

// AmountBuffer models keypad amount entry as a display string. The
// empty state renders as "0" and further rules keep the buffer a valid
// decimal at every step, so Amount never fails to parse.
type AmountBuffer struct {
	raw string
}

// NewAmountBuffer returns a buffer in the zero state.
func NewAmountBuffer() AmountBuffer {
	return AmountBuffer{raw: "0"}
}

// PressDigit appends a digit. A leading lone "0" is replaced rather
// than extended, so "07" can never appear. Cents past two decimal
// places and digits past the cap are dropped.
func (b *AmountBuffer) PressDigit(d rune) {
	if d < '0' || d > '9' {
		return
	}
	if dot := strings.IndexByte(b.raw, '.'); dot >= 0 && len(b.raw)-dot-1 >= 2 {
		return
	}
	if digitCount(b.raw) >= maxDigits {
		return
	}
	if b.raw == "0" {
		b.raw = string(d)
		return
	}
	b.raw += string(d)
}

// PressDecimal starts the cents part. A second press is a no-op.
func (b *AmountBuffer) PressDecimal() {
	if strings.ContainsRune(b.raw, '.') {
		return
	}
	b.raw += "."
}

// Backspace removes the last character, collapsing back to "0" rather
// than going empty.
func (b *AmountBuffer) Backspace() {
	if len(b.raw) <= 1 {
		b.raw = "0"
		return
	}
	b.raw = b.raw[:len(b.raw)-1]
}

// Reset returns the buffer to the zero state.
func (b *AmountBuffer) Reset() {
	b.raw = "0"
}

// String returns the raw entry for display, trailing dot included.
func (b AmountBuffer) String() string {
	if b.raw == "" {
		return "0"
	}
	return b.raw
}

// Amount parses the buffer. A trailing dot parses as the whole-dollar
// value.
func (b AmountBuffer) Amount() decimal.Decimal {
	raw := strings.TrimSuffix(b.String(), ".")
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// IsZero reports whether the entered amount is zero.
func (b AmountBuffer) IsZero() bool {
	return b.Amount().IsZero()
}

func digitCount(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
