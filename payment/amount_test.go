package payment

import "testing"

func TestAmountBufferEntry(t *testing.T) {
	tests := []struct {
		name string
		keys string
		want string
	}{
		{"zero state", "", "0"},
		{"leading zero replaced", "07", "7"},
		{"plain digits", "125", "125"},
		{"decimal entry", "12.50", "12.50"},
		{"trailing decimal shown", "12.", "12."},
		{"second decimal ignored", "1.2.5", "1.25"},
		{"third cent digit dropped", "1.259", "1.25"},
		{"zero then decimal", "0.5", "0.5"},
		{"digit cap", "12345678901", "123456789"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewAmountBuffer()
			for _, k := range tt.keys {
				if k == '.' {
					b.PressDecimal()
				} else {
					b.PressDigit(k)
				}
			}
			if got := b.String(); got != tt.want {
				t.Errorf("keys %q: display = %q, want %q", tt.keys, got, tt.want)
			}
		})
	}
}

func TestAmountBufferBackspace(t *testing.T) {
	b := NewAmountBuffer()
	b.PressDigit('2')
	b.PressDigit('5')
	b.Backspace()
	if got := b.String(); got != "2" {
		t.Errorf("after backspace: %q, want 2", got)
	}
	b.Backspace()
	if got := b.String(); got != "0" {
		t.Errorf("after second backspace: %q, want 0", got)
	}
	b.Backspace()
	if got := b.String(); got != "0" {
		t.Errorf("backspace on zero: %q, want 0", got)
	}
}

func TestAmountBufferAlwaysParses(t *testing.T) {
	// Every reachable state must parse; a trailing dot is the whole
	// dollar amount.
	b := NewAmountBuffer()
	b.PressDigit('2')
	b.PressDecimal()
	if got := b.Amount().String(); got != "2" {
		t.Errorf("amount with trailing dot = %s, want 2", got)
	}
	b.PressDigit('5')
	if got := b.Amount().String(); got != "2.5" {
		t.Errorf("amount = %s, want 2.5", got)
	}
}

func TestAmountBufferIgnoresNonDigits(t *testing.T) {
	b := NewAmountBuffer()
	b.PressDigit('x')
	b.PressDigit('-')
	if got := b.String(); got != "0" {
		t.Errorf("display = %q, want 0", got)
	}
}
