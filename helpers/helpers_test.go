package helpers

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestFormatUSD(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"25.5", "$25.50"},
		{"1234.567", "$1234.57"},
	}
	for _, tt := range tests {
		if got := FormatUSD(decimal.RequireFromString(tt.in)); got != tt.want {
			t.Errorf("FormatUSD(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatSignedUSD(t *testing.T) {
	d := decimal.RequireFromString("5")
	if got := FormatSignedUSD(d, true); got != "+$5.00" {
		t.Errorf("incoming = %q, want +$5.00", got)
	}
	if got := FormatSignedUSD(d, false); got != "-$5.00" {
		t.Errorf("outgoing = %q, want -$5.00", got)
	}
}

func TestInitial(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"bob", "B"},
		{" alice", "A"},
		{"", "?"},
		{"émile", "É"},
	}
	for _, tt := range tests {
		if got := Initial(tt.in); got != tt.want {
			t.Errorf("Initial(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMaskCardNumber(t *testing.T) {
	if got := MaskCardNumber("4111 1111 1111 1234"); got != "•••• •••• •••• 1234" {
		t.Errorf("mask = %q", got)
	}
}

func TestGroupCardNumber(t *testing.T) {
	if got := GroupCardNumber("4111111111111234"); got != "4111 1111 1111 1234" {
		t.Errorf("group = %q", got)
	}
}

func TestRelativeDay(t *testing.T) {
	now := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)
	tests := []struct {
		t    time.Time
		want string
	}{
		{time.Date(2026, 3, 10, 2, 0, 0, 0, time.UTC), "Today"},
		{time.Date(2026, 3, 9, 23, 0, 0, 0, time.UTC), "Yesterday"},
		{time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC), "Feb 14"},
	}
	for _, tt := range tests {
		if got := RelativeDay(tt.t, now); got != tt.want {
			t.Errorf("RelativeDay(%v) = %q, want %q", tt.t, got, tt.want)
		}
	}
}
