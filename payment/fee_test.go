package payment

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestEstimateInstantFee(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"10", "0.25"},   // 1.5% is 0.15, floor applies
		{"16.66", "0.25"},
		{"16.67", "0.25"},
		{"20", "0.3"},
		{"100", "1.5"},
		{"0", "0.25"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			got := EstimateInstantFee(decimal.RequireFromString(tt.amount))
			if !got.Equal(decimal.RequireFromString(tt.want)) {
				t.Errorf("fee(%s) = %s, want %s", tt.amount, got, tt.want)
			}
		})
	}
}
