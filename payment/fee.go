package payment

import "github.com/shopspring/decimal"

var (
	instantFeeRate = decimal.RequireFromString("0.015")
	instantFeeMin  = decimal.RequireFromString("0.25")
)

// EstimateInstantFee previews the instant-transfer fee: 1.5% of the
// amount with a $0.25 floor. This is display-only; the server's fee on
// the completed transaction is the one that counts.
func EstimateInstantFee(amount decimal.Decimal) decimal.Decimal {
	fee := amount.Mul(instantFeeRate).Round(2)
	if fee.LessThan(instantFeeMin) {
		return instantFeeMin
	}
	return fee
}
