package utils

import "github.com/shopspring/decimal" // Fixed-point amounts

// FormatPrice renders an amount stored in the smallest currency unit.
// decimals is the currency exponent: 0 for FCFA, 2 for EUR.
func FormatPrice(amount int64, decimals int32) string {
	if decimals < 0 {
		decimals = 0
	}
	return decimal.New(amount, -decimals).StringFixed(decimals)
}
