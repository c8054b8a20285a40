// Package core provides the expense domain model shared by the gateway,
// service and storage layers.
package core

import "github.com/shopspring/decimal"

// RoundAmount rounds a monetary amount to two decimal places using exact
// decimal arithmetic, avoiding float drift on values like 2.675.
func RoundAmount(v float64) float64 {
	rounded, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return rounded
}
