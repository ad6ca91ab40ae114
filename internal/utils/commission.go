package utils

import "github.com/shopspring/decimal"

// DefaultCommissionRate is the platform fee retained on COLLECT operations.
var DefaultCommissionRate = decimal.RequireFromString("0.035")

// SplitCommission divides a gross amount into the net credited to the
// register and the commission retained by the platform. The fee is rounded to
// two decimal places (person-to-person operations keep centimes); the net is
// the exact remainder so net + fee always reconstructs the gross.
func SplitCommission(amount, rate decimal.Decimal) (net, fee decimal.Decimal) {
	fee = amount.Mul(rate).Round(2)
	net = amount.Sub(fee)
	return net, fee
}

// RoundRechargeAmount applies the merchant-recharge rounding policy: amounts
// keep two decimal places.
func RoundRechargeAmount(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}

// RoundRegisterTransferAmount applies the inter-register rounding policy:
// transfers between two registers of the same merchant move whole FCFA units.
func RoundRegisterTransferAmount(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(0)
}
