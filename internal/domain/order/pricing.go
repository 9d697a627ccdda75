package order

import (
	"fmt"
)

// Loyalty conversion rates: 1000 points redeem into 1 currency unit of
// discount, and every currency unit charged earns 100 points. In cents that
// is 10 points per discounted cent and 1 point per charged cent.
const (
	RedeemPointsPerUnit = 1000
	EarnPointsPerUnit   = 100
	CentsPerUnit        = 100
)

// Quote bundles every derived amount for one (snapshot, balance) pair. All
// functions here are pure; the checkout coordinator and the cart view both
// price through them.
type Quote struct {
	SubtotalCents          int64
	DiscountCents          int64
	EffectiveDiscountCents int64
	TotalCents             int64
	PointsConsumed         int64
	PointsEarned           int64
}

func NewQuote(s Snapshot, balance int64) Quote {
	subtotal := SubtotalCents(s)

	discount := DiscountCents(balance)
	effective := discount
	if effective > subtotal {
		effective = subtotal
	}

	total := subtotal - effective

	return Quote{
		SubtotalCents:          subtotal,
		DiscountCents:          discount,
		EffectiveDiscountCents: effective,
		// The cap can bind, so points consumed derive from the effective
		// discount, not the raw balance: 1 cent of discount costs 10 points.
		PointsConsumed: effective * (RedeemPointsPerUnit / CentsPerUnit),
		// 1 cent charged earns 1 point (100 points per currency unit).
		PointsEarned: total * (EarnPointsPerUnit / CentsPerUnit),
		TotalCents:   total,
	}
}

func SubtotalCents(s Snapshot) int64 {
	var subtotal int64
	for _, line := range s.Lines {
		subtotal += line.UnitPriceCents * int64(line.Quantity)
	}
	return subtotal
}

// DiscountCents converts a points balance into currency, uncapped. Integer
// division drops the remainder below 1000 points.
func DiscountCents(balance int64) int64 {
	if balance < 0 {
		return 0
	}
	return balance / RedeemPointsPerUnit * CentsPerUnit
}

// FormatCents renders cents as a decimal amount with two places, the only
// place rounding happens.
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
