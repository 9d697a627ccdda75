package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func snapshotWith(lines ...Line) Snapshot {
	return Snapshot{RestaurantID: 10, Lines: lines}
}

func TestDiscountCents_IntegerDivision(t *testing.T) {
	tests := []struct {
		name    string
		balance int64
		want    int64
	}{
		{"below one unit", 500, 0},
		{"exactly one unit", 1000, 100},
		{"remainder dropped", 2500, 200},
		{"zero", 0, 0},
		{"negative clamps to zero", -100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DiscountCents(tt.balance))
		})
	}
}

func TestNewQuote_NoDiscount(t *testing.T) {
	s := snapshotWith(
		Line{ItemID: 1, Name: "Burger", UnitPriceCents: 500, Quantity: 2},
		Line{ItemID: 2, Name: "Fries", UnitPriceCents: 250, Quantity: 1},
	)

	quote := NewQuote(s, 0)

	assert.Equal(t, int64(1250), quote.SubtotalCents)
	assert.Equal(t, int64(0), quote.DiscountCents)
	assert.Equal(t, int64(0), quote.EffectiveDiscountCents)
	assert.Equal(t, int64(1250), quote.TotalCents)
	assert.Equal(t, int64(0), quote.PointsConsumed)
	assert.Equal(t, int64(1250), quote.PointsEarned)
}

func TestNewQuote_PartialDiscount(t *testing.T) {
	// 2000 points discount 2.00, cart of 5.00: pay 3.00, consume all 2000,
	// earn 300.
	s := snapshotWith(Line{ItemID: 1, Name: "Bowl", UnitPriceCents: 500, Quantity: 1})

	quote := NewQuote(s, 2000)

	assert.Equal(t, int64(500), quote.SubtotalCents)
	assert.Equal(t, int64(200), quote.DiscountCents)
	assert.Equal(t, int64(200), quote.EffectiveDiscountCents)
	assert.Equal(t, int64(300), quote.TotalCents)
	assert.Equal(t, int64(2000), quote.PointsConsumed)
	assert.Equal(t, int64(300), quote.PointsEarned)
}

func TestNewQuote_DiscountCappedAtSubtotal(t *testing.T) {
	// 15000 points discount 15.00 but the cart is only 10.00: the cap binds,
	// only 10000 points are consumed and the total is zero.
	s := snapshotWith(Line{ItemID: 1, Name: "Feast", UnitPriceCents: 1000, Quantity: 1})

	quote := NewQuote(s, 15000)

	assert.Equal(t, int64(1000), quote.SubtotalCents)
	assert.Equal(t, int64(1500), quote.DiscountCents)
	assert.Equal(t, int64(1000), quote.EffectiveDiscountCents)
	assert.Equal(t, int64(0), quote.TotalCents)
	assert.Equal(t, int64(10000), quote.PointsConsumed)
	assert.Equal(t, int64(0), quote.PointsEarned)
}

func TestNewQuote_CapBoundaryExact(t *testing.T) {
	// Discount exactly equals subtotal: no clamping needed, same outcome.
	s := snapshotWith(Line{ItemID: 1, Name: "Feast", UnitPriceCents: 1000, Quantity: 1})

	quote := NewQuote(s, 10000)

	assert.Equal(t, int64(1000), quote.EffectiveDiscountCents)
	assert.Equal(t, int64(0), quote.TotalCents)
	assert.Equal(t, int64(10000), quote.PointsConsumed)
}

func TestNewQuote_SubZeroUnitBalanceChangesNothing(t *testing.T) {
	// 999 points are worth no discount at all.
	s := snapshotWith(Line{ItemID: 1, Name: "Bowl", UnitPriceCents: 500, Quantity: 1})

	quote := NewQuote(s, 999)

	assert.Equal(t, int64(0), quote.EffectiveDiscountCents)
	assert.Equal(t, int64(500), quote.TotalCents)
	assert.Equal(t, int64(0), quote.PointsConsumed)
}

func TestSubtotalCents_EmptySnapshot(t *testing.T) {
	assert.Equal(t, int64(0), SubtotalCents(Snapshot{}))
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "0.00", FormatCents(0))
	assert.Equal(t, "0.05", FormatCents(5))
	assert.Equal(t, "12.50", FormatCents(1250))
	assert.Equal(t, "-3.07", FormatCents(-307))
}
