// internal/pricing/pricing.go
package pricing

import "github.com/shopspring/decimal"

// Tier is one of the fixed discount percentages a card can carry.
type Tier int

const (
	TierNone      Tier = 0
	TierSale      Tier = 10
	TierSuperSale Tier = 20
)

var (
	minSaleDiscount      = decimal.RequireFromString("0.50")
	minSuperSaleDiscount = decimal.RequireFromString("1.00")
	minPrice             = decimal.RequireFromString("1.00")
	saleRate             = decimal.RequireFromString("0.10")
	superSaleRate        = decimal.RequireFromString("0.20")
	two                  = decimal.NewFromInt(2)
)

// Valid reports whether t is one of the enumerated tiers.
func (t Tier) Valid() bool {
	return t == TierNone || t == TierSale || t == TierSuperSale
}

// Discounted returns the displayed price for a card with the given original
// price and discount tier. Each tier has a minimum discount amount; the
// result is rounded up to the nearest half euro and never drops below 1.00.
// Callers must pass a valid tier; Discounted has no error cases.
func Discounted(original decimal.Decimal, tier Tier) decimal.Decimal {
	if tier == TierNone {
		return original
	}

	var amount decimal.Decimal
	switch tier {
	case TierSale:
		amount = decimal.Max(minSaleDiscount, original.Mul(saleRate))
	case TierSuperSale:
		amount = decimal.Max(minSuperSaleDiscount, original.Mul(superSaleRate))
	}

	raw := original.Sub(amount)
	rounded := raw.Mul(two).Ceil().Div(two)
	return decimal.Max(minPrice, rounded)
}
