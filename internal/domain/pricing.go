package domain

import "github.com/shopspring/decimal"

// Pricing holds the shipping configuration. The threshold is inclusive:
// a subtotal equal to it ships free.
type Pricing struct {
	FreeShippingThreshold decimal.Decimal
	FlatShippingFee       decimal.Decimal
}

func DefaultPricing() Pricing {
	return Pricing{
		FreeShippingThreshold: decimal.RequireFromString("300.00"),
		FlatShippingFee:       decimal.RequireFromString("29.90"),
	}
}

func (p Pricing) ShippingFee(subtotal decimal.Decimal) decimal.Decimal {
	if subtotal.GreaterThanOrEqual(p.FreeShippingThreshold) {
		return decimal.Zero
	}
	return p.FlatShippingFee
}

func (p Pricing) GrandTotal(subtotal decimal.Decimal) decimal.Decimal {
	return subtotal.Add(p.ShippingFee(subtotal))
}
