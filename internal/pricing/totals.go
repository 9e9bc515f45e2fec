package pricing

import (
	"github.com/vitrinalabs/vitrina-backend/pkg/db/models"
	"github.com/vitrinalabs/vitrina-backend/pkg/enums"
)

// ShippingSelection is the chosen delivery quote. The engine only reads the
// numeric price; the currency tags the display.
type ShippingSelection struct {
	PriceCents int
	Currency   enums.Currency
}

// Breakdown is the result of one totals computation. Disclosed mirrors
// Context.HasAddress so callers know whether the amounts may be rendered.
type Breakdown struct {
	SubtotalCents int
	DiscountCents int
	ShippingCents int
	TotalCents    int
	Disclosed     bool
}

// Subtotal sums resolved unit price times quantity over all non-gift lines.
// Gift lines contribute exactly zero regardless of their product's price.
func Subtotal(lines []Line, pctx Context) int {
	subtotal := 0
	for _, line := range lines {
		if line.IsGift {
			continue
		}
		subtotal += ResolveUnitPrice(line.Product, pctx.IsLocal) * line.Quantity
	}
	return subtotal
}

// CouponDiscount computes the discount a coupon yields against a subtotal:
// percentage coupons take value% of the subtotal (rounded to the cent),
// fixed coupons take the flat value. Never negative, never above the
// subtotal.
func CouponDiscount(subtotalCents int, coupon *models.Coupon) int {
	if coupon == nil || subtotalCents <= 0 {
		return 0
	}

	var discount int
	switch coupon.DiscountType {
	case enums.CouponDiscountTypePercentage:
		discount = (subtotalCents*coupon.DiscountValue + 50) / 100
	case enums.CouponDiscountTypeFixed:
		discount = coupon.DiscountValue
	default:
		return 0
	}

	if discount < 0 {
		return 0
	}
	if discount > subtotalCents {
		return subtotalCents
	}
	return discount
}

// ComputeTotals combines resolved unit prices, gift exclusions, the applied
// coupon and the shipping selection into a final breakdown. It is pure and
// deterministic: identical inputs always yield identical results, and no
// input is mutated.
func ComputeTotals(lines []Line, pctx Context, coupon *models.Coupon, shipping *ShippingSelection) Breakdown {
	subtotal := Subtotal(lines, pctx)
	discount := CouponDiscount(subtotal, coupon)

	shippingCost := 0
	if shipping != nil {
		shippingCost = shipping.PriceCents
		if shippingCost < 0 {
			shippingCost = 0
		}
	}

	payable := subtotal - discount
	if payable < 0 {
		payable = 0
	}

	return Breakdown{
		SubtotalCents: subtotal,
		DiscountCents: discount,
		ShippingCents: shippingCost,
		TotalCents:    payable + shippingCost,
		Disclosed:     pctx.HasAddress,
	}
}
