package pricing

import (
	"testing"

	"github.com/vitrinalabs/vitrina-backend/pkg/db/models"
	"github.com/vitrinalabs/vitrina-backend/pkg/enums"
)

func productWithPrices(local, national int) *models.Product {
	return &models.Product{
		LocalPriceCents:    intPtr(local),
		NationalPriceCents: intPtr(national),
	}
}

func localContext() Context {
	return Context{HasAddress: true, IsLocal: true}
}

func TestComputeTotalsPlainCart(t *testing.T) {
	t.Parallel()

	lines := []Line{{Product: productWithPrices(10000, 12000), Quantity: 2}}

	got := ComputeTotals(lines, localContext(), nil, nil)

	if got.SubtotalCents != 20000 {
		t.Fatalf("expected subtotal 20000, got %d", got.SubtotalCents)
	}
	if got.DiscountCents != 0 {
		t.Fatalf("expected no discount, got %d", got.DiscountCents)
	}
	if got.TotalCents != 20000 {
		t.Fatalf("expected total 20000, got %d", got.TotalCents)
	}
	if !got.Disclosed {
		t.Fatal("expected disclosed totals when an address is resolved")
	}
}

func TestComputeTotalsPercentageCoupon(t *testing.T) {
	t.Parallel()

	lines := []Line{{Product: productWithPrices(10000, 12000), Quantity: 2}}
	coupon := &models.Coupon{DiscountType: enums.CouponDiscountTypePercentage, DiscountValue: 10}

	got := ComputeTotals(lines, localContext(), coupon, nil)

	if got.DiscountCents != 2000 {
		t.Fatalf("expected discount 2000, got %d", got.DiscountCents)
	}
	if got.TotalCents != 18000 {
		t.Fatalf("expected total 18000, got %d", got.TotalCents)
	}
}

func TestComputeTotalsGiftLinesContributeNothing(t *testing.T) {
	t.Parallel()

	lines := []Line{
		{Product: productWithPrices(10000, 10000), Quantity: 1},
		{Product: productWithPrices(5000, 5000), Quantity: 1, IsGift: true},
		{Product: productWithPrices(99999, 99999), Quantity: 40, IsGift: true},
	}

	got := ComputeTotals(lines, localContext(), nil, nil)

	if got.SubtotalCents != 10000 {
		t.Fatalf("gift lines must contribute 0; subtotal %d", got.SubtotalCents)
	}
	if got.TotalCents != 10000 {
		t.Fatalf("expected total 10000, got %d", got.TotalCents)
	}
}

func TestComputeTotalsShippingAddsOnTop(t *testing.T) {
	t.Parallel()

	lines := []Line{{Product: productWithPrices(10000, 12000), Quantity: 2}}
	shipping := &ShippingSelection{PriceCents: 2500, Currency: enums.CurrencyPYG}

	got := ComputeTotals(lines, localContext(), nil, shipping)

	if got.ShippingCents != 2500 {
		t.Fatalf("expected shipping 2500, got %d", got.ShippingCents)
	}
	if got.TotalCents != 22500 {
		t.Fatalf("expected total 22500, got %d", got.TotalCents)
	}
}

func TestComputeTotalsFixedCouponClampedToSubtotal(t *testing.T) {
	t.Parallel()

	lines := []Line{{Product: productWithPrices(3000, 3000), Quantity: 1}}
	coupon := &models.Coupon{DiscountType: enums.CouponDiscountTypeFixed, DiscountValue: 10000}
	shipping := &ShippingSelection{PriceCents: 1500}

	got := ComputeTotals(lines, localContext(), coupon, shipping)

	if got.DiscountCents != 3000 {
		t.Fatalf("fixed discount must clamp to subtotal; got %d", got.DiscountCents)
	}
	if got.TotalCents != 1500 {
		t.Fatalf("total must never drop below shipping; got %d", got.TotalCents)
	}
	if got.TotalCents < got.ShippingCents {
		t.Fatal("total must be at least the shipping cost")
	}
}

func TestComputeTotalsNationalPricing(t *testing.T) {
	t.Parallel()

	lines := []Line{{Product: productWithPrices(10000, 12000), Quantity: 2}}

	got := ComputeTotals(lines, Context{HasAddress: true, IsLocal: false}, nil, nil)

	if got.SubtotalCents != 24000 {
		t.Fatalf("expected national subtotal 24000, got %d", got.SubtotalCents)
	}
}

func TestComputeTotalsUndisclosedWithoutAddress(t *testing.T) {
	t.Parallel()

	lines := []Line{{Product: productWithPrices(10000, 12000), Quantity: 1}}

	got := ComputeTotals(lines, Context{}, nil, nil)

	if got.Disclosed {
		t.Fatal("totals must be flagged undisclosed until an address is known")
	}
	if got.SubtotalCents != 12000 {
		t.Fatalf("totals must still be computed while undisclosed; subtotal %d", got.SubtotalCents)
	}
}

func TestComputeTotalsIdempotent(t *testing.T) {
	t.Parallel()

	lines := []Line{
		{Product: productWithPrices(10000, 12000), Quantity: 2},
		{Product: productWithPrices(7000, 8000), Quantity: 1, IsGift: true},
	}
	coupon := &models.Coupon{DiscountType: enums.CouponDiscountTypePercentage, DiscountValue: 25}
	shipping := &ShippingSelection{PriceCents: 900}

	first := ComputeTotals(lines, localContext(), coupon, shipping)
	second := ComputeTotals(lines, localContext(), coupon, shipping)

	if first != second {
		t.Fatalf("identical inputs must yield identical breakdowns: %+v vs %+v", first, second)
	}
}

func TestCouponDiscountRounding(t *testing.T) {
	t.Parallel()

	coupon := &models.Coupon{DiscountType: enums.CouponDiscountTypePercentage, DiscountValue: 15}

	// 15% of 1005 is 150.75; rounds to 151.
	if got := CouponDiscount(1005, coupon); got != 151 {
		t.Fatalf("expected 151, got %d", got)
	}

	coupon.DiscountValue = -5
	if got := CouponDiscount(1000, coupon); got != 0 {
		t.Fatalf("negative coupon values must yield 0, got %d", got)
	}
}

func TestCouponDiscountBounds(t *testing.T) {
	t.Parallel()

	percentage := &models.Coupon{DiscountType: enums.CouponDiscountTypePercentage, DiscountValue: 100}
	if got := CouponDiscount(5000, percentage); got != 5000 {
		t.Fatalf("100%% coupon should equal the subtotal, got %d", got)
	}

	fixed := &models.Coupon{DiscountType: enums.CouponDiscountTypeFixed, DiscountValue: 700}
	if got := CouponDiscount(5000, fixed); got != 700 {
		t.Fatalf("fixed coupon should apply flat value, got %d", got)
	}
	if got := CouponDiscount(500, fixed); got != 500 {
		t.Fatalf("fixed coupon must clamp to subtotal, got %d", got)
	}

	if got := CouponDiscount(0, fixed); got != 0 {
		t.Fatalf("empty subtotal yields no discount, got %d", got)
	}
	if got := CouponDiscount(1000, nil); got != 0 {
		t.Fatalf("nil coupon yields no discount, got %d", got)
	}
}
