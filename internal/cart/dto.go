package cart

import (
	"github.com/google/uuid"

	"github.com/vitrinalabs/vitrina-backend/pkg/types"
)

// LineInput is one cart entry as submitted by the storefront UI.
type LineInput struct {
	ProductID uuid.UUID  `json:"product_id"`
	VariantID *uuid.UUID `json:"variant_id,omitempty"`
	Quantity  int        `json:"quantity"`
	IsGift    bool       `json:"is_gift"`
}

// QuoteInput is the cart snapshot a quote is computed from. The snapshot is
// read-only; quoting never mutates cart state.
type QuoteInput struct {
	SessionID        string
	Address          *types.Address
	Lines            []LineInput
	ShippingOptionID *uuid.UUID
}

// ApplyCouponInput carries a submitted coupon code together with the cart
// snapshot it must be validated against.
type ApplyCouponInput struct {
	SessionID string
	Code      string
	Address   *types.Address
	Lines     []LineInput
}

// LineDetail is the per-line view of a quote.
type LineDetail struct {
	ProductID      uuid.UUID    `json:"product_id"`
	Slug           string       `json:"slug"`
	Name           string       `json:"name"`
	VariantID      *uuid.UUID   `json:"variant_id,omitempty"`
	Quantity       int          `json:"quantity"`
	IsGift         bool         `json:"is_gift"`
	UnitPriceCents int          `json:"unit_price_cents"`
	LineTotalCents int          `json:"line_total_cents"`
	Combo          *ComboDetail `json:"combo,omitempty"`
}

// ComboDetail surfaces the bundle contents behind a combo line.
type ComboDetail struct {
	Slug         string            `json:"slug"`
	Title        string            `json:"title"`
	DiscountText string            `json:"discount_text,omitempty"`
	Items        []ComboItemDetail `json:"items"`
}

// ComboItemDetail is one member product of an expanded bundle.
type ComboItemDetail struct {
	ProductID uuid.UUID `json:"product_id"`
	Slug      string    `json:"slug"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
}

// BreakdownDTO carries the totals of a quote. The amounts are omitted until
// the customer has a registered address; Disclosed tells clients which case
// they are in.
type BreakdownDTO struct {
	SubtotalCents *int `json:"subtotal_cents,omitempty"`
	DiscountCents *int `json:"discount_cents,omitempty"`
	ShippingCents *int `json:"shipping_cents,omitempty"`
	TotalCents    *int `json:"total_cents,omitempty"`
	Disclosed     bool `json:"disclosed"`
}

// AppliedCouponDTO describes the coupon counted into the quote.
type AppliedCouponDTO struct {
	Code          string `json:"code"`
	DiscountType  string `json:"discount_type"`
	DiscountValue int    `json:"discount_value"`
}

// QuoteResult is the full response of one quote computation.
type QuoteResult struct {
	Lines     []LineDetail      `json:"lines"`
	Coupon    *AppliedCouponDTO `json:"coupon,omitempty"`
	Breakdown BreakdownDTO      `json:"breakdown"`
	IsLocal   bool              `json:"is_local"`
}
