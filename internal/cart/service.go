package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vitrinalabs/vitrina-backend/internal/combos"
	"github.com/vitrinalabs/vitrina-backend/internal/coupons"
	"github.com/vitrinalabs/vitrina-backend/internal/pricing"
	"github.com/vitrinalabs/vitrina-backend/internal/shipping"
	"github.com/vitrinalabs/vitrina-backend/pkg/config"
	"github.com/vitrinalabs/vitrina-backend/pkg/db/models"
	pkgerrors "github.com/vitrinalabs/vitrina-backend/pkg/errors"
	"github.com/vitrinalabs/vitrina-backend/pkg/logger"
	"github.com/vitrinalabs/vitrina-backend/pkg/types"
)

// productLoader is the slice of the product repository quoting needs.
type productLoader interface {
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*models.Product, error)
}

// Service computes a full quote for a cart snapshot. It holds no cart state
// between calls; identical snapshots always quote identically.
type Service interface {
	Quote(ctx context.Context, input QuoteInput) (*QuoteResult, error)
	ApplyCoupon(ctx context.Context, input ApplyCouponInput) (*models.Coupon, error)
}

type service struct {
	products    productLoader
	comboSvc    combos.Service
	couponSvc   coupons.Service
	shippingSvc shipping.Service
	storefront  config.StorefrontConfig
	logg        *logger.Logger
}

// NewService wires the quote orchestrator.
func NewService(
	products productLoader,
	comboSvc combos.Service,
	couponSvc coupons.Service,
	shippingSvc shipping.Service,
	storefront config.StorefrontConfig,
	logg *logger.Logger,
) (Service, error) {
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	if comboSvc == nil {
		return nil, fmt.Errorf("combo service required")
	}
	if couponSvc == nil {
		return nil, fmt.Errorf("coupon service required")
	}
	if shippingSvc == nil {
		return nil, fmt.Errorf("shipping service required")
	}
	return &service{
		products:    products,
		comboSvc:    comboSvc,
		couponSvc:   couponSvc,
		shippingSvc: shippingSvc,
		storefront:  storefront,
		logg:        logg,
	}, nil
}

func (s *service) Quote(ctx context.Context, input QuoteInput) (*QuoteResult, error) {
	if err := validateSnapshot(input.Lines); err != nil {
		return nil, err
	}

	pctx := s.pricingContext(input.Address)
	lines, details, err := s.resolveLines(ctx, input.Lines, pctx)
	if err != nil {
		return nil, err
	}

	expansions := s.comboSvc.Expand(ctx, lines, pctx.IsLocal)
	attachExpansions(details, expansions, pctx.IsLocal)

	coupon := s.appliedCoupon(ctx, input.SessionID)

	var selection *pricing.ShippingSelection
	if input.ShippingOptionID != nil {
		selection, err = s.shippingSvc.Quote(ctx, *input.ShippingOptionID)
		if err != nil {
			return nil, err
		}
	}

	breakdown := pricing.ComputeTotals(lines, pctx, coupon, selection)

	result := &QuoteResult{
		Lines:     details,
		Breakdown: breakdownDTO(breakdown),
		IsLocal:   pctx.IsLocal,
	}
	if coupon != nil {
		result.Coupon = &AppliedCouponDTO{
			Code:          coupon.Code,
			DiscountType:  string(coupon.DiscountType),
			DiscountValue: coupon.DiscountValue,
		}
	}
	return result, nil
}

// ApplyCoupon validates a submitted code against the caller's cart snapshot.
// The minimum-purchase subtotal is computed here from the loaded products,
// never taken from the client.
func (s *service) ApplyCoupon(ctx context.Context, input ApplyCouponInput) (*models.Coupon, error) {
	if err := validateSnapshot(input.Lines); err != nil {
		return nil, err
	}

	pctx := s.pricingContext(input.Address)
	lines, _, err := s.resolveLines(ctx, input.Lines, pctx)
	if err != nil {
		return nil, err
	}

	subtotal := pricing.Subtotal(lines, pctx)
	return s.couponSvc.Apply(ctx, input.SessionID, input.Code, subtotal)
}

func validateSnapshot(lines []LineInput) error {
	if len(lines) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart snapshot is empty")
	}
	for _, line := range lines {
		if line.ProductID == uuid.Nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "line product_id is required")
		}
		if line.Quantity <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "line quantity must be positive")
		}
	}
	return nil
}

// pricingContext derives the location facts from the registered address.
// No address means totals are computed but withheld from the response.
func (s *service) pricingContext(address *types.Address) pricing.Context {
	if address == nil || address.IsZero() {
		return pricing.Context{}
	}
	return pricing.Context{
		HasAddress: true,
		IsLocal:    s.storefront.IsLocalRegion(address.Region),
	}
}

func (s *service) resolveLines(ctx context.Context, inputs []LineInput, pctx pricing.Context) ([]pricing.Line, []LineDetail, error) {
	ids := make([]uuid.UUID, 0, len(inputs))
	for _, input := range inputs {
		ids = append(ids, input.ProductID)
	}

	loaded, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart products")
	}

	lines := make([]pricing.Line, 0, len(inputs))
	details := make([]LineDetail, 0, len(inputs))
	for _, input := range inputs {
		product, ok := loaded[input.ProductID]
		if !ok {
			return nil, nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %s not found", input.ProductID))
		}

		line := pricing.Line{
			Product:   product,
			VariantID: input.VariantID,
			Quantity:  input.Quantity,
			IsGift:    input.IsGift,
		}
		lines = append(lines, line)

		unitPrice := pricing.ResolveUnitPrice(product, pctx.IsLocal)
		lineTotal := unitPrice * input.Quantity
		if input.IsGift {
			unitPrice = 0
			lineTotal = 0
		}
		details = append(details, LineDetail{
			ProductID:      product.ID,
			Slug:           product.Slug,
			Name:           product.Name,
			VariantID:      input.VariantID,
			Quantity:       input.Quantity,
			IsGift:         input.IsGift,
			UnitPriceCents: unitPrice,
			LineTotalCents: lineTotal,
		})
	}
	return lines, details, nil
}

// appliedCoupon resolves the session's coupon. A session-store or lookup
// failure degrades to an uncouponed quote instead of failing the whole cart.
func (s *service) appliedCoupon(ctx context.Context, sessionID string) *models.Coupon {
	coupon, err := s.couponSvc.Applied(ctx, sessionID)
	if err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, "applied coupon unavailable, quoting without discount")
		}
		return nil
	}
	return coupon
}

func attachExpansions(details []LineDetail, expansions map[uuid.UUID]combos.Expansion, isLocal bool) {
	if len(expansions) == 0 {
		return
	}
	for i := range details {
		expansion, ok := expansions[details[i].ProductID]
		if !ok {
			continue
		}
		detail := &ComboDetail{
			Slug:         expansion.Combo.Slug,
			Title:        expansion.Combo.Title,
			DiscountText: expansion.DiscountText,
			Items:        make([]ComboItemDetail, 0, len(expansion.Items)),
		}
		for _, item := range expansion.Items {
			// A dangling item row may arrive without its member product.
			// The line still quotes; the orphaned item is just not shown.
			if item.Product == nil {
				continue
			}
			detail.Items = append(detail.Items, ComboItemDetail{
				ProductID: item.Product.ID,
				Slug:      item.Product.Slug,
				Name:      item.Product.Name,
				Quantity:  item.Quantity,
			})
		}
		details[i].Combo = detail
	}
}

func breakdownDTO(breakdown pricing.Breakdown) BreakdownDTO {
	dto := BreakdownDTO{Disclosed: breakdown.Disclosed}
	if !breakdown.Disclosed {
		return dto
	}
	dto.SubtotalCents = &breakdown.SubtotalCents
	dto.DiscountCents = &breakdown.DiscountCents
	dto.ShippingCents = &breakdown.ShippingCents
	dto.TotalCents = &breakdown.TotalCents
	return dto
}
