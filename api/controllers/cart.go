package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/vitrinalabs/vitrina-backend/api/middleware"
	"github.com/vitrinalabs/vitrina-backend/api/responses"
	"github.com/vitrinalabs/vitrina-backend/api/validators"
	cartsvc "github.com/vitrinalabs/vitrina-backend/internal/cart"
	couponsvc "github.com/vitrinalabs/vitrina-backend/internal/coupons"
	pkgerrors "github.com/vitrinalabs/vitrina-backend/pkg/errors"
	"github.com/vitrinalabs/vitrina-backend/pkg/logger"
	"github.com/vitrinalabs/vitrina-backend/pkg/types"
)

type quoteLineRequest struct {
	ProductID string  `json:"product_id" validate:"required,uuid"`
	VariantID *string `json:"variant_id,omitempty" validate:"omitempty,uuid"`
	Quantity  int     `json:"quantity" validate:"required,min=1"`
	IsGift    bool    `json:"is_gift"`
}

type quoteRequest struct {
	Address          *types.Address     `json:"address,omitempty"`
	Lines            []quoteLineRequest `json:"lines" validate:"required,min=1,dive"`
	ShippingOptionID *string            `json:"shipping_option_id,omitempty" validate:"omitempty,uuid"`
}

func parseQuoteLines(lines []quoteLineRequest) ([]cartsvc.LineInput, error) {
	parsed := make([]cartsvc.LineInput, 0, len(lines))
	for _, line := range lines {
		productID, err := uuid.Parse(line.ProductID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id")
		}
		entry := cartsvc.LineInput{
			ProductID: productID,
			Quantity:  line.Quantity,
			IsGift:    line.IsGift,
		}
		if line.VariantID != nil {
			variantID, err := uuid.Parse(*line.VariantID)
			if err != nil {
				return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid variant id")
			}
			entry.VariantID = &variantID
		}
		parsed = append(parsed, entry)
	}
	return parsed, nil
}

func (r quoteRequest) toInput(sessionID string) (cartsvc.QuoteInput, error) {
	lines, err := parseQuoteLines(r.Lines)
	if err != nil {
		return cartsvc.QuoteInput{}, err
	}
	input := cartsvc.QuoteInput{
		SessionID: sessionID,
		Address:   r.Address,
		Lines:     lines,
	}
	if r.ShippingOptionID != nil {
		optionID, err := uuid.Parse(*r.ShippingOptionID)
		if err != nil {
			return cartsvc.QuoteInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid shipping option id")
		}
		input.ShippingOptionID = &optionID
	}
	return input, nil
}

// CartQuote computes the totals breakdown for a submitted cart snapshot.
func CartQuote(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload quoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput(middleware.SessionIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Quote(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

type applyCouponRequest struct {
	Code    string             `json:"code" validate:"required"`
	Address *types.Address     `json:"address,omitempty"`
	Lines   []quoteLineRequest `json:"lines" validate:"required,min=1,dive"`
}

func (r applyCouponRequest) toInput(sessionID string) (cartsvc.ApplyCouponInput, error) {
	lines, err := parseQuoteLines(r.Lines)
	if err != nil {
		return cartsvc.ApplyCouponInput{}, err
	}
	return cartsvc.ApplyCouponInput{
		SessionID: sessionID,
		Code:      r.Code,
		Address:   r.Address,
		Lines:     lines,
	}, nil
}

type appliedCouponResponse struct {
	Code          string `json:"code"`
	DiscountType  string `json:"discount_type"`
	DiscountValue int    `json:"discount_value"`
}

// ApplyCoupon validates a submitted code against the cart snapshot in the
// request body; the minimum-purchase subtotal is computed server-side from
// the snapshot's products.
func ApplyCoupon(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload applyCouponRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput(middleware.SessionIDFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		coupon, err := svc.ApplyCoupon(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, appliedCouponResponse{
			Code:          coupon.Code,
			DiscountType:  string(coupon.DiscountType),
			DiscountValue: coupon.DiscountValue,
		})
	}
}

// RemoveCoupon clears the session's applied coupon without re-validation.
func RemoveCoupon(svc couponsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.SessionIDFromContext(r.Context())
		if err := svc.Remove(r.Context(), sessionID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "removed"})
	}
}
