package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/vitrinalabs/vitrina-backend/api/responses"
	shippingsvc "github.com/vitrinalabs/vitrina-backend/internal/shipping"
	"github.com/vitrinalabs/vitrina-backend/pkg/db/models"
	"github.com/vitrinalabs/vitrina-backend/pkg/logger"
)

type shippingOptionResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	PriceCents int       `json:"price_cents"`
	Currency   string    `json:"currency"`
}

func newShippingOptionResponse(option models.ShippingOption) shippingOptionResponse {
	return shippingOptionResponse{
		ID:         option.ID,
		Name:       option.Name,
		PriceCents: option.PriceCents,
		Currency:   string(option.Currency),
	}
}

// ListShippingOptions serves the selectable delivery methods.
func ListShippingOptions(svc shippingsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		options, err := svc.Options(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]shippingOptionResponse, 0, len(options))
		for _, option := range options {
			out = append(out, newShippingOptionResponse(option))
		}
		responses.WriteSuccess(w, out)
	}
}
