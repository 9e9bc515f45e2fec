package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vitrinalabs/vitrina-backend/api/responses"
	combosvc "github.com/vitrinalabs/vitrina-backend/internal/combos"
	"github.com/vitrinalabs/vitrina-backend/pkg/db/models"
	pkgerrors "github.com/vitrinalabs/vitrina-backend/pkg/errors"
	"github.com/vitrinalabs/vitrina-backend/pkg/logger"
)

type comboItemResponse struct {
	ProductID uuid.UUID `json:"product_id"`
	Slug      string    `json:"slug,omitempty"`
	Name      string    `json:"name,omitempty"`
	Quantity  int       `json:"quantity"`
}

type comboResponse struct {
	ID               uuid.UUID           `json:"id"`
	Slug             string              `json:"slug"`
	Title            string              `json:"title"`
	LocalDiscount    string              `json:"local_discount,omitempty"`
	NationalDiscount string              `json:"national_discount,omitempty"`
	Items            []comboItemResponse `json:"items"`
}

func newComboResponse(combo *models.Combo) comboResponse {
	resp := comboResponse{
		ID:               combo.ID,
		Slug:             combo.Slug,
		Title:            combo.Title,
		LocalDiscount:    combosvc.DiscountText(combo, true),
		NationalDiscount: combosvc.DiscountText(combo, false),
		Items:            make([]comboItemResponse, 0, len(combo.Items)),
	}
	for _, item := range combo.Items {
		entry := comboItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
		if item.Product != nil {
			entry.Slug = item.Product.Slug
			entry.Name = item.Product.Name
		}
		resp.Items = append(resp.Items, entry)
	}
	return resp
}

// GetCombo serves one active combo with its member products.
func GetCombo(svc combosvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := strings.TrimSpace(chi.URLParam(r, "slug"))
		if slug == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "combo slug is required"))
			return
		}

		combo, err := svc.GetBySlug(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newComboResponse(combo))
	}
}

// ListCombos serves the active combo catalog.
func ListCombos(svc combosvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		combosList, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		out := make([]comboResponse, 0, len(combosList))
		for i := range combosList {
			out = append(out, newComboResponse(&combosList[i]))
		}
		responses.WriteSuccess(w, out)
	}
}
