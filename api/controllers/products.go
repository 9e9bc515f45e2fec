package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vitrinalabs/vitrina-backend/api/responses"
	"github.com/vitrinalabs/vitrina-backend/api/validators"
	productsvc "github.com/vitrinalabs/vitrina-backend/internal/products"
	"github.com/vitrinalabs/vitrina-backend/pkg/enums"
	pkgerrors "github.com/vitrinalabs/vitrina-backend/pkg/errors"
	"github.com/vitrinalabs/vitrina-backend/pkg/logger"
	"github.com/vitrinalabs/vitrina-backend/pkg/pagination"
)

// ListProducts serves the paginated catalog browse.
func ListProducts(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := productsvc.ListFilters{
			ActiveOnly: true,
			Query:      r.URL.Query().Get("q"),
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
			category := enums.ProductCategory(raw)
			filters.Category = &category
		}

		result, err := svc.ListProducts(r.Context(), productsvc.ListProductsInput{
			Filters: filters,
			Pagination: pagination.Params{
				Limit:  limit,
				Cursor: r.URL.Query().Get("cursor"),
			},
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// GetProduct serves a single catalog product with its variants.
func GetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		product, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

type variantRequest struct {
	Name          string `json:"name" validate:"required"`
	StockOverride *int   `json:"stock_override,omitempty" validate:"omitempty,min=0"`
}

type createProductRequest struct {
	Slug               string           `json:"slug" validate:"required"`
	Name               string           `json:"name" validate:"required"`
	Description        *string          `json:"description,omitempty"`
	Category           string           `json:"category" validate:"required"`
	LocalPriceCents    *int             `json:"local_price_cents,omitempty" validate:"omitempty,min=0"`
	NationalPriceCents *int             `json:"national_price_cents,omitempty" validate:"omitempty,min=0"`
	Stock              int              `json:"stock" validate:"min=0"`
	Images             []string         `json:"images,omitempty" validate:"omitempty,dive,required"`
	IsActive           *bool            `json:"is_active,omitempty"`
	Variants           []variantRequest `json:"variants,omitempty"`
}

func (r createProductRequest) toInput() productsvc.CreateProductInput {
	input := productsvc.CreateProductInput{
		Slug:               r.Slug,
		Name:               r.Name,
		Description:        r.Description,
		Category:           enums.ProductCategory(strings.TrimSpace(r.Category)),
		LocalPriceCents:    r.LocalPriceCents,
		NationalPriceCents: r.NationalPriceCents,
		Stock:              r.Stock,
		Images:             r.Images,
		IsActive:           true,
	}
	if r.IsActive != nil {
		input.IsActive = *r.IsActive
	}
	for _, variant := range r.Variants {
		input.Variants = append(input.Variants, productsvc.VariantInput{
			Name:          variant.Name,
			StockOverride: variant.StockOverride,
		})
	}
	return input
}

// CreateProduct handles admin product creation.
func CreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

type updateProductRequest struct {
	Slug               *string           `json:"slug,omitempty"`
	Name               *string           `json:"name,omitempty"`
	Description        *string           `json:"description,omitempty"`
	Category           *string           `json:"category,omitempty"`
	LocalPriceCents    *int              `json:"local_price_cents,omitempty" validate:"omitempty,min=0"`
	NationalPriceCents *int              `json:"national_price_cents,omitempty" validate:"omitempty,min=0"`
	Stock              *int              `json:"stock,omitempty" validate:"omitempty,min=0"`
	Images             *[]string         `json:"images,omitempty"`
	IsActive           *bool             `json:"is_active,omitempty"`
	Variants           *[]variantRequest `json:"variants,omitempty"`
}

func (r updateProductRequest) toInput() productsvc.UpdateProductInput {
	input := productsvc.UpdateProductInput{
		Slug:               r.Slug,
		Name:               r.Name,
		Description:        r.Description,
		LocalPriceCents:    r.LocalPriceCents,
		NationalPriceCents: r.NationalPriceCents,
		Stock:              r.Stock,
		Images:             r.Images,
		IsActive:           r.IsActive,
	}
	if r.Category != nil {
		category := enums.ProductCategory(strings.TrimSpace(*r.Category))
		input.Category = &category
	}
	if r.Variants != nil {
		variants := make([]productsvc.VariantInput, 0, len(*r.Variants))
		for _, variant := range *r.Variants {
			variants = append(variants, productsvc.VariantInput{
				Name:          variant.Name,
				StockOverride: variant.StockOverride,
			})
		}
		input.Variants = &variants
	}
	return input
}

// UpdateProduct handles admin product mutation.
func UpdateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.UpdateProduct(r.Context(), id, payload.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// DeleteProduct handles admin product removal.
func DeleteProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		if err := svc.DeleteProduct(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
