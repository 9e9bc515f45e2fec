package products

import (
	"time"

	"github.com/google/uuid"

	"github.com/vitrinalabs/vitrina-backend/pkg/db/models"
)

// ProductDTO is the catalog product payload returned to clients.
type ProductDTO struct {
	ID                 uuid.UUID    `json:"id"`
	Slug               string       `json:"slug"`
	Name               string       `json:"name"`
	Description        *string      `json:"description,omitempty"`
	Category           string       `json:"category"`
	LocalPriceCents    *int         `json:"local_price_cents,omitempty"`
	NationalPriceCents *int         `json:"national_price_cents,omitempty"`
	Stock              int          `json:"stock"`
	Images             []string     `json:"images"`
	IsActive           bool         `json:"is_active"`
	Variants           []VariantDTO `json:"variants,omitempty"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`
}

// VariantDTO is a per-color variation. Stock falls back to the parent
// product when no override is set.
type VariantDTO struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	StockOverride *int      `json:"stock_override,omitempty"`
}

// ProductListResult is one page of the catalog plus the cursor for the next.
type ProductListResult struct {
	Products   []ProductDTO `json:"products"`
	NextCursor string       `json:"next_cursor,omitempty"`
}

// NewProductDTO builds a DTO from the persisted model.
func NewProductDTO(product *models.Product) *ProductDTO {
	dto := &ProductDTO{
		ID:                 product.ID,
		Slug:               product.Slug,
		Name:               product.Name,
		Description:        product.Description,
		Category:           string(product.Category),
		LocalPriceCents:    product.LocalPriceCents,
		NationalPriceCents: product.NationalPriceCents,
		Stock:              product.Stock,
		Images:             append([]string{}, product.Images...),
		IsActive:           product.IsActive,
		CreatedAt:          product.CreatedAt,
		UpdatedAt:          product.UpdatedAt,
	}
	if len(product.Variants) > 0 {
		dto.Variants = make([]VariantDTO, len(product.Variants))
		for i, variant := range product.Variants {
			dto.Variants[i] = VariantDTO{
				ID:            variant.ID,
				Name:          variant.Name,
				StockOverride: variant.StockOverride,
			}
		}
	}
	return dto
}
