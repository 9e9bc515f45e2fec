package products

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vitrinalabs/vitrina-backend/pkg/db"
	"github.com/vitrinalabs/vitrina-backend/pkg/db/models"
	"github.com/vitrinalabs/vitrina-backend/pkg/enums"
	pkgerrors "github.com/vitrinalabs/vitrina-backend/pkg/errors"
	"github.com/vitrinalabs/vitrina-backend/pkg/pagination"
)

const slugUniqueConstraint = "idx_products_slug"

// Service exposes catalog product management operations.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error)
	DeleteProduct(ctx context.Context, productID uuid.UUID) error
	GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error)
	ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error)
}

// CreateProductInput holds the validated payload to create a product.
type CreateProductInput struct {
	Slug               string
	Name               string
	Description        *string
	Category           enums.ProductCategory
	LocalPriceCents    *int
	NationalPriceCents *int
	Stock              int
	Images             []string
	IsActive           bool
	Variants           []VariantInput
}

// VariantInput defines one color variation.
type VariantInput struct {
	Name          string
	StockOverride *int
}

// UpdateProductInput holds optional mutation values for a product.
type UpdateProductInput struct {
	Slug               *string
	Name               *string
	Description        *string
	Category           *enums.ProductCategory
	LocalPriceCents    *int
	NationalPriceCents *int
	Stock              *int
	Images             *[]string
	IsActive           *bool
	Variants           *[]VariantInput
}

// ListProductsInput captures the inputs to paginate and filter the catalog.
type ListProductsInput struct {
	Filters    ListFilters
	Pagination pagination.Params
}

type service struct {
	repo     *Repository
	dbClient *db.Client
}

// NewService constructs a product service instance.
func NewService(repo *Repository, dbClient *db.Client) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{repo: repo, dbClient: dbClient}, nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*ProductDTO, error) {
	slug := normalizeSlug(input.Slug)
	if err := validateCore(slug, input.Name, input.LocalPriceCents, input.NationalPriceCents, input.Stock); err != nil {
		return nil, err
	}
	if err := validateVariants(input.Variants); err != nil {
		return nil, err
	}

	var createdID uuid.UUID
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		product := &models.Product{
			Slug:               slug,
			Name:               strings.TrimSpace(input.Name),
			Description:        input.Description,
			Category:           input.Category,
			LocalPriceCents:    input.LocalPriceCents,
			NationalPriceCents: input.NationalPriceCents,
			Stock:              input.Stock,
			Images:             input.Images,
			IsActive:           input.IsActive,
		}
		if _, err := txRepo.Create(ctx, product); err != nil {
			return err
		}
		if err := txRepo.ReplaceVariants(ctx, product.ID, variantModels(input.Variants)); err != nil {
			return err
		}
		createdID = product.ID
		return nil
	})
	if err != nil {
		if db.IsUniqueViolation(err, slugUniqueConstraint) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "product slug already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}

	return s.GetProduct(ctx, createdID)
}

func (s *service) UpdateProduct(ctx context.Context, productID uuid.UUID, input UpdateProductInput) (*ProductDTO, error) {
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		product, err := txRepo.FindByID(ctx, productID)
		if err != nil {
			return err
		}

		if input.Slug != nil {
			product.Slug = normalizeSlug(*input.Slug)
		}
		if input.Name != nil {
			product.Name = strings.TrimSpace(*input.Name)
		}
		if input.Description != nil {
			product.Description = input.Description
		}
		if input.Category != nil {
			product.Category = *input.Category
		}
		if input.LocalPriceCents != nil {
			product.LocalPriceCents = input.LocalPriceCents
		}
		if input.NationalPriceCents != nil {
			product.NationalPriceCents = input.NationalPriceCents
		}
		if input.Stock != nil {
			product.Stock = *input.Stock
		}
		if input.Images != nil {
			product.Images = *input.Images
		}
		if input.IsActive != nil {
			product.IsActive = *input.IsActive
		}

		if err := validateCore(product.Slug, product.Name, product.LocalPriceCents, product.NationalPriceCents, product.Stock); err != nil {
			return err
		}

		product.Variants = nil
		if _, err := txRepo.Update(ctx, product); err != nil {
			return err
		}

		if input.Variants != nil {
			if err := validateVariants(*input.Variants); err != nil {
				return err
			}
			if err := txRepo.ReplaceVariants(ctx, productID, variantModels(*input.Variants)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		if typed := pkgerrors.As(err); typed != nil {
			return nil, typed
		}
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		if db.IsUniqueViolation(err, slugUniqueConstraint) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "product slug already in use")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
	}

	return s.GetProduct(ctx, productID)
}

func (s *service) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	if err := s.repo.Delete(ctx, productID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete product")
	}
	return nil
}

func (s *service) GetProduct(ctx context.Context, productID uuid.UUID) (*ProductDTO, error) {
	product, err := s.repo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return NewProductDTO(product), nil
}

func (s *service) ListProducts(ctx context.Context, input ListProductsInput) (*ProductListResult, error) {
	result, err := s.repo.List(ctx, listQuery{
		Pagination: input.Pagination,
		Filters:    input.Filters,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return result, nil
}

func normalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}

func validateCore(slug, name string, localPrice, nationalPrice *int, stock int) error {
	if slug == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "slug is required")
	}
	if strings.TrimSpace(name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if localPrice != nil && *localPrice < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "local_price_cents cannot be negative")
	}
	if nationalPrice != nil && *nationalPrice < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "national_price_cents cannot be negative")
	}
	if stock < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "stock cannot be negative")
	}
	return nil
}

func validateVariants(variants []VariantInput) error {
	seen := make(map[string]struct{}, len(variants))
	for _, variant := range variants {
		name := strings.TrimSpace(variant.Name)
		if name == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "variant name is required")
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("duplicate variant name %q", name))
		}
		seen[key] = struct{}{}
		if variant.StockOverride != nil && *variant.StockOverride < 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "variant stock_override cannot be negative")
		}
	}
	return nil
}

func variantModels(inputs []VariantInput) []models.ProductVariant {
	out := make([]models.ProductVariant, 0, len(inputs))
	for _, input := range inputs {
		out = append(out, models.ProductVariant{
			Name:          strings.TrimSpace(input.Name),
			StockOverride: input.StockOverride,
		})
	}
	return out
}
