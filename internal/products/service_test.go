package products

import (
	"testing"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/vitrinalabs/vitrina-backend/pkg/db/models"
	pkgerrors "github.com/vitrinalabs/vitrina-backend/pkg/errors"
)

func intPtrVal(v int) *int { return &v }

func TestValidateCore(t *testing.T) {
	t.Run("accepts complete input", func(t *testing.T) {
		err := validateCore("silla-roja", "Silla Roja", intPtrVal(20000), intPtrVal(22000), 5)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("nil prices are allowed", func(t *testing.T) {
		if err := validateCore("silla-roja", "Silla Roja", nil, nil, 0); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	cases := []struct {
		name          string
		slug          string
		productName   string
		localPrice    *int
		nationalPrice *int
		stock         int
	}{
		{"missing slug", "", "Silla Roja", nil, nil, 0},
		{"missing name", "silla-roja", "  ", nil, nil, 0},
		{"negative local price", "silla-roja", "Silla Roja", intPtrVal(-1), nil, 0},
		{"negative national price", "silla-roja", "Silla Roja", nil, intPtrVal(-1), 0},
		{"negative stock", "silla-roja", "Silla Roja", nil, nil, -3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validateCore(tc.slug, tc.productName, tc.localPrice, tc.nationalPrice, tc.stock)
			if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestValidateVariants(t *testing.T) {
	t.Run("accepts distinct names", func(t *testing.T) {
		err := validateVariants([]VariantInput{
			{Name: "Rojo"},
			{Name: "Azul", StockOverride: intPtrVal(3)},
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("rejects duplicates case-insensitively", func(t *testing.T) {
		err := validateVariants([]VariantInput{{Name: "Rojo"}, {Name: " rojo "}})
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("rejects negative override", func(t *testing.T) {
		err := validateVariants([]VariantInput{{Name: "Rojo", StockOverride: intPtrVal(-1)}})
		if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

func TestNormalizeSlug(t *testing.T) {
	if got := normalizeSlug("  Silla-Roja "); got != "silla-roja" {
		t.Fatalf("expected normalized slug, got %q", got)
	}
}

func TestNewProductDTOCopiesImagesAndVariants(t *testing.T) {
	override := 3
	product := &models.Product{
		ID:              uuid.New(),
		Slug:            "silla-roja",
		Name:            "Silla Roja",
		LocalPriceCents: intPtrVal(20000),
		Images:          pq.StringArray{"a.jpg", "b.jpg"},
		Variants: []models.ProductVariant{
			{ID: uuid.New(), Name: "Rojo"},
			{ID: uuid.New(), Name: "Azul", StockOverride: &override},
		},
	}

	dto := NewProductDTO(product)

	if len(dto.Images) != 2 {
		t.Fatalf("expected copied images, got %v", dto.Images)
	}
	dto.Images[0] = "mutated.jpg"
	if product.Images[0] != "a.jpg" {
		t.Fatal("DTO images must not alias the model slice")
	}

	if len(dto.Variants) != 2 {
		t.Fatalf("expected 2 variants, got %d", len(dto.Variants))
	}
	if dto.Variants[1].StockOverride == nil || *dto.Variants[1].StockOverride != 3 {
		t.Fatalf("expected stock override carried over, got %+v", dto.Variants[1])
	}
}
