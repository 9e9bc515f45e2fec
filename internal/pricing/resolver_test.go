package pricing

import (
	"testing"

	"github.com/google/uuid"

	"github.com/vitrinalabs/vitrina-backend/pkg/db/models"
)

func intPtr(v int) *int {
	return &v
}

func TestPriceOrZero(t *testing.T) {
	t.Parallel()

	if got := PriceOrZero(nil); got != 0 {
		t.Fatalf("nil price should be 0, got %d", got)
	}
	if got := PriceOrZero(intPtr(-500)); got != 0 {
		t.Fatalf("negative price should be 0, got %d", got)
	}
	if got := PriceOrZero(intPtr(12500)); got != 12500 {
		t.Fatalf("expected 12500, got %d", got)
	}
}

func TestResolveUnitPricePicksLocationPrice(t *testing.T) {
	t.Parallel()

	product := &models.Product{
		LocalPriceCents:    intPtr(10000),
		NationalPriceCents: intPtr(12000),
	}

	if got := ResolveUnitPrice(product, true); got != 10000 {
		t.Fatalf("expected local price, got %d", got)
	}
	if got := ResolveUnitPrice(product, false); got != 12000 {
		t.Fatalf("expected national price, got %d", got)
	}
}

func TestResolveUnitPriceMissingFieldsCoerceToZero(t *testing.T) {
	t.Parallel()

	product := &models.Product{NationalPriceCents: intPtr(9000)}

	if got := ResolveUnitPrice(product, true); got != 0 {
		t.Fatalf("missing local price must resolve to 0, got %d", got)
	}
	if got := ResolveUnitPrice(nil, true); got != 0 {
		t.Fatalf("nil product must resolve to 0, got %d", got)
	}
}

func TestLineKeyDistinguishesVariantAndGift(t *testing.T) {
	t.Parallel()

	product := &models.Product{ID: uuid.New()}
	variant := uuid.New()

	plain := Line{Product: product, Quantity: 1}
	gift := Line{Product: product, Quantity: 1, IsGift: true}
	colored := Line{Product: product, VariantID: &variant, Quantity: 1}

	if plain.Key() == gift.Key() {
		t.Fatal("gift status must make the line key distinct")
	}
	if plain.Key() == colored.Key() {
		t.Fatal("variant must make the line key distinct")
	}
	if plain.Key() != (Line{Product: product, Quantity: 3}).Key() {
		t.Fatal("quantity must not affect the line key")
	}
}
