package pricing

import (
	"github.com/google/uuid"

	"github.com/vitrinalabs/vitrina-backend/pkg/db/models"
)

// Context carries the location facts the resolver prices against. HasAddress
// is false until the customer registers an address; totals are still computed
// but callers withhold the numbers from the UI until then.
type Context struct {
	HasAddress bool
	IsLocal    bool
}

// Line is one cart entry as snapshotted by the surrounding UI. The engine
// treats it as read-only.
type Line struct {
	Product   *models.Product
	VariantID *uuid.UUID
	Quantity  int
	IsGift    bool
}

// LineKey uniquely identifies a cart line. Two lines with the same product
// but different variant or gift status are distinct entries.
type LineKey struct {
	ProductID uuid.UUID
	VariantID uuid.UUID
	IsGift    bool
}

// Key derives the uniqueness key for the line.
func (l Line) Key() LineKey {
	key := LineKey{IsGift: l.IsGift}
	if l.Product != nil {
		key.ProductID = l.Product.ID
	}
	if l.VariantID != nil {
		key.VariantID = *l.VariantID
	}
	return key
}

// PriceOrZero makes the zero-fallback for absent price fields explicit.
// A missing or negative price contributes nothing rather than failing the
// display computation.
func PriceOrZero(v *int) int {
	if v == nil || *v < 0 {
		return 0
	}
	return *v
}

// ResolveUnitPrice picks the unit price for a product given the location
// flag: the local list price inside the local service area, the national
// one otherwise.
func ResolveUnitPrice(product *models.Product, isLocal bool) int {
	if product == nil {
		return 0
	}
	if isLocal {
		return PriceOrZero(product.LocalPriceCents)
	}
	return PriceOrZero(product.NationalPriceCents)
}
