package enums

// ProductCategory tags a catalog product. Categories are storefront-managed
// content and therefore open-ended; the combo pseudo-category is the one
// reserved value the pricing engine keys on.
type ProductCategory string

// ProductCategoryCombos marks bundle pseudo-products whose real contents live
// in a linked combo record.
const ProductCategoryCombos ProductCategory = "Combos"

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// IsCombo reports whether the category is the reserved combo tag.
func (c ProductCategory) IsCombo() bool {
	return c == ProductCategoryCombos
}
