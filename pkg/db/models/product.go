package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/vitrinalabs/vitrina-backend/pkg/enums"
)

// Product represents a catalog listing. Combo bundles are pseudo-products
// carrying the reserved combo category; their contents live in Combo records
// linked by slug.
type Product struct {
	ID                 uuid.UUID             `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Slug               string                `gorm:"column:slug;not null;uniqueIndex"`
	Name               string                `gorm:"column:name;not null"`
	Description        *string               `gorm:"column:description"`
	Category           enums.ProductCategory `gorm:"column:category;not null;index"`
	LocalPriceCents    *int                  `gorm:"column:local_price_cents"`
	NationalPriceCents *int                  `gorm:"column:national_price_cents"`
	Stock              int                   `gorm:"column:stock;not null;default:0"`
	Images             pq.StringArray        `gorm:"column:images;type:text[];not null;default:ARRAY[]::text[]"`
	IsActive           bool                  `gorm:"column:is_active;not null;default:true"`
	Variants           []ProductVariant      `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt          time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt          time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}
