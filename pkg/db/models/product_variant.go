package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductVariant is a per-color variation of a product. Stock is optional;
// when nil the parent product's stock applies.
type ProductVariant struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProductID     uuid.UUID `gorm:"column:product_id;type:uuid;not null;index"`
	Name          string    `gorm:"column:name;not null"`
	StockOverride *int      `gorm:"column:stock_override"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
