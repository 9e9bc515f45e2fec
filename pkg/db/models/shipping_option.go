package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/vitrinalabs/vitrina-backend/pkg/enums"
)

// ShippingOption is a selectable delivery method. The pricing engine treats
// the chosen option as an opaque price.
type ShippingOption struct {
	ID         uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name       string         `gorm:"column:name;not null"`
	PriceCents int            `gorm:"column:price_cents;not null"`
	Currency   enums.Currency `gorm:"column:currency;not null;default:'PYG'"`
	IsActive   bool           `gorm:"column:is_active;not null;default:true"`
	CreatedAt  time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
