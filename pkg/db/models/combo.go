package models

import (
	"time"

	"github.com/google/uuid"
)

// Combo stores the bundle definition backing a combo pseudo-product. The
// discount terms are informational; cart lines for the pseudo-product are
// priced from the pseudo-product itself.
type Combo struct {
	ID                          uuid.UUID   `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Slug                        string      `gorm:"column:slug;not null;uniqueIndex"`
	Title                       string      `gorm:"column:title;not null"`
	DiscountPercentageLocal     int         `gorm:"column:discount_percentage_local;not null;default:0"`
	DiscountPercentageNational  int         `gorm:"column:discount_percentage_national;not null;default:0"`
	DiscountAmountLocalCents    int         `gorm:"column:discount_amount_local_cents;not null;default:0"`
	DiscountAmountNationalCents int         `gorm:"column:discount_amount_national_cents;not null;default:0"`
	IsActive                    bool        `gorm:"column:is_active;not null;default:true"`
	Items                       []ComboItem `gorm:"foreignKey:ComboID;constraint:OnDelete:CASCADE"`
	CreatedAt                   time.Time   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt                   time.Time   `gorm:"column:updated_at;autoUpdateTime"`
}
