package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/vitrinalabs/vitrina-backend/pkg/enums"
)

// Coupon is a redeemable discount code. Codes are stored upper-cased and
// matched exactly. UsedCount is incremented at order-commit time by the
// ordering flow, never by the validator.
type Coupon struct {
	ID               uuid.UUID                `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Code             string                   `gorm:"column:code;not null;uniqueIndex"`
	DiscountType     enums.CouponDiscountType `gorm:"column:discount_type;not null"`
	DiscountValue    int                      `gorm:"column:discount_value;not null"`
	ValidFrom        time.Time                `gorm:"column:valid_from;not null"`
	ValidUntil       *time.Time               `gorm:"column:valid_until"`
	UsageLimit       *int                     `gorm:"column:usage_limit"`
	UsedCount        int                      `gorm:"column:used_count;not null;default:0"`
	MinPurchaseCents int                      `gorm:"column:min_purchase_cents;not null;default:0"`
	IsActive         bool                     `gorm:"column:is_active;not null;default:true"`
	CreatedAt        time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}
