package coupons

import (
	"context"

	"gorm.io/gorm"

	"github.com/vitrinalabs/vitrina-backend/pkg/db/models"
)

// CouponRepository exposes the single read the validator needs.
type CouponRepository interface {
	FindActiveByCode(ctx context.Context, code string) (*models.Coupon, error)
}

// Repository loads coupon rows by exact code.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindActiveByCode loads one active coupon by exact (already normalized) code.
func (r *Repository) FindActiveByCode(ctx context.Context, code string) (*models.Coupon, error) {
	var coupon models.Coupon
	err := r.db.WithContext(ctx).
		First(&coupon, "code = ? AND is_active = ?", code, true).Error
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}
