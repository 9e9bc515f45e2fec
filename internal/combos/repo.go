package combos

import (
	"context"

	"gorm.io/gorm"

	"github.com/vitrinalabs/vitrina-backend/pkg/db/models"
)

// ComboRepository exposes the two read queries the expander needs.
type ComboRepository interface {
	FindActiveBySlug(ctx context.Context, slug string) (*models.Combo, error)
	ListActive(ctx context.Context) ([]models.Combo, error)
}

// Repository loads combo definitions with their member items and products.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindActiveBySlug loads one active combo by slug, joined with its item rows
// and each item's product.
func (r *Repository) FindActiveBySlug(ctx context.Context, slug string) (*models.Combo, error) {
	var combo models.Combo
	err := r.db.WithContext(ctx).
		Preload("Items.Product").
		First(&combo, "slug = ? AND is_active = ?", slug, true).Error
	if err != nil {
		return nil, err
	}
	return &combo, nil
}

// ListActive returns all active combos with their contents, newest first.
func (r *Repository) ListActive(ctx context.Context) ([]models.Combo, error) {
	var combos []models.Combo
	err := r.db.WithContext(ctx).
		Preload("Items.Product").
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&combos).Error
	if err != nil {
		return nil, err
	}
	return combos, nil
}
