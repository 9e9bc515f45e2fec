package shipping

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vitrinalabs/vitrina-backend/internal/repo"
	"github.com/vitrinalabs/vitrina-backend/pkg/db/models"
)

// OptionRepository exposes the shipping-option read model.
type OptionRepository interface {
	ListActive(ctx context.Context) ([]models.ShippingOption, error)
	FindActiveByID(ctx context.Context, id uuid.UUID) (*models.ShippingOption, error)
}

type Repository struct {
	repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) ListActive(ctx context.Context) ([]models.ShippingOption, error) {
	var options []models.ShippingOption
	err := r.DB(ctx).
		Where("is_active = ?", true).
		Order("price_cents ASC").
		Find(&options).Error
	if err != nil {
		return nil, err
	}
	return options, nil
}

func (r *Repository) FindActiveByID(ctx context.Context, id uuid.UUID) (*models.ShippingOption, error) {
	var option models.ShippingOption
	err := r.DB(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&option).Error
	if err != nil {
		return nil, err
	}
	return &option, nil
}
