package shipping

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vitrinalabs/vitrina-backend/internal/pricing"
	"github.com/vitrinalabs/vitrina-backend/pkg/db/models"
	pkgerrors "github.com/vitrinalabs/vitrina-backend/pkg/errors"
)

// Service answers which delivery options are on offer and quotes one of them.
// The engine downstream treats the quoted price as opaque.
type Service interface {
	Options(ctx context.Context) ([]models.ShippingOption, error)
	Quote(ctx context.Context, optionID uuid.UUID) (*pricing.ShippingSelection, error)
}

type service struct {
	repo OptionRepository
}

func NewService(repo OptionRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("shipping option repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Options(ctx context.Context) ([]models.ShippingOption, error) {
	options, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list shipping options")
	}
	return options, nil
}

func (s *service) Quote(ctx context.Context, optionID uuid.UUID) (*pricing.ShippingSelection, error) {
	option, err := s.repo.FindActiveByID(ctx, optionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "shipping option not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load shipping option")
	}
	return &pricing.ShippingSelection{
		PriceCents: option.PriceCents,
		Currency:   option.Currency,
	}, nil
}
