package coupons

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/vitrinalabs/vitrina-backend/pkg/db/models"
	pkgerrors "github.com/vitrinalabs/vitrina-backend/pkg/errors"
	"github.com/vitrinalabs/vitrina-backend/pkg/logger"
)

// Service validates submitted coupon codes and tracks the applied coupon per
// checkout session. It never mutates used_count; the ordering flow owns that
// at commit time.
type Service interface {
	Apply(ctx context.Context, sessionID, code string, subtotalCents int) (*models.Coupon, error)
	Remove(ctx context.Context, sessionID string) error
	Applied(ctx context.Context, sessionID string) (*models.Coupon, error)
}

type service struct {
	repo     CouponRepository
	sessions SessionStore
	logg     *logger.Logger
	now      func() time.Time
}

// NewService builds the coupon validator on top of the repository and the
// session store.
func NewService(repo CouponRepository, sessions SessionStore, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("coupon repository required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session store required")
	}
	return &service{
		repo:     repo,
		sessions: sessions,
		logg:     logg,
		now:      time.Now,
	}, nil
}

// NormalizeCode trims and upper-cases a submitted code; matching is
// case-insensitive by construction.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Apply runs the validation state machine and, on acceptance, records the
// coupon as the session's applied coupon.
func (s *service) Apply(ctx context.Context, sessionID, code string, subtotalCents int) (*models.Coupon, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	coupon, err := s.validate(ctx, code, subtotalCents)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Save(ctx, sessionID, coupon.Code); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist applied coupon")
	}

	if s.logg != nil {
		lctx := s.logg.WithCouponCode(ctx, coupon.Code)
		s.logg.Info(lctx, "coupon applied")
	}
	return coupon, nil
}

// Remove clears the applied coupon. Pure state reset; nothing is re-validated.
func (s *service) Remove(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	if err := s.sessions.Clear(ctx, sessionID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear applied coupon")
	}
	return nil
}

// Applied resolves the session's applied coupon, or nil when none is set.
// A coupon deactivated since it was applied silently drops off the session.
func (s *service) Applied(ctx context.Context, sessionID string) (*models.Coupon, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, nil
	}

	code, err := s.sessions.Fetch(ctx, sessionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read applied coupon")
	}
	if code == "" {
		return nil, nil
	}

	coupon, err := s.repo.FindActiveByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = s.sessions.Clear(ctx, sessionID)
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load applied coupon")
	}
	return coupon, nil
}

func (s *service) validate(ctx context.Context, code string, subtotalCents int) (*models.Coupon, error) {
	normalized := NormalizeCode(code)
	if normalized == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "coupon code is required")
	}

	coupon, err := s.repo.FindActiveByCode(ctx, normalized)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeRejected, "coupon invalid or not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load coupon")
	}

	now := s.now()
	if now.Before(coupon.ValidFrom) {
		return nil, pkgerrors.New(pkgerrors.CodeRejected, "coupon not yet valid")
	}
	if coupon.ValidUntil != nil && now.After(*coupon.ValidUntil) {
		return nil, pkgerrors.New(pkgerrors.CodeRejected, "coupon expired")
	}

	if coupon.UsageLimit != nil && coupon.UsedCount >= *coupon.UsageLimit {
		return nil, pkgerrors.New(pkgerrors.CodeRejected, "coupon usage limit reached")
	}

	if coupon.MinPurchaseCents > 0 && subtotalCents < coupon.MinPurchaseCents {
		return nil, pkgerrors.New(pkgerrors.CodeRejected, "cart subtotal below coupon minimum").
			WithDetails(map[string]any{"min_purchase_cents": coupon.MinPurchaseCents})
	}

	return coupon, nil
}
