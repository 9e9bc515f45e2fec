package coupons

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vitrinalabs/vitrina-backend/pkg/db/models"
	"github.com/vitrinalabs/vitrina-backend/pkg/enums"
	pkgerrors "github.com/vitrinalabs/vitrina-backend/pkg/errors"
)

type stubCouponRepo struct {
	coupons map[string]*models.Coupon
	err     error
}

func (s *stubCouponRepo) FindActiveByCode(ctx context.Context, code string) (*models.Coupon, error) {
	if s.err != nil {
		return nil, s.err
	}
	coupon, ok := s.coupons[code]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return coupon, nil
}

type memorySessionStore struct {
	codes map[string]string
	err   error
}

func newMemorySessionStore() *memorySessionStore {
	return &memorySessionStore{codes: map[string]string{}}
}

func (m *memorySessionStore) Save(ctx context.Context, sessionID, code string) error {
	if m.err != nil {
		return m.err
	}
	m.codes[sessionID] = code
	return nil
}

func (m *memorySessionStore) Fetch(ctx context.Context, sessionID string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.codes[sessionID], nil
}

func (m *memorySessionStore) Clear(ctx context.Context, sessionID string) error {
	if m.err != nil {
		return m.err
	}
	delete(m.codes, sessionID)
	return nil
}

func fixedNow() time.Time {
	return time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
}

func validCoupon(code string) *models.Coupon {
	return &models.Coupon{
		ID:            uuid.New(),
		Code:          code,
		DiscountType:  enums.CouponDiscountTypePercentage,
		DiscountValue: 10,
		ValidFrom:     fixedNow().Add(-24 * time.Hour),
		IsActive:      true,
	}
}

func newTestService(t *testing.T, repo CouponRepository, sessions SessionStore) *service {
	t.Helper()
	svc, err := NewService(repo, sessions, nil)
	if err != nil {
		t.Fatalf("unexpected constructor error: %v", err)
	}
	typed := svc.(*service)
	typed.now = fixedNow
	return typed
}

func rejectionMessage(t *testing.T, err error) string {
	t.Helper()
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected typed error, got %v", err)
	}
	if typed.Code() != pkgerrors.CodeRejected {
		t.Fatalf("expected rejection code, got %s", typed.Code())
	}
	return typed.Message()
}

func TestApplyAcceptsAndNormalizesCode(t *testing.T) {
	t.Parallel()

	repo := &stubCouponRepo{coupons: map[string]*models.Coupon{"SAVE10": validCoupon("SAVE10")}}
	sessions := newMemorySessionStore()
	svc := newTestService(t, repo, sessions)

	coupon, err := svc.Apply(context.Background(), "sess-1", "  save10 ", 100000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if coupon.Code != "SAVE10" {
		t.Fatalf("expected normalized code, got %q", coupon.Code)
	}
	if sessions.codes["sess-1"] != "SAVE10" {
		t.Fatalf("expected session to record the applied code, got %q", sessions.codes["sess-1"])
	}
}

func TestApplyRejectsUnknownCode(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubCouponRepo{coupons: map[string]*models.Coupon{}}, newMemorySessionStore())

	_, err := svc.Apply(context.Background(), "sess-1", "NOPE", 100000)
	if got := rejectionMessage(t, err); got != "coupon invalid or not found" {
		t.Fatalf("unexpected rejection %q", got)
	}
}

func TestApplyRejectsOutsideValidityWindow(t *testing.T) {
	t.Parallel()

	early := validCoupon("EARLY")
	early.ValidFrom = fixedNow().Add(time.Hour)

	until := fixedNow().Add(-time.Hour)
	late := validCoupon("LATE")
	late.ValidUntil = &until

	svc := newTestService(t, &stubCouponRepo{coupons: map[string]*models.Coupon{
		"EARLY": early,
		"LATE":  late,
	}}, newMemorySessionStore())

	_, err := svc.Apply(context.Background(), "sess-1", "EARLY", 100000)
	if got := rejectionMessage(t, err); got != "coupon not yet valid" {
		t.Fatalf("unexpected rejection %q", got)
	}

	_, err = svc.Apply(context.Background(), "sess-1", "LATE", 100000)
	if got := rejectionMessage(t, err); got != "coupon expired" {
		t.Fatalf("unexpected rejection %q", got)
	}
}

func TestApplyRejectsExhaustedUsage(t *testing.T) {
	t.Parallel()

	limit := 5
	coupon := validCoupon("BURNED")
	coupon.UsageLimit = &limit
	coupon.UsedCount = 5

	svc := newTestService(t, &stubCouponRepo{coupons: map[string]*models.Coupon{"BURNED": coupon}}, newMemorySessionStore())

	_, err := svc.Apply(context.Background(), "sess-1", "BURNED", 100000)
	if got := rejectionMessage(t, err); got != "coupon usage limit reached" {
		t.Fatalf("unexpected rejection %q", got)
	}
}

func TestApplyRejectsBelowMinimumWithRequiredAmount(t *testing.T) {
	t.Parallel()

	coupon := validCoupon("BIGSPEND")
	coupon.MinPurchaseCents = 500000

	svc := newTestService(t, &stubCouponRepo{coupons: map[string]*models.Coupon{"BIGSPEND": coupon}}, newMemorySessionStore())

	_, err := svc.Apply(context.Background(), "sess-1", "BIGSPEND", 200000)
	if got := rejectionMessage(t, err); got != "cart subtotal below coupon minimum" {
		t.Fatalf("unexpected rejection %q", got)
	}

	details, ok := pkgerrors.As(err).Details().(map[string]any)
	if !ok {
		t.Fatalf("expected details map, got %T", pkgerrors.As(err).Details())
	}
	if details["min_purchase_cents"] != 500000 {
		t.Fatalf("expected required amount surfaced, got %+v", details)
	}
}

func TestRemoveIsPureStateReset(t *testing.T) {
	t.Parallel()

	repo := &stubCouponRepo{coupons: map[string]*models.Coupon{"SAVE10": validCoupon("SAVE10")}}
	sessions := newMemorySessionStore()
	svc := newTestService(t, repo, sessions)

	if _, err := svc.Apply(context.Background(), "sess-1", "SAVE10", 100000); err != nil {
		t.Fatalf("apply failed: %v", err)
	}
	if err := svc.Remove(context.Background(), "sess-1"); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	applied, err := svc.Applied(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("applied lookup failed: %v", err)
	}
	if applied != nil {
		t.Fatalf("expected no applied coupon after removal, got %+v", applied)
	}
}

func TestAppliedDropsStaleCoupon(t *testing.T) {
	t.Parallel()

	repo := &stubCouponRepo{coupons: map[string]*models.Coupon{}}
	sessions := newMemorySessionStore()
	sessions.codes["sess-1"] = "GONE"
	svc := newTestService(t, repo, sessions)

	applied, err := svc.Applied(context.Background(), "sess-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if applied != nil {
		t.Fatalf("deactivated coupon must drop off the session, got %+v", applied)
	}
	if _, ok := sessions.codes["sess-1"]; ok {
		t.Fatal("stale session entry should have been cleared")
	}
}

func TestApplyWrapsDependencyFailures(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, &stubCouponRepo{err: errors.New("db down")}, newMemorySessionStore())

	_, err := svc.Apply(context.Background(), "sess-1", "SAVE10", 100000)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}
