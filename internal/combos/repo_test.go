package combos

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vitrinalabs/vitrina-backend/pkg/db/models"
)

func setupComboTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{
		`CREATE TABLE products (
  id TEXT PRIMARY KEY,
  slug TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  description TEXT,
  category TEXT NOT NULL,
  local_price_cents INTEGER,
  national_price_cents INTEGER,
  stock INTEGER NOT NULL DEFAULT 0,
  images TEXT NOT NULL DEFAULT '{}',
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE combos (
  id TEXT PRIMARY KEY,
  slug TEXT NOT NULL UNIQUE,
  title TEXT NOT NULL,
  discount_percentage_local INTEGER NOT NULL DEFAULT 0,
  discount_percentage_national INTEGER NOT NULL DEFAULT 0,
  discount_amount_local_cents INTEGER NOT NULL DEFAULT 0,
  discount_amount_national_cents INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
		`CREATE TABLE combo_items (
  id TEXT PRIMARY KEY,
  combo_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func seedCombo(t *testing.T, db *gorm.DB, slug string, active bool, memberSlugs ...string) *models.Combo {
	t.Helper()

	combo := &models.Combo{
		ID:                      uuid.New(),
		Slug:                    slug,
		Title:                   "Combo " + slug,
		DiscountPercentageLocal: 15,
		IsActive:                active,
	}
	require.NoError(t, db.Create(combo).Error)

	for i, memberSlug := range memberSlugs {
		product := &models.Product{
			ID:                 uuid.New(),
			Slug:               memberSlug,
			Name:               memberSlug,
			Category:           "Decoración",
			NationalPriceCents: intPtr(10000),
			IsActive:           true,
		}
		require.NoError(t, db.Create(product).Error)
		require.NoError(t, db.Create(&models.ComboItem{
			ID:        uuid.New(),
			ComboID:   combo.ID,
			ProductID: product.ID,
			Quantity:  i + 1,
		}).Error)
	}
	return combo
}

func intPtr(v int) *int {
	return &v
}

func TestFindActiveBySlugLoadsItemsWithProducts(t *testing.T) {
	db := setupComboTestDB(t)
	repo := NewRepository(db)

	seedCombo(t, db, "starter-pack", true, "lamp-a", "lamp-b")

	combo, err := repo.FindActiveBySlug(context.Background(), "starter-pack")
	require.NoError(t, err)
	require.Len(t, combo.Items, 2)
	for _, item := range combo.Items {
		require.NotNil(t, item.Product)
		require.NotEmpty(t, item.Product.Slug)
	}
}

func TestFindActiveBySlugIgnoresInactive(t *testing.T) {
	db := setupComboTestDB(t)
	repo := NewRepository(db)

	seedCombo(t, db, "retired-pack", false, "lamp-c")

	_, err := repo.FindActiveBySlug(context.Background(), "retired-pack")
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func TestListActiveReturnsOnlyActiveCombos(t *testing.T) {
	db := setupComboTestDB(t)
	repo := NewRepository(db)

	seedCombo(t, db, "alpha", true, "p-1")
	seedCombo(t, db, "beta", false, "p-2")

	combos, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, combos, 1)
	require.Equal(t, "alpha", combos[0].Slug)
}
