package shipping

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vitrinalabs/vitrina-backend/pkg/db/models"
	"github.com/vitrinalabs/vitrina-backend/pkg/enums"
)

func setupShippingTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.Exec(`CREATE TABLE shipping_options (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  price_cents INTEGER NOT NULL DEFAULT 0,
  currency TEXT NOT NULL DEFAULT 'PYG',
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`).Error)
	return db
}

func seedOption(t *testing.T, db *gorm.DB, name string, priceCents int, active bool) *models.ShippingOption {
	t.Helper()

	option := &models.ShippingOption{
		ID:         uuid.New(),
		Name:       name,
		PriceCents: priceCents,
		Currency:   enums.CurrencyPYG,
		IsActive:   active,
	}
	require.NoError(t, db.Create(option).Error)
	return option
}

func TestListActiveOrdersByPrice(t *testing.T) {
	db := setupShippingTestDB(t)
	repo := NewRepository(db)

	seedOption(t, db, "Courier 48h", 5000, true)
	seedOption(t, db, "Moto same day", 2500, true)
	seedOption(t, db, "Retired tier", 100, false)

	options, err := repo.ListActive(context.Background())
	require.NoError(t, err)
	require.Len(t, options, 2)
	require.Equal(t, "Moto same day", options[0].Name)
	require.Equal(t, "Courier 48h", options[1].Name)
}

func TestFindActiveByIDSkipsInactive(t *testing.T) {
	db := setupShippingTestDB(t)
	repo := NewRepository(db)

	active := seedOption(t, db, "Moto same day", 2500, true)
	inactive := seedOption(t, db, "Retired tier", 100, false)

	found, err := repo.FindActiveByID(context.Background(), active.ID)
	require.NoError(t, err)
	require.Equal(t, active.ID, found.ID)

	_, err = repo.FindActiveByID(context.Background(), inactive.ID)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}
