package services

import (
	"testing"

	"github.com/Mensah-712/BundleHub/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePriceRoleOverride(t *testing.T) {
	db := newTestDB(t)
	pricing := NewPricingResolver(db)
	bundle := createTestBundle(t, db, models.Money(2000), map[string]models.Money{
		models.RoleAgent: models.Money(1500),
	})

	loaded, err := pricing.BundleForPurchase(bundle.ID)
	require.NoError(t, err)

	assert.Equal(t, models.Money(1500), pricing.ResolvePrice(loaded, models.RoleAgent))
	assert.Equal(t, models.Money(2000), pricing.ResolvePrice(loaded, models.RoleUser))
	// Roles without an override, known or not, pay the standard price.
	assert.Equal(t, models.Money(2000), pricing.ResolvePrice(loaded, models.RoleEditor))
	assert.Equal(t, models.Money(2000), pricing.ResolvePrice(loaded, "guest"))
}

func TestResolvePriceZeroOverride(t *testing.T) {
	db := newTestDB(t)
	pricing := NewPricingResolver(db)
	// A zero override is a legitimate price (free for that role).
	bundle := createTestBundle(t, db, models.Money(2000), map[string]models.Money{
		models.RoleEditor: models.Money(0),
	})

	loaded, err := pricing.BundleForPurchase(bundle.ID)
	require.NoError(t, err)
	assert.Equal(t, models.Money(0), pricing.ResolvePrice(loaded, models.RoleEditor))
}

func TestBundleForPurchaseInactive(t *testing.T) {
	db := newTestDB(t)
	pricing := NewPricingResolver(db)
	bundle := createTestBundle(t, db, models.Money(2000), nil)
	require.NoError(t, db.Model(bundle).Update("is_active", false).Error)

	_, err := pricing.BundleForPurchase(bundle.ID)
	assert.ErrorIs(t, err, ErrBundleNotFound)
}

func TestBundleForPurchaseAbsent(t *testing.T) {
	db := newTestDB(t)
	pricing := NewPricingResolver(db)

	_, err := pricing.BundleForPurchase(999)
	assert.ErrorIs(t, err, ErrBundleNotFound)
}
