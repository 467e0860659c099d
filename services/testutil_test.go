package services

import (
	"fmt"
	"testing"

	"github.com/Mensah-712/BundleHub/config"
	"github.com/Mensah-712/BundleHub/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory database with the production schema. A
// single connection keeps every goroutine on the same in-memory store
// and serializes transactions the way a row lock would.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, role string) *models.User {
	t.Helper()
	user := models.User{
		Username: fmt.Sprintf("%s_%s", role, t.Name()),
		Email:    fmt.Sprintf("%s_%s@example.com", role, t.Name()),
		Role:     role,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func createTestBundle(t *testing.T, db *gorm.DB, standard models.Money, overrides map[string]models.Money) *models.Bundle {
	t.Helper()
	bundle := models.Bundle{
		Name:          "MTN 1GB Weekly",
		Network:       models.NetworkMTN,
		DataMB:        1024,
		ValidityDays:  7,
		StandardPrice: standard,
		IsActive:      true,
	}
	for role, price := range overrides {
		bundle.RolePrices = append(bundle.RolePrices, models.BundleRolePrice{Role: role, Price: price})
	}
	require.NoError(t, db.Create(&bundle).Error)
	return &bundle
}

// settledSum recomputes the wallet balance from its settled entries,
// the way the audit script does.
func settledSum(t *testing.T, db *gorm.DB, walletID uint) models.Money {
	t.Helper()
	var txns []models.WalletTransaction
	require.NoError(t, db.Where("wallet_id = ?", walletID).Find(&txns).Error)
	var sum models.Money
	for i := range txns {
		sum += txns[i].SignedAmount()
	}
	return sum
}

func countByReference(t *testing.T, db *gorm.DB, reference string) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.WalletTransaction{}).Where("reference = ?", reference).Count(&count).Error)
	return count
}
