package config

import (
	"fmt"

	"github.com/Mensah-712/BundleHub/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB initializes the database connection and migrates the schema
func InitDB() {
	cfg := App
	if cfg == nil {
		loaded, err := LoadConfig()
		if err != nil {
			panic(fmt.Sprintf("Failed to load config: %v", err))
		}
		cfg = loaded
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to database: %v", err))
	}

	DB = db

	if err := Migrate(db); err != nil {
		panic(fmt.Sprintf("Failed to migrate database: %v", err))
	}
}

// Migrate applies the schema. The test setup uses the same migration.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Bundle{},
		&models.BundleRolePrice{},
		&models.Wallet{},
		&models.WalletTransaction{},
		&models.Order{},
		&models.DepositIntent{},
	)
}
