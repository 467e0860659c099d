package controllers

import (
	"os"

	"github.com/Mensah-712/BundleHub/config"
	"github.com/Mensah-712/BundleHub/models"
	"github.com/Mensah-712/BundleHub/utils"
)

// CreateSampleAdmin ensures an admin account exists, using credentials
// from the environment or development defaults.
func CreateSampleAdmin() error {
	var count int64
	if err := config.DB.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@bundlehub.store"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "Admin123"
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	admin := models.User{
		Username:   "admin",
		Email:      email,
		Password:   hash,
		Role:       models.RoleAdmin,
		IsVerified: true,
	}
	if err := config.DB.Create(&admin).Error; err != nil {
		return err
	}
	utils.LogInfo("Created sample admin account %s", email)
	return nil
}

// CreateDefaultBundles seeds the catalog when it is empty, so a fresh
// install has something to sell. Agent prices sit below standard; the
// editor role pays standard and is deliberately absent from the
// overrides.
func CreateDefaultBundles() error {
	var count int64
	if err := config.DB.Model(&models.Bundle{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	bundles := []models.Bundle{
		{
			Name: "MTN 1GB Weekly", Network: models.NetworkMTN,
			DataMB: 1024, ValidityDays: 7, StandardPrice: 600, IsActive: true,
			RolePrices: []models.BundleRolePrice{{Role: models.RoleAgent, Price: 500}},
		},
		{
			Name: "MTN 5GB Monthly", Network: models.NetworkMTN,
			DataMB: 5120, ValidityDays: 30, StandardPrice: 2500, IsActive: true,
			RolePrices: []models.BundleRolePrice{{Role: models.RoleAgent, Price: 2200}},
		},
		{
			Name: "Telecel 2GB Weekly", Network: models.NetworkTelecel,
			DataMB: 2048, ValidityDays: 7, StandardPrice: 1000, IsActive: true,
			RolePrices: []models.BundleRolePrice{{Role: models.RoleAgent, Price: 850}},
		},
		{
			Name: "AirtelTigo 10GB Monthly", Network: models.NetworkAirtelTigo,
			DataMB: 10240, ValidityDays: 30, StandardPrice: 4000, IsActive: true,
		},
	}
	for i := range bundles {
		if err := config.DB.Create(&bundles[i]).Error; err != nil {
			return err
		}
	}
	utils.LogInfo("Seeded %d default bundles", len(bundles))
	return nil
}
