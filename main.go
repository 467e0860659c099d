package main

import (
	"log"
	"time"

	"github.com/Mensah-712/BundleHub/config"
	"github.com/Mensah-712/BundleHub/controllers"
	"github.com/Mensah-712/BundleHub/routes"
	"github.com/Mensah-712/BundleHub/utils"
)

func main() {
	// Initialize logger
	if err := utils.InitLogger(); err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}

	// Load environment variables
	cfg, err := config.LoadConfig()
	if err != nil {
		utils.LogError("Error loading config: %v", err)
		log.Fatal("Error loading config:", err)
	}

	// Initialize database
	config.InitDB()

	// Wire the wallet/order engine
	reconciler := controllers.InitServices(cfg)

	// Create sample admin
	if err := controllers.CreateSampleAdmin(); err != nil {
		utils.LogError("Failed to create sample admin: %v", err)
		log.Fatal("Failed to create sample admin:", err)
	}

	// Seed the catalog if empty
	if err := controllers.CreateDefaultBundles(); err != nil {
		utils.LogError("Failed to seed bundles: %v", err)
		log.Fatal("Failed to seed bundles:", err)
	}

	// Initialize Google OAuth
	config.InitGoogleOAuth()

	// Sweep long-Initiated deposit intents to Expired in the background
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if _, err := reconciler.ExpireStale(cfg.DepositIntentTTL); err != nil {
				utils.LogError("Deposit intent sweep failed: %v", err)
			}
		}
	}()

	// Set up router
	router := routes.SetupRouter()

	// Add middleware
	router.Use(utils.LoggerMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())

	utils.LogInfo("Server starting on port %s", cfg.Port)
	// Start server
	if err := router.Run(":" + cfg.Port); err != nil {
		utils.LogError("Error starting server: %v", err)
		log.Fatal("Error starting server:", err)
	}
}
