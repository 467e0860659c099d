package controllers

import (
	"github.com/Mensah-712/BundleHub/config"
	"github.com/Mensah-712/BundleHub/models"
	"github.com/Mensah-712/BundleHub/services"
	"github.com/gin-gonic/gin"
)

// Package-level service instances shared by the handlers, wired once at
// startup.
var (
	ledgerService    *services.Ledger
	pricingResolver  *services.PricingResolver
	orderService     *services.OrderService
	depositService   *services.DepositService
	reconcileService *services.Reconciler
)

// InitServices constructs the engine services over the shared database
// handle. Returns the reconciler so main can run the expiry sweep.
func InitServices(cfg *config.Config) *services.Reconciler {
	gateway := services.NewRazorpayGateway(cfg.GatewayKey, cfg.GatewaySecret)

	ledgerService = services.NewLedger(config.DB)
	pricingResolver = services.NewPricingResolver(config.DB)
	orderService = services.NewOrderService(config.DB, ledgerService, pricingResolver)
	depositService = services.NewDepositService(config.DB, gateway, cfg.GatewayEnabled)
	reconcileService = services.NewReconciler(config.DB, gateway, ledgerService, cfg.GatewayVerifyTimeout)

	return reconcileService
}

// getUserFromContext extracts the authenticated user set by the auth
// middleware.
func getUserFromContext(c *gin.Context) (models.User, bool) {
	userVal, exists := c.Get("user")
	if !exists {
		return models.User{}, false
	}
	user, ok := userVal.(models.User)
	return user, ok
}
