package routes

import (
	"github.com/Mensah-712/BundleHub/config"
	"github.com/Mensah-712/BundleHub/controllers"
	"github.com/Mensah-712/BundleHub/utils"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter() *gin.Engine {
	router := gin.Default()

	store := cookie.NewStore([]byte(config.App.SessionSecret))
	store.Options(sessions.Options{
		MaxAge:   60 * 60 * 24, // 1 day
		Path:     "/",
		Secure:   config.App.Env == "production",
		HttpOnly: true,
	})
	router.Use(sessions.Sessions("bundlehub", store))

	// Auth routes (for OAuth)
	auth := router.Group("/auth")
	{
		auth.GET("/google/login", controllers.GoogleLogin)
		auth.GET("/google/callback", controllers.GoogleCallback)
	}

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(utils.MetricsHandler()))

	// API version group
	api := router.Group("/v1")
	{
		initUserRoutes(api)
		initAdminRoutes(api)

		// Gateway webhooks carry their own signature check
		api.POST("/webhooks/gateway", controllers.GatewayWebhook)
	}

	return router
}
