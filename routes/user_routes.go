package routes

import (
	"github.com/Mensah-712/BundleHub/controllers"
	"github.com/Mensah-712/BundleHub/middleware"
	"github.com/gin-gonic/gin"
)

// initUserRoutes registers the public auth routes and the authenticated
// storefront routes.
func initUserRoutes(api *gin.RouterGroup) {
	api.POST("/register", controllers.Register)
	api.POST("/login", controllers.Login)

	user := api.Group("/user")
	user.Use(middleware.AuthMiddleware())
	{
		user.GET("/bundles", controllers.ListBundles)
		user.GET("/bundles/:id", controllers.GetBundle)

		orders := user.Group("/orders")
		{
			orders.POST("", controllers.PlaceOrder)
			orders.GET("", controllers.ListOrders)
			orders.GET("/:id", controllers.GetOrder)
			orders.GET("/:id/receipt", controllers.DownloadOrderReceipt)
		}

		wallet := user.Group("/wallet")
		{
			wallet.GET("", controllers.GetWalletBalance)
			wallet.GET("/transactions", controllers.GetWalletTransactions)
			wallet.GET("/transactions/export", controllers.ExportWalletStatement)
			wallet.POST("/deposit", controllers.InitiateDeposit)
			wallet.GET("/deposit/verify", controllers.VerifyDeposit)
		}
	}
}
