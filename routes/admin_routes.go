package routes

import (
	"github.com/Mensah-712/BundleHub/controllers"
	"github.com/Mensah-712/BundleHub/middleware"
	"github.com/gin-gonic/gin"
)

// initAdminRoutes registers the admin surface: account management and
// the fulfillment loop. The catalog itself is managed out of band.
func initAdminRoutes(api *gin.RouterGroup) {
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.GET("/users", controllers.ListUsers)
		admin.PATCH("/users/:id/role", controllers.UpdateUserRole)
		admin.PATCH("/users/:id/block", controllers.SetUserBlocked)

		admin.PATCH("/orders/:id/fulfillment", controllers.UpdateOrderFulfillment)
	}
}
