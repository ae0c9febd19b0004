package routes

import (
	"github.com/gin-gonic/gin"

	ordercontroller "github.com/dwarkawear/storefront-api/controllers/order"
	"github.com/dwarkawear/storefront-api/middleware"
)

// SetupOrderRoutes registers the authenticated order endpoints. Status
// transitions and the live feed additionally pass the admin gate.
func SetupOrderRoutes(r *gin.Engine, deps Deps) {
	group := r.Group("/orders")
	group.Use(middleware.RequireAuth)
	{
		group.POST("", ordercontroller.CreateOrder(deps.Orders, deps.Hub))
		group.GET("", ordercontroller.ListOrders(deps.Orders, deps.Gate))
		group.GET("/feed", middleware.RequireAdmin(deps.Gate), deps.Hub.Feed())
		group.GET("/:id", ordercontroller.GetOrder(deps.Orders, deps.Gate))
		group.PATCH("/:id", middleware.RequireAdmin(deps.Gate), ordercontroller.UpdateOrderStatus(deps.Orders, deps.Hub))
	}
}
