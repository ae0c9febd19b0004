package routes

import (
	"github.com/gin-gonic/gin"

	contactcontroller "github.com/dwarkawear/storefront-api/controllers/contact"
	ordercontroller "github.com/dwarkawear/storefront-api/controllers/order"
	productcontroller "github.com/dwarkawear/storefront-api/controllers/product"
	uploadcontroller "github.com/dwarkawear/storefront-api/controllers/upload"
	"github.com/dwarkawear/storefront-api/middleware"
)

// SetupAdminRoutes registers every privileged endpoint behind the access
// policy gate.
func SetupAdminRoutes(r *gin.Engine, deps Deps) {
	adminOnly := []gin.HandlerFunc{middleware.RequireAuth, middleware.RequireAdmin(deps.Gate)}

	adminGroup := r.Group("/admin", adminOnly...)
	{
		adminGroup.POST("/products", productcontroller.CreateProduct(deps.Catalog))
		adminGroup.PUT("/products", productcontroller.UpdateProduct(deps.Catalog))
		adminGroup.DELETE("/products", productcontroller.DeleteProduct(deps.Catalog))
		adminGroup.GET("/orders/export", ordercontroller.ExportOrders(deps.Orders))
	}

	contacts := r.Group("/contacts", adminOnly...)
	{
		contacts.GET("", contactcontroller.ListContacts(deps.DB))
		contacts.DELETE("", contactcontroller.DeleteContact(deps.DB))
	}

	r.POST("/upload", append(adminOnly, uploadcontroller.UploadImage(deps.Media))...)
}
