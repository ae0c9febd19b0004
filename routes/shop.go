package routes

import (
	"github.com/gin-gonic/gin"

	contactcontroller "github.com/dwarkawear/storefront-api/controllers/contact"
	productcontroller "github.com/dwarkawear/storefront-api/controllers/product"
)

// SetupShopRoutes registers the public storefront endpoints.
func SetupShopRoutes(r *gin.Engine, deps Deps) {
	products := r.Group("/products")
	{
		products.GET("", productcontroller.ListProducts(deps.Catalog))
		products.GET("/featured", productcontroller.FeaturedProducts(deps.Catalog))
		products.GET("/:slug", productcontroller.GetProduct(deps.Catalog))
		products.GET("/:slug/related", productcontroller.RelatedProducts(deps.Catalog))
	}

	r.POST("/contacts", contactcontroller.CreateContact(deps.DB))
}
