package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dwarkawear/storefront-api/auth"
	"github.com/dwarkawear/storefront-api/catalog"
	ordercontroller "github.com/dwarkawear/storefront-api/controllers/order"
	uploadcontroller "github.com/dwarkawear/storefront-api/controllers/upload"
	"github.com/dwarkawear/storefront-api/orders"
)

// Deps carries the shared collaborators the route groups are built from.
type Deps struct {
	DB       *gorm.DB
	Catalog  *catalog.Repository
	Orders   *orders.Service
	Gate     *auth.Gate
	Provider *auth.ProviderClient
	Media    uploadcontroller.MediaHost
	Hub      *ordercontroller.Hub
}

// SetupRoutes is the single entry point that wires every route group onto
// the engine.
func SetupRoutes(r *gin.Engine, deps Deps) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/auth/login", auth.LoginHandler(deps.Provider))

	SetupShopRoutes(r, deps)
	SetupOrderRoutes(r, deps)
	SetupAdminRoutes(r, deps)
}
