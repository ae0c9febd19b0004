package productcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/dwarkawear/storefront-api/catalog"
	"github.com/dwarkawear/storefront-api/models"
)

// ProductInput is the admin payload for creating or replacing a product.
type ProductInput struct {
	Name            string         `json:"name" binding:"required,min=3"`
	Slug            string         `json:"slug"`
	Description     string         `json:"description" binding:"required,min=10"`
	LongDescription string         `json:"longDescription"`
	PriceNPR        float64        `json:"priceNPR" binding:"required,gt=0"`
	PriceUSD        float64        `json:"priceUSD" binding:"required,gt=0"`
	Images          []string       `json:"images" binding:"required,min=1,dive,url"`
	Category        string         `json:"category" binding:"required,oneof=tops bottoms dresses accessories outerwear"`
	Fabric          string         `json:"fabric" binding:"required,oneof=cotton hemp linen cotton-hemp cotton-linen"`
	Sizes           []string       `json:"sizes" binding:"required,min=1"`
	Colors          []models.Color `json:"colors" binding:"dive"`
	InStock         *bool          `json:"inStock"`
	Featured        bool           `json:"featured"`
}

func (in ProductInput) toModel() *models.Product {
	inStock := true
	if in.InStock != nil {
		inStock = *in.InStock
	}
	return &models.Product{
		Name:            in.Name,
		Slug:            in.Slug,
		Description:     in.Description,
		LongDescription: in.LongDescription,
		PriceNPR:        in.PriceNPR,
		PriceUSD:        in.PriceUSD,
		Images:          models.StringList(in.Images),
		Category:        models.Category(in.Category),
		Fabric:          models.Fabric(in.Fabric),
		Sizes:           models.StringList(in.Sizes),
		Colors:          models.ColorList(in.Colors),
		InStock:         inStock,
		Featured:        in.Featured,
	}
}

// GET /products
func ListProducts(repo *catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

		result, err := repo.List(catalog.Filters{
			Category: c.DefaultQuery("category", "all"),
			Fabric:   c.DefaultQuery("fabric", "all"),
			Search:   c.Query("search"),
			Sort:     c.DefaultQuery("sort", catalog.SortNewest),
			Page:     page,
			Limit:    limit,
		})
		if err != nil {
			log.Error().Err(err).Msg("product: listing failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// GET /products/:slug
func GetProduct(repo *catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		product, err := repo.BySlug(c.Param("slug"))
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			log.Error().Err(err).Str("slug", c.Param("slug")).Msg("product: fetch failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// GET /products/:slug/related
func RelatedProducts(repo *catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("slug")
		product, err := repo.BySlug(slug)
		if err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			log.Error().Err(err).Str("slug", slug).Msg("product: related lookup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch related products"})
			return
		}

		related, err := repo.Related(product.Category, slug)
		if err != nil {
			log.Error().Err(err).Str("slug", slug).Msg("product: related lookup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch related products"})
			return
		}
		c.JSON(http.StatusOK, related)
	}
}

// GET /products/featured
func FeaturedProducts(repo *catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := repo.Featured()
		if err != nil {
			log.Error().Err(err).Msg("product: featured lookup failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch featured products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

// POST /admin/products
func CreateProduct(repo *catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product payload", "fields": fieldErrors(err)})
			return
		}

		product := input.toModel()
		if err := repo.Create(product); err != nil {
			if errors.Is(err, catalog.ErrSlugTaken) {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":  "Invalid product payload",
					"fields": gin.H{"slug": "a product with this slug already exists"},
				})
				return
			}
			log.Error().Err(err).Msg("product: create failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

// PUT /admin/products?id=
func UpdateProduct(repo *catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Query("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
			return
		}

		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product payload", "fields": fieldErrors(err)})
			return
		}

		product, err := repo.Update(uint(id), input.toModel())
		if err != nil {
			switch {
			case errors.Is(err, catalog.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			case errors.Is(err, catalog.ErrSlugTaken):
				c.JSON(http.StatusBadRequest, gin.H{
					"error":  "Invalid product payload",
					"fields": gin.H{"slug": "a product with this slug already exists"},
				})
			default:
				log.Error().Err(err).Uint64("id", id).Msg("product: update failed")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			}
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

// DELETE /admin/products?id=
func DeleteProduct(repo *catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Query("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product id"})
			return
		}

		if err := repo.Delete(uint(id)); err != nil {
			if errors.Is(err, catalog.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
				return
			}
			log.Error().Err(err).Uint64("id", id).Msg("product: delete failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// fieldErrors turns binding failures into per-field messages the client can
// act on.
func fieldErrors(err error) map[string]string {
	fields := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			fields[fe.Field()] = "failed " + fe.Tag() + " validation"
		}
	}
	return fields
}
