package ordercontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/dwarkawear/storefront-api/auth"
	"github.com/dwarkawear/storefront-api/middleware"
	"github.com/dwarkawear/storefront-api/orders"
)

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// POST /orders
func CreateOrder(svc *orders.Service, hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(middleware.ContextUserID)
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input orders.CreateInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order payload", "fields": fieldErrors(err)})
			return
		}

		order, err := svc.Create(c.Request.Context(), userID, input)
		if err != nil {
			if errors.Is(err, orders.ErrValidation) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			log.Error().Err(err).Str("user_id", userID).Msg("order: creation failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
			return
		}

		hub.Broadcast(Event{Type: EventOrderCreated, Order: order})
		c.JSON(http.StatusCreated, order)
	}
}

// GET /orders?admin=true|false
func ListOrders(svc *orders.Service, gate *auth.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(middleware.ContextUserID)

		if c.Query("admin") == "true" {
			if !gate.IsAdmin(c.Request.Context(), userID) {
				c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
				return
			}
			all, err := svc.All(c.Request.Context())
			if err != nil {
				log.Error().Err(err).Msg("order: admin listing failed")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
				return
			}
			c.JSON(http.StatusOK, all)
			return
		}

		mine, err := svc.ByUser(c.Request.Context(), userID)
		if err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("order: listing failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, mine)
	}
}

// GET /orders/:id — owner or admin only.
func GetOrder(svc *orders.Service, gate *auth.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}

		order, err := svc.ByID(c.Request.Context(), uint(id))
		if err != nil {
			if errors.Is(err, orders.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
				return
			}
			log.Error().Err(err).Uint64("id", id).Msg("order: fetch failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}

		userID := c.GetString(middleware.ContextUserID)
		if order.UserID != userID && !gate.IsAdmin(c.Request.Context(), userID) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// PATCH /orders/:id — admin only, enforced by route middleware.
func UpdateOrderStatus(svc *orders.Service, hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}

		var req updateStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status payload", "fields": fieldErrors(err)})
			return
		}

		order, err := svc.UpdateStatus(c.Request.Context(), uint(id), req.Status)
		if err != nil {
			switch {
			case errors.Is(err, orders.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			case errors.Is(err, orders.ErrValidation):
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			default:
				log.Error().Err(err).Uint64("id", id).Msg("order: status update failed")
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
			}
			return
		}

		hub.Broadcast(Event{Type: EventStatusChanged, Order: order})
		c.JSON(http.StatusOK, order)
	}
}

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
