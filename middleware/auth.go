package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dwarkawear/storefront-api/auth"
)

// Context keys set by RequireAuth.
const (
	ContextUserID = "user_id"
	ContextEmail  = "user_email"
)

// RequireAuth validates the session token and stores the caller identity in
// the request context. Authorization failures carry no detail about why.
func RequireAuth(c *gin.Context) {
	tokenString := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if tokenString == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	identity, err := auth.ParseToken(tokenString)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	c.Set(ContextUserID, identity.UserID)
	c.Set(ContextEmail, identity.Email)
	c.Next()
}

// RequireAdmin gates a route behind the access policy. Must run after
// RequireAuth.
func RequireAdmin(gate *auth.Gate) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(ContextUserID)
		if !gate.IsAdmin(c.Request.Context(), userID) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Next()
	}
}
