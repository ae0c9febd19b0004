package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type loginRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// LoginHandler exchanges a provider-issued ID token for a session token. The
// provider does the actual identity verification; this service only mints
// the session.
func LoginHandler(provider *ProviderClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
			return
		}

		userID, email, err := provider.VerifyIDToken(c.Request.Context(), req.IDToken)
		if err != nil {
			log.Warn().Err(err).Msg("auth: login token verification failed")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid identity token"})
			return
		}

		token, err := IssueToken(userID, email)
		if err != nil {
			log.Error().Err(err).Msg("auth: failed to sign session token")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token":  token,
			"userId": userID,
			"email":  email,
		})
	}
}
