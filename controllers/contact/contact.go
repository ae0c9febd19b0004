package contactcontroller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/dwarkawear/storefront-api/models"
)

// ContactInput mirrors the public contact form.
type ContactInput struct {
	Name    string `json:"name" binding:"required,min=2"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required,min=5"`
	Message string `json:"message" binding:"required,min=10"`
}

// POST /contacts — public.
func CreateContact(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ContactInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid contact payload", "fields": fieldErrors(err)})
			return
		}

		message := models.ContactMessage{
			Name:    input.Name,
			Email:   input.Email,
			Subject: input.Subject,
			Message: input.Message,
		}
		if err := db.Create(&message).Error; err != nil {
			log.Error().Err(err).Msg("contact: create failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit message"})
			return
		}
		c.JSON(http.StatusCreated, message)
	}
}

// GET /contacts — admin only.
func ListContacts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		messages := []models.ContactMessage{}
		if err := db.Order("created_at DESC, id DESC").Find(&messages).Error; err != nil {
			log.Error().Err(err).Msg("contact: listing failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch messages"})
			return
		}
		c.JSON(http.StatusOK, messages)
	}
}

// DELETE /contacts?id= — admin only.
func DeleteContact(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Query("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message id"})
			return
		}

		result := db.Delete(&models.ContactMessage{}, id)
		if result.Error != nil {
			log.Error().Err(result.Error).Uint64("id", id).Msg("contact: delete failed")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete message"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Message not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
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
