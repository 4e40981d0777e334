package routes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"sales-feedback-server/database"
	"sales-feedback-server/models"
)

// RegisterFeedbackRoutes registers the feedback lookup endpoint
func RegisterFeedbackRoutes(router *gin.Engine) {
	router.GET("/feedback/:phone_number", getFeedbackByNumber)
}

// getFeedbackByNumber returns the first feedback recorded for the customer
// registered under the given phone number
func getFeedbackByNumber(c *gin.Context) {
	phoneNumber := c.Param("phone_number")

	var feedback models.Feedback
	err := database.DB.
		Joins("JOIN sales_customers ON sales_customers.id = feedback.customer_id").
		Where("sales_customers.phone_number = ?", phoneNumber).
		First(&feedback).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Feedback not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch feedback"})
		}
		return
	}

	c.JSON(http.StatusOK, models.FeedbackResponse{
		ID:         feedback.ID,
		CustomerID: feedback.CustomerID,
		Rating:     feedback.Rating,
		Comments:   feedback.Comments,
		CreatedAt:  feedback.CreatedAt,
	})
}
