package routes

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"sales-feedback-server/apperrors"
	"sales-feedback-server/database"
	"sales-feedback-server/middleware"
	"sales-feedback-server/models"
	"sales-feedback-server/services"
)

type customerHandler struct {
	sender services.MessageSender
}

// RegisterCustomerRoutes registers the customer registration endpoint
func RegisterCustomerRoutes(router *gin.Engine, sender services.MessageSender) {
	h := &customerHandler{sender: sender}
	router.POST("/collect_sales_feedback/", h.collectSalesFeedback)
}

// collectSalesFeedback registers a customer and triggers the outbound
// survey template via WhatsApp
func (h *customerHandler) collectSalesFeedback(c *gin.Context) {
	var input models.SalesCustomerCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid customer data", "details": err.Error()})
		return
	}

	if !middleware.ValidatePhoneNumber(input.PhoneNumber) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid phone number",
			"message": "Phone number must be in international format, e.g. +15551234567",
		})
		return
	}

	customer := models.Customer{
		Name:            input.Name,
		PhoneNumber:     input.PhoneNumber,
		VehicleName:     input.VehicleName,
		PurchaseDate:    input.PurchaseDate,
		AdditionalNotes: input.AdditionalNotes,
	}

	if err := database.DB.Create(&customer).Error; err != nil {
		if isUniqueViolation(err) {
			c.JSON(http.StatusConflict, gin.H{
				"error":   "Customer already registered",
				"message": "A customer with this phone number already exists",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create customer"})
		return
	}

	if err := h.sender.SendFeedbackRequest(customer.PhoneNumber, customer.Name, customer.VehicleName); err != nil {
		c.JSON(apperrors.HTTPStatus(err), gin.H{
			"error":   "Failed to send WhatsApp message",
			"message": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Feedback request sent successfully to customer via WhatsApp.",
	})
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// Fallback for drivers that do not translate constraint errors
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate key")
}
