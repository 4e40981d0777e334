package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sales-feedback-server/config"
	"sales-feedback-server/models"
	"sales-feedback-server/services"
)

type webhookHandler struct {
	cfg      *config.Config
	feedback *services.FeedbackService
}

// RegisterWebhookRoutes registers the Meta webhook verification and
// ingestion endpoints
func RegisterWebhookRoutes(router *gin.Engine, cfg *config.Config, feedback *services.FeedbackService) {
	h := &webhookHandler{cfg: cfg, feedback: feedback}
	router.GET("/webhook", h.verifyWebhook)
	router.POST("/webhook", h.receiveWebhook)
}

// verifyWebhook answers the provider's one-time subscription handshake.
// The challenge is echoed back as a raw string, never cast to a number.
func (h *webhookHandler) verifyWebhook(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && token == h.cfg.WhatsApp.VerifyToken {
		c.String(http.StatusOK, challenge)
		return
	}

	c.JSON(http.StatusForbidden, gin.H{
		"error":   "Forbidden",
		"message": "Webhook verification failed",
	})
}

// receiveWebhook ingests incoming messages from Meta. A malformed or empty
// payload is rejected with 400; everything else is acknowledged with 200 so
// the provider does not redeliver, with per-message outcomes itemized in the
// response body.
func (h *webhookHandler) receiveWebhook(c *gin.Context) {
	var payload models.WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid JSON format",
			"details": err.Error(),
		})
		return
	}

	if len(payload.Entry) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Empty payload"})
		return
	}

	results := h.feedback.ProcessWebhookPayload(&payload)

	c.JSON(http.StatusOK, gin.H{
		"message": "Webhook received",
		"results": results,
	})
}
