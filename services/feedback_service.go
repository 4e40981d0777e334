package services

import (
	"errors"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"sales-feedback-server/apperrors"
	"sales-feedback-server/models"
)

// FeedbackService resolves customers by phone number, records parsed
// feedback, and walks inbound webhook deliveries.
type FeedbackService struct {
	db *gorm.DB
}

func NewFeedbackService(db *gorm.DB) *FeedbackService {
	return &FeedbackService{db: db}
}

// ResolveCustomer looks up a customer by the exact phone number an inbound
// message was sent from.
func (s *FeedbackService) ResolveCustomer(phoneNumber string) (*models.Customer, error) {
	var customer models.Customer
	if err := s.db.Where("phone_number = ?", phoneNumber).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("Customer", phoneNumber)
		}
		return nil, err
	}
	return &customer, nil
}

// RecordFeedback persists a feedback record for an already-resolved
// customer. The id and creation timestamp are server-assigned.
func (s *FeedbackService) RecordFeedback(customerID uint, rating float64, comment string) (*models.Feedback, error) {
	feedback := models.Feedback{
		CustomerID: customerID,
		Rating:     rating,
		Comments:   comment,
	}
	if err := s.db.Create(&feedback).Error; err != nil {
		return nil, err
	}
	return &feedback, nil
}

// ProcessWebhookPayload visits every message in a webhook delivery in
// payload order (entries → changes → messages) and returns one outcome per
// message. Changes whose field is not "messages" are ignored. Repeated
// deliveries are not deduplicated; each one produces its own feedback rows.
func (s *FeedbackService) ProcessWebhookPayload(payload *models.WebhookPayload) []models.MessageResult {
	deliveryID := uuid.NewString()
	results := make([]models.MessageResult, 0)

	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			if change.Field != "messages" {
				continue
			}
			for _, message := range change.Value.Messages {
				results = append(results, s.processMessage(deliveryID, message))
			}
		}
	}

	return results
}

func (s *FeedbackService) processMessage(deliveryID string, message models.WebhookMessage) models.MessageResult {
	result := models.MessageResult{
		MessageID: message.ID,
		From:      message.From,
	}

	// Delivery receipts and media messages carry no text body; skipping
	// them is expected, not an error.
	if message.Text == nil || message.Text.Body == "" {
		result.Status = models.MessageSkippedNoText
		return result
	}

	parsed, err := ParseFeedbackMessage(message.Text.Body)
	if err != nil {
		log.Printf("⚠️ [%s] could not parse feedback from %s: %v", deliveryID, message.From, err)
		result.Status = models.MessageParseFailed
		result.Detail = err.Error()
		return result
	}

	customer, err := s.ResolveCustomer(message.From)
	if err != nil {
		var notFound *apperrors.NotFoundError
		if errors.As(err, &notFound) {
			log.Printf("⚠️ [%s] no customer registered for %s", deliveryID, message.From)
			result.Status = models.MessageCustomerNotFound
			result.Detail = err.Error()
			return result
		}
		log.Printf("❌ [%s] customer lookup failed for %s: %v", deliveryID, message.From, err)
		result.Status = models.MessageRecordFailed
		result.Detail = "Failed to resolve customer"
		return result
	}

	feedback, err := s.RecordFeedback(customer.ID, parsed.Rating, parsed.Comment)
	if err != nil {
		log.Printf("❌ [%s] failed to store feedback for customer %d: %v", deliveryID, customer.ID, err)
		result.Status = models.MessageRecordFailed
		result.Detail = "Failed to store feedback"
		return result
	}

	log.Printf("✅ [%s] recorded feedback %d (rating %.1f) for customer %d", deliveryID, feedback.ID, feedback.Rating, customer.ID)
	result.Status = models.MessageProcessed
	result.FeedbackID = &feedback.ID
	return result
}
