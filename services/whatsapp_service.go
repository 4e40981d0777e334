package services

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strings"
	"time"

	"sales-feedback-server/apperrors"
	"sales-feedback-server/config"
)

// MessageSender sends the post-purchase survey to a customer.
type MessageSender interface {
	SendFeedbackRequest(to, name, vehicleName string) error
}

// WhatsAppService sends pre-approved template messages through the Meta
// Graph API.
type WhatsAppService struct {
	cfg    config.WhatsAppConfig
	client *http.Client
}

type TemplateMessageRequest struct {
	MessagingProduct string          `json:"messaging_product"`
	To               string          `json:"to"`
	Type             string          `json:"type"`
	Template         TemplatePayload `json:"template"`
}

type TemplatePayload struct {
	Name       string              `json:"name"`
	Language   TemplateLanguage    `json:"language"`
	Components []TemplateComponent `json:"components"`
}

type TemplateLanguage struct {
	Code string `json:"code"`
}

type TemplateComponent struct {
	Type       string              `json:"type"`
	Parameters []TemplateParameter `json:"parameters"`
}

type TemplateParameter struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

func NewWhatsAppService(cfg config.WhatsAppConfig) *WhatsAppService {
	if cfg.APIToken == "" {
		log.Printf("⚠️ WHATSAPP_API_TOKEN not set, outbound messages will fail")
	}

	return &WhatsAppService{
		cfg: cfg,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// SendFeedbackRequest sends the survey template to a customer. The template
// body carries the customer name and vehicle name as its two variables.
// A timed-out call is retried once; any other failure propagates immediately.
func (s *WhatsAppService) SendFeedbackRequest(to, name, vehicleName string) error {
	if name == "" {
		name = "N/A"
	}
	if vehicleName == "" {
		vehicleName = "N/A"
	}

	payload := TemplateMessageRequest{
		MessagingProduct: "whatsapp",
		To:               to,
		Type:             "template",
		Template: TemplatePayload{
			Name:     s.cfg.TemplateName,
			Language: TemplateLanguage{Code: s.cfg.TemplateLang},
			Components: []TemplateComponent{
				{
					Type: "body",
					Parameters: []TemplateParameter{
						{Type: "text", Text: name},
						{Type: "text", Text: vehicleName},
					},
				},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal template message: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		if attempt > 0 {
			log.Printf("⚠️ WhatsApp send to %s timed out, retrying", to)
		}

		lastErr = s.post(body)
		if lastErr == nil {
			return nil
		}

		var netErr net.Error
		if !errors.As(lastErr, &netErr) || !netErr.Timeout() {
			return lastErr
		}
	}

	return &apperrors.ProviderError{
		StatusCode: http.StatusBadGateway,
		Message:    fmt.Sprintf("Failed to send message: %v", lastErr),
	}
}

func (s *WhatsAppService) post(body []byte) error {
	req, err := http.NewRequest(http.MethodPost, s.cfg.MessagesURL(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.cfg.APIToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusOK {
		return nil
	}

	respBody, _ := io.ReadAll(resp.Body)
	if strings.Contains(string(respBody), "Recipient phone number not in allowed list") {
		return &apperrors.ProviderError{
			StatusCode:     http.StatusBadRequest,
			Message:        "Phone number is not whitelisted in WhatsApp API Sandbox.",
			NotWhitelisted: true,
		}
	}

	return &apperrors.ProviderError{
		StatusCode: resp.StatusCode,
		Message:    fmt.Sprintf("Failed to send message: %s", string(respBody)),
	}
}
