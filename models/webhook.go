package models

// Typed shapes for the Meta webhook payload. The provider nests inbound
// messages under entry → changes → value → messages; only changes whose
// field is "messages" carry them.

type WebhookPayload struct {
	Object string         `json:"object"`
	Entry  []WebhookEntry `json:"entry"`
}

type WebhookEntry struct {
	ID      string          `json:"id"`
	Changes []WebhookChange `json:"changes"`
}

type WebhookChange struct {
	Field string       `json:"field"`
	Value WebhookValue `json:"value"`
}

type WebhookValue struct {
	MessagingProduct string           `json:"messaging_product"`
	Messages         []WebhookMessage `json:"messages"`
}

type WebhookMessage struct {
	ID        string       `json:"id"`
	From      string       `json:"from"`
	Timestamp string       `json:"timestamp"`
	Type      string       `json:"type"`
	Text      *WebhookText `json:"text"`
}

type WebhookText struct {
	Body string `json:"body"`
}

// MessageStatus tags the outcome of processing a single inbound message.
// One failing message never aborts the rest of the delivery.
type MessageStatus string

const (
	MessageProcessed        MessageStatus = "processed"
	MessageSkippedNoText    MessageStatus = "skipped_no_text"
	MessageParseFailed      MessageStatus = "parse_failed"
	MessageCustomerNotFound MessageStatus = "customer_not_found"
	MessageRecordFailed     MessageStatus = "record_failed"
)

// MessageResult is the per-message outcome reported back in the webhook
// acknowledgement.
type MessageResult struct {
	MessageID  string        `json:"message_id,omitempty"`
	From       string        `json:"from"`
	Status     MessageStatus `json:"status"`
	FeedbackID *uint         `json:"feedback_id,omitempty"`
	Detail     string        `json:"detail,omitempty"`
}
