package models

import (
	"time"
)

// Feedback represents one parsed response to an outbound survey message.
// Rows are append-only: there is no update or delete surface.
type Feedback struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	CustomerID uint      `json:"customer_id" gorm:"not null;index"`
	Customer   Customer  `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	Rating     float64   `json:"rating" gorm:"not null"`
	Comments   string    `json:"comments" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName sets custom table name
func (Feedback) TableName() string { return "feedback" }

// FeedbackResponse represents the response structure for feedback data
type FeedbackResponse struct {
	ID         uint      `json:"id"`
	CustomerID uint      `json:"customer_id"`
	Rating     float64   `json:"rating"`
	Comments   string    `json:"comments"`
	CreatedAt  time.Time `json:"created_at"`
}
