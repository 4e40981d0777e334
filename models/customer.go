package models

import (
	"time"
)

// Customer represents a person who purchased a vehicle. The phone number is
// the correlation key for inbound WhatsApp messages and must be unique.
type Customer struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	Name            string    `json:"name" gorm:"size:255;not null"`
	PhoneNumber     string    `json:"phone_number" gorm:"size:20;uniqueIndex;not null"`
	VehicleName     string    `json:"vehicle_name" gorm:"size:255;not null"`
	PurchaseDate    time.Time `json:"purchase_date" gorm:"not null"`
	AdditionalNotes *string   `json:"additional_notes" gorm:"type:text"`
	CreatedAt       time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt       time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Relationships
	Feedback []Feedback `json:"feedback,omitempty" gorm:"foreignKey:CustomerID"`
}

// TableName specifies the table name for the Customer model
func (Customer) TableName() string {
	return "sales_customers"
}

// SalesCustomerCreate represents the request structure for registering a
// customer for post-purchase feedback collection
type SalesCustomerCreate struct {
	Name            string    `json:"name" binding:"required"`
	PhoneNumber     string    `json:"phone_number" binding:"required"`
	VehicleName     string    `json:"vehicle_name" binding:"required"`
	PurchaseDate    time.Time `json:"purchase_date" binding:"required"`
	AdditionalNotes *string   `json:"additional_notes"`
}
