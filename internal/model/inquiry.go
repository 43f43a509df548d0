package model

import "time"

// Inquiry is a public contact-form submission routed to the back office.
type Inquiry struct {
	ID          string    `json:"id"`           // inquiries.id
	Name        string    `json:"name"`         // inquiries.name
	Email       string    `json:"email"`        // inquiries.email
	Phone       string    `json:"phone"`        // inquiries.phone
	Company     string    `json:"company"`      // inquiries.company
	InquiryType string    `json:"inquiry_type"` // inquiries.inquiry_type
	Message     string    `json:"message"`      // inquiries.message
	Status      string    `json:"status"`       // inquiries.status (new/contacted/closed)
	CreatedAt   time.Time `json:"created_at"`   // inquiries.created_at
	UpdatedAt   time.Time `json:"updated_at"`   // inquiries.updated_at
}
