package model

import "time"

// Customer is a CRM record.  TotalOrders and TotalSpentCents are running
// aggregates maintained by the order workflow.
type Customer struct {
	ID              string    `json:"id"`                // customers.id
	Name            string    `json:"name"`              // customers.name
	Email           string    `json:"email"`             // customers.email
	Phone           string    `json:"phone"`             // customers.phone
	Company         string    `json:"company"`           // customers.company
	Address         string    `json:"address"`           // customers.address
	CustomerType    string    `json:"customer_type"`     // customers.customer_type (retail/wholesale)
	Notes           string    `json:"notes"`             // customers.notes
	TotalOrders     int64     `json:"total_orders"`      // customers.total_orders
	TotalSpentCents int64     `json:"total_spent_cents"` // customers.total_spent_cents
	CreatedAt       time.Time `json:"created_at"`        // customers.created_at
	UpdatedAt       time.Time `json:"updated_at"`        // customers.updated_at
}
