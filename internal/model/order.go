package model

import "time"

// Order statuses as used by the back office.  Orders arrive pending from the
// public storefront and are advanced by staff.
const (
	OrderPending   = "pending"
	OrderConfirmed = "confirmed"
	OrderShipped   = "shipped"
	OrderCompleted = "completed"
	OrderCancelled = "cancelled"
)

// OrderItem is a line item embedded in an order.  Items are stored as a JSON
// column; the repository handles marshalling.
type OrderItem struct {
	PlantID  string `json:"plant_id,omitempty"`
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
	PriceCents int64 `json:"price_cents"`
}

// Order captures a storefront or wholesale order.
//
// Fields:
//  ID            – uuid primary key.
//  OrderNumber   – human-facing number (GA-YYYYMMDD-XXXX).
//  OrderType     – retail or wholesale.
//  Status        – see constants above.
type Order struct {
	ID              string      `json:"id"`               // orders.id
	OrderNumber     string      `json:"order_number"`     // orders.order_number
	CustomerName    string      `json:"customer_name"`    // orders.customer_name
	CustomerEmail   string      `json:"customer_email"`   // orders.customer_email
	CustomerPhone   string      `json:"customer_phone"`   // orders.customer_phone
	CustomerAddress string      `json:"customer_address"` // orders.customer_address
	Items           []OrderItem `json:"items"`            // orders.items (JSON)
	SubtotalCents   int64       `json:"subtotal_cents"`   // orders.subtotal_cents
	ShippingCents   int64       `json:"shipping_cents"`   // orders.shipping_cents
	TotalCents      int64       `json:"total_cents"`      // orders.total_cents
	Notes           string      `json:"notes"`            // orders.notes
	OrderType       string      `json:"order_type"`       // orders.order_type
	Status          string      `json:"status"`           // orders.status
	CreatedAt       time.Time   `json:"created_at"`       // orders.created_at
	UpdatedAt       time.Time   `json:"updated_at"`       // orders.updated_at
}
