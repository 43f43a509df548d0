// Package queue defines message payloads exchanged over the message broker.
package queue

// DealCompletedEvent is published when a partner deal is marked completed
// and its commission moves from pending to paid.  It carries enough for
// downstream consumers to log or notify without querying the primary
// database.
type DealCompletedEvent struct {
	DealID          string  `json:"deal_id"`
	PartnerID       string  `json:"partner_id"`
	PartnerName     string  `json:"partner_name"`
	Title           string  `json:"title"`
	ClientName      string  `json:"client_name"`
	ValueCents      int64   `json:"value_cents"`
	CommissionRate  float64 `json:"commission_rate"`
	CommissionCents int64   `json:"commission_cents"`
	CompletedBy     string  `json:"completed_by"`
	CompletedAt     string  `json:"completed_at"`
}

// OrderPlacedEvent is published when a storefront order is accepted.
type OrderPlacedEvent struct {
	OrderID       string `json:"order_id"`
	OrderNumber   string `json:"order_number"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
	ItemCount     int    `json:"item_count"`
	TotalCents    int64  `json:"total_cents"`
	OrderType     string `json:"order_type"`
	PlacedAt      string `json:"placed_at"`
}
