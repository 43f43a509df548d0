package model

import "time"

// DefaultCommissionRate is applied when a partner record has no explicit
// rate set.  Expressed in percent.
const DefaultCommissionRate = 10.0

// Deal statuses.  A deal is created pending and moves to completed exactly
// once; there is no backward transition.
const (
	DealPending   = "pending"
	DealCompleted = "completed"
)

// Partner is a referral partner record with cached commission balances.
// PendingCommissionCents and TotalCommissionCents are eagerly maintained
// aggregates: they must always equal the sum of commission over the
// partner's deals grouped by status.  Every deal transition updates them in
// the same transaction as the deal row.
//
// Fields:
//  ID                     – uuid primary key.
//  Name                   – contact name.
//  Email                  – unique partner email.
//  CommissionRate         – percent applied to new deals (captured per deal).
//  PendingCommissionCents – accrued commission on pending deals.
//  TotalCommissionCents   – commission paid out on completed deals.
//  TotalSalesCents        – lifetime deal value recorded.
type Partner struct {
	ID                     string    `json:"id"`                       // partners.id
	Name                   string    `json:"name"`                     // partners.name
	Email                  string    `json:"email"`                    // partners.email
	Phone                  string    `json:"phone"`                    // partners.phone
	Company                string    `json:"company"`                  // partners.company
	CommissionRate         float64   `json:"commission_rate"`          // partners.commission_rate
	PendingCommissionCents int64     `json:"pending_commission_cents"` // partners.pending_commission_cents
	TotalCommissionCents   int64     `json:"total_commission_cents"`   // partners.total_commission_cents
	TotalSalesCents        int64     `json:"total_sales_cents"`        // partners.total_sales_cents
	CreatedAt              time.Time `json:"created_at"`               // partners.created_at
	UpdatedAt              time.Time `json:"updated_at"`               // partners.updated_at
}

// Deal records a referred sale.  The commission rate is copied from the
// partner at creation time and the commission amount is computed once; both
// are immutable afterwards so later rate changes never rewrite history.
type Deal struct {
	ID              string     `json:"id"`               // deals.id
	PartnerID       string     `json:"partner_id"`       // deals.partner_id
	Title           string     `json:"title"`            // deals.title
	ClientName      string     `json:"client_name"`      // deals.client_name
	ValueCents      int64      `json:"value_cents"`      // deals.value_cents
	CommissionRate  float64    `json:"commission_rate"`  // deals.commission_rate (captured)
	CommissionCents int64      `json:"commission_cents"` // deals.commission_cents (immutable)
	Status          string     `json:"status"`           // deals.status
	CompletedBy     *string    `json:"completed_by,omitempty"` // deals.completed_by (nullable)
	CompletedAt     *time.Time `json:"completed_at,omitempty"` // deals.completed_at (nullable)
	CreatedAt       time.Time  `json:"created_at"`       // deals.created_at
	UpdatedAt       time.Time  `json:"updated_at"`       // deals.updated_at
}
