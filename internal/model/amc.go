package model

import "time"

// Billing frequencies for annual maintenance contracts.
const (
	FreqWeekly     = "weekly"
	FreqMonthly    = "monthly"
	FreqQuarterly  = "quarterly"
	FreqSemiAnnual = "semi_annual"
	FreqAnnual     = "annual"
)

// ValidFrequency reports whether the given string names a known billing
// frequency.
func ValidFrequency(f string) bool {
	switch f {
	case FreqWeekly, FreqMonthly, FreqQuarterly, FreqSemiAnnual, FreqAnnual:
		return true
	}
	return false
}

// AdvanceBilling returns the next billing date after from for the given
// frequency.  Unknown frequencies advance by a month, matching the most
// common contract.
func AdvanceBilling(from time.Time, frequency string) time.Time {
	switch frequency {
	case FreqWeekly:
		return from.AddDate(0, 0, 7)
	case FreqQuarterly:
		return from.AddDate(0, 3, 0)
	case FreqSemiAnnual:
		return from.AddDate(0, 6, 0)
	case FreqAnnual:
		return from.AddDate(1, 0, 0)
	default: // monthly
		return from.AddDate(0, 1, 0)
	}
}

// Contract is an annual maintenance contract (AMC) subscription.  The
// NextBillingDate is derived from the start date and frequency at creation
// and rolled forward by the billing endpoint after each visit/invoice.
type Contract struct {
	ID               string    `json:"id"`                 // amc_contracts.id
	ContractNumber   string    `json:"contract_number"`    // amc_contracts.contract_number (AMC-YYYYMMDD-XXXX)
	ClientName       string    `json:"client_name"`        // amc_contracts.client_name
	ClientEmail      string    `json:"client_email"`       // amc_contracts.client_email
	ClientPhone      string    `json:"client_phone"`       // amc_contracts.client_phone
	ServiceType      string    `json:"service_type"`       // amc_contracts.service_type
	Frequency        string    `json:"frequency"`          // amc_contracts.frequency
	AmountCents      int64     `json:"amount_cents"`       // amc_contracts.amount_cents
	StartDate        string    `json:"start_date"`         // amc_contracts.start_date (YYYY-MM-DD)
	NextBillingDate  string    `json:"next_billing_date"`  // amc_contracts.next_billing_date (YYYY-MM-DD)
	PropertyAddress  string    `json:"property_address"`   // amc_contracts.property_address
	ServicesIncluded []string  `json:"services_included"`  // amc_contracts.services_included (JSON)
	Notes            string    `json:"notes"`              // amc_contracts.notes
	Status           string    `json:"status"`             // amc_contracts.status (active/paused/cancelled)
	VisitsCompleted  int64     `json:"visits_completed"`   // amc_contracts.visits_completed
	CreatedBy        string    `json:"created_by"`         // amc_contracts.created_by
	CreatedAt        time.Time `json:"created_at"`         // amc_contracts.created_at
	UpdatedAt        time.Time `json:"updated_at"`         // amc_contracts.updated_at
}
