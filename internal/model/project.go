package model

import "time"

// Project statuses.  New projects start in planning.
const (
	ProjectPlanning   = "planning"
	ProjectInProgress = "in_progress"
	ProjectOnHold     = "on_hold"
	ProjectCompleted  = "completed"
)

// Project is a landscaping or installation engagement.
type Project struct {
	ID            string    `json:"id"`             // projects.id
	ProjectNumber string    `json:"project_number"` // projects.project_number (PRJ-YYYYMMDD-XXXX)
	Name          string    `json:"name"`           // projects.name
	ClientName    string    `json:"client_name"`    // projects.client_name
	ClientEmail   string    `json:"client_email"`   // projects.client_email
	ClientPhone   string    `json:"client_phone"`   // projects.client_phone
	ProjectType   string    `json:"project_type"`   // projects.project_type
	Description   string    `json:"description"`    // projects.description
	SiteAddress   string    `json:"site_address"`   // projects.site_address
	StartDate     string    `json:"start_date"`     // projects.start_date (YYYY-MM-DD)
	EndDate       string    `json:"end_date"`       // projects.end_date (YYYY-MM-DD)
	BudgetCents   int64     `json:"budget_cents"`   // projects.budget_cents
	Status        string    `json:"status"`         // projects.status
	CreatedBy     string    `json:"created_by"`     // projects.created_by
	CreatedAt     time.Time `json:"created_at"`     // projects.created_at
	UpdatedAt     time.Time `json:"updated_at"`     // projects.updated_at
}
