package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/nsbizsole/green-arcadian-system-new/internal/model"
)

// dateLayout is the wire format for contract dates.
const dateLayout = "2006-01-02"

// AMCRepo persists annual maintenance contracts.  The next billing date is
// derived from start date and frequency at creation and rolled forward by
// AdvanceBilling after each completed visit.
type AMCRepo struct{ db *sql.DB }

func NewAMCRepo(db *sql.DB) *AMCRepo { return &AMCRepo{db: db} }

const amcCols = `id, contract_number, client_name, client_email, client_phone, service_type,
	frequency, amount_cents, start_date, next_billing_date, property_address,
	services_included, notes, status, visits_completed, created_by, created_at, updated_at`

func scanContract(s interface{ Scan(...interface{}) error }) (model.Contract, error) {
	var c model.Contract
	var services []byte
	err := s.Scan(&c.ID, &c.ContractNumber, &c.ClientName, &c.ClientEmail, &c.ClientPhone,
		&c.ServiceType, &c.Frequency, &c.AmountCents, &c.StartDate, &c.NextBillingDate,
		&c.PropertyAddress, &services, &c.Notes, &c.Status, &c.VisitsCompleted,
		&c.CreatedBy, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return c, err
	}
	if len(services) > 0 {
		if err := json.Unmarshal(services, &c.ServicesIncluded); err != nil {
			return c, err
		}
	}
	return c, nil
}

// Create inserts an active contract.  The first billing date is one period
// after the start date.
func (r *AMCRepo) Create(ctx context.Context, c *model.Contract) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.Status = "active"
	start, err := time.Parse(dateLayout, c.StartDate)
	if err != nil {
		return err
	}
	c.NextBillingDate = model.AdvanceBilling(start, c.Frequency).Format(dateLayout)
	services, err := json.Marshal(c.ServicesIncluded)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO amc_contracts (id, contract_number, client_name, client_email, client_phone,
			service_type, frequency, amount_cents, start_date, next_billing_date,
			property_address, services_included, notes, status, created_by)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		c.ID, c.ContractNumber, c.ClientName, c.ClientEmail, c.ClientPhone,
		c.ServiceType, c.Frequency, c.AmountCents, c.StartDate, c.NextBillingDate,
		c.PropertyAddress, services, c.Notes, c.Status, c.CreatedBy)
	return err
}

// GetByID fetches a contract.
func (r *AMCRepo) GetByID(ctx context.Context, id string) (model.Contract, error) {
	c, err := scanContract(r.db.QueryRowContext(ctx,
		"SELECT "+amcCols+" FROM amc_contracts WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return c, ErrNotFound
	}
	return c, err
}

// List returns contracts newest first, optionally filtered by status.
func (r *AMCRepo) List(ctx context.Context, status string) ([]model.Contract, error) {
	q := "SELECT " + amcCols + " FROM amc_contracts"
	var args []interface{}
	if status != "" {
		q += " WHERE status=?"
		args = append(args, status)
	}
	q += " ORDER BY created_at DESC"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Contract, 0)
	for rows.Next() {
		c, err := scanContract(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// AdvanceBilling records a completed maintenance visit: it rolls the next
// billing date forward by one period and bumps the visit counter.  Only
// active contracts can be advanced; a paused or cancelled contract returns
// ErrInvalidState.
func (r *AMCRepo) AdvanceBilling(ctx context.Context, id string) (model.Contract, error) {
	c, err := r.GetByID(ctx, id)
	if err != nil {
		return model.Contract{}, err
	}
	if c.Status != "active" {
		return model.Contract{}, ErrInvalidState
	}
	current, err := time.Parse(dateLayout, c.NextBillingDate)
	if err != nil {
		return model.Contract{}, err
	}
	next := model.AdvanceBilling(current, c.Frequency).Format(dateLayout)
	// Guard on the previous billing date so two concurrent advances roll
	// the schedule forward once, not twice.
	res, err := r.db.ExecContext(ctx,
		`UPDATE amc_contracts SET next_billing_date=?, visits_completed=visits_completed+1,
			updated_at=UTC_TIMESTAMP() WHERE id=? AND next_billing_date=? AND status='active'`,
		next, id, c.NextBillingDate)
	if err != nil {
		return model.Contract{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.Contract{}, err
	}
	if n == 0 {
		return model.Contract{}, ErrInvalidState
	}
	return r.GetByID(ctx, id)
}

// UpdateStatus moves a contract between active, paused and cancelled.
func (r *AMCRepo) UpdateStatus(ctx context.Context, id, status string) (model.Contract, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE amc_contracts SET status=?, updated_at=UTC_TIMESTAMP() WHERE id=?", status, id)
	if err != nil {
		return model.Contract{}, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return model.Contract{}, err
	} else if n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return model.Contract{}, err
		}
	}
	return r.GetByID(ctx, id)
}

// Count returns contract counts (total, active) for the dashboard.
func (r *AMCRepo) Count(ctx context.Context) (total, active int64, err error) {
	if err = r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM amc_contracts").Scan(&total); err != nil {
		return
	}
	err = r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM amc_contracts WHERE status='active'").Scan(&active)
	return
}
