package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/nsbizsole/green-arcadian-system-new/internal/model"
)

// CustomerRepo persists CRM records.
type CustomerRepo struct{ db *sql.DB }

func NewCustomerRepo(db *sql.DB) *CustomerRepo { return &CustomerRepo{db: db} }

const customerCols = `id, name, email, phone, company, address, customer_type, notes,
	total_orders, total_spent_cents, created_at, updated_at`

func scanCustomer(s interface{ Scan(...interface{}) error }) (model.Customer, error) {
	var c model.Customer
	err := s.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Address,
		&c.CustomerType, &c.Notes, &c.TotalOrders, &c.TotalSpentCents,
		&c.CreatedAt, &c.UpdatedAt)
	return c, err
}

// Create inserts a customer with zeroed aggregates.
func (r *CustomerRepo) Create(ctx context.Context, c *model.Customer) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO customers (id, name, email, phone, company, address, customer_type, notes)
		 VALUES (?,?,?,?,?,?,?,?)`,
		c.ID, c.Name, c.Email, c.Phone, c.Company, c.Address, c.CustomerType, c.Notes)
	return err
}

// GetByID fetches a customer.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (model.Customer, error) {
	c, err := scanCustomer(r.db.QueryRowContext(ctx,
		"SELECT "+customerCols+" FROM customers WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return c, ErrNotFound
	}
	return c, err
}

// List returns customers, optionally filtered by type.
func (r *CustomerRepo) List(ctx context.Context, customerType string) ([]model.Customer, error) {
	q := "SELECT " + customerCols + " FROM customers"
	var args []interface{}
	if customerType != "" {
		q += " WHERE customer_type=?"
		args = append(args, customerType)
	}
	q += " ORDER BY name"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Update applies a partial patch and returns the fresh row.
func (r *CustomerRepo) Update(ctx context.Context, id string, patch map[string]interface{}) (model.Customer, error) {
	if len(patch) == 0 {
		return r.GetByID(ctx, id)
	}
	sets := make([]string, 0, len(patch)+1)
	args := make([]interface{}, 0, len(patch)+1)
	for col, v := range patch {
		sets = append(sets, col+"=?")
		args = append(args, v)
	}
	sets = append(sets, "updated_at=UTC_TIMESTAMP()")
	args = append(args, id)
	res, err := r.db.ExecContext(ctx,
		"UPDATE customers SET "+strings.Join(sets, ", ")+" WHERE id=?", args...)
	if err != nil {
		return model.Customer{}, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return model.Customer{}, err
	} else if n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return model.Customer{}, err
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a customer.
func (r *CustomerRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM customers WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns the total number of customers.
func (r *CustomerRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM customers").Scan(&n)
	return n, err
}
