package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/nsbizsole/green-arcadian-system-new/internal/model"
)

// OrderRepo persists storefront and wholesale orders.  Line items are
// stored as a JSON column mirroring the document shape the frontend sends.
type OrderRepo struct{ db *sql.DB }

func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

const orderCols = `id, order_number, customer_name, customer_email, customer_phone,
	customer_address, items, subtotal_cents, shipping_cents, total_cents, notes,
	order_type, status, created_at, updated_at`

func scanOrder(s interface{ Scan(...interface{}) error }) (model.Order, error) {
	var o model.Order
	var items []byte
	err := s.Scan(&o.ID, &o.OrderNumber, &o.CustomerName, &o.CustomerEmail, &o.CustomerPhone,
		&o.CustomerAddress, &items, &o.SubtotalCents, &o.ShippingCents, &o.TotalCents,
		&o.Notes, &o.OrderType, &o.Status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return o, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &o.Items); err != nil {
			return o, err
		}
	}
	return o, nil
}

// Create inserts an order in pending status.
func (r *OrderRepo) Create(ctx context.Context, o *model.Order) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	o.Status = model.OrderPending
	items, err := json.Marshal(o.Items)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO orders (id, order_number, customer_name, customer_email, customer_phone,
			customer_address, items, subtotal_cents, shipping_cents, total_cents, notes, order_type, status)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		o.ID, o.OrderNumber, o.CustomerName, o.CustomerEmail, o.CustomerPhone,
		o.CustomerAddress, items, o.SubtotalCents, o.ShippingCents, o.TotalCents,
		o.Notes, o.OrderType, o.Status)
	return err
}

// GetByID fetches an order.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (model.Order, error) {
	o, err := scanOrder(r.db.QueryRowContext(ctx,
		"SELECT "+orderCols+" FROM orders WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return o, ErrNotFound
	}
	return o, err
}

// List returns orders newest first, optionally filtered by status.
func (r *OrderRepo) List(ctx context.Context, status string, limit int) ([]model.Order, error) {
	q := "SELECT " + orderCols + " FROM orders"
	var args []interface{}
	if status != "" {
		q += " WHERE status=?"
		args = append(args, status)
	}
	q += " ORDER BY created_at DESC"
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// UpdateStatus advances an order's status.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id, status string) (model.Order, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE orders SET status=?, updated_at=UTC_TIMESTAMP() WHERE id=?", status, id)
	if err != nil {
		return model.Order{}, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return model.Order{}, err
	} else if n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return model.Order{}, err
		}
	}
	return r.GetByID(ctx, id)
}

// Complete marks an order completed and rolls its total into the matching
// CRM customer's lifetime aggregates.  The credit is guarded by the
// customer_credited flag in the same conditional UPDATE that flips the
// status, so an order is counted at most once no matter how many times its
// status passes through completed or how many requests race.
func (r *OrderRepo) Complete(ctx context.Context, id string) (model.Order, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Order{}, err
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		`UPDATE orders SET status=?, customer_credited=1, updated_at=UTC_TIMESTAMP()
		 WHERE id=? AND customer_credited=0`,
		model.OrderCompleted, id)
	if err != nil {
		return model.Order{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.Order{}, err
	}
	if n == 1 {
		var email string
		var total int64
		if err := tx.QueryRowContext(ctx,
			"SELECT customer_email, total_cents FROM orders WHERE id=?", id).
			Scan(&email, &total); err != nil {
			return model.Order{}, err
		}
		// Unknown emails match zero customers, which is fine: storefront
		// orders do not require a CRM record.
		if email != "" {
			if _, err := tx.ExecContext(ctx,
				`UPDATE customers SET total_orders=total_orders+1, total_spent_cents=total_spent_cents+?,
					updated_at=UTC_TIMESTAMP() WHERE email=?`,
				total, email); err != nil {
				return model.Order{}, err
			}
		}
	} else {
		// Credited on an earlier completion: only move the status back.
		res, err := tx.ExecContext(ctx,
			"UPDATE orders SET status=?, updated_at=UTC_TIMESTAMP() WHERE id=?",
			model.OrderCompleted, id)
		if err != nil {
			return model.Order{}, err
		}
		if n, err := res.RowsAffected(); err != nil {
			return model.Order{}, err
		} else if n == 0 {
			var one int
			if err := tx.QueryRowContext(ctx,
				"SELECT 1 FROM orders WHERE id=?", id).Scan(&one); err != nil {
				if err == sql.ErrNoRows {
					return model.Order{}, ErrNotFound
				}
				return model.Order{}, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return model.Order{}, err
	}
	committed = true
	return r.GetByID(ctx, id)
}

// Stats returns order counts and revenue for the admin dashboard.  Revenue
// sums completed and shipped orders only.
func (r *OrderRepo) Stats(ctx context.Context) (total, pending, revenueCents int64, err error) {
	if err = r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM orders").Scan(&total); err != nil {
		return
	}
	if err = r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM orders WHERE status=?", model.OrderPending).Scan(&pending); err != nil {
		return
	}
	err = r.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(total_cents),0) FROM orders WHERE status IN (?,?)",
		model.OrderCompleted, model.OrderShipped).Scan(&revenueCents)
	return
}
