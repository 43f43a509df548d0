package repository

import (
	"context"
	"database/sql"
	"math"

	"github.com/google/uuid"

	"github.com/nsbizsole/green-arcadian-system-new/internal/model"
)

// DealRepo drives the partner commission ledger.  Recording a deal and
// completing it are the only two writes; each updates the deal row and the
// partner's cached balances under one transaction, with the deal's status
// acting as the guard against double application.  The commission rate and
// amount are captured at record time and never recomputed, so a later rate
// change on the partner cannot rewrite historical commissions.
type DealRepo struct {
	db *sql.DB
}

// NewDealRepo returns a new DealRepo bound to the given database.
func NewDealRepo(db *sql.DB) *DealRepo { return &DealRepo{db: db} }

const dealCols = `id, partner_id, title, client_name, value_cents, commission_rate,
	commission_cents, status, completed_by, completed_at, created_at, updated_at`

func scanDeal(s interface{ Scan(...interface{}) error }) (model.Deal, error) {
	var d model.Deal
	var completedBy sql.NullString
	var completedAt sql.NullTime
	err := s.Scan(&d.ID, &d.PartnerID, &d.Title, &d.ClientName, &d.ValueCents,
		&d.CommissionRate, &d.CommissionCents, &d.Status, &completedBy, &completedAt,
		&d.CreatedAt, &d.UpdatedAt)
	if completedBy.Valid {
		v := completedBy.String
		d.CompletedBy = &v
	}
	if completedAt.Valid {
		t := completedAt.Time
		d.CompletedAt = &t
	}
	return d, err
}

// CommissionCents computes the commission once, in cents, rounded to the
// nearest cent.  rate is a percentage (10 => 10%).
func CommissionCents(valueCents int64, rate float64) int64 {
	return int64(math.Round(float64(valueCents) * rate / 100))
}

// Record creates a pending deal for the partner.  The partner's current
// rate is read inside the transaction, defaulted when unset, copied onto
// the deal, and the commission is added to the partner's pending balance
// (and the deal value to lifetime sales) in the same transaction.
func (r *DealRepo) Record(ctx context.Context, partnerID, title, clientName string, valueCents int64) (model.Deal, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Deal{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var rate float64
	err = tx.QueryRowContext(ctx,
		"SELECT commission_rate FROM partners WHERE id=?", partnerID).Scan(&rate)
	if err == sql.ErrNoRows {
		return model.Deal{}, ErrNotFound
	}
	if err != nil {
		return model.Deal{}, err
	}
	if rate <= 0 {
		rate = model.DefaultCommissionRate
	}

	d := model.Deal{
		ID:              uuid.NewString(),
		PartnerID:       partnerID,
		Title:           title,
		ClientName:      clientName,
		ValueCents:      valueCents,
		CommissionRate:  rate,
		CommissionCents: CommissionCents(valueCents, rate),
		Status:          model.DealPending,
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO deals (id, partner_id, title, client_name, value_cents, commission_rate, commission_cents, status)
		 VALUES (?,?,?,?,?,?,?,?)`,
		d.ID, d.PartnerID, d.Title, d.ClientName, d.ValueCents, d.CommissionRate,
		d.CommissionCents, d.Status); err != nil {
		return model.Deal{}, err
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE partners SET pending_commission_cents=pending_commission_cents+?,
			total_sales_cents=total_sales_cents+?, updated_at=UTC_TIMESTAMP() WHERE id=?`,
		d.CommissionCents, d.ValueCents, d.PartnerID); err != nil {
		return model.Deal{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Deal{}, err
	}
	committed = true
	return d, nil
}

// Complete marks a pending deal completed and moves its commission from the
// partner's pending balance to the paid balance.  The status flip is the
// compare-and-swap: zero matched rows means the deal is either absent
// (ErrNotFound) or not pending (ErrInvalidState), and in both cases the
// balances are left untouched, so a deal can never pay out twice.
func (r *DealRepo) Complete(ctx context.Context, dealID, adminID string) (model.Deal, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Deal{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		`UPDATE deals SET status=?, completed_by=?, completed_at=UTC_TIMESTAMP(), updated_at=UTC_TIMESTAMP()
		 WHERE id=? AND status=?`,
		model.DealCompleted, adminID, dealID, model.DealPending)
	if err != nil {
		return model.Deal{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.Deal{}, err
	}
	if n == 0 {
		var status string
		err = tx.QueryRowContext(ctx, "SELECT status FROM deals WHERE id=?", dealID).Scan(&status)
		if err == sql.ErrNoRows {
			return model.Deal{}, ErrNotFound
		}
		if err != nil {
			return model.Deal{}, err
		}
		return model.Deal{}, ErrInvalidState
	}

	d, err := scanDeal(tx.QueryRowContext(ctx,
		"SELECT "+dealCols+" FROM deals WHERE id=?", dealID))
	if err != nil {
		return model.Deal{}, err
	}
	// Decrement and increment by the same amount in one statement so the
	// two balances can never drift apart.
	if _, err := tx.ExecContext(ctx,
		`UPDATE partners SET pending_commission_cents=pending_commission_cents-?,
			total_commission_cents=total_commission_cents+?, updated_at=UTC_TIMESTAMP() WHERE id=?`,
		d.CommissionCents, d.CommissionCents, d.PartnerID); err != nil {
		return model.Deal{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Deal{}, err
	}
	committed = true
	return d, nil
}

// GetByID fetches a deal.
func (r *DealRepo) GetByID(ctx context.Context, id string) (model.Deal, error) {
	d, err := scanDeal(r.db.QueryRowContext(ctx,
		"SELECT "+dealCols+" FROM deals WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return d, ErrNotFound
	}
	return d, err
}

// ListByPartner returns a partner's deals, optionally filtered by status,
// newest first.
func (r *DealRepo) ListByPartner(ctx context.Context, partnerID, status string) ([]model.Deal, error) {
	q := "SELECT " + dealCols + " FROM deals WHERE partner_id=?"
	args := []interface{}{partnerID}
	if status != "" {
		q += " AND status=?"
		args = append(args, status)
	}
	q += " ORDER BY created_at DESC"
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Deal, 0)
	for rows.Next() {
		d, err := scanDeal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// SumByStatus returns the commission sum over a partner's deals holding the
// given status.  Used by the reconciliation check that keeps the cached
// partner balances honest.
func (r *DealRepo) SumByStatus(ctx context.Context, partnerID, status string) (int64, error) {
	var sum int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(commission_cents),0) FROM deals WHERE partner_id=? AND status=?",
		partnerID, status).Scan(&sum)
	return sum, err
}
