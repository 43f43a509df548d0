package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/nsbizsole/green-arcadian-system-new/internal/model"
)

// PartnerRepo persists referral partners and their cached commission
// balances.  The balances are only ever written by the deal lifecycle
// (DealRepo), inside the same transaction as the deal row, so they stay
// equal to the per-status sums over the partner's deals.
type PartnerRepo struct {
	db *sql.DB
}

// NewPartnerRepo returns a new PartnerRepo bound to the given database.
func NewPartnerRepo(db *sql.DB) *PartnerRepo { return &PartnerRepo{db: db} }

const partnerCols = `id, name, email, phone, company, commission_rate,
	pending_commission_cents, total_commission_cents, total_sales_cents, created_at, updated_at`

func scanPartner(s interface{ Scan(...interface{}) error }) (model.Partner, error) {
	var p model.Partner
	err := s.Scan(&p.ID, &p.Name, &p.Email, &p.Phone, &p.Company, &p.CommissionRate,
		&p.PendingCommissionCents, &p.TotalCommissionCents, &p.TotalSalesCents,
		&p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// Create inserts a partner.  A zero commission rate falls back to the
// default so every partner has a usable rate from day one.
func (r *PartnerRepo) Create(ctx context.Context, p *model.Partner) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CommissionRate <= 0 {
		p.CommissionRate = model.DefaultCommissionRate
	}
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO partners (id, name, email, phone, company, commission_rate)
		 VALUES (?,?,?,?,?,?)`,
		p.ID, p.Name, p.Email, p.Phone, p.Company, p.CommissionRate)
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "1062") {
		return ErrEmailExists
	}
	return err
}

// GetByID fetches a partner by id.
func (r *PartnerRepo) GetByID(ctx context.Context, id string) (model.Partner, error) {
	p, err := scanPartner(r.db.QueryRowContext(ctx,
		"SELECT "+partnerCols+" FROM partners WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return p, ErrNotFound
	}
	return p, err
}

// List returns all partners ordered by name.
func (r *PartnerRepo) List(ctx context.Context) ([]model.Partner, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+partnerCols+" FROM partners ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Partner, 0)
	for rows.Next() {
		p, err := scanPartner(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpdateRate changes a partner's commission rate for future deals.  Rates
// already captured on existing deals are untouched.
func (r *PartnerRepo) UpdateRate(ctx context.Context, id string, rate float64) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE partners SET commission_rate=?, updated_at=UTC_TIMESTAMP() WHERE id=?", rate, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// Update patches partner contact fields.  Commission balances and the rate
// are owned by the deal lifecycle and UpdateRate and never appear here.
func (r *PartnerRepo) Update(ctx context.Context, id string, patch map[string]interface{}) (model.Partner, error) {
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
		"UPDATE partners SET "+strings.Join(sets, ", ")+" WHERE id=?", args...)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return model.Partner{}, ErrEmailExists
		}
		return model.Partner{}, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return model.Partner{}, err
	} else if n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return model.Partner{}, err
		}
	}
	return r.GetByID(ctx, id)
}

// Totals returns the aggregate balances over all partners for the admin
// dashboard.
func (r *PartnerRepo) Totals(ctx context.Context) (count, pendingCents, paidCents int64, err error) {
	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(pending_commission_cents),0), COALESCE(SUM(total_commission_cents),0)
		 FROM partners`).Scan(&count, &pendingCents, &paidCents)
	return
}
