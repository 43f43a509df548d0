package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/nsbizsole/green-arcadian-system-new/internal/model"
)

// InquiryRepo persists public contact-form submissions.
type InquiryRepo struct{ db *sql.DB }

func NewInquiryRepo(db *sql.DB) *InquiryRepo { return &InquiryRepo{db: db} }

const inquiryCols = `id, name, email, phone, company, inquiry_type, message, status, created_at, updated_at`

// Create inserts an inquiry in "new" status.
func (r *InquiryRepo) Create(ctx context.Context, q *model.Inquiry) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	q.Status = "new"
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO inquiries (id, name, email, phone, company, inquiry_type, message, status)
		 VALUES (?,?,?,?,?,?,?,?)`,
		q.ID, q.Name, q.Email, q.Phone, q.Company, q.InquiryType, q.Message, q.Status)
	return err
}

// List returns inquiries newest first, optionally filtered by status.
func (r *InquiryRepo) List(ctx context.Context, status string) ([]model.Inquiry, error) {
	q := "SELECT " + inquiryCols + " FROM inquiries"
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
	out := make([]model.Inquiry, 0)
	for rows.Next() {
		var i model.Inquiry
		if err := rows.Scan(&i.ID, &i.Name, &i.Email, &i.Phone, &i.Company,
			&i.InquiryType, &i.Message, &i.Status, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, i)
	}
	return out, rows.Err()
}

// UpdateStatus moves an inquiry between new, contacted and closed.
func (r *InquiryRepo) UpdateStatus(ctx context.Context, id, status string) (model.Inquiry, error) {
	if _, err := r.db.ExecContext(ctx,
		"UPDATE inquiries SET status=?, updated_at=UTC_TIMESTAMP() WHERE id=?", status, id); err != nil {
		return model.Inquiry{}, err
	}
	var i model.Inquiry
	err := r.db.QueryRowContext(ctx,
		"SELECT "+inquiryCols+" FROM inquiries WHERE id=? LIMIT 1", id).
		Scan(&i.ID, &i.Name, &i.Email, &i.Phone, &i.Company,
			&i.InquiryType, &i.Message, &i.Status, &i.CreatedAt, &i.UpdatedAt)
	if err == sql.ErrNoRows {
		return i, ErrNotFound
	}
	return i, err
}

// CountNew returns the number of unhandled inquiries for the dashboard.
func (r *InquiryRepo) CountNew(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM inquiries WHERE status='new'").Scan(&n)
	return n, err
}
