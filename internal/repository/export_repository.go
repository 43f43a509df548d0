package repository

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"

	"github.com/nsbizsole/green-arcadian-system-new/internal/model"
)

// ExportRepo persists export shipment documents.  The manifest lines are
// stored as a JSON column, like order items.
type ExportRepo struct{ db *sql.DB }

func NewExportRepo(db *sql.DB) *ExportRepo { return &ExportRepo{db: db} }

const exportCols = `id, doc_number, order_id, doc_type, customer_name, destination_country,
	items, total_weight, total_boxes, shipping_method, notes, status, created_by,
	created_at, updated_at`

func scanExportDoc(s interface{ Scan(...interface{}) error }) (model.ExportDoc, error) {
	var d model.ExportDoc
	var items []byte
	err := s.Scan(&d.ID, &d.DocNumber, &d.OrderID, &d.DocType, &d.CustomerName,
		&d.DestinationCountry, &items, &d.TotalWeight, &d.TotalBoxes,
		&d.ShippingMethod, &d.Notes, &d.Status, &d.CreatedBy, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return d, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &d.Items); err != nil {
			return d, err
		}
	}
	return d, nil
}

// Create inserts a document in draft status.
func (r *ExportRepo) Create(ctx context.Context, d *model.ExportDoc) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	d.Status = model.ExportDraft
	items, err := json.Marshal(d.Items)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO export_docs (id, doc_number, order_id, doc_type, customer_name,
			destination_country, items, total_weight, total_boxes, shipping_method, notes,
			status, created_by)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		d.ID, d.DocNumber, d.OrderID, d.DocType, d.CustomerName, d.DestinationCountry,
		items, d.TotalWeight, d.TotalBoxes, d.ShippingMethod, d.Notes, d.Status, d.CreatedBy)
	return err
}

// GetByID fetches a document.
func (r *ExportRepo) GetByID(ctx context.Context, id string) (model.ExportDoc, error) {
	d, err := scanExportDoc(r.db.QueryRowContext(ctx,
		"SELECT "+exportCols+" FROM export_docs WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return d, ErrNotFound
	}
	return d, err
}

// List returns documents newest first, optionally filtered by status.
func (r *ExportRepo) List(ctx context.Context, status string) ([]model.ExportDoc, error) {
	q := "SELECT " + exportCols + " FROM export_docs"
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
	out := make([]model.ExportDoc, 0)
	for rows.Next() {
		d, err := scanExportDoc(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// UpdateStatus moves a document through the paperwork workflow.  A
// no-change update still succeeds; only an absent id is NotFound.
func (r *ExportRepo) UpdateStatus(ctx context.Context, id, status string) (model.ExportDoc, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE export_docs SET status=?, updated_at=UTC_TIMESTAMP() WHERE id=?", status, id)
	if err != nil {
		return model.ExportDoc{}, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return model.ExportDoc{}, err
	} else if n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return model.ExportDoc{}, err
		}
	}
	return r.GetByID(ctx, id)
}
