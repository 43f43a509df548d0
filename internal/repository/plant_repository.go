package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/nsbizsole/green-arcadian-system-new/internal/model"
)

// PlantRepo provides persistence for the plant inventory and its stock
// movement audit trail.  Counter mutations are expressed as conditional
// single-statement UPDATEs so that concurrent requests against the same
// plant cannot produce lost updates; correctness rests on the database's
// atomic row update, not on application locks.
type PlantRepo struct {
	db *sql.DB
}

// NewPlantRepo returns a new PlantRepo bound to the given database.
func NewPlantRepo(db *sql.DB) *PlantRepo { return &PlantRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions that
// span plants and reservations.
func (r *PlantRepo) DB() *sql.DB { return r.db }

const plantCols = `id, sku, name, scientific_name, category, growth_stage, description,
	price_cents, cost_cents, quantity, reserved, min_stock, location, unit,
	is_featured, is_available, created_at, updated_at`

func scanPlant(s interface{ Scan(...interface{}) error }) (model.Plant, error) {
	var p model.Plant
	err := s.Scan(&p.ID, &p.SKU, &p.Name, &p.ScientificName, &p.Category, &p.GrowthStage,
		&p.Description, &p.PriceCents, &p.CostCents, &p.Quantity, &p.Reserved, &p.MinStock,
		&p.Location, &p.Unit, &p.IsFeatured, &p.IsAvailable, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// Create inserts a plant.  SKU generation is the caller's concern.
func (r *PlantRepo) Create(ctx context.Context, p *model.Plant) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO plants (id, sku, name, scientific_name, category, growth_stage, description,
			price_cents, cost_cents, quantity, reserved, min_stock, location, unit, is_featured, is_available)
		 VALUES (?,?,?,?,?,?,?,?,?,?,0,?,?,?,?,?)`,
		p.ID, p.SKU, p.Name, p.ScientificName, p.Category, p.GrowthStage, p.Description,
		p.PriceCents, p.CostCents, p.Quantity, p.MinStock, p.Location, p.Unit,
		p.IsFeatured, p.IsAvailable)
	return err
}

// GetByID fetches a plant by id.
func (r *PlantRepo) GetByID(ctx context.Context, id string) (model.Plant, error) {
	p, err := scanPlant(r.db.QueryRowContext(ctx,
		"SELECT "+plantCols+" FROM plants WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return p, ErrNotFound
	}
	return p, err
}

// GetPublicByID fetches an available plant for the public catalog.
func (r *PlantRepo) GetPublicByID(ctx context.Context, id string) (model.Plant, error) {
	p, err := scanPlant(r.db.QueryRowContext(ctx,
		"SELECT "+plantCols+" FROM plants WHERE id=? AND is_available=1 LIMIT 1", id))
	if err == sql.ErrNoRows {
		return p, ErrNotFound
	}
	return p, err
}

// List returns inventory rows with optional category and free-text filters.
// Search matches name and description, case-insensitively.
func (r *PlantRepo) List(ctx context.Context, category, search string) ([]model.Plant, error) {
	q := "SELECT " + plantCols + " FROM plants"
	var conds []string
	var args []interface{}
	if category != "" {
		conds = append(conds, "category=?")
		args = append(args, category)
	}
	if search != "" {
		like := "%" + search + "%"
		conds = append(conds, "(name LIKE ? OR description LIKE ?)")
		args = append(args, like, like)
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY name"
	return r.queryPlants(ctx, q, args...)
}

// ListPublic returns publicly visible plants, optionally filtered by
// category and the featured flag.
func (r *PlantRepo) ListPublic(ctx context.Context, category string, featured bool) ([]model.Plant, error) {
	q := "SELECT " + plantCols + " FROM plants WHERE is_available=1"
	var args []interface{}
	if category != "" {
		q += " AND category=?"
		args = append(args, category)
	}
	if featured {
		q += " AND is_featured=1"
	}
	q += " ORDER BY name"
	return r.queryPlants(ctx, q, args...)
}

func (r *PlantRepo) queryPlants(ctx context.Context, q string, args ...interface{}) ([]model.Plant, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	plants := make([]model.Plant, 0)
	for rows.Next() {
		p, err := scanPlant(rows)
		if err != nil {
			return nil, err
		}
		plants = append(plants, p)
	}
	return plants, rows.Err()
}

// Update applies a partial update from the given column/value patch and
// returns the fresh row.  Counter columns (quantity, reserved) are not
// updatable this way; stock changes go through AdjustStock and the
// reservation ledger so the audit trail stays complete.
func (r *PlantRepo) Update(ctx context.Context, id string, patch map[string]interface{}) (model.Plant, error) {
	delete(patch, "quantity")
	delete(patch, "reserved")
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
		"UPDATE plants SET "+strings.Join(sets, ", ")+" WHERE id=?", args...)
	if err != nil {
		return model.Plant{}, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return model.Plant{}, err
	} else if n == 0 {
		// MySQL reports zero affected rows for no-op updates too, so verify
		// existence before declaring the plant missing.
		if _, err := r.GetByID(ctx, id); err != nil {
			return model.Plant{}, err
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a plant.
func (r *PlantRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM plants WHERE id=?", id)
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

// Categories returns the distinct categories of available plants.
func (r *PlantRepo) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT DISTINCT category FROM plants WHERE is_available=1 ORDER BY category")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	cats := make([]string, 0)
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

// AdjustStock applies a signed delta to a plant's on-hand quantity and
// appends an immutable stock movement row, both inside one transaction.
// The UPDATE carries the invariant as its WHERE clause: the resulting
// quantity must stay at or above the reserved count, so an adjustment can
// neither drive quantity negative nor strand active reservations.  Zero
// matched rows means the plant is missing (ErrNotFound) or the delta
// overdraws it (InsufficientStockError with the bookable amount).
func (r *PlantRepo) AdjustStock(ctx context.Context, plantID string, delta int64, reason, actorID string) (model.StockMovement, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.StockMovement{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		"UPDATE plants SET quantity=quantity+?, updated_at=UTC_TIMESTAMP() WHERE id=? AND quantity+? >= reserved",
		delta, plantID, delta)
	if err != nil {
		return model.StockMovement{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.StockMovement{}, err
	}
	var quantity, reserved int64
	if n == 0 {
		err = tx.QueryRowContext(ctx,
			"SELECT quantity, reserved FROM plants WHERE id=?", plantID).Scan(&quantity, &reserved)
		if err == sql.ErrNoRows {
			return model.StockMovement{}, ErrNotFound
		}
		if err != nil {
			return model.StockMovement{}, err
		}
		return model.StockMovement{}, &InsufficientStockError{Available: quantity - reserved}
	}
	if err := tx.QueryRowContext(ctx,
		"SELECT quantity FROM plants WHERE id=?", plantID).Scan(&quantity); err != nil {
		return model.StockMovement{}, err
	}
	mv := model.StockMovement{
		ID:                uuid.NewString(),
		PlantID:           plantID,
		Delta:             delta,
		ResultingQuantity: quantity,
		Reason:            reason,
		ActorID:           actorID,
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO stock_movements (id, plant_id, delta, resulting_quantity, reason, actor_id) VALUES (?,?,?,?,?,?)",
		mv.ID, mv.PlantID, mv.Delta, mv.ResultingQuantity, mv.Reason, mv.ActorID); err != nil {
		return model.StockMovement{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.StockMovement{}, err
	}
	committed = true
	return mv, nil
}

// Movements lists the stock movement audit trail for a plant, newest first.
func (r *PlantRepo) Movements(ctx context.Context, plantID string) ([]model.StockMovement, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, plant_id, delta, resulting_quantity, reason, actor_id, created_at
		 FROM stock_movements WHERE plant_id=? ORDER BY created_at DESC`, plantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.StockMovement, 0)
	for rows.Next() {
		var m model.StockMovement
		if err := rows.Scan(&m.ID, &m.PlantID, &m.Delta, &m.ResultingQuantity, &m.Reason,
			&m.ActorID, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// Stats returns the inventory totals for the admin dashboard.
func (r *PlantRepo) Stats(ctx context.Context) (total, lowStock int64, err error) {
	if err = r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM plants").Scan(&total); err != nil {
		return
	}
	err = r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM plants WHERE quantity - reserved <= min_stock").Scan(&lowStock)
	return
}
