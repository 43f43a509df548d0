package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/nsbizsole/green-arcadian-system-new/internal/model"
)

// ReservationRepo maintains holds against plant stock.  Creating a
// reservation and bumping the plant's reserved counter are logically one
// transaction; both writes happen under a single BEGIN/COMMIT so a partial
// failure rolls back cleanly.  The availability check rides on the counter
// UPDATE itself (reserve only if quantity - reserved >= qty) so two
// concurrent reservations can never oversell the same plant.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// Reserve places a hold of qty units on the plant.  It fails with
// ErrNotFound when the plant is absent and with InsufficientStockError
// (carrying the bookable amount) when qty exceeds quantity - reserved at
// the moment of the update.  qty must already be validated positive.
func (r *ReservationRepo) Reserve(ctx context.Context, plantID string, qty int64, reference, createdBy string) (model.Reservation, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return model.Reservation{}, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		"UPDATE plants SET reserved=reserved+?, updated_at=UTC_TIMESTAMP() WHERE id=? AND quantity-reserved >= ?",
		qty, plantID, qty)
	if err != nil {
		return model.Reservation{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return model.Reservation{}, err
	}
	if n == 0 {
		var quantity, reserved int64
		err = tx.QueryRowContext(ctx,
			"SELECT quantity, reserved FROM plants WHERE id=?", plantID).Scan(&quantity, &reserved)
		if err == sql.ErrNoRows {
			return model.Reservation{}, ErrNotFound
		}
		if err != nil {
			return model.Reservation{}, err
		}
		return model.Reservation{}, &InsufficientStockError{Available: quantity - reserved}
	}

	rec := model.Reservation{
		ID:        uuid.NewString(),
		PlantID:   plantID,
		Quantity:  qty,
		Status:    model.ReservationActive,
		Reference: reference,
		CreatedBy: createdBy,
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO reservations (id, plant_id, quantity, status, reference, created_by) VALUES (?,?,?,?,?,?)",
		rec.ID, rec.PlantID, rec.Quantity, rec.Status, rec.Reference, rec.CreatedBy); err != nil {
		return model.Reservation{}, err
	}
	if err := tx.Commit(); err != nil {
		return model.Reservation{}, err
	}
	committed = true
	return rec, nil
}

// Cancel releases a hold.  The status flip requires the reservation to be
// active, so a second cancel matches zero rows and returns ErrNotFound
// without touching the plant counter.  The decrement floors at zero: even
// if the counters were reconciled externally between the two writes, the
// plant's reserved count never goes negative.
func (r *ReservationRepo) Cancel(ctx context.Context, reservationID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var plantID string
	var qty int64
	err = tx.QueryRowContext(ctx,
		"SELECT plant_id, quantity FROM reservations WHERE id=?", reservationID).Scan(&plantID, &qty)
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	res, err := tx.ExecContext(ctx,
		"UPDATE reservations SET status=?, updated_at=UTC_TIMESTAMP() WHERE id=? AND status=?",
		model.ReservationCancelled, reservationID, model.ReservationActive)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// Already cancelled: treat like a missing reservation rather than
		// silently succeeding, so double-cancel is visible to the caller.
		return ErrNotFound
	}

	if _, err := tx.ExecContext(ctx,
		"UPDATE plants SET reserved=GREATEST(reserved-?, 0), updated_at=UTC_TIMESTAMP() WHERE id=?",
		qty, plantID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetByID fetches a reservation.
func (r *ReservationRepo) GetByID(ctx context.Context, id string) (model.Reservation, error) {
	var rec model.Reservation
	err := r.db.QueryRowContext(ctx,
		`SELECT id, plant_id, quantity, status, reference, created_by, created_at, updated_at
		 FROM reservations WHERE id=? LIMIT 1`, id).
		Scan(&rec.ID, &rec.PlantID, &rec.Quantity, &rec.Status, &rec.Reference,
			&rec.CreatedBy, &rec.CreatedAt, &rec.UpdatedAt)
	if err == sql.ErrNoRows {
		return rec, ErrNotFound
	}
	return rec, err
}

// ListByPlant returns all reservations referencing the plant, newest first.
func (r *ReservationRepo) ListByPlant(ctx context.Context, plantID string) ([]model.Reservation, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, plant_id, quantity, status, reference, created_by, created_at, updated_at
		 FROM reservations WHERE plant_id=? ORDER BY created_at DESC`, plantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Reservation, 0)
	for rows.Next() {
		var rec model.Reservation
		if err := rows.Scan(&rec.ID, &rec.PlantID, &rec.Quantity, &rec.Status, &rec.Reference,
			&rec.CreatedBy, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}
