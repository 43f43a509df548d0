package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/nsbizsole/green-arcadian-system-new/internal/model"
	"github.com/nsbizsole/green-arcadian-system-new/internal/utils"
)

// UserRepo persists accounts and drives the approval state machine.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userCols = "id,email,password_hash,full_name,role,status,approved_by,created_at,updated_at"

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	var approvedBy sql.NullString
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Role, &u.Status,
		&approvedBy, &u.CreatedAt, &u.UpdatedAt)
	if approvedBy.Valid {
		v := approvedBy.String
		u.ApprovedBy = &v
	}
	return u, err
}

// Create inserts a user with the given initial status and returns its ID.
// The caller decides the status: pending for normal registrations, active
// for the bootstrap admin.
func (r *UserRepo) Create(ctx context.Context, email, password, fullName, role, status string, cost int) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return "", err
	}
	id := uuid.NewString()
	_, err = r.DB.ExecContext(ctx,
		"INSERT INTO users (id, email, password_hash, full_name, role, status) VALUES (?,?,?,?,?,?)",
		id, email, hash, fullName, role, status)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return "", ErrEmailExists
		}
		return "", err
	}
	return id, nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE email=? LIMIT 1", email))
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id string) (model.User, error) {
	return scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userCols+" FROM users WHERE id=? LIMIT 1", id))
}

// CountActiveAdmins returns how many accounts hold the admin role with
// active status.  Registration uses this to decide whether the bootstrap
// exemption applies: the first admin in an empty system activates itself.
func (r *UserRepo) CountActiveAdmins(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE role=? AND status=?",
		model.RoleAdmin, model.StatusActive).Scan(&n)
	return n, err
}

// List returns users filtered by optional status and role, newest first.
// Password hashes are loaded but never serialized (json:"-").
func (r *UserRepo) List(ctx context.Context, status, role string) ([]model.User, error) {
	q := "SELECT " + userCols + " FROM users"
	var conds []string
	var args []interface{}
	if status != "" {
		conds = append(conds, "status=?")
		args = append(args, status)
	}
	if role != "" {
		conds = append(conds, "role=?")
		args = append(args, role)
	}
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY created_at DESC"
	rows, err := r.DB.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	users := make([]model.User, 0)
	for rows.Next() {
		var u model.User
		var approvedBy sql.NullString
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Role, &u.Status,
			&approvedBy, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		if approvedBy.Valid {
			v := approvedBy.String
			u.ApprovedBy = &v
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Approve moves a pending account to active, recording the approving admin.
// The status precondition is part of the UPDATE itself so a rejected or
// suspended account can never be approved: zero matched rows means either
// the user does not exist or is not pending, and both surface as ErrNotFound.
func (r *UserRepo) Approve(ctx context.Context, id, adminID string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET status=?, approved_by=?, updated_at=UTC_TIMESTAMP() WHERE id=? AND status=?",
		model.StatusActive, adminID, id, model.StatusPending)
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

// Reject marks an account rejected.  Allowed from any state and repeatable.
func (r *UserRepo) Reject(ctx context.Context, id string) error {
	return r.setStatus(ctx, id, model.StatusRejected)
}

// Suspend marks an account suspended.  Allowed from any state and repeatable.
func (r *UserRepo) Suspend(ctx context.Context, id string) error {
	return r.setStatus(ctx, id, model.StatusSuspended)
}

func (r *UserRepo) setStatus(ctx context.Context, id, status string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET status=?, updated_at=UTC_TIMESTAMP() WHERE id=?",
		status, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// MySQL reports zero affected rows when the status already matches,
		// so only a missing row is an error.
		var one int
		err := r.DB.QueryRowContext(ctx, "SELECT 1 FROM users WHERE id=?", id).Scan(&one)
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// CountByStatus returns user counts keyed by status.
func (r *UserRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT status, COUNT(*) FROM users GROUP BY status")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]int64{}
	for rows.Next() {
		var s string
		var n int64
		if err := rows.Scan(&s, &n); err != nil {
			return nil, err
		}
		out[s] = n
	}
	return out, rows.Err()
}

// CountByRole returns user counts keyed by role.
func (r *UserRepo) CountByRole(ctx context.Context) (map[string]int64, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT role, COUNT(*) FROM users GROUP BY role")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := map[string]int64{}
	for rows.Next() {
		var role string
		var n int64
		if err := rows.Scan(&role, &n); err != nil {
			return nil, err
		}
		out[role] = n
	}
	return out, rows.Err()
}
