package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/google/uuid"

	"github.com/nsbizsole/green-arcadian-system-new/internal/model"
)

// ProjectRepo persists landscaping projects.
type ProjectRepo struct{ db *sql.DB }

func NewProjectRepo(db *sql.DB) *ProjectRepo { return &ProjectRepo{db: db} }

const projectCols = `id, project_number, name, client_name, client_email, client_phone,
	project_type, description, site_address, start_date, end_date, budget_cents,
	status, created_by, created_at, updated_at`

func scanProject(s interface{ Scan(...interface{}) error }) (model.Project, error) {
	var p model.Project
	err := s.Scan(&p.ID, &p.ProjectNumber, &p.Name, &p.ClientName, &p.ClientEmail,
		&p.ClientPhone, &p.ProjectType, &p.Description, &p.SiteAddress, &p.StartDate,
		&p.EndDate, &p.BudgetCents, &p.Status, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// Create inserts a project in planning status.
func (r *ProjectRepo) Create(ctx context.Context, p *model.Project) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	p.Status = model.ProjectPlanning
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO projects (id, project_number, name, client_name, client_email, client_phone,
			project_type, description, site_address, start_date, end_date, budget_cents, status, created_by)
		 VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		p.ID, p.ProjectNumber, p.Name, p.ClientName, p.ClientEmail, p.ClientPhone,
		p.ProjectType, p.Description, p.SiteAddress, p.StartDate, p.EndDate,
		p.BudgetCents, p.Status, p.CreatedBy)
	return err
}

// GetByID fetches a project.
func (r *ProjectRepo) GetByID(ctx context.Context, id string) (model.Project, error) {
	p, err := scanProject(r.db.QueryRowContext(ctx,
		"SELECT "+projectCols+" FROM projects WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return p, ErrNotFound
	}
	return p, err
}

// List returns projects newest first, optionally filtered by status.
func (r *ProjectRepo) List(ctx context.Context, status string) ([]model.Project, error) {
	q := "SELECT " + projectCols + " FROM projects"
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
	out := make([]model.Project, 0)
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpdateStatus advances a project's status.
func (r *ProjectRepo) UpdateStatus(ctx context.Context, id, status string) (model.Project, error) {
	res, err := r.db.ExecContext(ctx,
		"UPDATE projects SET status=?, updated_at=UTC_TIMESTAMP() WHERE id=?", status, id)
	if err != nil {
		return model.Project{}, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return model.Project{}, err
	} else if n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return model.Project{}, err
		}
	}
	return r.GetByID(ctx, id)
}

// Update patches project detail fields.  Status moves through UpdateStatus
// so the transition stays validated in one place.
func (r *ProjectRepo) Update(ctx context.Context, id string, patch map[string]interface{}) (model.Project, error) {
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
		"UPDATE projects SET "+strings.Join(sets, ", ")+" WHERE id=?", args...)
	if err != nil {
		return model.Project{}, err
	}
	if n, err := res.RowsAffected(); err != nil {
		return model.Project{}, err
	} else if n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return model.Project{}, err
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a project.
func (r *ProjectRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM projects WHERE id=?", id)
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

// Count returns the total number of projects.
func (r *ProjectRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM projects").Scan(&n)
	return n, err
}
