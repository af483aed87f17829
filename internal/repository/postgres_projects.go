package repository

import (
	"context"
	"database/sql"

	"github.com/jhulio435m/iot-management-system/internal/domain"
)

type PostgresProjectsRepo struct {
	db *sql.DB
}

func NewPostgresProjectsRepo(db *sql.DB) *PostgresProjectsRepo {
	return &PostgresProjectsRepo{db: db}
}

const projectColumns = `
	project_id::text,
	name,
	description,
	status,
	budget,
	start_date,
	end_date,
	created_at`

func scanProject(scan func(dest ...any) error) (*domain.Project, error) {
	var p domain.Project
	if err := scan(
		&p.ProjectID,
		&p.Name,
		&p.Description,
		&p.Status,
		&p.Budget,
		&p.StartDate,
		&p.EndDate,
		&p.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostgresProjectsRepo) ListProjects(ctx context.Context) ([]*domain.Project, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+projectColumns+` FROM projects ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Project{}
	for rows.Next() {
		p, err := scanProject(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresProjectsRepo) CreateProject(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO projects (name, description, status, budget, start_date, end_date)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+projectColumns,
		p.Name, p.Description, p.Status, p.Budget, p.StartDate, p.EndDate,
	)
	return scanProject(row.Scan)
}
