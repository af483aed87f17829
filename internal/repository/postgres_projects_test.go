package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhulio435m/iot-management-system/internal/domain"
)

func setupProjectsMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *PostgresProjectsRepo) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock, NewPostgresProjectsRepo(db)
}

var projectScanColumns = []string{
	"project_id", "name", "description", "status", "budget",
	"start_date", "end_date", "created_at",
}

func TestListProjects(t *testing.T) {
	db, mock, repo := setupProjectsMock(t)
	defer db.Close()

	start := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(projectScanColumns).
		AddRow("p1", "Alpha", "cold chain", "active", 25000.0, start, nil, time.Now()).
		AddRow("p2", "Beta", nil, "completed", nil, nil, nil, time.Now())

	mock.ExpectQuery(`FROM projects ORDER BY created_at DESC`).WillReturnRows(rows)

	projects, err := repo.ListProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 2)

	assert.Equal(t, "Alpha", projects[0].Name)
	assert.Equal(t, 25000.0, projects[0].Budget.Float64)
	assert.Equal(t, start, projects[0].StartDate.Time)
	assert.False(t, projects[0].EndDate.Valid)
	assert.False(t, projects[1].Description.Valid)
	assert.False(t, projects[1].Budget.Valid)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateProject(t *testing.T) {
	db, mock, repo := setupProjectsMock(t)
	defer db.Close()

	in := &domain.Project{
		Name:        "Alpha",
		Description: sql.NullString{String: "cold chain", Valid: true},
		Status:      domain.ProjectStatusActive,
	}

	rows := sqlmock.NewRows(projectScanColumns).
		AddRow("p1", "Alpha", "cold chain", "active", nil, nil, nil, time.Now())

	mock.ExpectQuery(`INSERT INTO projects`).
		WithArgs(in.Name, in.Description, in.Status, in.Budget, in.StartDate, in.EndDate).
		WillReturnRows(rows)

	created, err := repo.CreateProject(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "p1", created.ProjectID)
	assert.Equal(t, domain.ProjectStatusActive, created.Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}
