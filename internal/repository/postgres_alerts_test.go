package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhulio435m/iot-management-system/internal/domain"
)

func setupAlertsMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *PostgresAlertsRepo) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock, NewPostgresAlertsRepo(db)
}

var alertScanColumns = []string{
	"alert_id", "device_id", "alert_type", "severity", "message",
	"status", "resolved_by", "created_at",
}

func TestListAlerts(t *testing.T) {
	db, mock, repo := setupAlertsMock(t)
	defer db.Close()

	cols := append(append([]string{}, alertScanColumns...), "device_name", "project_name")
	rows := sqlmock.NewRows(cols).
		AddRow("a1", "d1", "threshold", "high", "temp out of range",
			"active", nil, time.Now(), "gw-01", "Alpha").
		AddRow("a2", "d2", "connectivity", "low", "device unreachable",
			"resolved", "u1", time.Now(), nil, nil)

	mock.ExpectQuery(`FROM alerts a`).WillReturnRows(rows)

	alerts, err := repo.ListAlerts(context.Background())
	require.NoError(t, err)
	require.Len(t, alerts, 2)

	assert.Equal(t, "a1", alerts[0].AlertID)
	assert.Equal(t, "Alpha", alerts[0].ProjectName.String)
	assert.False(t, alerts[0].ResolvedBy.Valid)
	assert.Equal(t, "u1", alerts[1].ResolvedBy.String)
	assert.False(t, alerts[1].DeviceName.Valid)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListDetailedAlertsFiltersStatus(t *testing.T) {
	db, mock, repo := setupAlertsMock(t)
	defer db.Close()

	cols := append(append([]string{}, alertScanColumns...),
		"device_name", "device_status", "device_mac", "device_type_name",
		"project_name", "project_description", "location_name",
		"location_address", "location_city", "resolver_name", "resolver_email")
	rows := sqlmock.NewRows(cols).
		AddRow("a1", "d1", "threshold", "critical", "overheating",
			"active", nil, time.Now(),
			"gw-01", "online", "AA:BB:CC:DD:EE:01", "Gateway",
			"Alpha", "cold chain", "Warehouse North", "Av. Industrial 1200",
			"Lima", nil, nil)

	mock.ExpectQuery(`WHERE a.status = \$1`).
		WithArgs("active").
		WillReturnRows(rows)

	alerts, err := repo.ListDetailedAlerts(context.Background(), "active")
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, "Gateway", alerts[0].DeviceTypeName.String)
	assert.Equal(t, "Lima", alerts[0].LocationCity.String)
	assert.False(t, alerts[0].ResolverName.Valid)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAlertStatusAndResolver(t *testing.T) {
	db, mock, repo := setupAlertsMock(t)
	defer db.Close()

	status := domain.AlertStatusResolved
	resolver := "u1"

	rows := sqlmock.NewRows(alertScanColumns).
		AddRow("a1", "d1", "threshold", "high", "temp out of range",
			status, resolver, time.Now())

	mock.ExpectQuery(`UPDATE alerts SET status = \$2, resolved_by = \$3`).
		WithArgs("a1", status, resolver).
		WillReturnRows(rows)

	updated, err := repo.UpdateAlert(context.Background(), "a1", AlertUpdate{
		Status:     &status,
		ResolvedBy: &resolver,
	})
	require.NoError(t, err)
	assert.Equal(t, status, updated.Status)
	assert.Equal(t, resolver, updated.ResolvedBy.String)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAlertStatusOnly(t *testing.T) {
	db, mock, repo := setupAlertsMock(t)
	defer db.Close()

	status := domain.AlertStatusAcknowledged
	rows := sqlmock.NewRows(alertScanColumns).
		AddRow("a1", "d1", "threshold", "high", "msg", status, nil, time.Now())

	mock.ExpectQuery(`UPDATE alerts SET status = \$2`).
		WithArgs("a1", status).
		WillReturnRows(rows)

	updated, err := repo.UpdateAlert(context.Background(), "a1", AlertUpdate{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, status, updated.Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAlertNoFields(t *testing.T) {
	db, _, repo := setupAlertsMock(t)
	defer db.Close()

	_, err := repo.UpdateAlert(context.Background(), "a1", AlertUpdate{})
	require.Error(t, err)
}

func TestCountActiveByDevices(t *testing.T) {
	db, mock, repo := setupAlertsMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM alerts`).
		WithArgs(pq.Array([]string{"d1", "d2"})).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := repo.CountActiveByDevices(context.Background(), []string{"d1", "d2"})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountActiveByDevicesEmptySetUsesNilUUID(t *testing.T) {
	db, mock, repo := setupAlertsMock(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM alerts`).
		WithArgs(pq.Array([]string{"00000000-0000-0000-0000-000000000000"})).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	n, err := repo.CountActiveByDevices(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	assert.NoError(t, mock.ExpectationsWereMet())
}
