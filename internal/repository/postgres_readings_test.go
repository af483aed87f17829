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

func setupReadingsMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock, *PostgresReadingsRepo) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return db, mock, NewPostgresReadingsRepo(db)
}

var readingScanColumns = []string{
	"reading_id", "sensor_id", "value", "quality_score", "timestamp", "created_at",
}

func TestListReadingsDefaultLimit(t *testing.T) {
	db, mock, repo := setupReadingsMock(t)
	defer db.Close()

	cols := append(append([]string{}, readingScanColumns...),
		"sensor_name", "sensor_unit", "sensor_type", "device_name")
	rows := sqlmock.NewRows(cols).
		AddRow("r1", "s1", 22.5, 0.98, time.Now(), time.Now(),
			"temp-01", "°C", "temperature", "gw-01")

	mock.ExpectQuery(`FROM sensor_readings sr`).
		WithArgs(DefaultReadingLimit).
		WillReturnRows(rows)

	readings, err := repo.ListReadings(context.Background(), ReadingFilters{})
	require.NoError(t, err)
	require.Len(t, readings, 1)
	assert.Equal(t, 22.5, readings[0].Value)
	assert.Equal(t, "°C", readings[0].SensorUnit.String)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListReadingsBySensor(t *testing.T) {
	db, mock, repo := setupReadingsMock(t)
	defer db.Close()

	cols := append(append([]string{}, readingScanColumns...),
		"sensor_name", "sensor_unit", "sensor_type", "device_name")
	rows := sqlmock.NewRows(cols).
		AddRow("r1", "s1", 22.5, 0.98, time.Now(), time.Now(),
			"temp-01", "°C", "temperature", "gw-01").
		AddRow("r2", "s1", 21.9, 0.97, time.Now(), time.Now(),
			"temp-01", "°C", "temperature", "gw-01")

	mock.ExpectQuery(`WHERE sr.sensor_id = \$1`).
		WithArgs("s1", 10).
		WillReturnRows(rows)

	readings, err := repo.ListReadings(context.Background(), ReadingFilters{SensorID: "s1", Limit: 10})
	require.NoError(t, err)
	require.Len(t, readings, 2)
	assert.Equal(t, "s1", readings[1].SensorID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListRecentBySensor(t *testing.T) {
	db, mock, repo := setupReadingsMock(t)
	defer db.Close()

	rows := sqlmock.NewRows(readingScanColumns).
		AddRow("r1", "s1", 22.5, 0.98, time.Now(), time.Now())

	mock.ExpectQuery(`WHERE sensor_id = \$1`).
		WithArgs("s1", DefaultReadingLimit).
		WillReturnRows(rows)

	readings, err := repo.ListRecentBySensor(context.Background(), "s1", 0)
	require.NoError(t, err)
	require.Len(t, readings, 1)
	assert.Equal(t, 0.98, readings[0].QualityScore)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReading(t *testing.T) {
	db, mock, repo := setupReadingsMock(t)
	defer db.Close()

	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	in := &domain.Reading{SensorID: "s1", Value: 22.5, QualityScore: 0.98, Timestamp: ts}

	rows := sqlmock.NewRows(readingScanColumns).
		AddRow("r1", "s1", 22.5, 0.98, ts, time.Now())

	mock.ExpectQuery(`INSERT INTO sensor_readings`).
		WithArgs(in.SensorID, in.Value, in.QualityScore, in.Timestamp).
		WillReturnRows(rows)

	created, err := repo.CreateReading(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "r1", created.ReadingID)
	assert.Equal(t, ts, created.Timestamp)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountSince(t *testing.T) {
	db, mock, repo := setupReadingsMock(t)
	defer db.Close()

	since := time.Now().Add(-24 * time.Hour)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM sensor_readings`).
		WithArgs(since).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(480))

	n, err := repo.CountSince(context.Background(), since)
	require.NoError(t, err)
	assert.Equal(t, 480, n)

	assert.NoError(t, mock.ExpectationsWereMet())
}
