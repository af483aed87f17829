package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jhulio435m/iot-management-system/internal/domain"
)

// DefaultReadingLimit is the window size for listings and analytics.
const DefaultReadingLimit = 100

type PostgresReadingsRepo struct {
	db *sql.DB
}

func NewPostgresReadingsRepo(db *sql.DB) *PostgresReadingsRepo {
	return &PostgresReadingsRepo{db: db}
}

func (r *PostgresReadingsRepo) ListReadings(ctx context.Context, filters ReadingFilters) ([]*domain.Reading, error) {
	limit := filters.Limit
	if limit <= 0 {
		limit = DefaultReadingLimit
	}

	q := `
		SELECT
			sr.reading_id::text,
			sr.sensor_id::text,
			sr.value,
			sr.quality_score,
			sr.timestamp,
			sr.created_at,
			s.name AS sensor_name,
			s.unit AS sensor_unit,
			s.sensor_type,
			d.name AS device_name
		FROM sensor_readings sr
		LEFT JOIN sensors s ON sr.sensor_id = s.sensor_id
		LEFT JOIN devices d ON s.device_id = d.device_id`
	args := []any{}
	argN := 1
	if filters.SensorID != "" {
		q += ` WHERE sr.sensor_id = $1`
		args = append(args, filters.SensorID)
		argN++
	}
	q += ` ORDER BY sr.timestamp DESC LIMIT $` + fmt.Sprintf("%d", argN)
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Reading{}
	for rows.Next() {
		var rd domain.Reading
		if err := rows.Scan(
			&rd.ReadingID,
			&rd.SensorID,
			&rd.Value,
			&rd.QualityScore,
			&rd.Timestamp,
			&rd.CreatedAt,
			&rd.SensorName,
			&rd.SensorUnit,
			&rd.SensorType,
			&rd.DeviceName,
		); err != nil {
			return nil, err
		}
		out = append(out, &rd)
	}
	return out, rows.Err()
}

func (r *PostgresReadingsRepo) ListRecentBySensor(ctx context.Context, sensorID string, limit int) ([]*domain.Reading, error) {
	if limit <= 0 {
		limit = DefaultReadingLimit
	}

	q := `
		SELECT
			reading_id::text,
			sensor_id::text,
			value,
			quality_score,
			timestamp,
			created_at
		FROM sensor_readings
		WHERE sensor_id = $1
		ORDER BY timestamp DESC
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, q, sensorID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Reading{}
	for rows.Next() {
		var rd domain.Reading
		if err := rows.Scan(
			&rd.ReadingID,
			&rd.SensorID,
			&rd.Value,
			&rd.QualityScore,
			&rd.Timestamp,
			&rd.CreatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, &rd)
	}
	return out, rows.Err()
}

func (r *PostgresReadingsRepo) CreateReading(ctx context.Context, rd *domain.Reading) (*domain.Reading, error) {
	q := `
		INSERT INTO sensor_readings (sensor_id, value, quality_score, timestamp)
		VALUES ($1, $2, $3, $4)
		RETURNING
			reading_id::text,
			sensor_id::text,
			value,
			quality_score,
			timestamp,
			created_at`

	var out domain.Reading
	if err := r.db.QueryRowContext(ctx, q,
		rd.SensorID, rd.Value, rd.QualityScore, rd.Timestamp,
	).Scan(
		&out.ReadingID,
		&out.SensorID,
		&out.Value,
		&out.QualityScore,
		&out.Timestamp,
		&out.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *PostgresReadingsRepo) CountSince(ctx context.Context, since time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sensor_readings WHERE timestamp >= $1`, since,
	).Scan(&n)
	return n, err
}
