package repository

import (
	"context"
	"database/sql"

	"github.com/jhulio435m/iot-management-system/internal/domain"
)

type PostgresSensorsRepo struct {
	db *sql.DB
}

func NewPostgresSensorsRepo(db *sql.DB) *PostgresSensorsRepo {
	return &PostgresSensorsRepo{db: db}
}

const sensorColumns = `
	s.sensor_id::text,
	s.device_id::text,
	s.name,
	s.sensor_type,
	s.unit,
	s.min_value,
	s.max_value,
	s.calibration_date,
	s.is_active,
	s.created_at`

func sensorDest(s *domain.Sensor) []any {
	return []any{
		&s.SensorID,
		&s.DeviceID,
		&s.Name,
		&s.SensorType,
		&s.Unit,
		&s.MinValue,
		&s.MaxValue,
		&s.CalibrationDate,
		&s.IsActive,
		&s.CreatedAt,
	}
}

func (r *PostgresSensorsRepo) ListSensors(ctx context.Context, filters SensorFilters) ([]*domain.Sensor, error) {
	q := `
		SELECT ` + sensorColumns + `,
			d.name AS device_name
		FROM sensors s
		LEFT JOIN devices d ON s.device_id = d.device_id`
	args := []any{}
	if filters.DeviceID != "" {
		q += ` WHERE s.device_id = $1`
		args = append(args, filters.DeviceID)
	}
	q += ` ORDER BY s.created_at DESC`

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Sensor{}
	for rows.Next() {
		var s domain.Sensor
		dest := append(sensorDest(&s), &s.DeviceName)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

func (r *PostgresSensorsRepo) ListSensorsForAnalytics(ctx context.Context) ([]*domain.Sensor, error) {
	q := `
		SELECT ` + sensorColumns + `,
			d.name   AS device_name,
			d.status AS device_status,
			p.name   AS project_name,
			l.name   AS location_name,
			l.city   AS location_city
		FROM sensors s
		LEFT JOIN devices d   ON s.device_id = d.device_id
		LEFT JOIN projects p  ON d.project_id = p.project_id
		LEFT JOIN locations l ON d.location_id = l.location_id
		ORDER BY s.name`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Sensor{}
	for rows.Next() {
		var s domain.Sensor
		dest := append(sensorDest(&s),
			&s.DeviceName, &s.DeviceStatus, &s.ProjectName, &s.LocationName, &s.LocationCity)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

func (r *PostgresSensorsRepo) CreateSensor(ctx context.Context, s *domain.Sensor) (*domain.Sensor, error) {
	q := `
		INSERT INTO sensors (device_id, name, sensor_type, unit, min_value, max_value, calibration_date, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING
			sensor_id::text,
			device_id::text,
			name,
			sensor_type,
			unit,
			min_value,
			max_value,
			calibration_date,
			is_active,
			created_at`

	var out domain.Sensor
	if err := r.db.QueryRowContext(ctx, q,
		s.DeviceID, s.Name, s.SensorType, s.Unit,
		s.MinValue, s.MaxValue, s.CalibrationDate, s.IsActive,
	).Scan(sensorDest(&out)...); err != nil {
		return nil, err
	}
	return &out, nil
}
