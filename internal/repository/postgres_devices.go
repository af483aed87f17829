package repository

import (
	"context"
	"database/sql"

	"github.com/jhulio435m/iot-management-system/internal/domain"
)

type PostgresDevicesRepo struct {
	db *sql.DB
}

func NewPostgresDevicesRepo(db *sql.DB) *PostgresDevicesRepo {
	return &PostgresDevicesRepo{db: db}
}

const deviceColumns = `
	d.device_id::text,
	d.project_id::text,
	d.device_type_id::text,
	CASE WHEN d.location_id IS NULL THEN NULL ELSE d.location_id::text END,
	d.name,
	d.mac_address,
	d.ip_address,
	d.status,
	d.firmware_version,
	d.last_seen,
	d.created_at`

// deviceDest returns the scan destinations matching deviceColumns.
func deviceDest(d *domain.Device) []any {
	return []any{
		&d.DeviceID,
		&d.ProjectID,
		&d.DeviceTypeID,
		&d.LocationID,
		&d.Name,
		&d.MACAddress,
		&d.IPAddress,
		&d.Status,
		&d.FirmwareVersion,
		&d.LastSeen,
		&d.CreatedAt,
	}
}

func (r *PostgresDevicesRepo) ListDevices(ctx context.Context) ([]*domain.Device, error) {
	q := `
		SELECT ` + deviceColumns + `,
			p.name  AS project_name,
			dt.name AS device_type_name,
			l.name  AS location_name,
			l.address AS location_address
		FROM devices d
		LEFT JOIN projects p      ON d.project_id = p.project_id
		LEFT JOIN device_types dt ON d.device_type_id = dt.device_type_id
		LEFT JOIN locations l     ON d.location_id = l.location_id
		ORDER BY d.created_at DESC`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Device{}
	for rows.Next() {
		var d domain.Device
		dest := append(deviceDest(&d),
			&d.ProjectName, &d.DeviceTypeName, &d.LocationName, &d.LocationAddress)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

// ListDevicesByProject carries the per-device sensor count the project
// summary needs, so the summary stays one follow-up query per project.
func (r *PostgresDevicesRepo) ListDevicesByProject(ctx context.Context, projectID string) ([]*domain.Device, error) {
	q := `
		SELECT ` + deviceColumns + `,
			dt.name AS device_type_name,
			COUNT(s.sensor_id) AS sensor_count
		FROM devices d
		LEFT JOIN device_types dt ON d.device_type_id = dt.device_type_id
		LEFT JOIN sensors s       ON s.device_id = d.device_id
		WHERE d.project_id = $1
		GROUP BY d.device_id, dt.name
		ORDER BY d.created_at DESC`

	rows, err := r.db.QueryContext(ctx, q, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Device{}
	for rows.Next() {
		var d domain.Device
		dest := append(deviceDest(&d), &d.DeviceTypeName, &d.SensorCount)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

func (r *PostgresDevicesRepo) ListDevicesByLocation(ctx context.Context, locationID string) ([]*domain.Device, error) {
	q := `
		SELECT ` + deviceColumns + `,
			p.name  AS project_name,
			dt.name AS device_type_name
		FROM devices d
		LEFT JOIN projects p      ON d.project_id = p.project_id
		LEFT JOIN device_types dt ON d.device_type_id = dt.device_type_id
		WHERE d.location_id = $1
		ORDER BY d.created_at DESC`

	rows, err := r.db.QueryContext(ctx, q, locationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Device{}
	for rows.Next() {
		var d domain.Device
		dest := append(deviceDest(&d), &d.ProjectName, &d.DeviceTypeName)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

func (r *PostgresDevicesRepo) ListDevicesByFirmware(ctx context.Context, deviceTypeID, version string) ([]*domain.Device, error) {
	q := `
		SELECT ` + deviceColumns + `,
			p.name AS project_name,
			l.name AS location_name
		FROM devices d
		LEFT JOIN projects p  ON d.project_id = p.project_id
		LEFT JOIN locations l ON d.location_id = l.location_id
		WHERE d.device_type_id = $1 AND d.firmware_version = $2
		ORDER BY d.created_at DESC`

	rows, err := r.db.QueryContext(ctx, q, deviceTypeID, version)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Device{}
	for rows.Next() {
		var d domain.Device
		dest := append(deviceDest(&d), &d.ProjectName, &d.LocationName)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

func (r *PostgresDevicesRepo) CreateDevice(ctx context.Context, d *domain.Device) (*domain.Device, error) {
	q := `
		INSERT INTO devices (project_id, device_type_id, location_id, name, mac_address, ip_address, status, firmware_version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING
			device_id::text,
			project_id::text,
			device_type_id::text,
			CASE WHEN location_id IS NULL THEN NULL ELSE location_id::text END,
			name,
			mac_address,
			ip_address,
			status,
			firmware_version,
			last_seen,
			created_at`

	var out domain.Device
	if err := r.db.QueryRowContext(ctx, q,
		d.ProjectID, d.DeviceTypeID, d.LocationID, d.Name,
		d.MACAddress, d.IPAddress, d.Status, d.FirmwareVersion,
	).Scan(deviceDest(&out)...); err != nil {
		return nil, err
	}
	return &out, nil
}
