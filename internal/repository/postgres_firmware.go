package repository

import (
	"context"
	"database/sql"

	"github.com/jhulio435m/iot-management-system/internal/domain"
)

type PostgresFirmwareRepo struct {
	db *sql.DB
}

func NewPostgresFirmwareRepo(db *sql.DB) *PostgresFirmwareRepo {
	return &PostgresFirmwareRepo{db: db}
}

func (r *PostgresFirmwareRepo) ListFirmwareVersions(ctx context.Context) ([]*domain.FirmwareVersion, error) {
	q := `
		SELECT
			f.firmware_id::text,
			f.device_type_id::text,
			f.version,
			f.release_date,
			f.release_notes,
			f.is_stable,
			f.created_at,
			dt.name AS device_type_name,
			dt.manufacturer
		FROM firmware_versions f
		LEFT JOIN device_types dt ON f.device_type_id = dt.device_type_id
		ORDER BY f.release_date DESC`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.FirmwareVersion{}
	for rows.Next() {
		var f domain.FirmwareVersion
		if err := rows.Scan(
			&f.FirmwareID,
			&f.DeviceTypeID,
			&f.Version,
			&f.ReleaseDate,
			&f.ReleaseNotes,
			&f.IsStable,
			&f.CreatedAt,
			&f.DeviceTypeName,
			&f.Manufacturer,
		); err != nil {
			return nil, err
		}
		out = append(out, &f)
	}
	return out, rows.Err()
}
