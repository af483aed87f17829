package repository

import (
	"context"
	"database/sql"

	"github.com/jhulio435m/iot-management-system/internal/domain"
)

type PostgresDeviceTypesRepo struct {
	db *sql.DB
}

func NewPostgresDeviceTypesRepo(db *sql.DB) *PostgresDeviceTypesRepo {
	return &PostgresDeviceTypesRepo{db: db}
}

const deviceTypeColumns = `
	device_type_id::text,
	name,
	description,
	manufacturer,
	CASE WHEN specifications IS NULL THEN NULL ELSE specifications::text END,
	created_at`

func scanDeviceType(scan func(dest ...any) error) (*domain.DeviceType, error) {
	var t domain.DeviceType
	if err := scan(
		&t.DeviceTypeID,
		&t.Name,
		&t.Description,
		&t.Manufacturer,
		&t.Specifications,
		&t.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PostgresDeviceTypesRepo) ListDeviceTypes(ctx context.Context) ([]*domain.DeviceType, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+deviceTypeColumns+` FROM device_types ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.DeviceType{}
	for rows.Next() {
		t, err := scanDeviceType(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *PostgresDeviceTypesRepo) CreateDeviceType(ctx context.Context, t *domain.DeviceType) (*domain.DeviceType, error) {
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO device_types (name, description, manufacturer, specifications)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+deviceTypeColumns,
		t.Name, t.Description, t.Manufacturer, t.Specifications,
	)
	return scanDeviceType(row.Scan)
}
