package repository

import (
	"context"
	"database/sql"

	"github.com/jhulio435m/iot-management-system/internal/domain"
)

type PostgresLocationsRepo struct {
	db *sql.DB
}

func NewPostgresLocationsRepo(db *sql.DB) *PostgresLocationsRepo {
	return &PostgresLocationsRepo{db: db}
}

const locationColumns = `
	location_id::text,
	name,
	address,
	city,
	country,
	latitude,
	longitude,
	created_at`

func scanLocation(scan func(dest ...any) error) (*domain.Location, error) {
	var l domain.Location
	if err := scan(
		&l.LocationID,
		&l.Name,
		&l.Address,
		&l.City,
		&l.Country,
		&l.Latitude,
		&l.Longitude,
		&l.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *PostgresLocationsRepo) ListLocations(ctx context.Context) ([]*domain.Location, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+locationColumns+` FROM locations ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Location{}
	for rows.Next() {
		l, err := scanLocation(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *PostgresLocationsRepo) CreateLocation(ctx context.Context, l *domain.Location) (*domain.Location, error) {
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO locations (name, address, city, country, latitude, longitude)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+locationColumns,
		l.Name, l.Address, l.City, l.Country, l.Latitude, l.Longitude,
	)
	return scanLocation(row.Scan)
}
