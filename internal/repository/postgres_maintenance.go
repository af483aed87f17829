package repository

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/jhulio435m/iot-management-system/internal/domain"
)

type PostgresMaintenanceRepo struct {
	db *sql.DB
}

func NewPostgresMaintenanceRepo(db *sql.DB) *PostgresMaintenanceRepo {
	return &PostgresMaintenanceRepo{db: db}
}

const maintenanceColumns = `
	m.log_id::text,
	m.device_id::text,
	m.technician_id::text,
	m.maintenance_type,
	m.description,
	m.status,
	m.scheduled_date,
	m.completed_date,
	m.cost,
	m.created_at`

func maintenanceDest(l *domain.MaintenanceLog) []any {
	return []any{
		&l.LogID,
		&l.DeviceID,
		&l.TechnicianID,
		&l.MaintenanceType,
		&l.Description,
		&l.Status,
		&l.ScheduledDate,
		&l.CompletedDate,
		&l.Cost,
		&l.CreatedAt,
	}
}

func (r *PostgresMaintenanceRepo) ListLogs(ctx context.Context) ([]*domain.MaintenanceLog, error) {
	q := `
		SELECT ` + maintenanceColumns + `,
			d.name AS device_name,
			u.name AS technician_name
		FROM maintenance_logs m
		LEFT JOIN devices d ON m.device_id = d.device_id
		LEFT JOIN users u   ON m.technician_id = u.user_id
		ORDER BY m.created_at DESC`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.MaintenanceLog{}
	for rows.Next() {
		var l domain.MaintenanceLog
		dest := append(maintenanceDest(&l), &l.DeviceName, &l.TechnicianName)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

func (r *PostgresMaintenanceRepo) ListLogsByTechnician(ctx context.Context, technicianID string) ([]*domain.MaintenanceLog, error) {
	q := `
		SELECT ` + maintenanceColumns + `,
			d.name AS device_name
		FROM maintenance_logs m
		LEFT JOIN devices d ON m.device_id = d.device_id
		WHERE m.technician_id = $1
		ORDER BY m.created_at DESC`

	rows, err := r.db.QueryContext(ctx, q, technicianID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.MaintenanceLog{}
	for rows.Next() {
		var l domain.MaintenanceLog
		dest := append(maintenanceDest(&l), &l.DeviceName)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}

func (r *PostgresMaintenanceRepo) CreateLog(ctx context.Context, l *domain.MaintenanceLog) (*domain.MaintenanceLog, error) {
	q := `
		INSERT INTO maintenance_logs (device_id, technician_id, maintenance_type, description, status, scheduled_date, completed_date, cost)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING
			log_id::text,
			device_id::text,
			technician_id::text,
			maintenance_type,
			description,
			status,
			scheduled_date,
			completed_date,
			cost,
			created_at`

	var out domain.MaintenanceLog
	if err := r.db.QueryRowContext(ctx, q,
		l.DeviceID, l.TechnicianID, l.MaintenanceType, l.Description,
		l.Status, l.ScheduledDate, l.CompletedDate, l.Cost,
	).Scan(maintenanceDest(&out)...); err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *PostgresMaintenanceRepo) CountByDevices(ctx context.Context, deviceIDs []string) (int, error) {
	if len(deviceIDs) == 0 {
		deviceIDs = []string{uuid.Nil.String()}
	}
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM maintenance_logs WHERE device_id = ANY($1::uuid[])`,
		pq.Array(deviceIDs),
	).Scan(&n)
	return n, err
}
