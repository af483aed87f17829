package repository

import (
	"context"
	"database/sql"
)

// PostgresMetricsRepo feeds the dashboard. Totals are COUNT queries;
// the *Statuses/Breakdown methods fetch one column for the whole table
// so the service buckets them in memory, matching how the dashboard
// has always computed its breakdowns.
type PostgresMetricsRepo struct {
	db *sql.DB
}

func NewPostgresMetricsRepo(db *sql.DB) *PostgresMetricsRepo {
	return &PostgresMetricsRepo{db: db}
}

func (r *PostgresMetricsRepo) count(ctx context.Context, q string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, q).Scan(&n)
	return n, err
}

func (r *PostgresMetricsRepo) CountProjects(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM projects`)
}

func (r *PostgresMetricsRepo) CountDevices(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM devices`)
}

func (r *PostgresMetricsRepo) CountSensors(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM sensors`)
}

func (r *PostgresMetricsRepo) CountAlerts(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM alerts`)
}

func (r *PostgresMetricsRepo) CountActiveAlerts(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM alerts WHERE status = 'active'`)
}

func (r *PostgresMetricsRepo) CountMaintenance(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM maintenance_logs`)
}

func (r *PostgresMetricsRepo) CountLocations(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM locations`)
}

func (r *PostgresMetricsRepo) strings(ctx context.Context, q string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PostgresMetricsRepo) ProjectStatuses(ctx context.Context) ([]string, error) {
	return r.strings(ctx, `SELECT status FROM projects`)
}

func (r *PostgresMetricsRepo) DeviceStatuses(ctx context.Context) ([]string, error) {
	return r.strings(ctx, `SELECT status FROM devices`)
}

func (r *PostgresMetricsRepo) MaintenanceStatuses(ctx context.Context) ([]string, error) {
	return r.strings(ctx, `SELECT status FROM maintenance_logs`)
}

func (r *PostgresMetricsRepo) SensorActiveFlags(ctx context.Context) ([]bool, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT is_active FROM sensors`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []bool{}
	for rows.Next() {
		var b bool
		if err := rows.Scan(&b); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresMetricsRepo) AlertBreakdown(ctx context.Context) ([]AlertBreakdownRow, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT severity, status FROM alerts`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []AlertBreakdownRow{}
	for rows.Next() {
		var row AlertBreakdownRow
		if err := rows.Scan(&row.Severity, &row.Status); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
