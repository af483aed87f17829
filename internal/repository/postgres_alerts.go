package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/jhulio435m/iot-management-system/internal/domain"
)

type PostgresAlertsRepo struct {
	db *sql.DB
}

func NewPostgresAlertsRepo(db *sql.DB) *PostgresAlertsRepo {
	return &PostgresAlertsRepo{db: db}
}

const alertColumns = `
	a.alert_id::text,
	a.device_id::text,
	a.alert_type,
	a.severity,
	a.message,
	a.status,
	CASE WHEN a.resolved_by IS NULL THEN NULL ELSE a.resolved_by::text END,
	a.created_at`

func alertDest(a *domain.Alert) []any {
	return []any{
		&a.AlertID,
		&a.DeviceID,
		&a.AlertType,
		&a.Severity,
		&a.Message,
		&a.Status,
		&a.ResolvedBy,
		&a.CreatedAt,
	}
}

func (r *PostgresAlertsRepo) ListAlerts(ctx context.Context) ([]*domain.Alert, error) {
	q := `
		SELECT ` + alertColumns + `,
			d.name AS device_name,
			p.name AS project_name
		FROM alerts a
		LEFT JOIN devices d  ON a.device_id = d.device_id
		LEFT JOIN projects p ON d.project_id = p.project_id
		ORDER BY a.created_at DESC
		LIMIT 50`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Alert{}
	for rows.Next() {
		var a domain.Alert
		dest := append(alertDest(&a), &a.DeviceName, &a.ProjectName)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

func (r *PostgresAlertsRepo) ListDetailedAlerts(ctx context.Context, status string) ([]*domain.Alert, error) {
	q := `
		SELECT ` + alertColumns + `,
			d.name        AS device_name,
			d.status      AS device_status,
			d.mac_address AS device_mac,
			dt.name       AS device_type_name,
			p.name        AS project_name,
			p.description AS project_description,
			l.name        AS location_name,
			l.address     AS location_address,
			l.city        AS location_city,
			u.name        AS resolver_name,
			u.email       AS resolver_email
		FROM alerts a
		LEFT JOIN devices d       ON a.device_id = d.device_id
		LEFT JOIN device_types dt ON d.device_type_id = dt.device_type_id
		LEFT JOIN projects p      ON d.project_id = p.project_id
		LEFT JOIN locations l     ON d.location_id = l.location_id
		LEFT JOIN users u         ON a.resolved_by = u.user_id
		WHERE a.status = $1
		ORDER BY a.created_at DESC`

	rows, err := r.db.QueryContext(ctx, q, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Alert{}
	for rows.Next() {
		var a domain.Alert
		dest := append(alertDest(&a),
			&a.DeviceName, &a.DeviceStatus, &a.DeviceMAC,
			&a.DeviceTypeName, &a.ProjectName, &a.ProjectDescription,
			&a.LocationName, &a.LocationAddress, &a.LocationCity,
			&a.ResolverName, &a.ResolverEmail,
		)
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

func (r *PostgresAlertsRepo) CreateAlert(ctx context.Context, a *domain.Alert) (*domain.Alert, error) {
	q := `
		INSERT INTO alerts (device_id, alert_type, severity, message, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING
			alert_id::text,
			device_id::text,
			alert_type,
			severity,
			message,
			status,
			CASE WHEN resolved_by IS NULL THEN NULL ELSE resolved_by::text END,
			created_at`

	var out domain.Alert
	if err := r.db.QueryRowContext(ctx, q,
		a.DeviceID, a.AlertType, a.Severity, a.Message, a.Status,
	).Scan(alertDest(&out)...); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateAlert applies a partial update. Any status value is accepted;
// transition legality is the client's concern.
func (r *PostgresAlertsRepo) UpdateAlert(ctx context.Context, alertID string, upd AlertUpdate) (*domain.Alert, error) {
	set := []string{}
	args := []any{alertID}
	argN := 2
	if upd.Status != nil {
		set = append(set, fmt.Sprintf("status = $%d", argN))
		args = append(args, *upd.Status)
		argN++
	}
	if upd.ResolvedBy != nil {
		set = append(set, fmt.Sprintf("resolved_by = $%d", argN))
		args = append(args, *upd.ResolvedBy)
		argN++
	}
	if len(set) == 0 {
		return nil, fmt.Errorf("no fields to update")
	}

	q := `
		UPDATE alerts SET ` + strings.Join(set, ", ") + `
		WHERE alert_id = $1
		RETURNING
			alert_id::text,
			device_id::text,
			alert_type,
			severity,
			message,
			status,
			CASE WHEN resolved_by IS NULL THEN NULL ELSE resolved_by::text END,
			created_at`

	var out domain.Alert
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(alertDest(&out)...); err != nil {
		return nil, err
	}
	return &out, nil
}

// CountActiveByDevices counts active alerts over a device-id set. An
// empty set is queried with the nil UUID so the membership test can
// never match a real row.
func (r *PostgresAlertsRepo) CountActiveByDevices(ctx context.Context, deviceIDs []string) (int, error) {
	if len(deviceIDs) == 0 {
		deviceIDs = []string{uuid.Nil.String()}
	}
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM alerts WHERE status = 'active' AND device_id = ANY($1::uuid[])`,
		pq.Array(deviceIDs),
	).Scan(&n)
	return n, err
}
