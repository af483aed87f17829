package domain

import (
	"database/sql"
	"time"
)

// Alert statuses. Transitions are client-driven; the gateway accepts
// any value on update.
const (
	AlertStatusActive       = "active"
	AlertStatusAcknowledged = "acknowledged"
	AlertStatusResolved     = "resolved"
	AlertStatusDismissed    = "dismissed"
)

// Alert severities.
const (
	AlertSeverityLow      = "low"
	AlertSeverityMedium   = "medium"
	AlertSeverityHigh     = "high"
	AlertSeverityCritical = "critical"
)

// Alert belongs to exactly one device (alerts table).
type Alert struct {
	AlertID    string         `db:"alert_id"`
	DeviceID   string         `db:"device_id"` // NOT NULL, FK devices
	AlertType  string         `db:"alert_type"`
	Severity   string         `db:"severity"`
	Message    string         `db:"message"`
	Status     string         `db:"status"`      // NOT NULL, default 'active'
	ResolvedBy sql.NullString `db:"resolved_by"` // FK users
	CreatedAt  time.Time      `db:"created_at"`

	// Joined columns for list views.
	DeviceName   sql.NullString `db:"device_name"`
	DeviceStatus sql.NullString `db:"device_status"`
	DeviceMAC    sql.NullString `db:"device_mac"`
	ProjectName  sql.NullString `db:"project_name"`

	// Extra joins used only by /alerts/detailed.
	DeviceTypeName     sql.NullString `db:"device_type_name"`
	ProjectDescription sql.NullString `db:"project_description"`
	LocationName       sql.NullString `db:"location_name"`
	LocationAddress    sql.NullString `db:"location_address"`
	LocationCity       sql.NullString `db:"location_city"`
	ResolverName       sql.NullString `db:"resolver_name"`
	ResolverEmail      sql.NullString `db:"resolver_email"`
}

func (a *Alert) ToJSON() map[string]any {
	return map[string]any{
		"id":           a.AlertID,
		"device_id":    a.DeviceID,
		"alert_type":   a.AlertType,
		"severity":     a.Severity,
		"message":      a.Message,
		"status":       a.Status,
		"resolved_by":  nullString(a.ResolvedBy),
		"created_at":   a.CreatedAt.Format(time.RFC3339),
		"device_name":  nullString(a.DeviceName),
		"project_name": nullString(a.ProjectName),
	}
}

// ToDetailedJSON adds the full joined context for /alerts/detailed.
func (a *Alert) ToDetailedJSON() map[string]any {
	m := a.ToJSON()
	m["device_status"] = nullString(a.DeviceStatus)
	m["device_mac"] = nullString(a.DeviceMAC)
	m["device_type_name"] = nullString(a.DeviceTypeName)
	m["project_description"] = nullString(a.ProjectDescription)
	m["location_name"] = nullString(a.LocationName)
	m["location_address"] = nullString(a.LocationAddress)
	m["location_city"] = nullString(a.LocationCity)
	m["resolver_name"] = nullString(a.ResolverName)
	m["resolver_email"] = nullString(a.ResolverEmail)
	return m
}
