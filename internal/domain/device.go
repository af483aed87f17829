package domain

import (
	"database/sql"
	"time"
)

// Device statuses.
const (
	DeviceStatusOnline      = "online"
	DeviceStatusOffline     = "offline"
	DeviceStatusMaintenance = "maintenance"
	DeviceStatusError       = "error"
)

// Device is a deployed unit (devices table). It belongs to exactly one
// project, references exactly one device type and at most one location.
type Device struct {
	DeviceID        string         `db:"device_id"`
	ProjectID       string         `db:"project_id"`      // NOT NULL, FK projects
	DeviceTypeID    string         `db:"device_type_id"`  // NOT NULL, FK device_types
	LocationID      sql.NullString `db:"location_id"`     // FK locations
	Name            string         `db:"name"`            // NOT NULL
	MACAddress      string         `db:"mac_address"`     // NOT NULL, unique
	IPAddress       sql.NullString `db:"ip_address"`
	Status          string         `db:"status"` // NOT NULL, default 'offline'
	FirmwareVersion sql.NullString `db:"firmware_version"`
	LastSeen        sql.NullTime   `db:"last_seen"`
	CreatedAt       time.Time      `db:"created_at"`

	// Joined columns for list views (LEFT JOINs, not stored here).
	ProjectName     sql.NullString `db:"project_name"`
	DeviceTypeName  sql.NullString `db:"device_type_name"`
	LocationName    sql.NullString `db:"location_name"`
	LocationAddress sql.NullString `db:"location_address"`

	// SensorCount is populated only by the per-project summary query.
	SensorCount sql.NullInt64 `db:"sensor_count"`
}

func (d *Device) ToJSON() map[string]any {
	return map[string]any{
		"id":               d.DeviceID,
		"project_id":       d.ProjectID,
		"device_type_id":   d.DeviceTypeID,
		"location_id":      nullString(d.LocationID),
		"name":             d.Name,
		"mac_address":      d.MACAddress,
		"ip_address":       nullString(d.IPAddress),
		"status":           d.Status,
		"firmware_version": nullString(d.FirmwareVersion),
		"last_seen":        nullTime(d.LastSeen),
		"created_at":       d.CreatedAt.Format(time.RFC3339),
		"project_name":     nullString(d.ProjectName),
		"device_type_name": nullString(d.DeviceTypeName),
		"location_name":    nullString(d.LocationName),
		"location_address": nullString(d.LocationAddress),
	}
}
