package domain

import (
	"database/sql"
	"time"
)

// FirmwareVersion is a published firmware build for one device type
// (firmware_versions table).
type FirmwareVersion struct {
	FirmwareID   string         `db:"firmware_id"`
	DeviceTypeID string         `db:"device_type_id"` // NOT NULL, FK device_types
	Version      string         `db:"version"`        // NOT NULL
	ReleaseDate  sql.NullTime   `db:"release_date"`
	ReleaseNotes sql.NullString `db:"release_notes"`
	IsStable     bool           `db:"is_stable"`
	CreatedAt    time.Time      `db:"created_at"`

	// Joined columns for list views.
	DeviceTypeName sql.NullString `db:"device_type_name"`
	Manufacturer   sql.NullString `db:"manufacturer"`
}

func (f *FirmwareVersion) ToJSON() map[string]any {
	return map[string]any{
		"id":               f.FirmwareID,
		"device_type_id":   f.DeviceTypeID,
		"version":          f.Version,
		"release_date":     nullTime(f.ReleaseDate),
		"release_notes":    nullString(f.ReleaseNotes),
		"is_stable":        f.IsStable,
		"created_at":       f.CreatedAt.Format(time.RFC3339),
		"device_type_name": nullString(f.DeviceTypeName),
		"manufacturer":     nullString(f.Manufacturer),
	}
}
