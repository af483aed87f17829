package domain

import (
	"database/sql"
	"time"
)

// Maintenance types and statuses.
const (
	MaintenanceTypePreventive = "preventive"
	MaintenanceTypeCorrective = "corrective"
	MaintenanceTypeEmergency  = "emergency"
	MaintenanceTypeUpgrade    = "upgrade"

	MaintenanceStatusScheduled  = "scheduled"
	MaintenanceStatusInProgress = "in_progress"
	MaintenanceStatusCompleted  = "completed"
	MaintenanceStatusCancelled  = "cancelled"
)

// MaintenanceLog records work on one device by one technician
// (maintenance_logs table).
type MaintenanceLog struct {
	LogID           string          `db:"log_id"`
	DeviceID        string          `db:"device_id"`     // NOT NULL, FK devices
	TechnicianID    string          `db:"technician_id"` // NOT NULL, FK users
	MaintenanceType string          `db:"maintenance_type"`
	Description     sql.NullString  `db:"description"`
	Status          string          `db:"status"` // NOT NULL, default 'scheduled'
	ScheduledDate   sql.NullTime    `db:"scheduled_date"`
	CompletedDate   sql.NullTime    `db:"completed_date"`
	Cost            sql.NullFloat64 `db:"cost"`
	CreatedAt       time.Time       `db:"created_at"`

	// Joined columns for list views.
	DeviceName     sql.NullString `db:"device_name"`
	TechnicianName sql.NullString `db:"technician_name"`
}

func (l *MaintenanceLog) ToJSON() map[string]any {
	return map[string]any{
		"id":               l.LogID,
		"device_id":        l.DeviceID,
		"technician_id":    l.TechnicianID,
		"maintenance_type": l.MaintenanceType,
		"description":      nullString(l.Description),
		"status":           l.Status,
		"scheduled_date":   nullTime(l.ScheduledDate),
		"completed_date":   nullTime(l.CompletedDate),
		"cost":             nullFloat(l.Cost),
		"created_at":       l.CreatedAt.Format(time.RFC3339),
		"device_name":      nullString(l.DeviceName),
		"technician_name":  nullString(l.TechnicianName),
	}
}
