package domain

import (
	"database/sql"
	"time"
)

// SensorTypes lists the physical quantities a sensor can measure.
var SensorTypes = []string{
	"temperature", "humidity", "pressure", "motion", "light",
	"co2", "voltage", "current", "power", "flow", "level", "vibration",
}

// Sensor belongs to exactly one device (sensors table).
type Sensor struct {
	SensorID        string          `db:"sensor_id"`
	DeviceID        string          `db:"device_id"` // NOT NULL, FK devices
	Name            string          `db:"name"`      // NOT NULL
	SensorType      string          `db:"sensor_type"`
	Unit            string          `db:"unit"`
	MinValue        sql.NullFloat64 `db:"min_value"`
	MaxValue        sql.NullFloat64 `db:"max_value"`
	CalibrationDate sql.NullTime    `db:"calibration_date"`
	IsActive        bool            `db:"is_active"` // NOT NULL, default true
	CreatedAt       time.Time       `db:"created_at"`

	// Joined columns for list and analytics views.
	DeviceName   sql.NullString `db:"device_name"`
	DeviceStatus sql.NullString `db:"device_status"`
	ProjectName  sql.NullString `db:"project_name"`
	LocationName sql.NullString `db:"location_name"`
	LocationCity sql.NullString `db:"location_city"`
}

func (s *Sensor) ToJSON() map[string]any {
	return map[string]any{
		"id":               s.SensorID,
		"device_id":        s.DeviceID,
		"name":             s.Name,
		"sensor_type":      s.SensorType,
		"unit":             s.Unit,
		"min_value":        nullFloat(s.MinValue),
		"max_value":        nullFloat(s.MaxValue),
		"calibration_date": nullTime(s.CalibrationDate),
		"is_active":        s.IsActive,
		"created_at":       s.CreatedAt.Format(time.RFC3339),
		"device_name":      nullString(s.DeviceName),
	}
}

// ToAnalyticsJSON adds the joined fleet context shown on the analytics
// view.
func (s *Sensor) ToAnalyticsJSON() map[string]any {
	m := s.ToJSON()
	m["device_status"] = nullString(s.DeviceStatus)
	m["project_name"] = nullString(s.ProjectName)
	m["location_name"] = nullString(s.LocationName)
	m["location_city"] = nullString(s.LocationCity)
	return m
}
