package domain

import (
	"database/sql"
	"time"
)

// Reading is one measured sample (sensor_readings table).
type Reading struct {
	ReadingID    string    `db:"reading_id"`
	SensorID     string    `db:"sensor_id"` // NOT NULL, FK sensors
	Value        float64   `db:"value"`
	QualityScore float64   `db:"quality_score"` // in [0,1]
	Timestamp    time.Time `db:"timestamp"`
	CreatedAt    time.Time `db:"created_at"`

	// Joined columns for list views.
	SensorName sql.NullString `db:"sensor_name"`
	SensorUnit sql.NullString `db:"sensor_unit"`
	SensorType sql.NullString `db:"sensor_type"`
	DeviceName sql.NullString `db:"device_name"`
}

func (r *Reading) ToJSON() map[string]any {
	return map[string]any{
		"id":            r.ReadingID,
		"sensor_id":     r.SensorID,
		"value":         r.Value,
		"quality_score": r.QualityScore,
		"timestamp":     r.Timestamp.Format(time.RFC3339),
		"created_at":    r.CreatedAt.Format(time.RFC3339),
		"sensor_name":   nullString(r.SensorName),
		"sensor_unit":   nullString(r.SensorUnit),
		"sensor_type":   nullString(r.SensorType),
		"device_name":   nullString(r.DeviceName),
	}
}
