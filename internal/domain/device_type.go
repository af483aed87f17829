package domain

import (
	"database/sql"
	"encoding/json"
	"time"
)

// DeviceType is a catalog entry (device_types table). Name is unique.
type DeviceType struct {
	DeviceTypeID   string         `db:"device_type_id"`
	Name           string         `db:"name"` // NOT NULL, unique
	Description    sql.NullString `db:"description"`
	Manufacturer   sql.NullString `db:"manufacturer"`
	Specifications sql.NullString `db:"specifications"` // JSONB
	CreatedAt      time.Time      `db:"created_at"`
}

func (t *DeviceType) ToJSON() map[string]any {
	m := map[string]any{
		"id":           t.DeviceTypeID,
		"name":         t.Name,
		"description":  nullString(t.Description),
		"manufacturer": nullString(t.Manufacturer),
		"created_at":   t.CreatedAt.Format(time.RFC3339),
	}
	if t.Specifications.Valid {
		// Specs are stored as JSONB; pass them through as structured
		// data when they parse, as text otherwise.
		var spec any
		if err := json.Unmarshal([]byte(t.Specifications.String), &spec); err == nil {
			m["specifications"] = spec
		} else {
			m["specifications"] = t.Specifications.String
		}
	} else {
		m["specifications"] = nil
	}
	return m
}
