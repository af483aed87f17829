package domain

import (
	"database/sql"
	"time"
)

// Location is a physical site devices are installed at (locations table).
// Devices reference it, they are not owned by it.
type Location struct {
	LocationID string          `db:"location_id"`
	Name       string          `db:"name"` // NOT NULL
	Address    sql.NullString  `db:"address"`
	City       sql.NullString  `db:"city"`
	Country    sql.NullString  `db:"country"`
	Latitude   sql.NullFloat64 `db:"latitude"`
	Longitude  sql.NullFloat64 `db:"longitude"`
	CreatedAt  time.Time       `db:"created_at"`
}

func (l *Location) ToJSON() map[string]any {
	return map[string]any{
		"id":         l.LocationID,
		"name":       l.Name,
		"address":    nullString(l.Address),
		"city":       nullString(l.City),
		"country":    nullString(l.Country),
		"latitude":   nullFloat(l.Latitude),
		"longitude":  nullFloat(l.Longitude),
		"created_at": l.CreatedAt.Format(time.RFC3339),
	}
}
