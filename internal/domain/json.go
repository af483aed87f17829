package domain

import (
	"database/sql"
	"time"
)

// Helpers for shaping nullable columns into JSON values. The API
// contract keeps nullable fields present with explicit nulls, so every
// ToJSON flattens through these instead of omitting keys.

func nullString(s sql.NullString) any {
	if s.Valid {
		return s.String
	}
	return nil
}

func nullTime(t sql.NullTime) any {
	if t.Valid {
		return t.Time.Format(time.RFC3339)
	}
	return nil
}

func nullFloat(f sql.NullFloat64) any {
	if f.Valid {
		return f.Float64
	}
	return nil
}
