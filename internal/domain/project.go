package domain

import (
	"database/sql"
	"time"
)

// Project statuses.
const (
	ProjectStatusActive    = "active"
	ProjectStatusInactive  = "inactive"
	ProjectStatusCompleted = "completed"
	ProjectStatusSuspended = "suspended"
)

// Project groups a fleet of devices under one budget (projects table).
type Project struct {
	ProjectID   string          `db:"project_id"`
	Name        string          `db:"name"` // NOT NULL
	Description sql.NullString  `db:"description"`
	Status      string          `db:"status"` // NOT NULL, default 'active'
	Budget      sql.NullFloat64 `db:"budget"`
	StartDate   sql.NullTime    `db:"start_date"`
	EndDate     sql.NullTime    `db:"end_date"`
	CreatedAt   time.Time       `db:"created_at"`
}

func (p *Project) ToJSON() map[string]any {
	return map[string]any{
		"id":          p.ProjectID,
		"name":        p.Name,
		"description": nullString(p.Description),
		"status":      p.Status,
		"budget":      nullFloat(p.Budget),
		"start_date":  nullTime(p.StartDate),
		"end_date":    nullTime(p.EndDate),
		"created_at":  p.CreatedAt.Format(time.RFC3339),
	}
}
