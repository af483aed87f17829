package domain

import "time"

// User roles.
const (
	RoleAdmin      = "admin"
	RoleEngineer   = "engineer"
	RoleTechnician = "technician"
	RoleOperator   = "operator"
)

// User is an operator account (users table). Email is unique.
type User struct {
	UserID    string    `db:"user_id"`
	Name      string    `db:"name"`  // NOT NULL
	Email     string    `db:"email"` // NOT NULL, unique
	Role      string    `db:"role"`  // NOT NULL, default 'operator'
	CreatedAt time.Time `db:"created_at"`
}

func (u *User) ToJSON() map[string]any {
	return map[string]any{
		"id":         u.UserID,
		"name":       u.Name,
		"email":      u.Email,
		"role":       u.Role,
		"created_at": u.CreatedAt.Format(time.RFC3339),
	}
}
