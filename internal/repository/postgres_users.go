package repository

import (
	"context"
	"database/sql"

	"github.com/jhulio435m/iot-management-system/internal/domain"
)

type PostgresUsersRepo struct {
	db *sql.DB
}

func NewPostgresUsersRepo(db *sql.DB) *PostgresUsersRepo {
	return &PostgresUsersRepo{db: db}
}

const userColumns = `
	user_id::text,
	name,
	email,
	role,
	created_at`

func userDest(u *domain.User) []any {
	return []any{&u.UserID, &u.Name, &u.Email, &u.Role, &u.CreatedAt}
}

func (r *PostgresUsersRepo) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return r.list(ctx, `SELECT `+userColumns+` FROM users ORDER BY name`)
}

// ListTechnicians returns the users the performance view covers:
// technicians and engineers.
func (r *PostgresUsersRepo) ListTechnicians(ctx context.Context) ([]*domain.User, error) {
	return r.list(ctx,
		`SELECT `+userColumns+` FROM users WHERE role IN ('technician', 'engineer') ORDER BY name`)
}

func (r *PostgresUsersRepo) list(ctx context.Context, q string) ([]*domain.User, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.User{}
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(userDest(&u)...); err != nil {
			return nil, err
		}
		out = append(out, &u)
	}
	return out, rows.Err()
}

func (r *PostgresUsersRepo) CreateUser(ctx context.Context, u *domain.User) (*domain.User, error) {
	var out domain.User
	if err := r.db.QueryRowContext(ctx,
		`INSERT INTO users (name, email, role)
		 VALUES ($1, $2, $3)
		 RETURNING `+userColumns,
		u.Name, u.Email, u.Role,
	).Scan(userDest(&out)...); err != nil {
		return nil, err
	}
	return &out, nil
}
