package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type roles interface {
	CreateRole(ctx context.Context, name string) error
	RoleExists(ctx context.Context, name string) (bool, error)
	AddRoleForUser(ctx context.Context, userID int64, role string) error
}

// CreateRole creates a role unless one with the same name exists.
func (r *repository) CreateRole(ctx context.Context, name string) error {
	query := `
		INSERT INTO roles (name)
		VALUES ($1)
		ON CONFLICT (name) DO NOTHING`
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := r.db.ExecContext(ctx, query, name)
	return err
}

// RoleExists reports whether a role with the given name exists.
func (r *repository) RoleExists(ctx context.Context, name string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM roles WHERE name = $1)`
	var exists bool
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	err := r.db.GetContext(ctx, &exists, query, name)
	return exists, err
}

// AddRoleForUser grants role to a user. Granting a held role is a no-op.
func (r *repository) AddRoleForUser(ctx context.Context, userID int64, role string) error {
	if userID < 1 {
		return ErrRecordNotFound
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_, err := grantRole(ctx, r.db, userID, role)
	return err
}

// grantRole reports how many grants were added; zero when the role is
// unknown or already held.
func grantRole(ctx context.Context, q sqlx.ExecerContext, userID int64, role string) (int64, error) {
	query := `
		INSERT INTO users_roles (user_id, role_id)
		SELECT $1, roles.id FROM roles WHERE roles.name = $2
		ON CONFLICT DO NOTHING`
	result, err := q.ExecContext(ctx, query, userID, role)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
