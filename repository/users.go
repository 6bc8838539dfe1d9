package repository

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"errors"
	"time"

	"github.com/emzola/bookstore/data"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type users interface {
	CreateUser(ctx context.Context, user *data.User) error
	RegisterUser(ctx context.Context, user *data.User, role string, ttl time.Duration, scope string) (*data.Token, error)
	GetUserByID(ctx context.Context, ID int64) (*data.User, error)
	GetUserByEmail(ctx context.Context, email string) (*data.User, error)
	UpdateUser(ctx context.Context, user *data.User) error
	GetUserForToken(ctx context.Context, tokenScope string, tokenPlaintext string) (*data.User, error)
}

// userSelect reads a user together with the names of the roles it holds.
const userSelect = `
	SELECT users.id, users.created_at, users.full_name, users.email, users.password_hash, users.email_confirmed, users.version,
		COALESCE(array_agg(roles.name ORDER BY roles.name) FILTER (WHERE roles.name IS NOT NULL), '{}')
	FROM users
	LEFT JOIN users_roles ON users_roles.user_id = users.id
	LEFT JOIN roles ON roles.id = users_roles.role_id`

// CreateUser creates a new user record.
func (r *repository) CreateUser(ctx context.Context, user *data.User) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	return insertUser(ctx, r.db, user)
}

// RegisterUser creates user, grants it role and issues its first token of
// the given scope in one transaction. Nothing is stored if any step fails.
func (r *repository) RegisterUser(ctx context.Context, user *data.User, role string, ttl time.Duration, scope string) (*data.Token, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	err = insertUser(ctx, tx, user)
	if err != nil {
		return nil, err
	}
	granted, err := grantRole(ctx, tx, user.ID, role)
	if err != nil {
		return nil, err
	}
	// The user is new, so nothing granted means the role is missing.
	if granted == 0 {
		return nil, ErrRecordNotFound
	}
	token, err := generateToken(user.ID, ttl, scope)
	if err != nil {
		return nil, err
	}
	err = insertToken(ctx, tx, token)
	if err != nil {
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		return nil, err
	}
	user.Roles = []string{role}
	return token, nil
}

func insertUser(ctx context.Context, q sqlx.ExtContext, user *data.User) error {
	query := `
		INSERT INTO users (full_name, email, password_hash, email_confirmed)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version`
	args := []any{user.FullName, user.Email, user.Password.Hash, user.EmailConfirmed}
	err := q.QueryRowxContext(ctx, query, args...).Scan(
		&user.ID,
		&user.CreatedAt,
		&user.Version,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return ErrDuplicateRecord
		default:
			return err
		}
	}
	return nil
}

// GetUserByID retrieves a user record by its ID.
func (r *repository) GetUserByID(ctx context.Context, ID int64) (*data.User, error) {
	if ID < 1 {
		return nil, ErrRecordNotFound
	}
	query := userSelect + `
		WHERE users.id = $1
		GROUP BY users.id`
	return r.getUser(ctx, query, ID)
}

// GetUserByEmail retrieves a user record by its email, ignoring case.
func (r *repository) GetUserByEmail(ctx context.Context, email string) (*data.User, error) {
	query := userSelect + `
		WHERE LOWER(users.email) = LOWER($1)
		GROUP BY users.id`
	return r.getUser(ctx, query, email)
}

// GetUserForToken returns the user a live token of the given scope belongs to.
func (r *repository) GetUserForToken(ctx context.Context, tokenScope string, tokenPlaintext string) (*data.User, error) {
	tokenHash := sha256.Sum256([]byte(tokenPlaintext))
	query := userSelect + `
		INNER JOIN tokens ON tokens.user_id = users.id
		WHERE tokens.hash = $1
		AND tokens.scope = $2
		AND tokens.expiry > $3
		GROUP BY users.id`
	return r.getUser(ctx, query, tokenHash[:], tokenScope, time.Now())
}

func (r *repository) getUser(ctx context.Context, query string, args ...any) (*data.User, error) {
	var user data.User
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID,
		&user.CreatedAt,
		&user.FullName,
		&user.Email,
		&user.Password.Hash,
		&user.EmailConfirmed,
		&user.Version,
		pq.Array(&user.Roles),
	)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrRecordNotFound
		default:
			return nil, err
		}
	}
	return &user, nil
}

// UpdateUser updates a user record, guarded by its version.
func (r *repository) UpdateUser(ctx context.Context, user *data.User) error {
	query := `
		UPDATE users
		SET full_name = $1, email = $2, password_hash = $3, email_confirmed = $4, version = version + 1
		WHERE id = $5 AND version = $6
		RETURNING version`
	args := []any{
		user.FullName,
		user.Email,
		user.Password.Hash,
		user.EmailConfirmed,
		user.ID,
		user.Version,
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&user.Version)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return ErrDuplicateRecord
		case errors.Is(err, sql.ErrNoRows):
			return ErrEditConflict
		default:
			return err
		}
	}
	return nil
}
