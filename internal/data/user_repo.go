// Package data provides Postgres-backed repositories for the voiceforge services.
package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/voiceforge/voiceforge/internal/domain/model"
	apperrors "github.com/voiceforge/voiceforge/internal/errors"
)

const userColumns = `
  id,
  email,
  username,
  password_hash,
  created_at,
  updated_at
`

// UserRepo provides database operations for user accounts.
type UserRepo struct {
	DB *sql.DB
}

// NewUserRepo creates a new UserRepo instance with the given database connection.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

// Create inserts a new user and returns the stored record. Unique violations
// on email or username surface as Conflict errors.
func (r *UserRepo) Create(ctx context.Context, user *model.User) (*model.User, error) {
	if user == nil {
		return nil, errors.New("user is required")
	}

	row := r.DB.QueryRowContext(ctx, `
		INSERT INTO users (email, username, password_hash)
		VALUES ($1, $2, $3)
		RETURNING `+userColumns,
		user.Email, user.Username, user.PasswordHash)

	created, err := scanUser(row)
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}
	return created, nil
}

// GetByEmail fetches a user by email. A missing user is a NotFound error;
// callers deciding login outcomes must collapse it with a failed password
// comparison before responding.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	row := r.DB.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("user not found")
		}
		return nil, apperrors.MapDBError(err)
	}
	return user, nil
}

// ExistsByEmailOrUsername reports whether a user already holds either value.
func (r *UserRepo) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1 OR username = $2)`,
		email, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check user exists: %w", apperrors.MapDBError(err))
	}
	return exists, nil
}

// rowScanner abstracts *sql.Row and *sql.Rows for the scan helpers.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*model.User, error) {
	var u model.User
	if err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Username,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}
