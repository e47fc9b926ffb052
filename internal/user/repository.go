// AngelaMos | 2026
// repository.go

package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mkrzemien-software/homely-sub001/internal/core"
)

type Repository interface {
	Create(ctx context.Context, db core.DBTX, u *User) error
	GetByID(ctx context.Context, db core.DBTX, id string) (*User, error)
	GetByEmail(ctx context.Context, db core.DBTX, email string) (*User, error)
	Update(ctx context.Context, db core.DBTX, u *User) error
	UpdatePassword(
		ctx context.Context,
		db core.DBTX,
		id, passwordHash string,
	) error
	SoftDelete(ctx context.Context, db core.DBTX, id string) error
}

type repository struct{}

func NewRepository() Repository {
	return &repository{}
}

func (r *repository) Create(
	ctx context.Context,
	db core.DBTX,
	u *User,
) error {
	query := `
		INSERT INTO users (id, email, password_hash, name)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at, updated_at`

	err := db.GetContext(ctx, u, query,
		u.ID,
		u.Email,
		u.PasswordHash,
		u.Name,
	)
	if err != nil {
		if core.IsUniqueViolation(err) {
			return fmt.Errorf("create user: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create user: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	db core.DBTX,
	id string,
) (*User, error) {
	query := `
		SELECT id, email, password_hash, name,
		       created_at, updated_at, deleted_at
		FROM users
		WHERE id = $1 AND deleted_at IS NULL`

	var u User
	err := db.GetContext(ctx, &u, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &u, nil
}

func (r *repository) GetByEmail(
	ctx context.Context,
	db core.DBTX,
	email string,
) (*User, error) {
	query := `
		SELECT id, email, password_hash, name,
		       created_at, updated_at, deleted_at
		FROM users
		WHERE LOWER(email) = LOWER($1) AND deleted_at IS NULL`

	var u User
	err := db.GetContext(ctx, &u, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user by email: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	return &u, nil
}

func (r *repository) Update(
	ctx context.Context,
	db core.DBTX,
	u *User,
) error {
	query := `
		UPDATE users
		SET name = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL
		RETURNING updated_at`

	err := db.GetContext(ctx, &u.UpdatedAt, query, u.ID, u.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update user: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}

	return nil
}

func (r *repository) UpdatePassword(
	ctx context.Context,
	db core.DBTX,
	id, passwordHash string,
) error {
	query := `
		UPDATE users
		SET password_hash = $2, updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	result, err := db.ExecContext(ctx, query, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update password: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) SoftDelete(
	ctx context.Context,
	db core.DBTX,
	id string,
) error {
	query := `
		UPDATE users
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND deleted_at IS NULL`

	result, err := db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete user: %w", core.ErrNotFound)
	}

	return nil
}

// normalizeEmail lowercases and trims an address for storage; lookups use
// LOWER() so stored rows from before normalization still match.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
