package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"cricketmgr.dev/core/internal/core"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id core.UserID) (*core.User, error) {
	query := `
		SELECT id, email, name, avatar_url, created_at, updated_at, last_login_at, is_active
		FROM users
		WHERE id = $1
	`
	return scanUser(r.db.QueryRowContext(ctx, query, id), string(id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*core.User, error) {
	query := `
		SELECT id, email, name, avatar_url, created_at, updated_at, last_login_at, is_active
		FROM users
		WHERE email = $1
	`
	return scanUser(r.db.QueryRowContext(ctx, query, email), email)
}

func (r *UserRepository) Create(ctx context.Context, u *core.User) error {
	query := `
		INSERT INTO users (id, email, name, avatar_url, is_active)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, u.ID, u.Email, nullString(u.Name), nullString(u.AvatarURL), u.IsActive).
		Scan(&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, u *core.User) error {
	query := `
		UPDATE users
		SET name = $2, avatar_url = $3, last_login_at = $4, is_active = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, query, u.ID, nullString(u.Name), nullString(u.AvatarURL), nullTime(u.LastLoginAt), u.IsActive).
		Scan(&u.UpdatedAt)
	if err == sql.ErrNoRows {
		return core.NewNotFoundError("user", string(u.ID))
	}
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner, id string) (*core.User, error) {
	var user core.User
	var name, avatarURL sql.NullString
	var lastLoginAt sql.NullTime

	err := row.Scan(
		&user.ID,
		&user.Email,
		&name,
		&avatarURL,
		&user.CreatedAt,
		&user.UpdatedAt,
		&lastLoginAt,
		&user.IsActive,
	)
	if err == sql.ErrNoRows {
		return nil, core.NewNotFoundError("user", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if name.Valid {
		user.Name = &name.String
	}
	if avatarURL.Valid {
		user.AvatarURL = &avatarURL.String
	}
	if lastLoginAt.Valid {
		user.LastLoginAt = &lastLoginAt.Time
	}
	return &user, nil
}

// nullString adapts an optional string pointer to a driver-compatible value.
func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// nullTime adapts an optional time pointer to a driver-compatible value.
func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
