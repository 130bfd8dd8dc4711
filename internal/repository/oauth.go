package repository

import (
	"context"
	"database/sql"
	"fmt"

	"cricketmgr.dev/core/internal/core"
)

type OAuthTokenRepository struct {
	db *sql.DB
}

func NewOAuthTokenRepository(db *sql.DB) *OAuthTokenRepository {
	return &OAuthTokenRepository{db: db}
}

func (r *OAuthTokenRepository) Create(ctx context.Context, t *core.OAuthToken) error {
	query := `
		INSERT INTO oauth_tokens (id, user_id, access_token, refresh_token, token_type, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query, t.ID, t.UserID, t.AccessToken, nullString(t.RefreshToken), t.TokenType, t.ExpiresAt).
		Scan(&t.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create oauth token: %w", err)
	}
	return nil
}

func (r *OAuthTokenRepository) GetByUserID(ctx context.Context, userID core.UserID) (*core.OAuthToken, error) {
	query := `
		SELECT id, user_id, access_token, refresh_token, token_type, expires_at, created_at
		FROM oauth_tokens
		WHERE user_id = $1 AND expires_at > NOW()
		ORDER BY created_at DESC
		LIMIT 1
	`
	var token core.OAuthToken
	var refreshToken sql.NullString

	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&token.ID,
		&token.UserID,
		&token.AccessToken,
		&refreshToken,
		&token.TokenType,
		&token.ExpiresAt,
		&token.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, core.NewNotFoundError("oauth token", string(userID))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get oauth token: %w", err)
	}
	if refreshToken.Valid {
		token.RefreshToken = &refreshToken.String
	}
	return &token, nil
}

func (r *OAuthTokenRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM oauth_tokens WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete oauth token: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return core.NewNotFoundError("oauth token", id)
	}
	return nil
}
