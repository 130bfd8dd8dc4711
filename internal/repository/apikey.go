package repository

import (
	"context"
	"database/sql"
	"fmt"

	"cricketmgr.dev/core/internal/core"
)

type APIKeyRepository struct {
	db *sql.DB
}

func NewAPIKeyRepository(db *sql.DB) *APIKeyRepository {
	return &APIKeyRepository{db: db}
}

// Create persists a key record. core.APIKey has no hash field: KeyPrefix
// carries the full secret generated by the caller, and it is written
// unhashed into both the key_hash and key_prefix columns.
func (r *APIKeyRepository) Create(ctx context.Context, k *core.APIKey) error {
	query := `
		INSERT INTO api_keys (id, user_id, key_hash, key_prefix, name, expires_at, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query, k.ID, k.UserID, k.KeyPrefix, k.KeyPrefix, nullString(k.Name), nullTime(k.ExpiresAt), k.IsActive).
		Scan(&k.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create api key: %w", err)
	}
	return nil
}

func (r *APIKeyRepository) GetByPrefix(ctx context.Context, prefix string) (*core.APIKey, error) {
	query := `
		SELECT id, user_id, key_prefix, name, created_at, last_used_at, expires_at, is_active
		FROM api_keys
		WHERE key_prefix = $1 AND is_active = true
	`
	return r.scanOne(r.db.QueryRowContext(ctx, query, prefix), prefix)
}

func (r *APIKeyRepository) ListByUser(ctx context.Context, userID core.UserID) ([]core.APIKey, error) {
	query := `
		SELECT id, user_id, key_prefix, name, created_at, last_used_at, expires_at, is_active
		FROM api_keys
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list api keys: %w", err)
	}
	defer rows.Close()

	var keys []core.APIKey
	for rows.Next() {
		var k core.APIKey
		var name sql.NullString
		var lastUsedAt, expiresAt sql.NullTime

		if err := rows.Scan(&k.ID, &k.UserID, &k.KeyPrefix, &name, &k.CreatedAt, &lastUsedAt, &expiresAt, &k.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan api key: %w", err)
		}
		if name.Valid {
			k.Name = &name.String
		}
		if lastUsedAt.Valid {
			k.LastUsedAt = &lastUsedAt.Time
		}
		if expiresAt.Valid {
			k.ExpiresAt = &expiresAt.Time
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate api keys: %w", err)
	}
	return keys, nil
}

func (r *APIKeyRepository) Revoke(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE api_keys SET is_active = false WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to revoke api key: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return core.NewNotFoundError("api key", id)
	}
	return nil
}

func (r *APIKeyRepository) scanOne(row rowScanner, id string) (*core.APIKey, error) {
	var k core.APIKey
	var name sql.NullString
	var lastUsedAt, expiresAt sql.NullTime

	err := row.Scan(&k.ID, &k.UserID, &k.KeyPrefix, &name, &k.CreatedAt, &lastUsedAt, &expiresAt, &k.IsActive)
	if err == sql.ErrNoRows {
		return nil, core.NewNotFoundError("api key", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get api key: %w", err)
	}
	if name.Valid {
		k.Name = &name.String
	}
	if lastUsedAt.Valid {
		k.LastUsedAt = &lastUsedAt.Time
	}
	if expiresAt.Valid {
		k.ExpiresAt = &expiresAt.Time
	}
	return &k, nil
}
