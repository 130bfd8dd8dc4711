package repository

import (
	"context"
	"database/sql"
	"fmt"

	"cricketmgr.dev/core/internal/core"
)

type CareerRepository struct {
	db *sql.DB
}

func NewCareerRepository(db *sql.DB) *CareerRepository {
	return &CareerRepository{db: db}
}

func (r *CareerRepository) Create(ctx context.Context, c *core.Career) error {
	query := `
		INSERT INTO careers (id, user_id, name, status, season_number, user_team_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query, c.ID, c.UserID, c.Name, c.Status, c.SeasonNumber, c.UserTeamID).
		Scan(&c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create career: %w", err)
	}
	return nil
}

func (r *CareerRepository) GetByID(ctx context.Context, id core.CareerID) (*core.Career, error) {
	query := `
		SELECT id, user_id, name, status, season_number, user_team_id, created_at
		FROM careers
		WHERE id = $1
	`
	var c core.Career
	err := r.db.QueryRowContext(ctx, query, id).Scan(&c.ID, &c.UserID, &c.Name, &c.Status, &c.SeasonNumber, &c.UserTeamID, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, core.NewNotFoundError("career", string(id))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get career: %w", err)
	}
	return &c, nil
}

func (r *CareerRepository) ListByUser(ctx context.Context, userID core.UserID) ([]core.Career, error) {
	query := `
		SELECT id, user_id, name, status, season_number, user_team_id, created_at
		FROM careers
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list careers: %w", err)
	}
	defer rows.Close()

	var careers []core.Career
	for rows.Next() {
		var c core.Career
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Status, &c.SeasonNumber, &c.UserTeamID, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan career: %w", err)
		}
		careers = append(careers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate careers: %w", err)
	}
	return careers, nil
}

func (r *CareerRepository) CountByUser(ctx context.Context, userID core.UserID) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM careers WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count careers: %w", err)
	}
	return count, nil
}

func (r *CareerRepository) Update(ctx context.Context, c *core.Career) error {
	query := `
		UPDATE careers
		SET name = $2, status = $3, season_number = $4, user_team_id = $5
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, c.ID, c.Name, c.Status, c.SeasonNumber, c.UserTeamID)
	if err != nil {
		return fmt.Errorf("failed to update career: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return core.NewNotFoundError("career", string(c.ID))
	}
	return nil
}

func (r *CareerRepository) Delete(ctx context.Context, id core.CareerID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM careers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete career: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return core.NewNotFoundError("career", string(id))
	}
	return nil
}
