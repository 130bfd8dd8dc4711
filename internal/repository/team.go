package repository

import (
	"context"
	"database/sql"
	"fmt"

	"cricketmgr.dev/core/internal/core"
)

type TeamRepository struct {
	db *sql.DB
}

func NewTeamRepository(db *sql.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

func (r *TeamRepository) CreateBatch(ctx context.Context, careerID core.CareerID, teams []core.Team) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO teams (career_id, id, name, short_name, city, home_ground, primary_colour, secondary_colour, budget, remaining_budget, is_user_team)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	for _, t := range teams {
		if _, err := tx.ExecContext(ctx, query, careerID, t.ID, t.Name, t.ShortName, t.City, t.HomeGround,
			t.PrimaryColour, t.SecondaryColour, t.Budget, t.RemainingBudget, t.IsUserTeam); err != nil {
			return fmt.Errorf("failed to insert team %s: %w", t.ID, err)
		}
	}
	return tx.Commit()
}

func (r *TeamRepository) GetByID(ctx context.Context, careerID core.CareerID, id core.TeamID) (*core.Team, error) {
	query := `
		SELECT id, name, short_name, city, home_ground, primary_colour, secondary_colour, budget, remaining_budget, is_user_team
		FROM teams
		WHERE career_id = $1 AND id = $2
	`
	var t core.Team
	err := r.db.QueryRowContext(ctx, query, careerID, id).Scan(&t.ID, &t.Name, &t.ShortName, &t.City, &t.HomeGround,
		&t.PrimaryColour, &t.SecondaryColour, &t.Budget, &t.RemainingBudget, &t.IsUserTeam)
	if err == sql.ErrNoRows {
		return nil, core.NewNotFoundError("team", string(id))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}
	return &t, nil
}

func (r *TeamRepository) List(ctx context.Context, careerID core.CareerID) ([]core.Team, error) {
	query := `
		SELECT id, name, short_name, city, home_ground, primary_colour, secondary_colour, budget, remaining_budget, is_user_team
		FROM teams
		WHERE career_id = $1
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, careerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var teams []core.Team
	for rows.Next() {
		var t core.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.ShortName, &t.City, &t.HomeGround,
			&t.PrimaryColour, &t.SecondaryColour, &t.Budget, &t.RemainingBudget, &t.IsUserTeam); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate teams: %w", err)
	}
	return teams, nil
}

func (r *TeamRepository) UpdateBudget(ctx context.Context, careerID core.CareerID, id core.TeamID, remaining int64) error {
	query := `UPDATE teams SET remaining_budget = $3 WHERE career_id = $1 AND id = $2`
	result, err := r.db.ExecContext(ctx, query, careerID, id, remaining)
	if err != nil {
		return fmt.Errorf("failed to update team budget: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return core.NewNotFoundError("team", string(id))
	}
	return nil
}
