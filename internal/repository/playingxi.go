package repository

import (
	"context"
	"database/sql"
	"fmt"

	"cricketmgr.dev/core/internal/core"
)

type PlayingXIRepository struct {
	db *sql.DB
}

func NewPlayingXIRepository(db *sql.DB) *PlayingXIRepository {
	return &PlayingXIRepository{db: db}
}

// Set replaces the full XI for a (team, season) pair inside one transaction.
func (r *PlayingXIRepository) Set(ctx context.Context, teamID core.TeamID, seasonID core.SeasonID, xi []core.PlayingXI) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM playing_xi WHERE team_id = $1 AND season_id = $2`, teamID, seasonID); err != nil {
		return fmt.Errorf("failed to clear playing xi: %w", err)
	}

	query := `INSERT INTO playing_xi (team_id, season_id, player_id, batting_position) VALUES ($1, $2, $3, $4)`
	for _, p := range xi {
		if _, err := tx.ExecContext(ctx, query, p.TeamID, p.SeasonID, p.PlayerID, p.BattingPosition); err != nil {
			return fmt.Errorf("failed to insert playing xi entry: %w", err)
		}
	}
	return tx.Commit()
}

func (r *PlayingXIRepository) Get(ctx context.Context, teamID core.TeamID, seasonID core.SeasonID) ([]core.PlayingXI, error) {
	query := `
		SELECT team_id, season_id, player_id, batting_position
		FROM playing_xi
		WHERE team_id = $1 AND season_id = $2
		ORDER BY batting_position
	`
	rows, err := r.db.QueryContext(ctx, query, teamID, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to get playing xi: %w", err)
	}
	defer rows.Close()

	var xi []core.PlayingXI
	for rows.Next() {
		var p core.PlayingXI
		if err := rows.Scan(&p.TeamID, &p.SeasonID, &p.PlayerID, &p.BattingPosition); err != nil {
			return nil, fmt.Errorf("failed to scan playing xi entry: %w", err)
		}
		xi = append(xi, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate playing xi: %w", err)
	}
	if len(xi) == 0 {
		return nil, core.NewNotFoundError("playing_xi", string(teamID))
	}
	return xi, nil
}
