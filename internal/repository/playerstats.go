package repository

import (
	"context"
	"database/sql"
	"fmt"

	"cricketmgr.dev/core/internal/core"
)

type PlayerStatsRepository struct {
	db *sql.DB
}

func NewPlayerStatsRepository(db *sql.DB) *PlayerStatsRepository {
	return &PlayerStatsRepository{db: db}
}

const playerStatsColumns = `
	season_id, player_id, team_id, bat_matches, runs, balls_faced, fours, sixes, highest_score, not_outs,
	bowl_matches, wickets, overs_bowled, runs_conceded, best_bowling, catches, stumpings, run_outs
`

func (r *PlayerStatsRepository) Get(ctx context.Context, seasonID core.SeasonID, playerID core.PlayerID) (*core.PlayerSeasonStats, error) {
	query := `SELECT ` + playerStatsColumns + ` FROM player_season_stats WHERE season_id = $1 AND player_id = $2`
	s, err := scanPlayerStats(r.db.QueryRowContext(ctx, query, seasonID, playerID))
	if err == sql.ErrNoRows {
		return nil, core.NewNotFoundError("player_season_stats", string(playerID))
	}
	return s, err
}

func (r *PlayerStatsRepository) ListBySeason(ctx context.Context, seasonID core.SeasonID) ([]core.PlayerSeasonStats, error) {
	query := `SELECT ` + playerStatsColumns + ` FROM player_season_stats WHERE season_id = $1 ORDER BY runs DESC`
	rows, err := r.db.QueryContext(ctx, query, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list player stats: %w", err)
	}
	defer rows.Close()

	var out []core.PlayerSeasonStats
	for rows.Next() {
		s, err := scanPlayerStats(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate player stats: %w", err)
	}
	return out, nil
}

func (r *PlayerStatsRepository) Upsert(ctx context.Context, s *core.PlayerSeasonStats) error {
	query := `
		INSERT INTO player_season_stats (` + playerStatsColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (season_id, player_id) DO UPDATE SET
			team_id = EXCLUDED.team_id,
			bat_matches = EXCLUDED.bat_matches,
			runs = EXCLUDED.runs,
			balls_faced = EXCLUDED.balls_faced,
			fours = EXCLUDED.fours,
			sixes = EXCLUDED.sixes,
			highest_score = EXCLUDED.highest_score,
			not_outs = EXCLUDED.not_outs,
			bowl_matches = EXCLUDED.bowl_matches,
			wickets = EXCLUDED.wickets,
			overs_bowled = EXCLUDED.overs_bowled,
			runs_conceded = EXCLUDED.runs_conceded,
			best_bowling = EXCLUDED.best_bowling,
			catches = EXCLUDED.catches,
			stumpings = EXCLUDED.stumpings,
			run_outs = EXCLUDED.run_outs
	`
	_, err := r.db.ExecContext(ctx, query, s.SeasonID, s.PlayerID, s.TeamID, s.BatMatches, s.Runs, s.BallsFaced,
		s.Fours, s.Sixes, s.HighestScore, s.NotOuts, s.BowlMatches, s.Wickets, s.OversBowled, s.RunsConceded,
		s.BestBowling, s.Catches, s.Stumpings, s.RunOuts)
	if err != nil {
		return fmt.Errorf("failed to upsert player stats: %w", err)
	}
	return nil
}

func scanPlayerStats(row rowScanner) (*core.PlayerSeasonStats, error) {
	var s core.PlayerSeasonStats
	err := row.Scan(&s.SeasonID, &s.PlayerID, &s.TeamID, &s.BatMatches, &s.Runs, &s.BallsFaced,
		&s.Fours, &s.Sixes, &s.HighestScore, &s.NotOuts, &s.BowlMatches, &s.Wickets, &s.OversBowled,
		&s.RunsConceded, &s.BestBowling, &s.Catches, &s.Stumpings, &s.RunOuts)
	if err != nil {
		return nil, fmt.Errorf("failed to scan player stats: %w", err)
	}
	return &s, nil
}
