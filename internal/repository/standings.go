package repository

import (
	"context"
	"database/sql"
	"fmt"

	"cricketmgr.dev/core/internal/core"
)

type StandingsRepository struct {
	db *sql.DB
}

func NewStandingsRepository(db *sql.DB) *StandingsRepository {
	return &StandingsRepository{db: db}
}

const standingsColumns = `season_id, team_id, matches, wins, losses, no_results, points, runs_scored, overs_faced, runs_conceded, overs_bowled`

func (r *StandingsRepository) Get(ctx context.Context, seasonID core.SeasonID, teamID core.TeamID) (*core.TeamSeasonStats, error) {
	query := `SELECT ` + standingsColumns + ` FROM team_season_stats WHERE season_id = $1 AND team_id = $2`
	s, err := scanStandings(r.db.QueryRowContext(ctx, query, seasonID, teamID))
	if err == sql.ErrNoRows {
		return nil, core.NewNotFoundError("team_season_stats", string(teamID))
	}
	return s, err
}

func (r *StandingsRepository) List(ctx context.Context, seasonID core.SeasonID) ([]core.TeamSeasonStats, error) {
	query := `SELECT ` + standingsColumns + ` FROM team_season_stats WHERE season_id = $1 ORDER BY points DESC, team_id`
	rows, err := r.db.QueryContext(ctx, query, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list standings: %w", err)
	}
	defer rows.Close()

	var out []core.TeamSeasonStats
	for rows.Next() {
		s, err := scanStandings(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate standings: %w", err)
	}
	return out, nil
}

func (r *StandingsRepository) Upsert(ctx context.Context, s *core.TeamSeasonStats) error {
	query := `
		INSERT INTO team_season_stats (` + standingsColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (season_id, team_id) DO UPDATE SET
			matches = EXCLUDED.matches,
			wins = EXCLUDED.wins,
			losses = EXCLUDED.losses,
			no_results = EXCLUDED.no_results,
			points = EXCLUDED.points,
			runs_scored = EXCLUDED.runs_scored,
			overs_faced = EXCLUDED.overs_faced,
			runs_conceded = EXCLUDED.runs_conceded,
			overs_bowled = EXCLUDED.overs_bowled
	`
	_, err := r.db.ExecContext(ctx, query, s.SeasonID, s.TeamID, s.Matches, s.Wins, s.Losses, s.NoResults,
		s.Points, s.RunsScored, s.OversFaced, s.RunsConceded, s.OversBowled)
	if err != nil {
		return fmt.Errorf("failed to upsert standings: %w", err)
	}
	return nil
}

func scanStandings(row rowScanner) (*core.TeamSeasonStats, error) {
	var s core.TeamSeasonStats
	err := row.Scan(&s.SeasonID, &s.TeamID, &s.Matches, &s.Wins, &s.Losses, &s.NoResults,
		&s.Points, &s.RunsScored, &s.OversFaced, &s.RunsConceded, &s.OversBowled)
	if err != nil {
		return nil, fmt.Errorf("failed to scan standings: %w", err)
	}
	return &s, nil
}
