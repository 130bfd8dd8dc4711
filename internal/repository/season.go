package repository

import (
	"context"
	"database/sql"
	"fmt"

	"cricketmgr.dev/core/internal/core"
)

type SeasonRepository struct {
	db *sql.DB
}

func NewSeasonRepository(db *sql.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

const seasonColumns = `id, career_id, season_number, phase, auction_completed, current_match_number, total_league_matches, champion_team_id, runner_up_team_id`

func (r *SeasonRepository) Create(ctx context.Context, s *core.Season) error {
	query := `
		INSERT INTO seasons (` + seasonColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := r.db.ExecContext(ctx, query, s.ID, s.CareerID, s.SeasonNumber, s.Phase, s.AuctionCompleted,
		s.CurrentMatchNumber, s.TotalLeagueMatches, s.ChampionTeamID, s.RunnerUpTeamID)
	if err != nil {
		return fmt.Errorf("failed to create season: %w", err)
	}
	return nil
}

func (r *SeasonRepository) GetByID(ctx context.Context, id core.SeasonID) (*core.Season, error) {
	query := `SELECT ` + seasonColumns + ` FROM seasons WHERE id = $1`
	s, err := scanSeason(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, core.NewNotFoundError("season", string(id))
	}
	return s, err
}

func (r *SeasonRepository) GetCurrent(ctx context.Context, careerID core.CareerID) (*core.Season, error) {
	query := `SELECT ` + seasonColumns + ` FROM seasons WHERE career_id = $1 ORDER BY season_number DESC LIMIT 1`
	s, err := scanSeason(r.db.QueryRowContext(ctx, query, careerID))
	if err == sql.ErrNoRows {
		return nil, core.NewNotFoundError("season", string(careerID))
	}
	return s, err
}

func (r *SeasonRepository) Update(ctx context.Context, s *core.Season) error {
	query := `
		UPDATE seasons
		SET phase = $2, auction_completed = $3, current_match_number = $4,
		    total_league_matches = $5, champion_team_id = $6, runner_up_team_id = $7
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, s.ID, s.Phase, s.AuctionCompleted,
		s.CurrentMatchNumber, s.TotalLeagueMatches, s.ChampionTeamID, s.RunnerUpTeamID)
	if err != nil {
		return fmt.Errorf("failed to update season: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return core.NewNotFoundError("season", string(s.ID))
	}
	return nil
}

func scanSeason(row rowScanner) (*core.Season, error) {
	var s core.Season
	err := row.Scan(&s.ID, &s.CareerID, &s.SeasonNumber, &s.Phase, &s.AuctionCompleted,
		&s.CurrentMatchNumber, &s.TotalLeagueMatches, &s.ChampionTeamID, &s.RunnerUpTeamID)
	if err != nil {
		return nil, fmt.Errorf("failed to scan season: %w", err)
	}
	return &s, nil
}
