package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"cricketmgr.dev/core/internal/core"
)

type MatchRepository struct {
	db *sql.DB
}

func NewMatchRepository(db *sql.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) Create(ctx context.Context, m *core.Match) error {
	innings1, err := json.Marshal(m.Innings1)
	if err != nil {
		return fmt.Errorf("marshal innings1 for %s: %w", m.ID, err)
	}
	innings2, err := json.Marshal(m.Innings2)
	if err != nil {
		return fmt.Errorf("marshal innings2 for %s: %w", m.ID, err)
	}
	var motm []byte
	if m.MotM != nil {
		motm, err = json.Marshal(m.MotM)
		if err != nil {
			return fmt.Errorf("marshal man of the match for %s: %w", m.ID, err)
		}
	}

	var marginRuns, marginWkts sql.NullInt32
	if m.MarginRuns > 0 {
		marginRuns = sql.NullInt32{Int32: int32(m.MarginRuns), Valid: true}
	}
	if m.MarginWkts > 0 {
		marginWkts = sql.NullInt32{Int32: int32(m.MarginWkts), Valid: true}
	}

	query := `
		INSERT INTO matches (fixture_id, season_id, innings1, innings2, winner_id, is_tie, margin_runs, margin_wkts, man_of_match)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err = r.db.ExecContext(ctx, query, m.ID, m.SeasonID, innings1, innings2, m.WinnerID, m.IsTie,
		marginRuns, marginWkts, motm)
	if err != nil {
		return fmt.Errorf("failed to create match: %w", err)
	}
	return nil
}

func (r *MatchRepository) GetByFixtureID(ctx context.Context, fixtureID core.FixtureID) (*core.Match, error) {
	query := `SELECT fixture_id, season_id, innings1, innings2, winner_id, is_tie, margin_runs, margin_wkts, man_of_match
		FROM matches WHERE fixture_id = $1`
	m, err := scanMatch(r.db.QueryRowContext(ctx, query, fixtureID))
	if err == sql.ErrNoRows {
		return nil, core.NewNotFoundError("match", string(fixtureID))
	}
	return m, err
}

func (r *MatchRepository) ListBySeason(ctx context.Context, seasonID core.SeasonID) ([]core.Match, error) {
	query := `SELECT fixture_id, season_id, innings1, innings2, winner_id, is_tie, margin_runs, margin_wkts, man_of_match
		FROM matches WHERE season_id = $1 ORDER BY fixture_id`
	rows, err := r.db.QueryContext(ctx, query, seasonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	defer rows.Close()

	var matches []core.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate matches: %w", err)
	}
	return matches, nil
}

func scanMatch(row rowScanner) (*core.Match, error) {
	var m core.Match
	var innings1, innings2, motm []byte
	var marginRuns, marginWkts sql.NullInt32

	err := row.Scan(&m.ID, &m.SeasonID, &innings1, &innings2, &m.WinnerID, &m.IsTie, &marginRuns, &marginWkts, &motm)
	if err != nil {
		return nil, fmt.Errorf("failed to scan match: %w", err)
	}
	if err := json.Unmarshal(innings1, &m.Innings1); err != nil {
		return nil, fmt.Errorf("unmarshal innings1 for %s: %w", m.ID, err)
	}
	if err := json.Unmarshal(innings2, &m.Innings2); err != nil {
		return nil, fmt.Errorf("unmarshal innings2 for %s: %w", m.ID, err)
	}
	if marginRuns.Valid {
		m.MarginRuns = int(marginRuns.Int32)
	}
	if marginWkts.Valid {
		m.MarginWkts = int(marginWkts.Int32)
	}
	if motm != nil {
		var mm core.ManOfTheMatch
		if err := json.Unmarshal(motm, &mm); err != nil {
			return nil, fmt.Errorf("unmarshal man of the match for %s: %w", m.ID, err)
		}
		m.MotM = &mm
	}
	return &m, nil
}
