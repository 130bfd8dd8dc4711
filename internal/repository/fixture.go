package repository

import (
	"context"
	"database/sql"
	"fmt"

	"cricketmgr.dev/core/internal/core"
)

type FixtureRepository struct {
	db *sql.DB
}

func NewFixtureRepository(db *sql.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

const fixtureColumns = `id, season_id, match_number, type, team1_id, team2_id, venue, status, winner_id, result_summary`

func (r *FixtureRepository) CreateBatch(ctx context.Context, fixtures []core.Fixture) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO fixtures (` + fixtureColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	for _, f := range fixtures {
		if _, err := tx.ExecContext(ctx, query, f.ID, f.SeasonID, f.MatchNumber, f.Type, f.Team1ID, f.Team2ID,
			f.Venue, f.Status, f.WinnerID, nullStringV(f.ResultSummary)); err != nil {
			return fmt.Errorf("failed to insert fixture %s: %w", f.ID, err)
		}
	}
	return tx.Commit()
}

func (r *FixtureRepository) GetByID(ctx context.Context, id core.FixtureID) (*core.Fixture, error) {
	query := `SELECT ` + fixtureColumns + ` FROM fixtures WHERE id = $1`
	f, err := scanFixture(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, core.NewNotFoundError("fixture", string(id))
	}
	return f, err
}

func (r *FixtureRepository) List(ctx context.Context, filter core.FixtureFilter) ([]core.Fixture, error) {
	query := `SELECT ` + fixtureColumns + ` FROM fixtures WHERE 1=1`
	var args []any

	if filter.SeasonID != nil {
		args = append(args, *filter.SeasonID)
		query += fmt.Sprintf(` AND season_id = $%d`, len(args))
	}
	if filter.TeamID != nil {
		args = append(args, *filter.TeamID, *filter.TeamID)
		query += fmt.Sprintf(` AND (team1_id = $%d OR team2_id = $%d)`, len(args)-1, len(args))
	}
	if filter.Type != nil {
		args = append(args, *filter.Type)
		query += fmt.Sprintf(` AND type = $%d`, len(args))
	}
	if filter.Status != nil {
		args = append(args, *filter.Status)
		query += fmt.Sprintf(` AND status = $%d`, len(args))
	}
	query += ` ORDER BY match_number`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list fixtures: %w", err)
	}
	defer rows.Close()

	var fixtures []core.Fixture
	for rows.Next() {
		f, err := scanFixture(rows)
		if err != nil {
			return nil, err
		}
		fixtures = append(fixtures, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate fixtures: %w", err)
	}
	return fixtures, nil
}

func (r *FixtureRepository) Update(ctx context.Context, f *core.Fixture) error {
	query := `
		UPDATE fixtures
		SET status = $2, winner_id = $3, result_summary = $4
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, f.ID, f.Status, f.WinnerID, nullStringV(f.ResultSummary))
	if err != nil {
		return fmt.Errorf("failed to update fixture: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return core.NewNotFoundError("fixture", string(f.ID))
	}
	return nil
}

func scanFixture(row rowScanner) (*core.Fixture, error) {
	var f core.Fixture
	var resultSummary sql.NullString
	err := row.Scan(&f.ID, &f.SeasonID, &f.MatchNumber, &f.Type, &f.Team1ID, &f.Team2ID,
		&f.Venue, &f.Status, &f.WinnerID, &resultSummary)
	if err != nil {
		return nil, fmt.Errorf("failed to scan fixture: %w", err)
	}
	if resultSummary.Valid {
		f.ResultSummary = resultSummary.String
	}
	return &f, nil
}

// nullStringV adapts a plain (non-pointer) string to a driver-compatible
// value, mapping the empty string to SQL NULL.
func nullStringV(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
