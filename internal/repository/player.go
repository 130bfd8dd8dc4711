package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"cricketmgr.dev/core/internal/core"
)

type PlayerRepository struct {
	db *sql.DB
}

func NewPlayerRepository(db *sql.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

const playerColumns = `
	id, name, age, nationality, is_overseas, role, batting_style, bowling_type,
	batting, bowling, fielding, fitness, power, technique, running, pace_or_spin,
	accuracy, variation, temperament, consistency, form_multiplier, traits,
	batting_intent, tier, batter_dna, bowler_dna, base_price, sold_price, team_id
`

func (r *PlayerRepository) CreateBatch(ctx context.Context, careerID core.CareerID, players []core.Player) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO players (career_id, ` + playerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
		        $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29)
	`
	for _, p := range players {
		batterDNA, err := json.Marshal(p.BatterDNA)
		if err != nil {
			return fmt.Errorf("marshal batter dna for %s: %w", p.ID, err)
		}
		bowlerDNA, err := core.MarshalBowlerDNA(p.BowlerDNA)
		if err != nil {
			return fmt.Errorf("marshal bowler dna for %s: %w", p.ID, err)
		}
		if _, err := tx.ExecContext(ctx, query, careerID,
			p.ID, p.Name, p.Age, p.Nationality, p.IsOverseas, p.Role, p.BattingStyle, p.BowlingType,
			p.Batting, p.Bowling, p.Fielding, p.Fitness, p.Power, p.Technique, p.Running, p.PaceOrSpin,
			p.Accuracy, p.Variation, p.Temperament, p.Consistency, p.FormMultiplier, pq.Array(traitStrings(p.Traits)),
			p.Intent, p.Tier, batterDNA, bowlerDNA, p.BasePrice, p.SoldPrice, p.TeamID,
		); err != nil {
			return fmt.Errorf("failed to insert player %s: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

func (r *PlayerRepository) GetByID(ctx context.Context, careerID core.CareerID, id core.PlayerID) (*core.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE career_id = $1 AND id = $2`
	p, err := scanPlayerRows(r.db.QueryRowContext(ctx, query, careerID, id))
	if err == sql.ErrNoRows {
		return nil, core.NewNotFoundError("player", string(id))
	}
	return p, err
}

func (r *PlayerRepository) List(ctx context.Context, careerID core.CareerID, filter core.PlayerFilter) ([]core.Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE career_id = $1`
	args := []any{careerID}

	if filter.OnlyUnsold {
		query += ` AND team_id IS NULL`
	}
	if len(filter.Roles) > 0 {
		args = append(args, pq.Array(roleStrings(filter.Roles)))
		query += fmt.Sprintf(` AND role = ANY($%d)`, len(args))
	}
	if filter.NameQuery != "" {
		args = append(args, "%"+filter.NameQuery+"%")
		query += fmt.Sprintf(` AND name ILIKE $%d`, len(args))
	}
	query += ` ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	var players []core.Player
	for rows.Next() {
		p, err := scanPlayerRows(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate players: %w", err)
	}
	return players, nil
}

func (r *PlayerRepository) Count(ctx context.Context, careerID core.CareerID, filter core.PlayerFilter) (int, error) {
	query := `SELECT COUNT(*) FROM players WHERE career_id = $1`
	args := []any{careerID}
	if filter.OnlyUnsold {
		query += ` AND team_id IS NULL`
	}
	var count int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count players: %w", err)
	}
	return count, nil
}

func (r *PlayerRepository) SetOwnership(ctx context.Context, careerID core.CareerID, id core.PlayerID, teamID *core.TeamID, soldPrice int64) error {
	query := `UPDATE players SET team_id = $3, sold_price = $4 WHERE career_id = $1 AND id = $2`
	result, err := r.db.ExecContext(ctx, query, careerID, id, teamID, soldPrice)
	if err != nil {
		return fmt.Errorf("failed to set player ownership: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return core.NewNotFoundError("player", string(id))
	}
	return nil
}

func scanPlayerRows(row rowScanner) (*core.Player, error) {
	var p core.Player
	var traits pq.StringArray
	var batterDNA []byte
	var bowlerDNA sql.NullString
	var teamID sql.NullString

	err := row.Scan(
		&p.ID, &p.Name, &p.Age, &p.Nationality, &p.IsOverseas, &p.Role, &p.BattingStyle, &p.BowlingType,
		&p.Batting, &p.Bowling, &p.Fielding, &p.Fitness, &p.Power, &p.Technique, &p.Running, &p.PaceOrSpin,
		&p.Accuracy, &p.Variation, &p.Temperament, &p.Consistency, &p.FormMultiplier, &traits,
		&p.Intent, &p.Tier, &batterDNA, &bowlerDNA, &p.BasePrice, &p.SoldPrice, &teamID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan player: %w", err)
	}

	p.Traits = make([]core.Trait, len(traits))
	for i, t := range traits {
		p.Traits[i] = core.Trait(t)
	}
	if err := json.Unmarshal(batterDNA, &p.BatterDNA); err != nil {
		return nil, fmt.Errorf("unmarshal batter dna for %s: %w", p.ID, err)
	}
	if bowlerDNA.Valid {
		dna, err := core.UnmarshalBowlerDNA([]byte(bowlerDNA.String))
		if err != nil {
			return nil, fmt.Errorf("unmarshal bowler dna for %s: %w", p.ID, err)
		}
		p.BowlerDNA = dna
	}
	if teamID.Valid {
		tid := core.TeamID(teamID.String)
		p.TeamID = &tid
	}
	return &p, nil
}

func traitStrings(traits []core.Trait) []string {
	out := make([]string, len(traits))
	for i, t := range traits {
		out[i] = string(t)
	}
	return out
}

func roleStrings(roles []core.Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}
