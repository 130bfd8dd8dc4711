package repository

import (
	"context"
	"database/sql"
	"fmt"

	"cricketmgr.dev/core/internal/core"
)

type AuctionRepository struct {
	db *sql.DB
}

func NewAuctionRepository(db *sql.DB) *AuctionRepository {
	return &AuctionRepository{db: db}
}

const auctionColumns = `
	id, season_id, status, current_player_id, current_bid, current_bidder_id, current_category,
	salary_cap, min_squad, max_squad, max_overseas, players_sold, players_unsold, players_total
`

func (r *AuctionRepository) Create(ctx context.Context, a *core.Auction) error {
	query := `
		INSERT INTO auctions (` + auctionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := r.db.ExecContext(ctx, query, a.ID, a.SeasonID, a.Status, a.CurrentPlayerID, a.CurrentBid,
		a.CurrentBidderID, a.CurrentCategory, a.SalaryCap, a.MinSquad, a.MaxSquad, a.MaxOverseas,
		a.PlayersSold, a.PlayersUnsold, a.PlayersTotal)
	if err != nil {
		return fmt.Errorf("failed to create auction: %w", err)
	}
	return nil
}

func (r *AuctionRepository) Get(ctx context.Context, id core.AuctionID) (*core.Auction, error) {
	query := `SELECT ` + auctionColumns + ` FROM auctions WHERE id = $1`
	a, err := scanAuction(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, core.NewNotFoundError("auction", string(id))
	}
	return a, err
}

func (r *AuctionRepository) GetBySeason(ctx context.Context, seasonID core.SeasonID) (*core.Auction, error) {
	query := `SELECT ` + auctionColumns + ` FROM auctions WHERE season_id = $1`
	a, err := scanAuction(r.db.QueryRowContext(ctx, query, seasonID))
	if err == sql.ErrNoRows {
		return nil, core.NewNotFoundError("auction", string(seasonID))
	}
	return a, err
}

func (r *AuctionRepository) Update(ctx context.Context, a *core.Auction) error {
	query := `
		UPDATE auctions
		SET status = $2, current_player_id = $3, current_bid = $4, current_bidder_id = $5, current_category = $6,
		    players_sold = $7, players_unsold = $8, players_total = $9
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, a.ID, a.Status, a.CurrentPlayerID, a.CurrentBid,
		a.CurrentBidderID, a.CurrentCategory, a.PlayersSold, a.PlayersUnsold, a.PlayersTotal)
	if err != nil {
		return fmt.Errorf("failed to update auction: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return core.NewNotFoundError("auction", string(a.ID))
	}
	return nil
}

func (r *AuctionRepository) CreateEntries(ctx context.Context, entries []core.AuctionPlayerEntry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO auction_player_entries (auction_id, player_id, "order", category, status, sold_to_team_id, sold_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	for _, e := range entries {
		if _, err := tx.ExecContext(ctx, query, e.AuctionID, e.PlayerID, e.Order, e.Category, e.Status,
			e.SoldToTeamID, e.SoldPrice); err != nil {
			return fmt.Errorf("failed to insert auction entry for %s: %w", e.PlayerID, err)
		}
	}
	return tx.Commit()
}

func (r *AuctionRepository) ListEntries(ctx context.Context, auctionID core.AuctionID) ([]core.AuctionPlayerEntry, error) {
	query := `
		SELECT auction_id, player_id, "order", category, status, sold_to_team_id, sold_price
		FROM auction_player_entries
		WHERE auction_id = $1
		ORDER BY "order"
	`
	rows, err := r.db.QueryContext(ctx, query, auctionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list auction entries: %w", err)
	}
	defer rows.Close()

	var entries []core.AuctionPlayerEntry
	for rows.Next() {
		var e core.AuctionPlayerEntry
		if err := rows.Scan(&e.AuctionID, &e.PlayerID, &e.Order, &e.Category, &e.Status,
			&e.SoldToTeamID, &e.SoldPrice); err != nil {
			return nil, fmt.Errorf("failed to scan auction entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate auction entries: %w", err)
	}
	return entries, nil
}

func (r *AuctionRepository) UpdateEntry(ctx context.Context, e *core.AuctionPlayerEntry) error {
	query := `
		UPDATE auction_player_entries
		SET status = $3, sold_to_team_id = $4, sold_price = $5
		WHERE auction_id = $1 AND player_id = $2
	`
	result, err := r.db.ExecContext(ctx, query, e.AuctionID, e.PlayerID, e.Status, e.SoldToTeamID, e.SoldPrice)
	if err != nil {
		return fmt.Errorf("failed to update auction entry: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return core.NewNotFoundError("auction_player_entry", string(e.PlayerID))
	}
	return nil
}

func (r *AuctionRepository) RecordBid(ctx context.Context, b *core.AuctionBid) error {
	query := `
		INSERT INTO auction_bids (auction_id, player_id, team_id, amount, timestamp, is_winning)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query, b.AuctionID, b.PlayerID, b.TeamID, b.Amount, b.Timestamp, b.IsWinning)
	if err != nil {
		return fmt.Errorf("failed to record bid: %w", err)
	}
	return nil
}

func (r *AuctionRepository) ListBids(ctx context.Context, auctionID core.AuctionID, playerID core.PlayerID) ([]core.AuctionBid, error) {
	query := `
		SELECT auction_id, player_id, team_id, amount, timestamp, is_winning
		FROM auction_bids
		WHERE auction_id = $1 AND player_id = $2
		ORDER BY timestamp
	`
	rows, err := r.db.QueryContext(ctx, query, auctionID, playerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bids: %w", err)
	}
	defer rows.Close()

	var bids []core.AuctionBid
	for rows.Next() {
		var b core.AuctionBid
		if err := rows.Scan(&b.AuctionID, &b.PlayerID, &b.TeamID, &b.Amount, &b.Timestamp, &b.IsWinning); err != nil {
			return nil, fmt.Errorf("failed to scan bid: %w", err)
		}
		bids = append(bids, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bids: %w", err)
	}
	return bids, nil
}

func (r *AuctionRepository) GetTeamState(ctx context.Context, auctionID core.AuctionID, teamID core.TeamID) (*core.TeamAuctionState, error) {
	query := `SELECT ` + teamAuctionStateColumns + ` FROM team_auction_states WHERE auction_id = $1 AND team_id = $2`
	s, err := scanTeamAuctionState(r.db.QueryRowContext(ctx, query, auctionID, teamID))
	if err == sql.ErrNoRows {
		return nil, core.NewNotFoundError("team_auction_state", string(teamID))
	}
	return s, err
}

func (r *AuctionRepository) ListTeamStates(ctx context.Context, auctionID core.AuctionID) ([]core.TeamAuctionState, error) {
	query := `SELECT ` + teamAuctionStateColumns + ` FROM team_auction_states WHERE auction_id = $1 ORDER BY team_id`
	rows, err := r.db.QueryContext(ctx, query, auctionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list team auction states: %w", err)
	}
	defer rows.Close()

	var states []core.TeamAuctionState
	for rows.Next() {
		s, err := scanTeamAuctionState(rows)
		if err != nil {
			return nil, err
		}
		states = append(states, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate team auction states: %w", err)
	}
	return states, nil
}

func (r *AuctionRepository) UpsertTeamState(ctx context.Context, s *core.TeamAuctionState) error {
	query := `
		INSERT INTO team_auction_states (` + teamAuctionStateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (auction_id, team_id) DO UPDATE SET
			remaining_budget = EXCLUDED.remaining_budget,
			total_players = EXCLUDED.total_players,
			overseas_players = EXCLUDED.overseas_players,
			batsmen = EXCLUDED.batsmen,
			bowlers = EXCLUDED.bowlers,
			all_rounders = EXCLUDED.all_rounders,
			wicket_keepers = EXCLUDED.wicket_keepers
	`
	_, err := r.db.ExecContext(ctx, query, s.AuctionID, s.TeamID, s.RemainingBudget, s.TotalPlayers,
		s.OverseasPlayers, s.Batsmen, s.Bowlers, s.AllRounders, s.WicketKeepers)
	if err != nil {
		return fmt.Errorf("failed to upsert team auction state: %w", err)
	}
	return nil
}

const teamAuctionStateColumns = `auction_id, team_id, remaining_budget, total_players, overseas_players, batsmen, bowlers, all_rounders, wicket_keepers`

func scanAuction(row rowScanner) (*core.Auction, error) {
	var a core.Auction
	var currentPlayerID, currentBidderID sql.NullString
	err := row.Scan(&a.ID, &a.SeasonID, &a.Status, &currentPlayerID, &a.CurrentBid, &currentBidderID,
		&a.CurrentCategory, &a.SalaryCap, &a.MinSquad, &a.MaxSquad, &a.MaxOverseas,
		&a.PlayersSold, &a.PlayersUnsold, &a.PlayersTotal)
	if err != nil {
		return nil, fmt.Errorf("failed to scan auction: %w", err)
	}
	if currentPlayerID.Valid {
		pid := core.PlayerID(currentPlayerID.String)
		a.CurrentPlayerID = &pid
	}
	if currentBidderID.Valid {
		tid := core.TeamID(currentBidderID.String)
		a.CurrentBidderID = &tid
	}
	return &a, nil
}

func scanTeamAuctionState(row rowScanner) (*core.TeamAuctionState, error) {
	var s core.TeamAuctionState
	err := row.Scan(&s.AuctionID, &s.TeamID, &s.RemainingBudget, &s.TotalPlayers, &s.OverseasPlayers,
		&s.Batsmen, &s.Bowlers, &s.AllRounders, &s.WicketKeepers)
	if err != nil {
		return nil, fmt.Errorf("failed to scan team auction state: %w", err)
	}
	return &s, nil
}
