package core

import "context"

// CareerRepository manages career lifecycle and its owning user's limits.
type CareerRepository interface {
	Create(ctx context.Context, c *Career) error
	GetByID(ctx context.Context, id CareerID) (*Career, error)
	ListByUser(ctx context.Context, userID UserID) ([]Career, error)
	CountByUser(ctx context.Context, userID UserID) (int, error)
	Update(ctx context.Context, c *Career) error
	// Delete cascades to every season/fixture/auction row owned by the career.
	Delete(ctx context.Context, id CareerID) error
}

// PlayerRepository manages the generated player pool for a career.
type PlayerRepository interface {
	CreateBatch(ctx context.Context, careerID CareerID, players []Player) error
	GetByID(ctx context.Context, careerID CareerID, id PlayerID) (*Player, error)
	List(ctx context.Context, careerID CareerID, filter PlayerFilter) ([]Player, error)
	Count(ctx context.Context, careerID CareerID, filter PlayerFilter) (int, error)
	// SetOwnership mutates the sole nullable Team edge on a player row.
	SetOwnership(ctx context.Context, careerID CareerID, id PlayerID, teamID *TeamID, soldPrice int64) error
}

// TeamRepository manages the fixed 8-team set for a career.
type TeamRepository interface {
	CreateBatch(ctx context.Context, careerID CareerID, teams []Team) error
	GetByID(ctx context.Context, careerID CareerID, id TeamID) (*Team, error)
	List(ctx context.Context, careerID CareerID) ([]Team, error)
	UpdateBudget(ctx context.Context, careerID CareerID, id TeamID, remaining int64) error
}

// SeasonRepository manages season lifecycle within a career.
type SeasonRepository interface {
	Create(ctx context.Context, s *Season) error
	GetByID(ctx context.Context, id SeasonID) (*Season, error)
	GetCurrent(ctx context.Context, careerID CareerID) (*Season, error)
	Update(ctx context.Context, s *Season) error
}

// FixtureRepository manages scheduled matches within a season.
type FixtureRepository interface {
	CreateBatch(ctx context.Context, fixtures []Fixture) error
	GetByID(ctx context.Context, id FixtureID) (*Fixture, error)
	List(ctx context.Context, filter FixtureFilter) ([]Fixture, error)
	Update(ctx context.Context, f *Fixture) error
}

// StandingsRepository manages per-season team stat rows.
type StandingsRepository interface {
	Get(ctx context.Context, seasonID SeasonID, teamID TeamID) (*TeamSeasonStats, error)
	List(ctx context.Context, seasonID SeasonID) ([]TeamSeasonStats, error)
	Upsert(ctx context.Context, s *TeamSeasonStats) error
}

// PlayerStatsRepository manages per-season per-player aggregate stat rows.
type PlayerStatsRepository interface {
	Get(ctx context.Context, seasonID SeasonID, playerID PlayerID) (*PlayerSeasonStats, error)
	ListBySeason(ctx context.Context, seasonID SeasonID) ([]PlayerSeasonStats, error)
	Upsert(ctx context.Context, s *PlayerSeasonStats) error
}

// AuctionRepository manages the single auction belonging to a season, its
// player queue, and recorded bids.
type AuctionRepository interface {
	Create(ctx context.Context, a *Auction) error
	Get(ctx context.Context, id AuctionID) (*Auction, error)
	GetBySeason(ctx context.Context, seasonID SeasonID) (*Auction, error)
	Update(ctx context.Context, a *Auction) error

	CreateEntries(ctx context.Context, entries []AuctionPlayerEntry) error
	ListEntries(ctx context.Context, auctionID AuctionID) ([]AuctionPlayerEntry, error)
	UpdateEntry(ctx context.Context, e *AuctionPlayerEntry) error

	RecordBid(ctx context.Context, b *AuctionBid) error
	ListBids(ctx context.Context, auctionID AuctionID, playerID PlayerID) ([]AuctionBid, error)

	GetTeamState(ctx context.Context, auctionID AuctionID, teamID TeamID) (*TeamAuctionState, error)
	ListTeamStates(ctx context.Context, auctionID AuctionID) ([]TeamAuctionState, error)
	UpsertTeamState(ctx context.Context, s *TeamAuctionState) error
}

// MatchRepository persists completed-match scorecards.
type MatchRepository interface {
	Create(ctx context.Context, m *Match) error
	GetByFixtureID(ctx context.Context, fixtureID FixtureID) (*Match, error)
	ListBySeason(ctx context.Context, seasonID SeasonID) ([]Match, error)
}

// PlayingXIRepository manages the 11-player XI set per (team,season).
type PlayingXIRepository interface {
	Set(ctx context.Context, teamID TeamID, seasonID SeasonID, xi []PlayingXI) error
	Get(ctx context.Context, teamID TeamID, seasonID SeasonID) ([]PlayingXI, error)
}

// UserRepository manages the account that owns careers, plus the OAuth
// login flow used to authenticate it.
type UserRepository interface {
	GetByID(ctx context.Context, id UserID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
}

// OAuthTokenRepository persists OAuth2 tokens for session management.
type OAuthTokenRepository interface {
	Create(ctx context.Context, t *OAuthToken) error
	GetByUserID(ctx context.Context, userID UserID) (*OAuthToken, error)
	Delete(ctx context.Context, id string) error
}

// APIKeyRepository persists API keys for programmatic access.
type APIKeyRepository interface {
	Create(ctx context.Context, k *APIKey) error
	GetByPrefix(ctx context.Context, prefix string) (*APIKey, error)
	ListByUser(ctx context.Context, userID UserID) ([]APIKey, error)
	Revoke(ctx context.Context, id string) error
}
