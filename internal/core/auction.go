package core

import "time"

// Auction is the single per-season bidding process over the player pool.
// @Description Auction state for a season
type Auction struct {
	ID     AuctionID `json:"id"`
	SeasonID SeasonID `json:"season_id"`
	Status AuctionStatus `json:"status"`

	CurrentPlayerID *PlayerID `json:"current_player_id,omitempty"`
	CurrentBid      int64     `json:"current_bid"`
	CurrentBidderID *TeamID   `json:"current_bidder_id,omitempty"`

	CurrentCategory AuctionCategory `json:"current_category"`

	SalaryCap    int64 `json:"salary_cap"`
	MinSquad     int   `json:"min_squad"`
	MaxSquad     int   `json:"max_squad"`
	MaxOverseas  int   `json:"max_overseas"`

	PlayersSold   int `json:"players_sold"`
	PlayersUnsold int `json:"players_unsold"`
	PlayersTotal  int `json:"players_total"`
}

// DefaultAuctionRules returns the rule set built from the career config
// defaults (salary cap aside, which is always caller-supplied).
func DefaultAuctionRules(salaryCap int64) Auction {
	return Auction{
		SalaryCap:   salaryCap,
		MinSquad:    18,
		MaxSquad:    25,
		MaxOverseas: 8,
		Status:      AuctionNotStarted,
	}
}

// IsComplete reports whether no entries remain Available or InBidding.
func (a Auction) IsComplete(entries []AuctionPlayerEntry) bool {
	for _, e := range entries {
		if e.Status == EntryAvailable || e.Status == EntryInBidding {
			return false
		}
	}
	return true
}

// AuctionPlayerEntry is a player's position and outcome in the auction queue.
// @Description One player's slot in the auction queue
type AuctionPlayerEntry struct {
	AuctionID  AuctionID          `json:"auction_id"`
	PlayerID   PlayerID           `json:"player_id"`
	Order      int                `json:"order"`
	Category   AuctionCategory    `json:"category"`
	Status     AuctionEntryStatus `json:"status"`
	SoldToTeamID *TeamID          `json:"sold_to_team_id,omitempty"`
	SoldPrice    int64            `json:"sold_price,omitempty"`
}

// AuctionBid is one recorded bid for a player during the auction.
// @Description A single recorded bid
type AuctionBid struct {
	AuctionID AuctionID `json:"auction_id"`
	PlayerID  PlayerID  `json:"player_id"`
	TeamID    TeamID    `json:"team_id"`
	Amount    int64     `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
	IsWinning bool      `json:"is_winning"`
}

// TeamAuctionState is the per-(auction,team) running counters the bid
// protocol and budget checks operate on.
// @Description Per-team running auction counters
type TeamAuctionState struct {
	AuctionID AuctionID `json:"auction_id"`
	TeamID    TeamID    `json:"team_id"`

	RemainingBudget int64 `json:"remaining_budget"`
	TotalPlayers    int   `json:"total_players"`
	OverseasPlayers int   `json:"overseas_players"`

	Batsmen     int `json:"batsmen"`
	Bowlers     int `json:"bowlers"`
	AllRounders int `json:"all_rounders"`
	WicketKeepers int `json:"wicket_keepers"`
}

// minPlayerReserve is the per-remaining-slot reserve used by max-bid-possible.
const minPlayerReserve int64 = 2_000_000

// SlotsRemaining returns maxSquad - total players, never below zero.
func (t TeamAuctionState) SlotsRemaining(maxSquad int) int {
	r := maxSquad - t.TotalPlayers
	if r < 0 {
		return 0
	}
	return r
}

// MinPlayersNeeded returns max(0, minSquad - total).
func (t TeamAuctionState) MinPlayersNeeded(minSquad int) int {
	n := minSquad - t.TotalPlayers
	if n < 0 {
		return 0
	}
	return n
}

// MaxBidPossible is remaining-budget - (min-players-needed - 1) * reserve,
// never below zero. One slot (the player currently being bid on) is exempt
// from the reserve.
func (t TeamAuctionState) MaxBidPossible(minSquad int) int64 {
	needed := int64(t.MinPlayersNeeded(minSquad))
	reserveSlots := needed - 1
	if reserveSlots < 0 {
		reserveSlots = 0
	}
	max := t.RemainingBudget - reserveSlots*minPlayerReserve
	if max < 0 {
		return 0
	}
	return max
}

// RoleCount returns the team's current count for the given role.
func (t TeamAuctionState) RoleCount(r Role) int {
	switch r {
	case RoleBatsman:
		return t.Batsmen
	case RoleBowler:
		return t.Bowlers
	case RoleAllRounder:
		return t.AllRounders
	case RoleWicketKeep:
		return t.WicketKeepers
	default:
		return 0
	}
}
