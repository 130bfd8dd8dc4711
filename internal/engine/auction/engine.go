// Package auction implements the sealed-ascending auction engine:
// player ordering, AI valuation, the bid protocol, and budget accounting.
// The engine touches no persistence; callers hand it the in-memory slices
// it mutates and persist the result themselves.
package auction

import (
	"math/rand"
	"sort"

	"github.com/charmbracelet/log"

	"cricketmgr.dev/core/internal/core"
)

// idealSquad is the target role composition the AI need-multiplier is
// computed against.
var idealSquad = map[core.Role]int{
	core.RoleBatsman:     5,
	core.RoleBowler:      5,
	core.RoleAllRounder:  3,
	core.RoleWicketKeep:  2,
}

// Engine runs one season's auction. It owns a seedable RNG instance so
// behaviour is reproducible for a given seed.
type Engine struct {
	rng    *rand.Rand
	logger *log.Logger

	Auction     core.Auction
	Entries     []core.AuctionPlayerEntry
	TeamStates  map[core.TeamID]*core.TeamAuctionState
	Players     map[core.PlayerID]core.Player
	UserTeamID  core.TeamID
}

// New creates an Engine with a seeded RNG. logger may be nil.
func New(rng *rand.Rand, logger *log.Logger) *Engine {
	return &Engine{rng: rng, logger: logger, TeamStates: map[core.TeamID]*core.TeamAuctionState{}, Players: map[core.PlayerID]core.Player{}}
}

// categorize assigns a player to a category: overall rating >= 80
// is Marquee, else mapped by role.
func categorize(p core.Player) core.AuctionCategory {
	if p.OverallRating() >= 80 {
		return core.CategoryMarquee
	}
	switch p.Role {
	case core.RoleBatsman:
		return core.CategoryBatsmen
	case core.RoleBowler:
		return core.CategoryBowlers
	case core.RoleAllRounder:
		return core.CategoryAllRounders
	case core.RoleWicketKeep:
		return core.CategoryWicketKeeper
	default:
		return core.CategoryBatsmen
	}
}

// Initialize materialises TeamAuctionState per team, categorises and orders
// every supplied player, and sets the auction to InProgress.
func (e *Engine) Initialize(auctionID core.AuctionID, players []core.Player, teams []core.Team, rules core.Auction, userTeamID core.TeamID) {
	e.UserTeamID = userTeamID
	e.Auction = rules
	e.Auction.ID = auctionID
	e.Auction.PlayersTotal = len(players)

	for _, t := range teams {
		e.TeamStates[t.ID] = &core.TeamAuctionState{
			AuctionID:       auctionID,
			TeamID:          t.ID,
			RemainingBudget: t.RemainingBudget,
		}
	}

	entries := make([]core.AuctionPlayerEntry, 0, len(players))
	for _, p := range players {
		e.Players[p.ID] = p
		entries = append(entries, core.AuctionPlayerEntry{
			AuctionID: auctionID,
			PlayerID:  p.ID,
			Category:  categorize(p),
			Status:    core.EntryAvailable,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		pi, pj := e.Players[entries[i].PlayerID], e.Players[entries[j].PlayerID]
		ci, cj := entries[i].Category.Order(), entries[j].Category.Order()
		if ci != cj {
			return ci < cj
		}
		if pi.BasePrice != pj.BasePrice {
			return pi.BasePrice > pj.BasePrice
		}
		return pi.OverallRating() > pj.OverallRating()
	})
	for i := range entries {
		entries[i].Order = i
	}
	e.Entries = entries

	e.Auction.Status = core.AuctionInProgress
	if len(entries) > 0 {
		e.Auction.CurrentCategory = entries[0].Category
	}
}

// NextPlayerResult is returned by NextPlayer.
type NextPlayerResult struct {
	AuctionFinished bool
	Player          *core.Player
	StartingBid     int64
	Category        core.AuctionCategory
	CategoryChanged bool
}

// NextPlayer advances the queue to the next Available entry and puts it
// InBidding. Entries already InBidding/Sold/Unsold are skipped.
func (e *Engine) NextPlayer() NextPlayerResult {
	for i := range e.Entries {
		entry := &e.Entries[i]
		if entry.Status != core.EntryAvailable {
			continue
		}
		changed := entry.Category != e.Auction.CurrentCategory
		e.Auction.CurrentCategory = entry.Category
		entry.Status = core.EntryInBidding
		player := e.Players[entry.PlayerID]
		e.Auction.CurrentPlayerID = &entry.PlayerID
		e.Auction.CurrentBid = 0
		e.Auction.CurrentBidderID = nil
		return NextPlayerResult{
			Player:          &player,
			StartingBid:     player.BasePrice,
			Category:        entry.Category,
			CategoryChanged: changed,
		}
	}
	e.Auction.CurrentPlayerID = nil
	return NextPlayerResult{AuctionFinished: true}
}

// IsComplete reports whether no entries remain Available or InBidding.
func (e *Engine) IsComplete() bool {
	return e.Auction.IsComplete(e.Entries)
}

// Complete sets the auction status to Completed.
func (e *Engine) Complete() {
	e.Auction.Status = core.AuctionCompleted
}

func (e *Engine) entryFor(playerID core.PlayerID) *core.AuctionPlayerEntry {
	for i := range e.Entries {
		if e.Entries[i].PlayerID == playerID {
			return &e.Entries[i]
		}
	}
	return nil
}

// FinalizePlayer closes bidding on the current player: Sold if a bidder
// exists (updating ownership, budgets, and counters), Unsold otherwise.
// Calling it with no current player is a no-op returning false.
func (e *Engine) FinalizePlayer() (sold bool, ok bool) {
	if e.Auction.CurrentPlayerID == nil {
		return false, false
	}
	playerID := *e.Auction.CurrentPlayerID
	entry := e.entryFor(playerID)
	if entry == nil || entry.Status != core.EntryInBidding {
		return false, false
	}

	if e.Auction.CurrentBidderID != nil {
		teamID := *e.Auction.CurrentBidderID
		price := e.Auction.CurrentBid
		state := e.TeamStates[teamID]
		player := e.Players[playerID]

		entry.Status = core.EntrySold
		entry.SoldToTeamID = &teamID
		entry.SoldPrice = price

		player.TeamID = &teamID
		player.SoldPrice = price
		e.Players[playerID] = player

		state.RemainingBudget -= price
		state.TotalPlayers++
		if player.IsOverseas {
			state.OverseasPlayers++
		}
		switch player.Role {
		case core.RoleBatsman:
			state.Batsmen++
		case core.RoleBowler:
			state.Bowlers++
		case core.RoleAllRounder:
			state.AllRounders++
		case core.RoleWicketKeep:
			state.WicketKeepers++
		}

		e.Auction.PlayersSold++
		sold = true
	} else {
		entry.Status = core.EntryUnsold
		e.Auction.PlayersUnsold++
	}

	e.Auction.CurrentPlayerID = nil
	e.Auction.CurrentBid = 0
	e.Auction.CurrentBidderID = nil
	return sold, true
}

func (e *Engine) logf(format string, args ...any) {
	if e.logger != nil {
		e.logger.Debugf(format, args...)
	}
}
