package auction

import (
	"sort"
	"time"

	"cricketmgr.dev/core/internal/core"
)

// biddingOrder returns a stable-sorted slice of e.TeamStates' team IDs,
// minus exclude, then shuffles it with e.rng so the round's bid order is
// reproducible for a given seed instead of riding Go's randomized map
// iteration.
func (e *Engine) biddingOrder(exclude ...core.TeamID) []core.TeamID {
	skip := make(map[core.TeamID]bool, len(exclude))
	for _, id := range exclude {
		skip[id] = true
	}
	ids := make([]core.TeamID, 0, len(e.TeamStates))
	for teamID := range e.TeamStates {
		if skip[teamID] {
			continue
		}
		ids = append(ids, teamID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	e.rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	return ids
}

// AutoBidStatus reports the outcome of RunAutoBidCompetition for the user's
// team.
type AutoBidStatus int

const (
	// StatusWon means the user's team holds the winning bid once AI
	// interest dries up.
	StatusWon AutoBidStatus = iota
	// StatusLost means an AI team outbid the user beyond its ceiling.
	StatusLost
	// StatusCapExceeded means the user's proposed ceiling exceeds what
	// their remaining budget/squad rules allow.
	StatusCapExceeded
	// StatusBudgetLimit means the user's bid exceeds their own ceiling
	// before any AI has outbid them.
	StatusBudgetLimit
)

// AutoBidResult is returned by RunAutoBidCompetition.
type AutoBidResult struct {
	Status    AutoBidStatus
	FinalBid  int64
	WinnerID  core.TeamID
	Bids      []core.AuctionBid
}

// RunCompetitiveAIBidding resolves one round of AI-only bidding for the
// player currently InBidding, skipping excludeTeamID (normally the user's own
// team, or empty when the user has no stake in the category). It raises
// e.Auction.CurrentBid as long as some AI team is willing to bid, recording
// every accepted bid, and returns once no remaining AI team will go higher.
func (e *Engine) RunCompetitiveAIBidding(excludeTeamID core.TeamID) []core.AuctionBid {
	playerID := *e.Auction.CurrentPlayerID
	player := e.Players[playerID]

	order := e.biddingOrder(excludeTeamID, e.UserTeamID)

	valuations := make(map[core.TeamID]int64, len(order))
	for _, teamID := range order {
		valuations[teamID] = e.Valuation(player, e.TeamStates[teamID])
	}

	var bids []core.AuctionBid
	for {
		nextBid := core.NextBid(e.Auction.CurrentBid)
		if e.Auction.CurrentBid == 0 {
			nextBid = player.BasePrice
		}

		var bidder core.TeamID
		found := false
		for _, teamID := range order {
			if e.WillBid(teamID, player, nextBid, valuations[teamID]) {
				bidder = teamID
				found = true
				break
			}
		}
		if !found {
			return bids
		}

		e.Auction.CurrentBid = nextBid
		e.Auction.CurrentBidderID = &bidder
		bids = append(bids, core.AuctionBid{
			AuctionID: e.Auction.ID,
			PlayerID:  playerID,
			TeamID:    bidder,
			Amount:    nextBid,
			Timestamp: time.Now(),
		})
		e.logf("team %s bids %d for %s", bidder, nextBid, player.Name)
	}
}

// PlaceUserBid places the user's team's bid at the next legal increment
// above the current bid, returning the amount bid. It refuses bids the
// user's own squad/budget rules forbid.
func (e *Engine) PlaceUserBid() (amount int64, ok bool) {
	if e.Auction.CurrentPlayerID == nil {
		return 0, false
	}
	playerID := *e.Auction.CurrentPlayerID
	player := e.Players[playerID]
	state := e.TeamStates[e.UserTeamID]

	nextBid := core.NextBid(e.Auction.CurrentBid)
	if e.Auction.CurrentBid == 0 {
		nextBid = player.BasePrice
	}
	if state.TotalPlayers+1 > e.Auction.MaxSquad {
		return 0, false
	}
	if player.IsOverseas && state.OverseasPlayers+1 > e.Auction.MaxOverseas {
		return 0, false
	}
	if nextBid > state.MaxBidPossible(e.Auction.MinSquad) {
		return 0, false
	}

	userID := e.UserTeamID
	e.Auction.CurrentBid = nextBid
	e.Auction.CurrentBidderID = &userID
	return nextBid, true
}

// RunAutoBidCompetition lets the user declare a ceiling for the player
// currently InBidding and resolves the rest of the round automatically:
// AI teams bid up against the user until either the user's ceiling is
// exceeded (StatusLost) or AI interest dries up with the user holding the
// highest bid (StatusWon). The user's own first bid is placed at
// player.BasePrice or the current bid's next increment, whichever is higher.
func (e *Engine) RunAutoBidCompetition(ceiling int64) AutoBidResult {
	if e.Auction.CurrentPlayerID == nil {
		return AutoBidResult{Status: StatusCapExceeded}
	}
	state := e.TeamStates[e.UserTeamID]
	if ceiling > state.MaxBidPossible(e.Auction.MinSquad) {
		return AutoBidResult{Status: StatusCapExceeded}
	}

	playerID := *e.Auction.CurrentPlayerID
	player := e.Players[playerID]
	var bids []core.AuctionBid

	firstBid := player.BasePrice
	if nb := core.NextBid(e.Auction.CurrentBid); nb > firstBid {
		firstBid = nb
	}
	if firstBid > ceiling {
		return AutoBidResult{Status: StatusBudgetLimit}
	}
	userID := e.UserTeamID
	e.Auction.CurrentBid = firstBid
	e.Auction.CurrentBidderID = &userID
	bids = append(bids, core.AuctionBid{AuctionID: e.Auction.ID, PlayerID: playerID, TeamID: userID, Amount: firstBid, Timestamp: time.Now()})

	order := e.biddingOrder(e.UserTeamID)

	valuations := make(map[core.TeamID]int64, len(order))
	for _, teamID := range order {
		valuations[teamID] = e.Valuation(player, e.TeamStates[teamID])
	}

	for {
		nextBid := core.NextBid(e.Auction.CurrentBid)

		var bidder core.TeamID
		found := false
		for _, teamID := range order {
			if e.WillBid(teamID, player, nextBid, valuations[teamID]) {
				bidder = teamID
				found = true
				break
			}
		}
		if !found {
			bids[len(bids)-1].IsWinning = true
			return AutoBidResult{Status: StatusWon, FinalBid: e.Auction.CurrentBid, WinnerID: userID, Bids: bids}
		}

		e.Auction.CurrentBid = nextBid
		e.Auction.CurrentBidderID = &bidder
		bids = append(bids, core.AuctionBid{AuctionID: e.Auction.ID, PlayerID: playerID, TeamID: bidder, Amount: nextBid, Timestamp: time.Now()})

		userNext := core.NextBid(e.Auction.CurrentBid)
		if userNext > ceiling {
			return AutoBidResult{Status: StatusLost, FinalBid: e.Auction.CurrentBid, WinnerID: bidder, Bids: bids}
		}
		e.Auction.CurrentBid = userNext
		e.Auction.CurrentBidderID = &userID
		bids = append(bids, core.AuctionBid{AuctionID: e.Auction.ID, PlayerID: playerID, TeamID: userID, Amount: userNext, Timestamp: time.Now()})
	}
}

// RunBiddingRound runs AI-only bidding for the player currently InBidding,
// then finalizes it. Superseded by QuickPassPlayer/SkipCategory for new
// callers; kept for the auction-completion test loop.
func (e *Engine) RunBiddingRound() (sold bool) {
	e.RunCompetitiveAIBidding(e.UserTeamID)
	sold, _ = e.FinalizePlayer()
	return sold
}

// AuctionPlayerResult is one player's resolved auction outcome.
type AuctionPlayerResult struct {
	PlayerID  core.PlayerID
	Sold      bool
	TeamID    core.TeamID
	SoldPrice int64
}

// resultFor builds an AuctionPlayerResult from playerID's current entry
// state. Must be called after FinalizePlayer has run for that player.
func (e *Engine) resultFor(playerID core.PlayerID, sold bool) AuctionPlayerResult {
	result := AuctionPlayerResult{PlayerID: playerID, Sold: sold}
	if sold {
		entry := e.entryFor(playerID)
		result.TeamID = *entry.SoldToTeamID
		result.SoldPrice = entry.SoldPrice
	}
	return result
}

// QuickPassPlayer runs AI-only bidding for the player currently InBidding,
// excluding excludeTeamID (normally the user's own team), finalizes it, and
// reports the outcome. Used when the user has no stake in this one player
// but wants to keep bidding on the rest of the category.
func (e *Engine) QuickPassPlayer(excludeTeamID core.TeamID) AuctionPlayerResult {
	var playerID core.PlayerID
	if e.Auction.CurrentPlayerID != nil {
		playerID = *e.Auction.CurrentPlayerID
	}
	e.RunCompetitiveAIBidding(excludeTeamID)
	sold, _ := e.FinalizePlayer()
	return e.resultFor(playerID, sold)
}

// FinalizeCurrentPlayer closes bidding on the current player (same as
// FinalizePlayer) and reports the outcome as an AuctionPlayerResult.
func (e *Engine) FinalizeCurrentPlayer() AuctionPlayerResult {
	var playerID core.PlayerID
	if e.Auction.CurrentPlayerID != nil {
		playerID = *e.Auction.CurrentPlayerID
	}
	sold, _ := e.FinalizePlayer()
	return e.resultFor(playerID, sold)
}

// SkipCategory auctions off every remaining Available entry in category to
// AI bidders only, excluding excludeTeamID (normally the user's own team),
// and returns one result per player in queue order. Entries already
// InBidding/Sold/Unsold, or in a different category, are left untouched.
func (e *Engine) SkipCategory(category core.AuctionCategory, excludeTeamID core.TeamID) []AuctionPlayerResult {
	var results []AuctionPlayerResult
	for i := range e.Entries {
		entry := &e.Entries[i]
		if entry.Category != category || entry.Status != core.EntryAvailable {
			continue
		}

		playerID := entry.PlayerID
		entry.Status = core.EntryInBidding
		e.Auction.CurrentCategory = category
		e.Auction.CurrentPlayerID = &playerID
		e.Auction.CurrentBid = 0
		e.Auction.CurrentBidderID = nil

		e.RunCompetitiveAIBidding(excludeTeamID)
		sold, _ := e.FinalizePlayer()
		results = append(results, e.resultFor(playerID, sold))
	}
	return results
}
