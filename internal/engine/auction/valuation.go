package auction

import "cricketmgr.dev/core/internal/core"

// qualityMultiplier maps a player's overall rating band to the valuation
// multiplier.
func qualityMultiplier(rating int) float64 {
	switch {
	case rating >= 85:
		return 3.0
	case rating >= 75:
		return 2.0
	case rating >= 65:
		return 1.5
	case rating >= 55:
		return 1.2
	default:
		return 0.8
	}
}

// needThreshold is how far short of ideal a team must be before the need
// multiplier kicks in.
const needThreshold = 1

// needMultiplier returns 1.5-1.8 when the team is short of its ideal squad
// composition in the player's role by more than needThreshold, else 1.0.
func needMultiplier(state *core.TeamAuctionState, p core.Player, rng func() float64) float64 {
	ideal, ok := idealSquad[p.Role]
	if !ok {
		return 1.0
	}
	shortfall := ideal - state.RoleCount(p.Role)
	if shortfall <= needThreshold {
		return 1.0
	}
	return 1.5 + 0.3*rng()
}

// Valuation computes a team's private valuation of a player using the
// heuristic: quality x need x overseas-depth x urgency x variance, capped at
// the team's max bid possible and floored at the player's base price.
func (e *Engine) Valuation(p core.Player, state *core.TeamAuctionState) int64 {
	base := float64(p.BasePrice)
	val := base * qualityMultiplier(p.OverallRating())
	val *= needMultiplier(state, p, e.rng.Float64)

	if p.IsOverseas && p.OverallRating() >= 75 && state.OverseasPlayers < e.Auction.MaxOverseas-2 {
		val *= 1.3
	}

	minNeeded := state.MinPlayersNeeded(e.Auction.MinSquad)
	urgency := 1 + 0.5*float64(minNeeded)/10.0
	val *= urgency

	val *= uniformf(e.rng.Float64(), 0.85, 1.15)

	maxBid := state.MaxBidPossible(e.Auction.MinSquad)
	if val > float64(maxBid) {
		val = float64(maxBid)
	}
	if val < base {
		val = base
	}
	return int64(val)
}

func uniformf(r, lo, hi float64) float64 {
	return lo + r*(hi-lo)
}

// WillBid decides whether a team bids at nextBid for player p, applying the
// Decision rule: not current bidder, squad/overseas rules hold, the bid
// is within max-bid-possible and the team's own valuation, accepted
// probabilistically.
func (e *Engine) WillBid(teamID core.TeamID, p core.Player, nextBid int64, valuation int64) bool {
	if e.Auction.CurrentBidderID != nil && *e.Auction.CurrentBidderID == teamID {
		return false
	}
	state := e.TeamStates[teamID]
	if state.TotalPlayers+1 > e.Auction.MaxSquad {
		return false
	}
	if p.IsOverseas && state.OverseasPlayers+1 > e.Auction.MaxOverseas {
		return false
	}
	if nextBid > state.MaxBidPossible(e.Auction.MinSquad) {
		return false
	}
	if nextBid > valuation {
		return false
	}

	ratio := float64(nextBid) / float64(valuation)
	prob := 1 - 0.8*ratio
	if prob < 0.1 {
		prob = 0.1
	}
	if state.MinPlayersNeeded(e.Auction.MinSquad) >= needThreshold+1 {
		ideal := idealSquad[p.Role]
		if ideal-state.RoleCount(p.Role) > needThreshold {
			prob += 0.3
		}
	}
	if prob > 1 {
		prob = 1
	}
	return e.rng.Float64() < prob
}
