package auction

import (
	"math/rand"
	"testing"

	"cricketmgr.dev/core/internal/core"
)

func testTeams(n int) []core.Team {
	teams := make([]core.Team, n)
	for i := range teams {
		teams[i] = core.Team{
			ID:              core.TeamID(string(rune('A' + i))),
			RemainingBudget: 900_000_000,
		}
	}
	return teams
}

func testPlayers(n int, role core.Role) []core.Player {
	players := make([]core.Player, n)
	for i := range players {
		players[i] = core.Player{
			ID:        core.PlayerID(string(rune('a' + i))),
			Role:      role,
			Batting:   70,
			Technique: 70,
			Power:     70,
			Running:   70,
			Fielding:  70,
			BasePrice: 2_000_000,
		}
	}
	return players
}

func newTestEngine(seed int64) *Engine {
	return New(rand.New(rand.NewSource(seed)), nil)
}

func TestInitializeOrdersByCategoryThenPrice(t *testing.T) {
	e := newTestEngine(1)
	teams := testTeams(4)
	players := testPlayers(3, core.RoleBatsman)
	players[0].Batting = 95
	players[0].Technique = 95
	players[0].Power = 95 // pushes OVR >= 80 -> Marquee

	rules := core.DefaultAuctionRules(900_000_000)
	e.Initialize("AUC1", players, teams, rules, teams[0].ID)

	if e.Entries[0].Category != core.CategoryMarquee {
		t.Fatalf("first entry category = %s, want Marquee", e.Entries[0].Category)
	}
	if e.Auction.Status != core.AuctionInProgress {
		t.Fatalf("status = %s, want InProgress", e.Auction.Status)
	}
}

func TestNextPlayerSkipsResolvedEntries(t *testing.T) {
	e := newTestEngine(2)
	teams := testTeams(2)
	players := testPlayers(2, core.RoleBatsman)
	e.Initialize("AUC1", players, teams, core.DefaultAuctionRules(900_000_000), teams[0].ID)

	e.Entries[0].Status = core.EntrySold
	res := e.NextPlayer()
	if res.AuctionFinished {
		t.Fatal("expected a player, got finished")
	}
	if res.Player.ID != e.Entries[1].PlayerID {
		t.Fatalf("expected entry 1's player, got %s", res.Player.ID)
	}
}

func TestFinalizePlayerSoldUpdatesBudgetAndCounters(t *testing.T) {
	e := newTestEngine(3)
	teams := testTeams(2)
	players := testPlayers(1, core.RoleWicketKeep)
	e.Initialize("AUC1", players, teams, core.DefaultAuctionRules(900_000_000), teams[0].ID)

	e.NextPlayer()
	winner := teams[1].ID
	e.Auction.CurrentBid = 5_000_000
	e.Auction.CurrentBidderID = &winner

	sold, ok := e.FinalizePlayer()
	if !ok || !sold {
		t.Fatalf("sold=%v ok=%v, want true,true", sold, ok)
	}
	state := e.TeamStates[winner]
	if state.RemainingBudget != 900_000_000-5_000_000 {
		t.Fatalf("remaining budget = %d", state.RemainingBudget)
	}
	if state.WicketKeepers != 1 || state.TotalPlayers != 1 {
		t.Fatalf("counters not updated: %+v", state)
	}
	if e.Players[players[0].ID].TeamID == nil || *e.Players[players[0].ID].TeamID != winner {
		t.Fatal("player TeamID not set to winner")
	}
}

func TestFinalizePlayerUnsoldWhenNoBidder(t *testing.T) {
	e := newTestEngine(4)
	teams := testTeams(2)
	players := testPlayers(1, core.RoleBowler)
	e.Initialize("AUC1", players, teams, core.DefaultAuctionRules(900_000_000), teams[0].ID)
	e.NextPlayer()

	sold, ok := e.FinalizePlayer()
	if !ok || sold {
		t.Fatalf("sold=%v ok=%v, want false,true", sold, ok)
	}
	if e.Entries[0].Status != core.EntryUnsold {
		t.Fatalf("status = %s, want Unsold", e.Entries[0].Status)
	}
	if e.Auction.PlayersUnsold != 1 {
		t.Fatalf("PlayersUnsold = %d, want 1", e.Auction.PlayersUnsold)
	}
}

// TestRunCompetitiveAIBiddingExcludesUserTeam covers skip-category behavior: when the user
// skips a category, AI bidding must proceed without ever selecting the
// user's own team as a bidder.
func TestRunCompetitiveAIBiddingExcludesUserTeam(t *testing.T) {
	e := newTestEngine(5)
	teams := testTeams(6)
	players := testPlayers(1, core.RoleAllRounder)
	players[0].BasePrice = 2_000_000
	rules := core.DefaultAuctionRules(900_000_000)
	e.Initialize("AUC1", players, teams, rules, teams[0].ID)
	e.NextPlayer()

	bids := e.RunCompetitiveAIBidding(e.UserTeamID)
	for _, b := range bids {
		if b.TeamID == e.UserTeamID {
			t.Fatalf("AI bidding selected the excluded user team")
		}
	}
}

func TestPlaceUserBidRejectsOverCapacity(t *testing.T) {
	e := newTestEngine(6)
	teams := testTeams(2)
	players := testPlayers(1, core.RoleBatsman)
	rules := core.DefaultAuctionRules(900_000_000)
	rules.MaxSquad = 1
	e.Initialize("AUC1", players, teams, rules, teams[0].ID)
	e.NextPlayer()

	state := e.TeamStates[teams[0].ID]
	state.TotalPlayers = 1 // already at cap

	if _, ok := e.PlaceUserBid(); ok {
		t.Fatal("expected bid to be rejected at squad capacity")
	}
}

func TestAutoBidCompetitionCapExceededWhenCeilingTooHigh(t *testing.T) {
	e := newTestEngine(7)
	teams := testTeams(2)
	players := testPlayers(1, core.RoleBatsman)
	rules := core.DefaultAuctionRules(900_000_000)
	e.Initialize("AUC1", players, teams, rules, teams[0].ID)
	e.NextPlayer()

	res := e.RunAutoBidCompetition(10_000_000_000)
	if res.Status != StatusCapExceeded {
		t.Fatalf("status = %v, want StatusCapExceeded", res.Status)
	}
}

func TestIsCompleteAfterAllEntriesResolved(t *testing.T) {
	e := newTestEngine(8)
	teams := testTeams(2)
	players := testPlayers(2, core.RoleBatsman)
	e.Initialize("AUC1", players, teams, core.DefaultAuctionRules(900_000_000), teams[0].ID)

	for !e.IsComplete() {
		res := e.NextPlayer()
		if res.AuctionFinished {
			break
		}
		e.RunBiddingRound()
	}
	if !e.IsComplete() {
		t.Fatal("expected auction to be complete")
	}
}
