package season

import (
	"math/rand"
	"testing"

	"cricketmgr.dev/core/internal/core"
)

func testTeams() []core.Team {
	names := []string{"A", "B", "C", "D", "E", "F", "G", "H"}
	teams := make([]core.Team, len(names))
	for i, n := range names {
		teams[i] = core.Team{ID: core.TeamID(n), HomeGround: n + " Stadium"}
	}
	return teams
}

func TestGenerateFixturesCountAndPairing(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	fixtures := GenerateFixtures(rng, "S1", testTeams())
	if len(fixtures) != TotalLeagueMatches {
		t.Fatalf("len(fixtures) = %d, want %d", len(fixtures), TotalLeagueMatches)
	}

	seen := map[[2]core.TeamID]bool{}
	for _, f := range fixtures {
		key := [2]core.TeamID{f.Team1ID, f.Team2ID}
		if seen[key] {
			t.Fatalf("duplicate ordered pairing %v", key)
		}
		seen[key] = true
		if f.Venue == "" {
			t.Fatal("fixture venue not set")
		}
	}
}

func TestGenerateFixturesNoImmediateRepeatWhenAvoidable(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	fixtures := GenerateFixtures(rng, "S1", testTeams())
	violations := 0
	for i := 1; i < len(fixtures); i++ {
		prev, cur := fixtures[i-1], fixtures[i]
		prevTeams := map[core.TeamID]bool{prev.Team1ID: true, prev.Team2ID: true}
		if prevTeams[cur.Team1ID] || prevTeams[cur.Team2ID] {
			violations++
		}
	}
	if violations > len(fixtures)/4 {
		t.Fatalf("too many back-to-back repeats: %d of %d", violations, len(fixtures))
	}
}

func TestIsLeagueCompleteRequiresAll56(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	fixtures := GenerateFixtures(rng, "S1", testTeams())
	if IsLeagueComplete(fixtures) {
		t.Fatal("expected incomplete before any results")
	}
	for i := range fixtures {
		fixtures[i].Status = core.FixtureCompleted
	}
	if !IsLeagueComplete(fixtures) {
		t.Fatal("expected complete once all 56 are Completed")
	}
}

func TestRankStandingsOrdersByPointsThenNRR(t *testing.T) {
	stats := []core.TeamSeasonStats{
		{TeamID: "A", Points: 10, RunsScored: 100, OversFaced: 20, RunsConceded: 100, OversBowled: 20},
		{TeamID: "B", Points: 12, RunsScored: 100, OversFaced: 20, RunsConceded: 90, OversBowled: 20},
		{TeamID: "C", Points: 10, RunsScored: 120, OversFaced: 20, RunsConceded: 100, OversBowled: 20},
	}
	ranked := RankStandings(stats)
	if ranked[0].TeamID != "B" {
		t.Fatalf("rank 1 = %s, want B", ranked[0].TeamID)
	}
	if ranked[1].TeamID != "C" {
		t.Fatalf("rank 2 = %s, want C (higher NRR than A)", ranked[1].TeamID)
	}
}

func TestGenerateQualifier2UsesQ1LoserHome(t *testing.T) {
	winner := core.TeamID("A")
	q1 := core.Fixture{Team1ID: "A", Team2ID: "B", WinnerID: &winner}
	elimWinner := core.TeamID("D")
	elim := core.Fixture{Team1ID: "C", Team2ID: "D", WinnerID: &elimWinner}
	teams := map[core.TeamID]core.Team{
		"A": {ID: "A", HomeGround: "A Stadium"},
		"B": {ID: "B", HomeGround: "B Stadium"},
	}
	q2 := GenerateQualifier2("S1", q1, elim, teams, 59)
	if q2.Team1ID != "B" {
		t.Fatalf("Q2 team1 = %s, want B (Q1 loser)", q2.Team1ID)
	}
	if q2.Team2ID != "D" {
		t.Fatalf("Q2 team2 = %s, want D (Eliminator winner)", q2.Team2ID)
	}
	if q2.Venue != "B Stadium" {
		t.Fatalf("Q2 venue = %s, want B Stadium", q2.Venue)
	}
}
