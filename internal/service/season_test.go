package service

import (
	"context"
	"testing"

	"cricketmgr.dev/core/internal/core"
)

// advanceToPreSeasonCareer runs a career through CreateCareer + StartAuction
// and leaves it in Auction status without playing out the auction (fixture
// generation accepts Auction or PreSeason).
func advanceToPreSeasonCareer(t *testing.T, svc *Service, repos *testRepos) (*core.Career, *core.Season) {
	t.Helper()
	ctx := context.Background()
	career, err := svc.CreateCareer(ctx, core.UserID("u1"), "Season Career", 0)
	if err != nil {
		t.Fatalf("CreateCareer: %v", err)
	}
	season, err := repos.seasons.GetCurrent(ctx, career.ID)
	if err != nil {
		t.Fatalf("GetCurrent: %v", err)
	}
	if _, err := svc.StartAuction(ctx, career.ID, season.ID); err != nil {
		t.Fatalf("StartAuction: %v", err)
	}
	return career, season
}

func TestGenerateSeasonFixturesProducesRoundRobin(t *testing.T) {
	svc, repos := newTestService(t)
	ctx := context.Background()
	career, season := advanceToPreSeasonCareer(t, svc, repos)

	if err := svc.GenerateSeasonFixtures(ctx, career.ID, season.ID); err != nil {
		t.Fatalf("GenerateSeasonFixtures: %v", err)
	}

	fixtures, err := repos.fixtures.List(ctx, core.FixtureFilter{SeasonID: &season.ID})
	if err != nil {
		t.Fatalf("List fixtures: %v", err)
	}
	if len(fixtures) != 56 {
		t.Fatalf("expected 56 league fixtures, got %d", len(fixtures))
	}

	standings, err := repos.standings.List(ctx, season.ID)
	if err != nil || len(standings) != 8 {
		t.Fatalf("expected 8 seeded standings rows, got %d (err %v)", len(standings), err)
	}

	updatedCareer, err := repos.careers.GetByID(ctx, career.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if updatedCareer.Status != core.CareerInSeason {
		t.Fatalf("expected career InSeason, got %s", updatedCareer.Status)
	}

	// In the double round-robin each of the 8 teams plays 14 of the 56
	// fixtures; the user's team is no exception.
	var userFixtures int
	for _, f := range fixtures {
		if f.Team1ID == career.UserTeamID || f.Team2ID == career.UserTeamID {
			userFixtures++
		}
	}
	if userFixtures != 14 {
		t.Fatalf("expected the user's team to appear in 14 of 56 fixtures, got %d", userFixtures)
	}
}

func TestGetStandingsRanksByPointsThenNRR(t *testing.T) {
	svc, repos := newTestService(t)
	ctx := context.Background()
	seasonID := core.SeasonID("s-rank-test")

	rows := []core.TeamSeasonStats{
		{SeasonID: seasonID, TeamID: "A", Points: 4, RunsScored: 200, OversFaced: 20, RunsConceded: 150, OversBowled: 20},
		{SeasonID: seasonID, TeamID: "B", Points: 6, RunsScored: 180, OversFaced: 20, RunsConceded: 160, OversBowled: 20},
		{SeasonID: seasonID, TeamID: "C", Points: 6, RunsScored: 220, OversFaced: 20, RunsConceded: 150, OversBowled: 20},
	}
	for i := range rows {
		if err := repos.standings.Upsert(ctx, &rows[i]); err != nil {
			t.Fatalf("Upsert: %v", err)
		}
	}

	ranked, err := svc.GetStandings(ctx, seasonID)
	if err != nil {
		t.Fatalf("GetStandings: %v", err)
	}
	if len(ranked) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(ranked))
	}
	if ranked[0].TeamID != "C" {
		t.Fatalf("expected team C (6 pts, best NRR) ranked first, got %s", ranked[0].TeamID)
	}
	if ranked[1].TeamID != "B" {
		t.Fatalf("expected team B second, got %s", ranked[1].TeamID)
	}
	if ranked[2].TeamID != "A" {
		t.Fatalf("expected team A (fewest points) ranked last, got %s", ranked[2].TeamID)
	}
}

func TestAdvancePlayoffsRejectsBeforeLeagueComplete(t *testing.T) {
	svc, repos := newTestService(t)
	ctx := context.Background()
	career, season := advanceToPreSeasonCareer(t, svc, repos)
	if err := svc.GenerateSeasonFixtures(ctx, career.ID, season.ID); err != nil {
		t.Fatalf("GenerateSeasonFixtures: %v", err)
	}

	if _, err := svc.AdvancePlayoffs(ctx, career.ID, season.ID); err == nil {
		t.Fatalf("expected an error advancing playoffs before the league phase completes")
	}
}

func TestCompleteSeasonRejectsBeforeFinalPlayed(t *testing.T) {
	svc, repos := newTestService(t)
	ctx := context.Background()
	career, season := advanceToPreSeasonCareer(t, svc, repos)
	if err := svc.GenerateSeasonFixtures(ctx, career.ID, season.ID); err != nil {
		t.Fatalf("GenerateSeasonFixtures: %v", err)
	}
	if err := svc.CompleteSeason(ctx, career.ID, season.ID); err == nil {
		t.Fatalf("expected an error completing a season whose final has not been played")
	}
}
