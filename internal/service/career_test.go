package service

import (
	"context"
	"testing"

	"cricketmgr.dev/core/internal/config"
	"cricketmgr.dev/core/internal/core"
)

func testConfig() config.CareerConfig {
	return config.CareerConfig{
		MaxCareersPerUser: 3,
		TeamInitialBudget: 900_000_000,
		SalaryCap:         900_000_000,
		MinSquad:          18,
		MaxSquad:          25,
		MaxOverseas:       8,
		PoolTarget:        230,
		PlayerMinOVR:      55,
	}
}

type testRepos struct {
	careers     *fakeCareerRepo
	players     *fakePlayerRepo
	teams       *fakeTeamRepo
	seasons     *fakeSeasonRepo
	fixtures    *fakeFixtureRepo
	standings   *fakeStandingsRepo
	playerStats *fakePlayerStatsRepo
	auctions    *fakeAuctionRepo
	xis         *fakeXIRepo
	matches     *fakeMatchRepo
}

func newTestService(t *testing.T) (*Service, *testRepos) {
	t.Helper()
	repos := &testRepos{
		careers:     newFakeCareerRepo(),
		players:     newFakePlayerRepo(),
		teams:       newFakeTeamRepo(),
		seasons:     newFakeSeasonRepo(),
		fixtures:    newFakeFixtureRepo(),
		standings:   newFakeStandingsRepo(),
		playerStats: newFakePlayerStatsRepo(),
		auctions:    newFakeAuctionRepo(),
		xis:         newFakeXIRepo(),
		matches:     newFakeMatchRepo(),
	}
	svc := New(nil, testConfig(), repos.careers, repos.players, repos.teams, repos.seasons,
		repos.fixtures, repos.standings, repos.playerStats, repos.auctions, repos.xis, repos.matches)
	return svc, repos
}

func TestCreateCareerHappyPath(t *testing.T) {
	svc, repos := newTestService(t)
	ctx := context.Background()

	career, err := svc.CreateCareer(ctx, core.UserID("u1"), "My Career", 2)
	if err != nil {
		t.Fatalf("CreateCareer: %v", err)
	}
	if career.Status != core.CareerPreAuction {
		t.Fatalf("expected PreAuction status, got %s", career.Status)
	}

	teams, err := repos.teams.List(ctx, career.ID)
	if err != nil || len(teams) != 8 {
		t.Fatalf("expected 8 teams, got %d (err %v)", len(teams), err)
	}
	var foundUserTeam bool
	for _, tm := range teams {
		if tm.ID == career.UserTeamID {
			foundUserTeam = true
		}
	}
	if !foundUserTeam {
		t.Fatalf("user team %s not found among generated teams", career.UserTeamID)
	}

	players, err := repos.players.List(ctx, career.ID, core.PlayerFilter{})
	if err != nil || len(players) != 230 {
		t.Fatalf("expected 230 players, got %d (err %v)", len(players), err)
	}

	season, err := repos.seasons.GetCurrent(ctx, career.ID)
	if err != nil {
		t.Fatalf("GetCurrent season: %v", err)
	}
	if season.SeasonNumber != 1 || season.Phase != core.SeasonNotStarted {
		t.Fatalf("unexpected season state: %+v", season)
	}
}

func TestCreateCareerRejectsOverLimit(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	userID := core.UserID("u1")

	for i := 0; i < 3; i++ {
		if _, err := svc.CreateCareer(ctx, userID, "Career", 0); err != nil {
			t.Fatalf("career %d: %v", i, err)
		}
	}
	if _, err := svc.CreateCareer(ctx, userID, "One too many", 0); err == nil {
		t.Fatalf("expected capacity error beyond MaxCareersPerUser")
	}
}

func TestCreateCareerRandomTeamWhenNegativeIndex(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	career, err := svc.CreateCareer(ctx, core.UserID("u1"), "Random Team", -1)
	if err != nil {
		t.Fatalf("CreateCareer: %v", err)
	}
	if career.UserTeamID == "" {
		t.Fatalf("expected a user team to be assigned")
	}
}
