package service

import (
	"context"
	"fmt"
	mrand "math/rand"

	"golang.org/x/sync/errgroup"

	"cricketmgr.dev/core/internal/core"
	matchengine "cricketmgr.dev/core/internal/engine/match"
	"cricketmgr.dev/core/internal/engine/season"
)

// GenerateSeasonFixtures implements generate_fixtures: builds the 56-match
// round-robin schedule for a season and seeds an empty standings row for
// every team. It accepts a career in Auction or PreSeason status; it does
// not check whether the auction's players have all been resolved.
func (s *Service) GenerateSeasonFixtures(ctx context.Context, careerID core.CareerID, seasonID core.SeasonID) error {
	return s.WithCareerLock(careerID, func() error {
		career, err := s.Careers.GetByID(ctx, careerID)
		if err != nil {
			return core.NewNotFoundError("career", string(careerID))
		}
		if career.Status != core.CareerAuction && career.Status != core.CareerPreSeason {
			return core.NewInvalidStateError("career", string(career.Status), "fixtures require a completed auction")
		}

		teams, err := s.Teams.List(ctx, careerID)
		if err != nil {
			return core.NewInternalError(fmt.Errorf("list teams: %w", err))
		}

		rng := mrand.New(mrand.NewSource(newSeed()))
		fixtures := season.GenerateFixtures(rng, seasonID, teams)
		for i := range fixtures {
			fixtures[i].ID = core.FixtureID(fmt.Sprintf("%s-m%d", seasonID, fixtures[i].MatchNumber))
		}
		if err := s.Fixtures.CreateBatch(ctx, fixtures); err != nil {
			return core.NewInternalError(fmt.Errorf("create fixtures: %w", err))
		}

		for _, t := range teams {
			if err := s.Standings.Upsert(ctx, &core.TeamSeasonStats{SeasonID: seasonID, TeamID: t.ID}); err != nil {
				return core.NewInternalError(fmt.Errorf("seed standings: %w", err))
			}
		}

		career.Status = core.CareerInSeason
		return s.Careers.Update(ctx, career)
	})
}

// GetStandings implements get_standings: the season's teams ranked by
// points then net run rate.
func (s *Service) GetStandings(ctx context.Context, seasonID core.SeasonID) ([]core.TeamSeasonStats, error) {
	stats, err := s.Standings.List(ctx, seasonID)
	if err != nil {
		return nil, core.NewInternalError(fmt.Errorf("list standings: %w", err))
	}
	return season.RankStandings(stats), nil
}

// SimulateAllLeagueMatches implements simulate_all_league_matches: every
// scheduled league fixture not involving the user's team is simulated
// concurrently start-to-finish; fixtures involving the user's team are
// left untouched for interactive play.
func (s *Service) SimulateAllLeagueMatches(ctx context.Context, careerID core.CareerID, seasonID core.SeasonID) error {
	career, err := s.Careers.GetByID(ctx, careerID)
	if err != nil {
		return core.NewNotFoundError("career", string(careerID))
	}

	typ := core.FixtureLeague
	status := core.FixtureScheduled
	fixtures, err := s.Fixtures.List(ctx, core.FixtureFilter{SeasonID: &seasonID, Type: &typ})
	if err != nil {
		return core.NewInternalError(fmt.Errorf("list fixtures: %w", err))
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, f := range fixtures {
		f := f
		if f.Status != status {
			continue
		}
		if f.Team1ID == career.UserTeamID || f.Team2ID == career.UserTeamID {
			continue
		}
		g.Go(func() error {
			return s.simulateFixtureQuick(gctx, careerID, f.ID)
		})
	}
	return g.Wait()
}

// simulateFixtureQuick runs one fixture's toss, full two-innings
// simulation, and finalization without any user interaction.
func (s *Service) simulateFixtureQuick(ctx context.Context, careerID core.CareerID, fixtureID core.FixtureID) error {
	if _, err := s.DoToss(ctx, careerID, fixtureID); err != nil {
		return err
	}
	electBat := mrand.New(mrand.NewSource(newSeed())).Intn(2) == 0
	if err := s.StartMatch(ctx, careerID, fixtureID, electBat); err != nil {
		return err
	}
	for i := 0; i < 2; i++ {
		if err := s.SimulateInnings(ctx, careerID, fixtureID, matchengine.AggressionBalance); err != nil {
			return err
		}
	}
	return nil
}

// AdvancePlayoffs implements generate_qualifier1/eliminator/qualifier2/
// final: once the league phase is complete, it builds whichever playoff
// fixture is next unlocked by already-completed results. Returns the
// fixture created, or nil if the next fixture still awaits a result or the
// playoffs are already fully scheduled; returns an InvalidState error if
// the league isn't finished yet.
func (s *Service) AdvancePlayoffs(ctx context.Context, careerID core.CareerID, seasonID core.SeasonID) (*core.Fixture, error) {
	var created *core.Fixture
	err := s.WithCareerLock(careerID, func() error {
		allFixtures, err := s.Fixtures.List(ctx, core.FixtureFilter{SeasonID: &seasonID})
		if err != nil {
			return core.NewInternalError(fmt.Errorf("list fixtures: %w", err))
		}
		if !season.IsLeagueComplete(allFixtures) {
			return core.NewInvalidStateError("season", "league_incomplete", "league phase must finish before playoffs")
		}

		byType := map[core.FixtureType]core.Fixture{}
		for _, f := range allFixtures {
			byType[f.Type] = f
		}
		nextMatchNumber := len(allFixtures) + 1

		teamList, err := s.Teams.List(ctx, careerID)
		if err != nil {
			return core.NewInternalError(fmt.Errorf("list teams: %w", err))
		}
		teamsByID := map[core.TeamID]core.Team{}
		for _, t := range teamList {
			teamsByID[t.ID] = t
		}

		var fixture core.Fixture
		switch {
		case byType[core.FixtureQualifier1].ID == "":
			stats, err := s.Standings.List(ctx, seasonID)
			if err != nil {
				return core.NewInternalError(fmt.Errorf("list standings: %w", err))
			}
			ranked := season.RankStandings(stats)
			fixture = season.GenerateQualifier1(seasonID, ranked, teamsByID, nextMatchNumber)
		case byType[core.FixtureEliminator].ID == "":
			stats, err := s.Standings.List(ctx, seasonID)
			if err != nil {
				return core.NewInternalError(fmt.Errorf("list standings: %w", err))
			}
			ranked := season.RankStandings(stats)
			fixture = season.GenerateEliminator(seasonID, ranked, teamsByID, nextMatchNumber)
		case byType[core.FixtureQualifier1].Status != core.FixtureCompleted || byType[core.FixtureEliminator].Status != core.FixtureCompleted:
			return nil
		case byType[core.FixtureQualifier2].ID == "":
			fixture = season.GenerateQualifier2(seasonID, byType[core.FixtureQualifier1], byType[core.FixtureEliminator], teamsByID, nextMatchNumber)
		case byType[core.FixtureQualifier2].Status != core.FixtureCompleted:
			return nil
		case byType[core.FixtureFinal].ID == "":
			fixture = season.GenerateFinal(seasonID, byType[core.FixtureQualifier1], byType[core.FixtureQualifier2], nextMatchNumber)
		default:
			return nil
		}

		fixture.ID = core.FixtureID(fmt.Sprintf("%s-m%d", seasonID, fixture.MatchNumber))
		if err := s.Fixtures.CreateBatch(ctx, []core.Fixture{fixture}); err != nil {
			return core.NewInternalError(fmt.Errorf("create playoff fixture: %w", err))
		}
		created = &fixture
		return nil
	})
	return created, err
}

// CompleteSeason implements complete_season: called once the final has
// finished, it records the champion/runner-up and advances the career to
// PostSeason.
func (s *Service) CompleteSeason(ctx context.Context, careerID core.CareerID, seasonID core.SeasonID) error {
	return s.WithCareerLock(careerID, func() error {
		sn, err := s.Seasons.GetByID(ctx, seasonID)
		if err != nil {
			return core.NewNotFoundError("season", string(seasonID))
		}
		career, err := s.Careers.GetByID(ctx, careerID)
		if err != nil {
			return core.NewNotFoundError("career", string(careerID))
		}

		typ := core.FixtureFinal
		finals, err := s.Fixtures.List(ctx, core.FixtureFilter{SeasonID: &seasonID, Type: &typ})
		if err != nil {
			return core.NewInternalError(fmt.Errorf("list fixtures: %w", err))
		}
		if len(finals) == 0 || finals[0].Status != core.FixtureCompleted {
			return core.NewInvalidStateError("season", "final_incomplete", "the final must complete before the season can close")
		}

		season.CompleteSeason(sn, career, finals[0])
		if err := s.Seasons.Update(ctx, sn); err != nil {
			return core.NewInternalError(fmt.Errorf("update season: %w", err))
		}
		return s.Careers.Update(ctx, career)
	})
}
