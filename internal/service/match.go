package service

import (
	"context"
	"fmt"
	mrand "math/rand"

	"cricketmgr.dev/core/internal/core"
	matchengine "cricketmgr.dev/core/internal/engine/match"
	"cricketmgr.dev/core/internal/engine/season"
	"cricketmgr.dev/core/internal/matchsession"
)

var pitchPresetOrder = []matchengine.PitchPreset{
	matchengine.PitchGreenSeamer,
	matchengine.PitchDustBowl,
	matchengine.PitchFlatDeck,
	matchengine.PitchBouncyTrack,
	matchengine.PitchSlowTurner,
	matchengine.PitchBalanced,
}

func pickPitchPreset(rng *mrand.Rand) matchengine.PitchPreset {
	return pitchPresetOrder[rng.Intn(len(pitchPresetOrder))]
}

// DoToss implements do_toss: flips a coin between the two fixture teams
// and records the winner as pending until start_match is called.
func (s *Service) DoToss(ctx context.Context, careerID core.CareerID, fixtureID core.FixtureID) (core.TeamID, error) {
	var winner core.TeamID
	err := s.WithCareerLock(careerID, func() error {
		fixture, err := s.Fixtures.GetByID(ctx, fixtureID)
		if err != nil {
			return core.NewNotFoundError("fixture", string(fixtureID))
		}
		if fixture.Status != core.FixtureScheduled {
			return core.NewInvalidStateError("fixture", string(fixture.Status), "toss requires a scheduled fixture")
		}
		candidates := []core.TeamID{fixture.Team1ID, fixture.Team2ID}
		winner = candidates[mrand.New(mrand.NewSource(newSeed())).Intn(2)]
		s.Sessions.DoToss(fixtureID, winner)
		return nil
	})
	return winner, err
}

// StartMatch implements start_match: builds the match engine, sets up the
// first innings according to the toss decision, selects the opening
// bowler, and installs the session in the live-match cache.
func (s *Service) StartMatch(ctx context.Context, careerID core.CareerID, fixtureID core.FixtureID, tossWinnerElectsToBat bool) error {
	return s.WithCareerLock(careerID, func() error {
		fixture, err := s.Fixtures.GetByID(ctx, fixtureID)
		if err != nil {
			return core.NewNotFoundError("fixture", string(fixtureID))
		}
		if fixture.Status != core.FixtureScheduled {
			return core.NewInvalidStateError("fixture", string(fixture.Status), "start_match requires a scheduled fixture")
		}
		tossWinner, ok := s.Sessions.PendingToss(fixtureID)
		if !ok {
			return core.NewInvalidStateError("fixture", "no_toss", "do_toss must run before start_match")
		}

		battingTeamID, bowlingTeamID := tossWinner, fixture.Team1ID
		if bowlingTeamID == tossWinner {
			bowlingTeamID = fixture.Team2ID
		}
		if !tossWinnerElectsToBat {
			battingTeamID, bowlingTeamID = bowlingTeamID, battingTeamID
		}

		battingXI, err := s.xiFor(ctx, careerID, battingTeamID, fixture.SeasonID)
		if err != nil {
			return err
		}
		bowlingXI, err := s.xiFor(ctx, careerID, bowlingTeamID, fixture.SeasonID)
		if err != nil {
			return err
		}

		rng := mrand.New(mrand.NewSource(newSeed()))
		eng := matchengine.New(rng, s.logger)
		pitch := matchengine.NewPitch(pickPitchPreset(rng))
		innings1 := eng.SetupInnings(battingTeamID, bowlingTeamID, battingXI, bowlingXI, nil, pitch, false)
		eng.Innings1 = innings1

		if id, ok := eng.SelectBowler(innings1); ok {
			innings1.CurrentBowlerID = id
		}

		session := &matchsession.Session{Engine: eng, Innings1: innings1}
		s.Sessions.StartMatch(fixtureID, session)

		fixture.Status = core.FixtureInProgress
		return s.Fixtures.Update(ctx, fixture)
	})
}

// xiFor loads a team's playing XI for a season in batting-position order.
func (s *Service) xiFor(ctx context.Context, careerID core.CareerID, teamID core.TeamID, seasonID core.SeasonID) ([]core.Player, error) {
	slots, err := s.XIs.Get(ctx, teamID, seasonID)
	if err != nil {
		return nil, core.NewInternalError(fmt.Errorf("get playing XI: %w", err))
	}
	if len(slots) != 11 {
		return nil, core.NewInvalidStateError("playing_xi", fmt.Sprintf("%d players", len(slots)), "exactly 11 players must be selected")
	}
	out := make([]core.Player, 11)
	for _, slot := range slots {
		p, err := s.Players.GetByID(ctx, careerID, slot.PlayerID)
		if err != nil {
			return nil, core.NewInternalError(fmt.Errorf("get player: %w", err))
		}
		out[slot.BattingPosition-1] = *p
	}
	return out, nil
}

// AvailableBowlers implements available_bowlers for the innings currently
// in progress.
func (s *Service) AvailableBowlers(fixtureID core.FixtureID) ([]core.Player, error) {
	sess, ok := s.Sessions.Get(fixtureID)
	if !ok {
		return nil, core.NewNotFoundError("live_match", string(fixtureID))
	}
	sess.Lock()
	defer sess.Unlock()
	current := currentInnings(sess)
	if current == nil {
		return nil, core.NewInvalidStateError("match", "no_active_innings", "no innings in progress")
	}
	return matchengine.EligibleBowlers(current), nil
}

// SelectBowler implements select_bowler: the caller (user, when fielding)
// explicitly names next over's bowler.
func (s *Service) SelectBowler(fixtureID core.FixtureID, bowlerID core.PlayerID) error {
	sess, ok := s.Sessions.Get(fixtureID)
	if !ok {
		return core.NewNotFoundError("live_match", string(fixtureID))
	}
	sess.Lock()
	defer sess.Unlock()
	current := currentInnings(sess)
	if current == nil {
		return core.NewInvalidStateError("match", "no_active_innings", "no innings in progress")
	}
	if current.CurrentBowlerID != "" {
		return core.NewInvalidStateError("over", "bowler_set", "a bowler is already set for this over")
	}
	for _, p := range matchengine.EligibleBowlers(current) {
		if p.ID == bowlerID {
			current.CurrentBowlerID = bowlerID
			return nil
		}
	}
	return core.NewValidationError("bowler_id", "not an eligible bowler for this over")
}

// PlayBall implements play_ball: resolves one delivery against the live
// session, transitioning innings and finishing the match when required.
// userTeamFielding gates bowler auto-selection: when the user's team is
// fielding, a new over with no bowler set fails until select_bowler runs;
// AI-fielding overs auto-select.
func (s *Service) PlayBall(ctx context.Context, careerID core.CareerID, fixtureID core.FixtureID, aggression matchengine.Aggression, userTeamFielding bool) (matchengine.PlayBallResult, error) {
	var result matchengine.PlayBallResult
	err := s.WithCareerLock(careerID, func() error {
		sess, ok := s.Sessions.Get(fixtureID)
		if !ok {
			return core.NewNotFoundError("live_match", string(fixtureID))
		}
		sess.Lock()
		defer sess.Unlock()

		current := currentInnings(sess)
		if current == nil {
			return core.NewInvalidStateError("match", "no_active_innings", "no innings in progress")
		}
		if current.IsComplete() {
			return core.NewInvalidStateError("innings", "complete", "innings already complete")
		}
		if current.CurrentBowlerID == "" {
			if userTeamFielding {
				return core.NewInvalidStateError("over", "no_bowler", "select_bowler must run before play_ball")
			}
			id, ok := sess.Engine.SelectBowler(current)
			if !ok {
				return core.NewInternalError(fmt.Errorf("no eligible bowler for fixture %s", fixtureID))
			}
			current.CurrentBowlerID = id
		}

		result = sess.Engine.PlayBall(current, aggression)
		if result.InningsOver {
			return s.advanceMatch(ctx, sess, fixtureID)
		}
		return nil
	})
	return result, err
}

// SimulateOver implements simulate_over for AI-vs-AI or quick-sim fixtures.
func (s *Service) SimulateOver(ctx context.Context, careerID core.CareerID, fixtureID core.FixtureID, aggression matchengine.Aggression) ([]matchengine.PlayBallResult, error) {
	var results []matchengine.PlayBallResult
	err := s.WithCareerLock(careerID, func() error {
		sess, ok := s.Sessions.Get(fixtureID)
		if !ok {
			return core.NewNotFoundError("live_match", string(fixtureID))
		}
		sess.Lock()
		defer sess.Unlock()

		current := currentInnings(sess)
		if current == nil {
			return core.NewInvalidStateError("match", "no_active_innings", "no innings in progress")
		}
		if current.CurrentBowlerID == "" {
			id, ok := sess.Engine.SelectBowler(current)
			if !ok {
				return core.NewInternalError(fmt.Errorf("no eligible bowler for fixture %s", fixtureID))
			}
			current.CurrentBowlerID = id
		}
		results = sess.Engine.SimulateOver(current, aggression)
		if current.IsComplete() {
			return s.advanceMatch(ctx, sess, fixtureID)
		}
		return nil
	})
	return results, err
}

// SimulateInnings implements simulate_innings: runs the current innings to
// completion, auto-selecting bowlers every over.
func (s *Service) SimulateInnings(ctx context.Context, careerID core.CareerID, fixtureID core.FixtureID, aggression matchengine.Aggression) error {
	return s.WithCareerLock(careerID, func() error {
		sess, ok := s.Sessions.Get(fixtureID)
		if !ok {
			return core.NewNotFoundError("live_match", string(fixtureID))
		}
		sess.Lock()
		defer sess.Unlock()

		current := currentInnings(sess)
		if current == nil {
			return core.NewInvalidStateError("match", "no_active_innings", "no innings in progress")
		}
		sess.Engine.SimulateInnings(current, aggression)
		return s.advanceMatch(ctx, sess, fixtureID)
	})
}

// currentInnings returns whichever of the session's two innings is active.
func currentInnings(sess *matchsession.Session) *matchengine.InningsState {
	if sess.Innings2 != nil {
		return sess.Innings2
	}
	return sess.Innings1
}

// advanceMatch is called whenever an innings just completed: it either
// sets up the second innings or, if both innings are done, finalizes the
// match and persists everything. Caller must hold sess's lock.
func (s *Service) advanceMatch(ctx context.Context, sess *matchsession.Session, fixtureID core.FixtureID) error {
	if sess.Innings2 == nil {
		target := matchengine.SecondInningsTarget(sess.Innings1.Runs)
		innings2 := sess.Engine.SetupInnings(
			sess.Innings1.BowlingTeamID, sess.Innings1.BattingTeamID,
			sess.Innings1.BowlingXI, sess.Innings1.BattingXI,
			&target, sess.Innings1.Pitch, true,
		)
		sess.Engine.Innings2 = innings2
		sess.Innings2 = innings2
		if id, ok := sess.Engine.SelectBowler(innings2); ok {
			innings2.CurrentBowlerID = id
		}
		return nil
	}
	return s.finalizeMatch(ctx, sess, fixtureID)
}

// finalizeMatch persists the completed match, updates standings and
// per-player season stats, marks the fixture complete, and records the
// result for live-cache retrieval.
func (s *Service) finalizeMatch(ctx context.Context, sess *matchsession.Session, fixtureID core.FixtureID) error {
	fixture, err := s.Fixtures.GetByID(ctx, fixtureID)
	if err != nil {
		return core.NewNotFoundError("fixture", string(fixtureID))
	}

	outcome := matchengine.DetermineWinner(sess.Innings1, sess.Innings2)
	motmTeamID := teamIDOrZero(outcome.WinnerID)
	if outcome.IsTie {
		// Arbitrary for MotM purposes: the first-innings batting team stands in for a winner.
		motmTeamID = sess.Innings1.BattingTeamID
	}
	motm := matchengine.ManOfTheMatch(motmTeamID, sess.Innings1, sess.Innings2)

	match := &core.Match{
		ID:        fixtureID,
		SeasonID:  fixture.SeasonID,
		Innings1:  matchengine.Scorecard(sess.Innings1),
		Innings2:  matchengine.Scorecard(sess.Innings2),
		WinnerID:  outcome.WinnerID,
		IsTie:     outcome.IsTie,
		MarginRuns: outcome.MarginRuns,
		MarginWkts: outcome.MarginWkts,
		MotM:      motm,
	}
	if err := s.Matches.Create(ctx, match); err != nil {
		return core.NewInternalError(fmt.Errorf("create match: %w", err))
	}

	if err := s.applyStandingsAndStats(ctx, fixture, match); err != nil {
		return err
	}

	fixture.Status = core.FixtureCompleted
	fixture.WinnerID = outcome.WinnerID
	if err := s.Fixtures.Update(ctx, fixture); err != nil {
		return core.NewInternalError(fmt.Errorf("update fixture: %w", err))
	}

	s.Sessions.Finish(fixtureID, *match)
	return nil
}

func teamIDOrZero(id *core.TeamID) core.TeamID {
	if id == nil {
		return ""
	}
	return *id
}

func (s *Service) applyStandingsAndStats(ctx context.Context, fixture *core.Fixture, match *core.Match) error {
	team1Stats, err := s.Standings.Get(ctx, fixture.SeasonID, fixture.Team1ID)
	if err != nil {
		team1Stats = &core.TeamSeasonStats{SeasonID: fixture.SeasonID, TeamID: fixture.Team1ID}
	}
	team2Stats, err := s.Standings.Get(ctx, fixture.SeasonID, fixture.Team2ID)
	if err != nil {
		team2Stats = &core.TeamSeasonStats{SeasonID: fixture.SeasonID, TeamID: fixture.Team2ID}
	}
	season.ApplyMatchResult(team1Stats, team2Stats, fixture.Team1ID, fixture.Team2ID, match.Innings1, match.Innings2, match.WinnerID, match.IsTie)
	if err := s.Standings.Upsert(ctx, team1Stats); err != nil {
		return core.NewInternalError(fmt.Errorf("upsert standings: %w", err))
	}
	if err := s.Standings.Upsert(ctx, team2Stats); err != nil {
		return core.NewInternalError(fmt.Errorf("upsert standings: %w", err))
	}

	statRows := map[core.PlayerID]*core.PlayerSeasonStats{}
	existing, err := s.PlayerStats.ListBySeason(ctx, fixture.SeasonID)
	if err == nil {
		for i := range existing {
			statRows[existing[i].PlayerID] = &existing[i]
		}
	}
	for _, innings := range []core.InningsScorecard{match.Innings1, match.Innings2} {
		season.ApplyPlayerStats(fixture.SeasonID, innings.BattingTeamID, innings, statRows)
		season.ApplyPlayerStats(fixture.SeasonID, innings.BowlingTeamID, innings, statRows)
	}
	for _, row := range statRows {
		if err := s.PlayerStats.Upsert(ctx, row); err != nil {
			return core.NewInternalError(fmt.Errorf("upsert player stats: %w", err))
		}
	}
	return nil
}

// LiveScorecard implements live_scorecard: a read-only snapshot of the
// innings in progress (or just-completed innings one, mid-match).
func (s *Service) LiveScorecard(fixtureID core.FixtureID) (core.InningsScorecard, core.InningsScorecard, error) {
	sess, ok := s.Sessions.Get(fixtureID)
	if !ok {
		return core.InningsScorecard{}, core.InningsScorecard{}, core.NewNotFoundError("live_match", string(fixtureID))
	}
	sess.Lock()
	defer sess.Unlock()
	var innings1, innings2 core.InningsScorecard
	if sess.Innings1 != nil {
		innings1 = matchengine.Scorecard(sess.Innings1)
	}
	if sess.Innings2 != nil {
		innings2 = matchengine.Scorecard(sess.Innings2)
	}
	return innings1, innings2, nil
}

// MatchResult implements match_result: returns and clears the short-lived
// completed-result record for a fixture.
func (s *Service) MatchResult(fixtureID core.FixtureID) (core.Match, bool) {
	return s.Sessions.TakeCompleted(fixtureID)
}
