package match

import "cricketmgr.dev/core/internal/core"

// PlayBallResult is returned by PlayBall for the caller to relay to the API.
type PlayBallResult struct {
	Outcome        BallOutcome
	InningsOver    bool
	OverComplete   bool
	NeedNewBatter  bool
	NeedNewBowler  bool
}

// PlayBall resolves exactly one delivery against the current bowler and
// striker, mutating s in place. aggression is the caller's requested
// approach; it is ignored if the innings is already complete.
func (e *Engine) PlayBall(s *InningsState, aggression Aggression) PlayBallResult {
	bowler := playerByID(s.BowlingXI, s.CurrentBowlerID)
	bowlerState := s.BowlerState[s.CurrentBowlerID]
	striker := s.Striker()
	batterState := s.BatterState[striker.ID]

	effectiveControl := float64(bowlerStat(bowler, "control"))
	if e.rng.Float64() < wideChance(effectiveControl) {
		outcome := BallOutcome{
			Over: s.Overs, BallInOver: s.Balls, BowlerID: bowler.ID, BatterID: striker.ID,
			Runs: 1, IsWide: true, Commentary: "wide",
		}
		s.Runs++
		s.Extras++
		bowlerState.RunsConceded++
		s.ThisOver = append(s.ThisOver, outcome)
		return PlayBallResult{Outcome: outcome, InningsOver: s.IsComplete()}
	}

	if e.rng.Float64() < noBallChance {
		d := selectDelivery(e.rng, bowler, striker)
		result := ResolveBall(e.rng, s, bowler, striker, bowlerState, batterState, d, ResolveApproach(e.rng, aggression, s.Overs, s.RequiredRate()))
		runs := result.Runs + 1
		outcome := BallOutcome{
			Over: s.Overs, BallInOver: s.Balls, BowlerID: bowler.ID, BatterID: striker.ID,
			Delivery: d.ID, Runs: runs, IsNoBall: true, ContactCls: result.Class, Commentary: "no ball",
		}
		s.Runs += runs
		s.Extras++
		bowlerState.RunsConceded += runs
		s.recordBatterRuns(striker.ID, result.Runs)
		s.ThisOver = append(s.ThisOver, outcome)
		return PlayBallResult{Outcome: outcome, InningsOver: s.IsComplete()}
	}

	d := selectDelivery(e.rng, bowler, striker)
	approach := ResolveApproach(e.rng, aggression, s.Overs, s.RequiredRate())
	result := ResolveBall(e.rng, s, bowler, striker, bowlerState, batterState, d, approach)

	batterState.BallsFaced++
	s.Balls++
	outcome := BallOutcome{
		Over: s.Overs, BallInOver: s.Balls, BowlerID: bowler.ID, BatterID: striker.ID,
		Delivery: d.ID, ContactCls: result.Class, IsLegal: true,
	}

	if result.IsWicket && s.WicketsThisOver >= 3 {
		// Max-3-wickets-per-over cap: demote to a dot with neutral commentary.
		result = pipelineResult{Class: result.Class}
		outcome.Commentary = "dot ball"
	}

	if result.IsWicket {
		s.Wickets++
		s.WicketsThisOver++
		outcome.IsWicket = true
		outcome.Dismissal = result.Dismissal
		outcome.Commentary = "WICKET"

		card := s.BatterCards[striker.ID]
		card.IsOut = true
		card.Dismissal = result.Dismissal
		bowlerIDCopy := bowler.ID
		card.BowlerID = &bowlerIDCopy

		bowlerState.Wickets++
		bowlerState.HasConfidence = true
		s.PartnershipRuns = 0

		needNewBatter := s.Wickets < 10 && s.NextBatterIdx < len(s.BattingOrder)
		if needNewBatter {
			nextID := s.BattingOrder[s.NextBatterIdx]
			s.NextBatterIdx++
			s.StrikerIdx = indexOfBattingOrder(s.BattingXI, nextID)
			s.BatterCards[nextID].DidBat = true
		}
	} else {
		outcome.Runs = result.Runs
		s.recordBatterRuns(striker.ID, result.Runs)
		s.Runs += result.Runs
		bowlerState.RunsConceded += result.Runs
		s.PartnershipRuns += result.Runs
		if result.Runs%2 == 1 {
			s.StrikerIdx, s.NonStrikerIdx = s.NonStrikerIdx, s.StrikerIdx
		}
	}

	s.ThisOver = append(s.ThisOver, outcome)

	overComplete := s.Balls == 6
	res := PlayBallResult{Outcome: outcome, OverComplete: overComplete}
	if s.IsComplete() {
		res.InningsOver = true
	}
	if overComplete && !res.InningsOver {
		e.finishOver(s, bowlerState)
	}
	return res
}

func (s *InningsState) recordBatterRuns(id core.PlayerID, runs int) {
	card := s.BatterCards[id]
	card.Runs += runs
	card.Balls++
	switch runs {
	case 4:
		card.Fours++
	case 6:
		card.Sixes++
	}
}

func indexOfBattingOrder(xi []core.Player, id core.PlayerID) int {
	for i, p := range xi {
		if p.ID == id {
			return i
		}
	}
	return 0
}

func (e *Engine) finishOver(s *InningsState, bowlerState *BowlerState) {
	s.Overs++
	s.Balls = 0
	s.WicketsThisOver = 0
	bowlerState.OversCompleted++
	bowlerState.ConsecutiveOver++
	if bowlerState.ConsecutiveOver > 4 {
		bowlerState.Tired = true
	}
	if bowlerState.RunsConceded == 0 {
		bowlerState.Maidens++
	}
	s.LastBowlerID = s.CurrentBowlerID
	s.CurrentBowlerID = ""
	s.ThisOver = nil
	s.StrikerIdx, s.NonStrikerIdx = s.NonStrikerIdx, s.StrikerIdx
}

// SimulateOver runs PlayBall in a loop until 6 legal deliveries have been
// bowled or the innings completes. It assumes s.CurrentBowlerID is already
// set; callers enforcing a bowler-selection gate should set it before
// calling this.
func (e *Engine) SimulateOver(s *InningsState, aggression Aggression) []PlayBallResult {
	var results []PlayBallResult
	for {
		if s.IsComplete() {
			return results
		}
		res := e.PlayBall(s, aggression)
		results = append(results, res)
		if res.InningsOver || res.OverComplete {
			return results
		}
	}
}

// SimulateInnings runs overs to completion, auto-selecting a bowler each
// over via SelectBowler. Returns the ball-by-ball results for the whole
// innings.
func (e *Engine) SimulateInnings(s *InningsState, aggression Aggression) []PlayBallResult {
	var all []PlayBallResult
	for !s.IsComplete() {
		if s.CurrentBowlerID == "" {
			id, ok := e.SelectBowler(s)
			if !ok {
				break
			}
			s.CurrentBowlerID = id
		}
		results := e.SimulateOver(s, aggression)
		all = append(all, results...)
	}
	return all
}
