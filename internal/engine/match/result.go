package match

import "cricketmgr.dev/core/internal/core"

// SecondInningsTarget returns the target for innings 2 given innings 1's
// completed total.
func SecondInningsTarget(innings1Runs int) int {
	return innings1Runs + 1
}

// Scorecard converts a completed InningsState into its persisted form.
func Scorecard(s *InningsState) core.InningsScorecard {
	card := core.InningsScorecard{
		BattingTeamID: s.BattingTeamID,
		BowlingTeamID: s.BowlingTeamID,
		Runs:          s.Runs,
		Wickets:       s.Wickets,
		Overs:         s.Overs,
		Balls:         s.Balls,
		Extras:        s.Extras,
	}
	for _, p := range s.BattingXI {
		if c, ok := s.BatterCards[p.ID]; ok && c.DidBat {
			card.Batting = append(card.Batting, *c)
		}
	}
	for _, p := range s.BowlingXI {
		if c, ok := s.BowlerCards[p.ID]; ok && (c.Overs > 0 || bowlerBowledAny(s, p.ID)) {
			c.Overs = bowlerOversFloat(s, p.ID)
			card.Bowling = append(card.Bowling, *c)
		}
	}
	return card
}

func bowlerBowledAny(s *InningsState, id core.PlayerID) bool {
	st, ok := s.BowlerState[id]
	return ok && (st.OversCompleted > 0 || st.RunsConceded > 0)
}

func bowlerOversFloat(s *InningsState, id core.PlayerID) float64 {
	st := s.BowlerState[id]
	return float64(st.OversCompleted)
}

// MatchOutcome is the result of comparing two completed innings.
type MatchOutcome struct {
	WinnerID   *core.TeamID
	IsTie      bool
	MarginRuns int
	MarginWkts int
}

// DetermineWinner implements match completion: compares the second
// innings total to the first-innings-derived target.
func DetermineWinner(innings1 *InningsState, innings2 *InningsState) MatchOutcome {
	target := *innings2.Target
	switch {
	case innings2.Runs >= target:
		winner := innings2.BattingTeamID
		return MatchOutcome{WinnerID: &winner, MarginWkts: 10 - innings2.Wickets}
	case innings2.Runs < target-1:
		winner := innings1.BattingTeamID
		return MatchOutcome{WinnerID: &winner, MarginRuns: (target - 1) - innings2.Runs}
	default:
		return MatchOutcome{IsTie: true}
	}
}

// ManOfTheMatch is computed only over the winning team's
// participants, by combined batting/bowling impact.
func ManOfTheMatch(winnerID core.TeamID, innings1, innings2 *InningsState) *core.ManOfTheMatch {
	impacts := map[core.PlayerID]float64{}
	teamOf := map[core.PlayerID]core.TeamID{}

	accumulate := func(s *InningsState) {
		if s.BattingTeamID == winnerID {
			for id, c := range s.BatterCards {
				if !c.DidBat {
					continue
				}
				impact := float64(c.Runs) * (1 + (c.StrikeRate()-100)/200)
				impacts[id] += impact
				teamOf[id] = winnerID
			}
		}
		if s.BowlingTeamID == winnerID {
			for id, c := range s.BowlerCards {
				if c.Wickets == 0 && c.Overs == 0 {
					continue
				}
				impact := float64(c.Wickets) * 25 * (1 + (6-c.Economy())/6)
				impacts[id] += impact
				teamOf[id] = winnerID
			}
		}
	}
	accumulate(innings1)
	accumulate(innings2)

	var best core.PlayerID
	var bestImpact float64
	found := false
	// Deterministic tie-break: iterate batting order of innings1 then
	// innings2 so equal-impact ties always resolve to the same player.
	visit := func(s *InningsState) {
		for _, id := range s.BattingOrder {
			impact, ok := impacts[id]
			if !ok {
				continue
			}
			if !found || impact > bestImpact {
				best = id
				bestImpact = impact
				found = true
			}
		}
	}
	visit(innings1)
	visit(innings2)

	if !found {
		return nil
	}
	return &core.ManOfTheMatch{PlayerID: best, TeamID: teamOf[best], Impact: bestImpact}
}
