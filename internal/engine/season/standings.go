package season

import "cricketmgr.dev/core/internal/core"

// oversFloat converts a legal-delivery count into the fractional-overs
// convention used by TeamSeasonStats (e.g. 3 overs 2 balls = 3 + 2/6).
func oversFloat(overs, balls int) float64 {
	return float64(overs) + float64(balls)/6.0
}

// ApplyMatchResult updates both teams' TeamSeasonStats from one completed
// match's two innings: 2 points for a win, 1 for a no-result, 0
// for a loss.
func ApplyMatchResult(team1Stats, team2Stats *core.TeamSeasonStats, team1ID, team2ID core.TeamID, innings1, innings2 core.InningsScorecard, winnerID *core.TeamID, isTie bool) {
	team1Stats.Matches++
	team2Stats.Matches++

	battingStatsFor := func(teamID core.TeamID) (runsFor, oversFor int, ballsFor int, runsAgainst, oversAgainst, ballsAgainst int) {
		for _, innings := range []core.InningsScorecard{innings1, innings2} {
			if innings.BattingTeamID == teamID {
				runsFor += innings.Runs
				oversFor += innings.Overs
				ballsFor += innings.Balls
			}
			if innings.BowlingTeamID == teamID {
				runsAgainst += innings.Runs
				oversAgainst += innings.Overs
				ballsAgainst += innings.Balls
			}
		}
		return
	}

	r1, o1, b1, ra1, oa1, ba1 := battingStatsFor(team1ID)
	team1Stats.RunsScored += r1
	team1Stats.OversFaced += oversFloat(o1, b1)
	team1Stats.RunsConceded += ra1
	team1Stats.OversBowled += oversFloat(oa1, ba1)

	r2, o2, b2, ra2, oa2, ba2 := battingStatsFor(team2ID)
	team2Stats.RunsScored += r2
	team2Stats.OversFaced += oversFloat(o2, b2)
	team2Stats.RunsConceded += ra2
	team2Stats.OversBowled += oversFloat(oa2, ba2)

	switch {
	case isTie:
		team1Stats.NoResults++
		team2Stats.NoResults++
		team1Stats.Points++
		team2Stats.Points++
	case winnerID != nil && *winnerID == team1ID:
		team1Stats.Wins++
		team2Stats.Losses++
		team1Stats.Points += 2
	case winnerID != nil && *winnerID == team2ID:
		team2Stats.Wins++
		team1Stats.Losses++
		team2Stats.Points += 2
	}
}
