package season

import "cricketmgr.dev/core/internal/core"

// CompleteSeason implements complete_season: once the Final has a winner,
// the season's phase advances to Completed with champion/runner-up
// populated, and the career status advances to PostSeason.
func CompleteSeason(s *core.Season, c *core.Career, final core.Fixture) {
	s.Phase = core.SeasonCompleted
	s.ChampionTeamID = final.WinnerID
	if final.WinnerID != nil {
		runnerUp := final.Team1ID
		if *final.WinnerID == final.Team1ID {
			runnerUp = final.Team2ID
		}
		s.RunnerUpTeamID = &runnerUp
	}
	c.Status = core.CareerPostSeason
}
