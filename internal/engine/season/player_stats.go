package season

import (
	"fmt"
	"strconv"
	"strings"

	"cricketmgr.dev/core/internal/core"
)

// bestBowlingLabel renders the conventional "W/R" best-bowling-figure
// string, keeping whichever of current/candidate is better by wickets then
// by fewer runs conceded.
func bestBowlingLabel(current string, wickets, runsConceded int) string {
	candidate := fmt.Sprintf("%d/%d", wickets, runsConceded)
	if current == "" {
		return candidate
	}
	curWkts, curRuns := parseBestBowling(current)
	if wickets > curWkts || (wickets == curWkts && runsConceded < curRuns) {
		return candidate
	}
	return current
}

func parseBestBowling(s string) (wickets, runs int) {
	w, r, ok := strings.Cut(s, "/")
	if !ok {
		return 0, 0
	}
	wickets, _ = strconv.Atoi(w)
	runs, _ = strconv.Atoi(r)
	return wickets, runs
}

// ApplyPlayerStats folds one completed innings' batting/bowling cards into
// the per-season PlayerSeasonStats rows for every participant. stats is
// keyed by player and updated in place: existing rows are incremented, and a
// participant without a row gets a new one for seasonID and teamID.
func ApplyPlayerStats(seasonID core.SeasonID, teamID core.TeamID, innings core.InningsScorecard, stats map[core.PlayerID]*core.PlayerSeasonStats) {
	for _, b := range innings.Batting {
		row, ok := stats[b.PlayerID]
		if !ok {
			row = &core.PlayerSeasonStats{SeasonID: seasonID, PlayerID: b.PlayerID, TeamID: teamID}
			stats[b.PlayerID] = row
		}
		row.BatMatches++
		row.Runs += b.Runs
		row.BallsFaced += b.Balls
		row.Fours += b.Fours
		row.Sixes += b.Sixes
		if !b.IsOut {
			row.NotOuts++
		}
		if b.Runs > row.HighestScore {
			row.HighestScore = b.Runs
		}
	}
	for _, bw := range innings.Bowling {
		row, ok := stats[bw.PlayerID]
		if !ok {
			row = &core.PlayerSeasonStats{SeasonID: seasonID, PlayerID: bw.PlayerID, TeamID: teamID}
			stats[bw.PlayerID] = row
		}
		row.BowlMatches++
		row.Wickets += bw.Wickets
		row.OversBowled += bw.Overs
		row.RunsConceded += bw.RunsConceded
		row.BestBowling = bestBowlingLabel(row.BestBowling, bw.Wickets, bw.RunsConceded)
	}
}
