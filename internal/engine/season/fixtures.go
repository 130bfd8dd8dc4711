// Package season implements the fixture generation, standings, and
// playoff-bracket progression. Like the auction and match engines,
// it holds no persistence of its own: callers hand it teams/fixtures and
// persist whatever it returns.
package season

import (
	"math/rand"
	"sort"

	"cricketmgr.dev/core/internal/core"
)

// TotalLeagueMatches is the number of league fixtures for an 8-team,
// everyone-plays-everyone-twice (home and away) round robin: 8x7 = 56.
const TotalLeagueMatches = 56

type pair struct {
	team1, team2 core.TeamID
}

// GenerateFixtures implements a greedy balancer: enumerate every
// ordered pair, shuffle, then repeatedly pick the pair whose teams have
// gone longest since their last scheduled appearance, so no team plays
// back-to-back matches when avoidable. Venue is team1's home ground.
func GenerateFixtures(rng *rand.Rand, seasonID core.SeasonID, teams []core.Team) []core.Fixture {
	grounds := make(map[core.TeamID]string, len(teams))
	for _, t := range teams {
		grounds[t.ID] = t.HomeGround
	}

	var pairs []pair
	for i, t1 := range teams {
		for j, t2 := range teams {
			if i == j {
				continue
			}
			pairs = append(pairs, pair{t1.ID, t2.ID})
		}
	}
	rng.Shuffle(len(pairs), func(i, j int) { pairs[i], pairs[j] = pairs[j], pairs[i] })

	lastAppearance := make(map[core.TeamID]int, len(teams))
	for _, t := range teams {
		lastAppearance[t.ID] = -1000
	}

	fixtures := make([]core.Fixture, 0, len(pairs))
	remaining := pairs
	matchNumber := 1
	for len(remaining) > 0 {
		bestIdx := 0
		bestGap := -1 << 62
		for i, p := range remaining {
			gap := matchNumber - lastAppearance[p.team1]
			gap += matchNumber - lastAppearance[p.team2]
			if gap > bestGap {
				bestGap = gap
				bestIdx = i
			}
		}
		chosen := remaining[bestIdx]
		remaining = append(remaining[:bestIdx], remaining[bestIdx+1:]...)

		fixtures = append(fixtures, core.Fixture{
			SeasonID:    seasonID,
			MatchNumber: matchNumber,
			Type:        core.FixtureLeague,
			Team1ID:     chosen.team1,
			Team2ID:     chosen.team2,
			Venue:       grounds[chosen.team1],
			Status:      core.FixtureScheduled,
		})
		lastAppearance[chosen.team1] = matchNumber
		lastAppearance[chosen.team2] = matchNumber
		matchNumber++
	}
	return fixtures
}

// IsLeagueComplete reports whether there are exactly TotalLeagueMatches
// league fixtures and every one of them has status Completed.
func IsLeagueComplete(fixtures []core.Fixture) bool {
	count := 0
	for _, f := range fixtures {
		if f.Type != core.FixtureLeague {
			continue
		}
		if f.Status != core.FixtureCompleted {
			return false
		}
		count++
	}
	return count == TotalLeagueMatches
}

// StandingsRow pairs a team with its computed rank fields for sorting.
type StandingsRow struct {
	Stats  core.TeamSeasonStats
	TeamID core.TeamID
}

// RankStandings orders TeamSeasonStats: primary by points desc,
// secondary by net run rate desc.
func RankStandings(stats []core.TeamSeasonStats) []core.TeamSeasonStats {
	ranked := make([]core.TeamSeasonStats, len(stats))
	copy(ranked, stats)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Points != ranked[j].Points {
			return ranked[i].Points > ranked[j].Points
		}
		return ranked[i].NetRunRate() > ranked[j].NetRunRate()
	})
	return ranked
}

// GenerateQualifier1 builds the rank-1-vs-rank-2 fixture at rank-1's home.
func GenerateQualifier1(seasonID core.SeasonID, ranked []core.TeamSeasonStats, teams map[core.TeamID]core.Team, matchNumber int) core.Fixture {
	return core.Fixture{
		SeasonID: seasonID, MatchNumber: matchNumber, Type: core.FixtureQualifier1,
		Team1ID: ranked[0].TeamID, Team2ID: ranked[1].TeamID,
		Venue: teams[ranked[0].TeamID].HomeGround, Status: core.FixtureScheduled,
	}
}

// GenerateEliminator builds the rank-3-vs-rank-4 fixture at rank-3's home.
func GenerateEliminator(seasonID core.SeasonID, ranked []core.TeamSeasonStats, teams map[core.TeamID]core.Team, matchNumber int) core.Fixture {
	return core.Fixture{
		SeasonID: seasonID, MatchNumber: matchNumber, Type: core.FixtureEliminator,
		Team1ID: ranked[2].TeamID, Team2ID: ranked[3].TeamID,
		Venue: teams[ranked[2].TeamID].HomeGround, Status: core.FixtureScheduled,
	}
}

// GenerateQualifier2 builds loser(Q1) vs winner(Eliminator) at loser(Q1)'s
// home, once both Q1 and the Eliminator have completed.
func GenerateQualifier2(seasonID core.SeasonID, q1, eliminator core.Fixture, teams map[core.TeamID]core.Team, matchNumber int) core.Fixture {
	loserQ1 := q1.Team1ID
	if q1.WinnerID != nil && *q1.WinnerID == q1.Team1ID {
		loserQ1 = q1.Team2ID
	}
	winnerElim := *eliminator.WinnerID

	return core.Fixture{
		SeasonID: seasonID, MatchNumber: matchNumber, Type: core.FixtureQualifier2,
		Team1ID: loserQ1, Team2ID: winnerElim,
		Venue: teams[loserQ1].HomeGround, Status: core.FixtureScheduled,
	}
}

// GenerateFinal builds winner(Q1) vs winner(Q2) at a neutral venue, once Q2
// has completed.
func GenerateFinal(seasonID core.SeasonID, q1, q2 core.Fixture, matchNumber int) core.Fixture {
	return core.Fixture{
		SeasonID: seasonID, MatchNumber: matchNumber, Type: core.FixtureFinal,
		Team1ID: *q1.WinnerID, Team2ID: *q2.WinnerID,
		Venue: "Neutral Venue", Status: core.FixtureScheduled,
	}
}
