// Package search parses free-text fixture search queries into structured
// filter components (season year, playoff stage, participating franchise)
// so callers can layer natural-language search on top of core.FixtureFilter.
package search

import (
	"regexp"
	"strconv"
	"strings"

	"cricketmgr.dev/core/internal/core"
)

// FixtureQuery represents parsed natural language query components for
// fixture search, e.g. "mumbai vs chennai qualifier 1 2025".
type FixtureQuery struct {
	RawQuery    string
	Season      *int
	HomeTeamID  *string
	AwayTeamID  *string
	FixtureType *core.FixtureType
}

var (
	// Regex to match 4-digit years
	yearPattern = regexp.MustCompile(`\b(20\d{2})\b`)

	// Common playoff-stage keywords mapped to core.FixtureType values
	stageKeywords = map[string]core.FixtureType{
		"qualifier 1":  core.FixtureQualifier1,
		"qualifier1":   core.FixtureQualifier1,
		"eliminator":   core.FixtureEliminator,
		"qualifier 2":  core.FixtureQualifier2,
		"qualifier2":   core.FixtureQualifier2,
		"final":        core.FixtureFinal,
		"league":       core.FixtureLeague,
		"league stage": core.FixtureLeague,
	}
)

// ParseFixtureQuery extracts structured filters from a natural language
// query. It identifies a season year and a playoff stage; team names are
// left to EnrichWithTeamAliases since resolving them requires a lookup
// against the career's actual franchise names.
func ParseFixtureQuery(raw string) FixtureQuery {
	query := FixtureQuery{RawQuery: raw}

	normalized := strings.ToLower(strings.TrimSpace(raw))

	if matches := yearPattern.FindStringSubmatch(normalized); len(matches) > 1 {
		if year, err := strconv.Atoi(matches[1]); err == nil {
			query.Season = &year
		}
	}

	for keyword, fixtureType := range stageKeywords {
		if strings.Contains(normalized, keyword) {
			t := fixtureType
			query.FixtureType = &t
			break
		}
	}

	return query
}

// TeamAliasResolver resolves a team name or short name to its ID within one
// career's fixed 8-franchise set.
type TeamAliasResolver interface {
	ResolveTeamAlias(alias string) (core.TeamID, bool)
}

// EnrichWithTeamAliases scans the raw query for franchise name tokens and
// fills HomeTeamID/AwayTeamID in the order they're found. A query
// naming only one team leaves AwayTeamID nil.
func (q *FixtureQuery) EnrichWithTeamAliases(resolver TeamAliasResolver) {
	normalized := strings.ToLower(q.RawQuery)
	tokens := strings.Fields(normalized)

	tryAssign := func(alias string) {
		teamID, ok := resolver.ResolveTeamAlias(alias)
		if !ok {
			return
		}
		if q.HomeTeamID == nil {
			id := string(teamID)
			q.HomeTeamID = &id
		} else if q.AwayTeamID == nil && *q.HomeTeamID != string(teamID) {
			id := string(teamID)
			q.AwayTeamID = &id
		}
	}

	for i := range tokens {
		tryAssign(tokens[i])
		if i < len(tokens)-1 {
			tryAssign(tokens[i] + " " + tokens[i+1])
		}
	}
}
