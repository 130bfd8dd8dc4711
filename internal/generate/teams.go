// Package generate produces a new career's starting world: the fixed
// 8-team franchise table and the ~230-player auction pool.
package generate

import "cricketmgr.dev/core/internal/core"

// franchiseTemplate is the static branding data for one of the 8 franchises;
// budgets and ownership are assigned fresh per career.
type franchiseTemplate struct {
	name, short, city, ground, primary, secondary string
}

var franchiseTable = []franchiseTemplate{
	{"Mumbai Monarchs", "MUM", "Mumbai", "Wankhede Stadium", "#0047AB", "#FFD700"},
	{"Chennai Kings", "CHE", "Chennai", "M.A. Chidambaram Stadium", "#FFCC00", "#001F54"},
	{"Bangalore Strikers", "BLR", "Bangalore", "M. Chinnaswamy Stadium", "#EC1C24", "#000000"},
	{"Kolkata Riders", "KOL", "Kolkata", "Eden Gardens", "#3A225D", "#D4AF37"},
	{"Delhi Capitals", "DEL", "Delhi", "Arun Jaitley Stadium", "#004C93", "#EF1C25"},
	{"Punjab Lions", "PUN", "Mohali", "IS Bindra Stadium", "#ED1C24", "#AAABAC"},
	{"Rajasthan Royals", "RAJ", "Jaipur", "Sawai Mansingh Stadium", "#254AA5", "#FFC0CB"},
	{"Hyderabad Suns", "HYD", "Hyderabad", "Rajiv Gandhi Stadium", "#F7A721", "#000000"},
}

// DefaultBudget is the per-team starting purse, also used as the salary cap.
const DefaultBudget int64 = 900_000_000

// NewFranchises returns the fixed set of 8 teams for a new career. userTeamIdx
// selects which team's IsUserTeam flag is set exactly once; it must be in
// [0, 8).
func NewFranchises(userTeamIdx int) ([]core.Team, error) {
	if userTeamIdx < 0 || userTeamIdx >= len(franchiseTable) {
		return nil, core.NewValidationError("user_team_index", "must be in [0,8)")
	}
	teams := make([]core.Team, len(franchiseTable))
	for i, t := range franchiseTable {
		teams[i] = core.Team{
			ID:              core.TeamID(t.short),
			Name:            t.name,
			ShortName:       t.short,
			City:            t.city,
			HomeGround:      t.ground,
			PrimaryColour:   t.primary,
			SecondaryColour: t.secondary,
			Budget:          DefaultBudget,
			RemainingBudget: DefaultBudget,
			IsUserTeam:      i == userTeamIdx,
		}
	}
	return teams, nil
}
