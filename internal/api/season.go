package api

import (
	"fmt"
	"net/http"

	"cricketmgr.dev/core/internal/cache"
	"cricketmgr.dev/core/internal/core"
	"cricketmgr.dev/core/internal/search"
	"cricketmgr.dev/core/internal/service"
)

var standingsTTL = cache.DefaultTTLConfig().List

// SeasonRoutes exposes season lifecycle operations (fixture generation,
// league simulation, playoff advancement, completion) plus read endpoints
// for fixtures, standings, and player stats.
type SeasonRoutes struct {
	svc         *service.Service
	seasons     core.SeasonRepository
	fixtures    core.FixtureRepository
	playerStats core.PlayerStatsRepository
	cache       *cache.Client
}

func NewSeasonRoutes(svc *service.Service, seasons core.SeasonRepository, fixtures core.FixtureRepository,
	playerStats core.PlayerStatsRepository, cacheClient *cache.Client) *SeasonRoutes {
	return &SeasonRoutes{svc: svc, seasons: seasons, fixtures: fixtures, playerStats: playerStats, cache: cacheClient}
}

func (sr *SeasonRoutes) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/seasons/{id}", sr.handleGetSeason)
	mux.HandleFunc("POST /v1/careers/{careerID}/seasons/{seasonID}/fixtures/generate", sr.handleGenerateFixtures)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/fixtures", sr.handleListFixtures)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/standings", sr.handleStandings)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/player-stats", sr.handlePlayerStats)
	mux.HandleFunc("POST /v1/careers/{careerID}/seasons/{seasonID}/simulate-all", sr.handleSimulateAll)
	mux.HandleFunc("POST /v1/careers/{careerID}/seasons/{seasonID}/playoffs/advance", sr.handleAdvancePlayoffs)
	mux.HandleFunc("POST /v1/careers/{careerID}/seasons/{seasonID}/complete", sr.handleComplete)
}

// handleGetSeason godoc
// @Summary Get a season
// @Tags season
// @Produce json
// @Param id path string true "Season ID"
// @Success 200 {object} core.Season
// @Failure 404 {object} ErrorResponse
// @Router /seasons/{id} [get]
func (sr *SeasonRoutes) handleGetSeason(w http.ResponseWriter, r *http.Request) {
	id := core.SeasonID(r.PathValue("id"))
	season, err := sr.seasons.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, season)
}

// handleGenerateFixtures godoc
// @Summary Generate the season's round-robin fixture list
// @Tags season
// @Produce json
// @Param careerID path string true "Career ID"
// @Param seasonID path string true "Season ID"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Router /careers/{careerID}/seasons/{seasonID}/fixtures/generate [post]
func (sr *SeasonRoutes) handleGenerateFixtures(w http.ResponseWriter, r *http.Request) {
	careerID := core.CareerID(r.PathValue("careerID"))
	seasonID := core.SeasonID(r.PathValue("seasonID"))

	if err := sr.svc.GenerateSeasonFixtures(r.Context(), careerID, seasonID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleListFixtures godoc
// @Summary List a season's fixtures
// @Tags season
// @Produce json
// @Param seasonID path string true "Season ID"
// @Param status query string false "Filter by status"
// @Param type query string false "Filter by fixture type"
// @Param team_id query string false "Filter by participating team"
// @Param q query string false "Free-text query, e.g. 'qualifier 1 2025'"
// @Success 200 {array} core.Fixture
// @Router /seasons/{seasonID}/fixtures [get]
func (sr *SeasonRoutes) handleListFixtures(w http.ResponseWriter, r *http.Request) {
	seasonID := core.SeasonID(r.PathValue("seasonID"))
	filter := core.FixtureFilter{SeasonID: &seasonID}

	if q := r.URL.Query().Get("q"); q != "" {
		parsed := search.ParseFixtureQuery(q)
		if parsed.FixtureType != nil {
			filter.Type = parsed.FixtureType
		}
	}
	if status := r.URL.Query().Get("status"); status != "" {
		s := core.FixtureStatus(status)
		filter.Status = &s
	}
	if typ := r.URL.Query().Get("type"); typ != "" {
		t := core.FixtureType(typ)
		filter.Type = &t
	}
	if teamID := r.URL.Query().Get("team_id"); teamID != "" {
		id := core.TeamID(teamID)
		filter.TeamID = &id
	}

	fixtures, err := sr.fixtures.List(r.Context(), filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fixtures)
}

// handleStandings godoc
// @Summary Get the season's points table, ranked by points then net run rate
// @Description Cached briefly since standings are read far more often than
// @Description they change.
// @Tags season
// @Produce json
// @Param seasonID path string true "Season ID"
// @Success 200 {array} core.TeamSeasonStats
// @Router /seasons/{seasonID}/standings [get]
func (sr *SeasonRoutes) handleStandings(w http.ResponseWriter, r *http.Request) {
	seasonID := core.SeasonID(r.PathValue("seasonID"))
	ctx := r.Context()

	if sr.cache == nil {
		standings, err := sr.svc.GetStandings(ctx, seasonID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, standings)
		return
	}

	key := fmt.Sprintf("standings:%s", seasonID)
	result, err := sr.cache.GetOrCompute(ctx, key, standingsTTL, func() (any, error) {
		return sr.svc.GetStandings(ctx, seasonID)
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handlePlayerStats godoc
// @Summary Get every player's aggregate batting/bowling stats for a season
// @Tags season
// @Produce json
// @Param seasonID path string true "Season ID"
// @Success 200 {array} core.PlayerSeasonStats
// @Router /seasons/{seasonID}/player-stats [get]
func (sr *SeasonRoutes) handlePlayerStats(w http.ResponseWriter, r *http.Request) {
	seasonID := core.SeasonID(r.PathValue("seasonID"))
	stats, err := sr.playerStats.ListBySeason(r.Context(), seasonID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// handleSimulateAll godoc
// @Summary Simulate every scheduled league fixture not involving the user's team
// @Tags season
// @Produce json
// @Param careerID path string true "Career ID"
// @Param seasonID path string true "Season ID"
// @Success 204
// @Router /careers/{careerID}/seasons/{seasonID}/simulate-all [post]
func (sr *SeasonRoutes) handleSimulateAll(w http.ResponseWriter, r *http.Request) {
	careerID := core.CareerID(r.PathValue("careerID"))
	seasonID := core.SeasonID(r.PathValue("seasonID"))

	if err := sr.svc.SimulateAllLeagueMatches(r.Context(), careerID, seasonID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAdvancePlayoffs godoc
// @Summary Schedule the next unlocked playoff fixture
// @Tags season
// @Produce json
// @Param careerID path string true "Career ID"
// @Param seasonID path string true "Season ID"
// @Success 200 {object} core.Fixture
// @Success 204 "playoffs not yet ready to advance"
// @Router /careers/{careerID}/seasons/{seasonID}/playoffs/advance [post]
func (sr *SeasonRoutes) handleAdvancePlayoffs(w http.ResponseWriter, r *http.Request) {
	careerID := core.CareerID(r.PathValue("careerID"))
	seasonID := core.SeasonID(r.PathValue("seasonID"))

	fixture, err := sr.svc.AdvancePlayoffs(r.Context(), careerID, seasonID)
	if err != nil {
		writeError(w, err)
		return
	}
	if fixture == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, fixture)
}

// handleComplete godoc
// @Summary Close out the season once the final has been played
// @Tags season
// @Produce json
// @Param careerID path string true "Career ID"
// @Param seasonID path string true "Season ID"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Router /careers/{careerID}/seasons/{seasonID}/complete [post]
func (sr *SeasonRoutes) handleComplete(w http.ResponseWriter, r *http.Request) {
	careerID := core.CareerID(r.PathValue("careerID"))
	seasonID := core.SeasonID(r.PathValue("seasonID"))

	if err := sr.svc.CompleteSeason(r.Context(), careerID, seasonID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
