package api

import (
	"encoding/json"
	"net/http"

	"cricketmgr.dev/core/internal/core"
)

// TeamRoutes exposes a career's fixed 8-team set and each team's playing XI
// selection for a season.
type TeamRoutes struct {
	teams core.TeamRepository
	xis   core.PlayingXIRepository
}

func NewTeamRoutes(teams core.TeamRepository, xis core.PlayingXIRepository) *TeamRoutes {
	return &TeamRoutes{teams: teams, xis: xis}
}

func (tr *TeamRoutes) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/careers/{careerID}/teams", tr.handleList)
	mux.HandleFunc("GET /v1/careers/{careerID}/teams/{id}", tr.handleGet)
	mux.HandleFunc("GET /v1/teams/{teamID}/seasons/{seasonID}/xi", tr.handleGetXI)
	mux.HandleFunc("PUT /v1/teams/{teamID}/seasons/{seasonID}/xi", tr.handleSetXI)
}

// handleList godoc
// @Summary List a career's 8 franchises
// @Tags team
// @Produce json
// @Param careerID path string true "Career ID"
// @Success 200 {array} core.Team
// @Router /careers/{careerID}/teams [get]
func (tr *TeamRoutes) handleList(w http.ResponseWriter, r *http.Request) {
	careerID := core.CareerID(r.PathValue("careerID"))
	teams, err := tr.teams.List(r.Context(), careerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, teams)
}

// handleGet godoc
// @Summary Get a single franchise
// @Tags team
// @Produce json
// @Param careerID path string true "Career ID"
// @Param id path string true "Team ID"
// @Success 200 {object} core.Team
// @Failure 404 {object} ErrorResponse
// @Router /careers/{careerID}/teams/{id} [get]
func (tr *TeamRoutes) handleGet(w http.ResponseWriter, r *http.Request) {
	careerID := core.CareerID(r.PathValue("careerID"))
	id := core.TeamID(r.PathValue("id"))
	team, err := tr.teams.GetByID(r.Context(), careerID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, team)
}

// handleGetXI godoc
// @Summary Get a team's playing XI for a season
// @Tags team
// @Produce json
// @Param teamID path string true "Team ID"
// @Param seasonID path string true "Season ID"
// @Success 200 {array} core.PlayingXI
// @Failure 404 {object} ErrorResponse
// @Router /teams/{teamID}/seasons/{seasonID}/xi [get]
func (tr *TeamRoutes) handleGetXI(w http.ResponseWriter, r *http.Request) {
	teamID := core.TeamID(r.PathValue("teamID"))
	seasonID := core.SeasonID(r.PathValue("seasonID"))
	xi, err := tr.xis.Get(r.Context(), teamID, seasonID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, xi)
}

type setXIRequest struct {
	Players []core.PlayingXI `json:"players"`
}

// handleSetXI godoc
// @Summary Set a team's playing XI for a season
// @Description Replaces the full 11-player selection in one call.
// @Tags team
// @Accept json
// @Produce json
// @Param teamID path string true "Team ID"
// @Param seasonID path string true "Season ID"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Router /teams/{teamID}/seasons/{seasonID}/xi [put]
func (tr *TeamRoutes) handleSetXI(w http.ResponseWriter, r *http.Request) {
	teamID := core.TeamID(r.PathValue("teamID"))
	seasonID := core.SeasonID(r.PathValue("seasonID"))

	var req setXIRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if len(req.Players) != 11 {
		writeBadRequest(w, "exactly 11 players must be selected")
		return
	}
	for i := range req.Players {
		req.Players[i].TeamID = teamID
		req.Players[i].SeasonID = seasonID
	}

	if err := tr.xis.Set(r.Context(), teamID, seasonID, req.Players); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
