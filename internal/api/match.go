package api

import (
	"encoding/json"
	"net/http"

	"cricketmgr.dev/core/internal/core"
	matchengine "cricketmgr.dev/core/internal/engine/match"
	"cricketmgr.dev/core/internal/service"
)

// MatchRoutes exposes the ball-by-ball live-match loop: toss, start, bowler
// selection, delivery/over/innings simulation, and scorecard retrieval.
type MatchRoutes struct {
	svc *service.Service
}

func NewMatchRoutes(svc *service.Service) *MatchRoutes {
	return &MatchRoutes{svc: svc}
}

func (mr *MatchRoutes) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/careers/{careerID}/fixtures/{fixtureID}/toss", mr.handleToss)
	mux.HandleFunc("POST /v1/careers/{careerID}/fixtures/{fixtureID}/start", mr.handleStart)
	mux.HandleFunc("GET /v1/careers/{careerID}/fixtures/{fixtureID}/bowlers", mr.handleAvailableBowlers)
	mux.HandleFunc("POST /v1/careers/{careerID}/fixtures/{fixtureID}/bowler", mr.handleSelectBowler)
	mux.HandleFunc("POST /v1/careers/{careerID}/fixtures/{fixtureID}/ball", mr.handlePlayBall)
	mux.HandleFunc("POST /v1/careers/{careerID}/fixtures/{fixtureID}/over", mr.handleSimulateOver)
	mux.HandleFunc("POST /v1/careers/{careerID}/fixtures/{fixtureID}/innings", mr.handleSimulateInnings)
	mux.HandleFunc("GET /v1/careers/{careerID}/fixtures/{fixtureID}/scorecard", mr.handleScorecard)
	mux.HandleFunc("GET /v1/careers/{careerID}/fixtures/{fixtureID}/result", mr.handleResult)
}

type tossResponse struct {
	WinnerID core.TeamID `json:"winner_id"`
}

// handleToss godoc
// @Summary Flip the coin for a scheduled fixture
// @Tags match
// @Produce json
// @Param careerID path string true "Career ID"
// @Param fixtureID path string true "Fixture ID"
// @Success 200 {object} tossResponse
// @Router /careers/{careerID}/fixtures/{fixtureID}/toss [post]
func (mr *MatchRoutes) handleToss(w http.ResponseWriter, r *http.Request) {
	careerID := core.CareerID(r.PathValue("careerID"))
	fixtureID := core.FixtureID(r.PathValue("fixtureID"))

	winner, err := mr.svc.DoToss(r.Context(), careerID, fixtureID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tossResponse{WinnerID: winner})
}

type startMatchRequest struct {
	TossWinnerElectsToBat bool `json:"toss_winner_elects_to_bat"`
}

// handleStart godoc
// @Summary Start the match following the toss decision
// @Tags match
// @Accept json
// @Produce json
// @Param careerID path string true "Career ID"
// @Param fixtureID path string true "Fixture ID"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Router /careers/{careerID}/fixtures/{fixtureID}/start [post]
func (mr *MatchRoutes) handleStart(w http.ResponseWriter, r *http.Request) {
	careerID := core.CareerID(r.PathValue("careerID"))
	fixtureID := core.FixtureID(r.PathValue("fixtureID"))

	var req startMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	if err := mr.svc.StartMatch(r.Context(), careerID, fixtureID, req.TossWinnerElectsToBat); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAvailableBowlers godoc
// @Summary List bowlers eligible to bowl the next over
// @Tags match
// @Produce json
// @Param careerID path string true "Career ID"
// @Param fixtureID path string true "Fixture ID"
// @Success 200 {array} core.Player
// @Router /careers/{careerID}/fixtures/{fixtureID}/bowlers [get]
func (mr *MatchRoutes) handleAvailableBowlers(w http.ResponseWriter, r *http.Request) {
	fixtureID := core.FixtureID(r.PathValue("fixtureID"))

	bowlers, err := mr.svc.AvailableBowlers(fixtureID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bowlers)
}

type selectBowlerRequest struct {
	BowlerID core.PlayerID `json:"bowler_id"`
}

// handleSelectBowler godoc
// @Summary Name the bowler for the next over
// @Tags match
// @Accept json
// @Produce json
// @Param careerID path string true "Career ID"
// @Param fixtureID path string true "Fixture ID"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Router /careers/{careerID}/fixtures/{fixtureID}/bowler [post]
func (mr *MatchRoutes) handleSelectBowler(w http.ResponseWriter, r *http.Request) {
	fixtureID := core.FixtureID(r.PathValue("fixtureID"))

	var req selectBowlerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.BowlerID == "" {
		writeBadRequest(w, "bowler_id is required")
		return
	}

	if err := mr.svc.SelectBowler(fixtureID, req.BowlerID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type ballRequest struct {
	Aggression       matchengine.Aggression `json:"aggression"`
	UserTeamFielding bool                   `json:"user_team_fielding"`
}

func parseAggression(v matchengine.Aggression) matchengine.Aggression {
	switch v {
	case matchengine.AggressionDefend, matchengine.AggressionAttack:
		return v
	default:
		return matchengine.AggressionBalance
	}
}

// handlePlayBall godoc
// @Summary Resolve one delivery against the live match
// @Tags match
// @Accept json
// @Produce json
// @Param careerID path string true "Career ID"
// @Param fixtureID path string true "Fixture ID"
// @Success 200 {object} matchengine.PlayBallResult
// @Failure 400 {object} ErrorResponse
// @Router /careers/{careerID}/fixtures/{fixtureID}/ball [post]
func (mr *MatchRoutes) handlePlayBall(w http.ResponseWriter, r *http.Request) {
	careerID := core.CareerID(r.PathValue("careerID"))
	fixtureID := core.FixtureID(r.PathValue("fixtureID"))

	var req ballRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	result, err := mr.svc.PlayBall(r.Context(), careerID, fixtureID, parseAggression(req.Aggression), req.UserTeamFielding)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type overRequest struct {
	Aggression matchengine.Aggression `json:"aggression"`
}

// handleSimulateOver godoc
// @Summary Simulate a full over of AI bowling/batting
// @Tags match
// @Accept json
// @Produce json
// @Param careerID path string true "Career ID"
// @Param fixtureID path string true "Fixture ID"
// @Success 200 {array} matchengine.PlayBallResult
// @Router /careers/{careerID}/fixtures/{fixtureID}/over [post]
func (mr *MatchRoutes) handleSimulateOver(w http.ResponseWriter, r *http.Request) {
	careerID := core.CareerID(r.PathValue("careerID"))
	fixtureID := core.FixtureID(r.PathValue("fixtureID"))

	var req overRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	results, err := mr.svc.SimulateOver(r.Context(), careerID, fixtureID, parseAggression(req.Aggression))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// handleSimulateInnings godoc
// @Summary Simulate the current innings to completion
// @Tags match
// @Accept json
// @Produce json
// @Param careerID path string true "Career ID"
// @Param fixtureID path string true "Fixture ID"
// @Success 204
// @Router /careers/{careerID}/fixtures/{fixtureID}/innings [post]
func (mr *MatchRoutes) handleSimulateInnings(w http.ResponseWriter, r *http.Request) {
	careerID := core.CareerID(r.PathValue("careerID"))
	fixtureID := core.FixtureID(r.PathValue("fixtureID"))

	var req overRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}

	if err := mr.svc.SimulateInnings(r.Context(), careerID, fixtureID, parseAggression(req.Aggression)); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type scorecardResponse struct {
	Innings1 core.InningsScorecard `json:"innings_1"`
	Innings2 core.InningsScorecard `json:"innings_2"`
}

// handleScorecard godoc
// @Summary Read-only snapshot of the innings in progress
// @Tags match
// @Produce json
// @Param careerID path string true "Career ID"
// @Param fixtureID path string true "Fixture ID"
// @Success 200 {object} scorecardResponse
// @Router /careers/{careerID}/fixtures/{fixtureID}/scorecard [get]
func (mr *MatchRoutes) handleScorecard(w http.ResponseWriter, r *http.Request) {
	fixtureID := core.FixtureID(r.PathValue("fixtureID"))

	innings1, innings2, err := mr.svc.LiveScorecard(fixtureID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scorecardResponse{Innings1: innings1, Innings2: innings2})
}

// handleResult godoc
// @Summary Fetch and clear the short-lived completed-match result
// @Tags match
// @Produce json
// @Param careerID path string true "Career ID"
// @Param fixtureID path string true "Fixture ID"
// @Success 200 {object} core.Match
// @Failure 404 {object} ErrorResponse
// @Router /careers/{careerID}/fixtures/{fixtureID}/result [get]
func (mr *MatchRoutes) handleResult(w http.ResponseWriter, r *http.Request) {
	fixtureID := core.FixtureID(r.PathValue("fixtureID"))

	match, ok := mr.svc.MatchResult(fixtureID)
	if !ok {
		writeNotFound(w, "match result")
		return
	}
	writeJSON(w, http.StatusOK, match)
}
