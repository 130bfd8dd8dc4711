package api

import (
	"encoding/json"
	"net/http"

	"cricketmgr.dev/core/internal/core"
	"cricketmgr.dev/core/internal/service"
)

// CareerRoutes exposes career lifecycle operations: creation, lookup, and
// the per-user list a player picks up an in-progress career from.
type CareerRoutes struct {
	svc  *service.Service
	repo core.CareerRepository
}

func NewCareerRoutes(svc *service.Service, repo core.CareerRepository) *CareerRoutes {
	return &CareerRoutes{svc: svc, repo: repo}
}

func (cr *CareerRoutes) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/users/{userID}/careers", cr.handleCreate)
	mux.HandleFunc("GET /v1/users/{userID}/careers", cr.handleListByUser)
	mux.HandleFunc("GET /v1/careers/{id}", cr.handleGet)
}

type createCareerRequest struct {
	Name        string `json:"name"`
	UserTeamIdx int    `json:"user_team_idx"`
}

// handleCreate godoc
// @Summary Start a new career
// @Description Enforces the per-user career cap, generates the 8 franchises
// @Description and the player pool, and creates the career's first season.
// @Tags career
// @Accept json
// @Produce json
// @Param userID path string true "User ID"
// @Success 201 {object} core.Career
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /users/{userID}/careers [post]
func (cr *CareerRoutes) handleCreate(w http.ResponseWriter, r *http.Request) {
	userID := core.UserID(r.PathValue("userID"))

	var req createCareerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, "invalid request body")
		return
	}
	if req.Name == "" {
		writeBadRequest(w, "name is required")
		return
	}
	idx := req.UserTeamIdx
	if idx == 0 {
		idx = -1 // 0 is also the JSON default for an absent field, so it means "no preference" (random team); franchise 0 cannot be picked explicitly
	}

	career, err := cr.svc.CreateCareer(r.Context(), userID, req.Name, idx)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, career)
}

// handleGet godoc
// @Summary Get a career
// @Tags career
// @Produce json
// @Param id path string true "Career ID"
// @Success 200 {object} core.Career
// @Failure 404 {object} ErrorResponse
// @Router /careers/{id} [get]
func (cr *CareerRoutes) handleGet(w http.ResponseWriter, r *http.Request) {
	id := core.CareerID(r.PathValue("id"))
	career, err := cr.repo.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, career)
}

// handleListByUser godoc
// @Summary List a user's careers
// @Tags career
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {array} core.Career
// @Router /users/{userID}/careers [get]
func (cr *CareerRoutes) handleListByUser(w http.ResponseWriter, r *http.Request) {
	userID := core.UserID(r.PathValue("userID"))
	careers, err := cr.repo.ListByUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, careers)
}
