package api

import (
	"net/http"

	"cricketmgr.dev/core/internal/core"
)

// PlayerRoutes exposes read access to a career's generated player pool:
// listing (filterable by role, name, sold/unsold status) and detail lookup.
type PlayerRoutes struct {
	repo core.PlayerRepository
}

func NewPlayerRoutes(repo core.PlayerRepository) *PlayerRoutes {
	return &PlayerRoutes{repo: repo}
}

func (pr *PlayerRoutes) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/careers/{careerID}/players", pr.handleList)
	mux.HandleFunc("GET /v1/careers/{careerID}/players/{id}", pr.handleGet)
}

// handleList godoc
// @Summary List a career's player pool
// @Tags player
// @Produce json
// @Param careerID path string true "Career ID"
// @Param q query string false "Name search"
// @Param role query string false "Filter by role"
// @Param unsold query bool false "Only players not yet sold"
// @Param sort_by query string false "overall, base_price, or name"
// @Param page query int false "Page number"
// @Param per_page query int false "Results per page"
// @Success 200 {object} PaginatedResponse
// @Router /careers/{careerID}/players [get]
func (pr *PlayerRoutes) handleList(w http.ResponseWriter, r *http.Request) {
	careerID := core.CareerID(r.PathValue("careerID"))

	filter := core.PlayerFilter{
		NameQuery:  r.URL.Query().Get("q"),
		OnlyUnsold: r.URL.Query().Get("unsold") == "true",
		SortBy:     r.URL.Query().Get("sort_by"),
		Pagination: core.Pagination{
			Page:    getIntQuery(r, "page", 1),
			PerPage: getIntQuery(r, "per_page", 25),
		},
	}
	if role := r.URL.Query().Get("role"); role != "" {
		filter.Roles = []core.Role{core.Role(role)}
	}
	if r.URL.Query().Get("sort") == "desc" {
		filter.SortOrder = core.SortDesc
	} else {
		filter.SortOrder = core.SortAsc
	}

	players, err := pr.repo.List(r.Context(), careerID, filter)
	if err != nil {
		writeError(w, err)
		return
	}
	total, err := pr.repo.Count(r.Context(), careerID, filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, PaginatedResponse{
		Data:    players,
		Page:    filter.Pagination.Page,
		PerPage: filter.Pagination.PerPage,
		Total:   total,
	})
}

// handleGet godoc
// @Summary Get a single player
// @Tags player
// @Produce json
// @Param careerID path string true "Career ID"
// @Param id path string true "Player ID"
// @Success 200 {object} core.Player
// @Failure 404 {object} ErrorResponse
// @Router /careers/{careerID}/players/{id} [get]
func (pr *PlayerRoutes) handleGet(w http.ResponseWriter, r *http.Request) {
	careerID := core.CareerID(r.PathValue("careerID"))
	id := core.PlayerID(r.PathValue("id"))

	player, err := pr.repo.GetByID(r.Context(), careerID, id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, player)
}
