// Package api provides HTTP handlers for the cricket franchise manager API
//
// @title Cricket Manager API
// @description.markdown
// @version 1.0
// @BasePath /v1
//
// @contact.name API Support
// @contact.url https://github.com/cricketmgr/core
// @contact.email support@cricketmgr.dev
//
// @license.name MPL-2.0
// @license.url https://opensource.org/license/mpl-2-0
//
// @tag.name career
// @tag.description Career creation and lookup
//
// @tag.name team
// @tag.description Franchise data and playing XI selection
//
// @tag.name player
// @tag.description Generated player pool browsing
//
// @tag.name auction
// @tag.description Sealed-ascending player auction
//
// @tag.name match
// @tag.description Ball-by-ball live match play
//
// @tag.name season
// @tag.description Fixtures, standings, playoffs, season completion
//
// @tag.name auth
// @tag.description OAuth login and API key management
package api

import (
	"database/sql"
	_ "expvar"
	"net/http"

	"cricketmgr.dev/core/internal/cache"
	"cricketmgr.dev/core/internal/config"
	"cricketmgr.dev/core/internal/echo"
	"cricketmgr.dev/core/internal/repository"
	"cricketmgr.dev/core/internal/service"
)

type Server struct {
	mux *http.ServeMux
}

// NewServer wires every repository, the Service collaborator, and every
// route group into one mux. Swagger doc serving (the teacher's
// httpSwagger-backed /docs/ route) is not carried forward here: see
// DESIGN.md for why.
func NewServer(db *sql.DB, cacheClient *cache.Client, careerCfg config.CareerConfig) *Server {
	echo.Info("Initializing repositories...")

	careerRepo := repository.NewCareerRepository(db)
	playerRepo := repository.NewPlayerRepository(db)
	teamRepo := repository.NewTeamRepository(db)
	seasonRepo := repository.NewSeasonRepository(db)
	fixtureRepo := repository.NewFixtureRepository(db)
	standingsRepo := repository.NewStandingsRepository(db)
	playerStatsRepo := repository.NewPlayerStatsRepository(db)
	auctionRepo := repository.NewAuctionRepository(db)
	xiRepo := repository.NewPlayingXIRepository(db)
	matchRepo := repository.NewMatchRepository(db)

	userRepo := repository.NewUserRepository(db)
	apiKeyRepo := repository.NewAPIKeyRepository(db)
	tokenRepo := repository.NewOAuthTokenRepository(db)

	svc := service.New(nil, careerCfg, careerRepo, playerRepo, teamRepo, seasonRepo, fixtureRepo,
		standingsRepo, playerStatsRepo, auctionRepo, xiRepo, matchRepo)

	echo.Info("Registering routes...")

	return newServer(
		NewCareerRoutes(svc, careerRepo),
		NewTeamRoutes(teamRepo, xiRepo),
		NewPlayerRoutes(playerRepo),
		NewSeasonRoutes(svc, seasonRepo, fixtureRepo, playerStatsRepo, cacheClient),
		NewAuctionRoutes(svc),
		NewMatchRoutes(svc),
		NewAuthRoutes(userRepo, tokenRepo, apiKeyRepo),
	)
}

// newServer wires all registrars into one mux.
func newServer(registrars ...Registrar) *Server {
	mux := http.NewServeMux()

	for _, r := range registrars {
		r.RegisterRoutes(mux)
	}

	// Health check endpoint
	// @Summary Health check
	// @Description Check if the API server is running
	// @Tags health
	// @Accept json
	// @Produce json
	// @Success 200 {object} HealthResponse
	// @Router /health [get]
	mux.HandleFunc("GET /v1/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	})

	mux.Handle("GET /debug/vars", http.DefaultServeMux)
	return &Server{mux: mux}
}

// Implement http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}
