// Package service is the thin collaborator layer: it wires internal/core
// repositories, internal/generate, internal/engine/*, and
// internal/matchsession together, owns per-career exclusive locking, and
// translates engine-level failures into the internal/core error taxonomy.
// It is the only layer that touches both persistence and an engine;
// internal/engine/* never imports internal/core's repository interfaces.
package service

import (
	"sync"

	"github.com/charmbracelet/log"

	"cricketmgr.dev/core/internal/config"
	"cricketmgr.dev/core/internal/core"
	"cricketmgr.dev/core/internal/matchsession"
)

// Service is the application's single entry point for career, auction,
// match, and season operations. One Service is shared process-wide;
// per-career mutual exclusion is implemented internally via careerLocks,
// not by the caller.
type Service struct {
	logger *log.Logger
	cfg    config.CareerConfig

	Careers   core.CareerRepository
	Players   core.PlayerRepository
	Teams     core.TeamRepository
	Seasons   core.SeasonRepository
	Fixtures  core.FixtureRepository
	Standings core.StandingsRepository
	PlayerStats core.PlayerStatsRepository
	Auctions  core.AuctionRepository
	XIs       core.PlayingXIRepository
	Matches   core.MatchRepository

	Sessions *matchsession.Cache

	careerLocks sync.Map // core.CareerID -> *sync.Mutex
}

// New assembles a Service from its repositories and the career config
// surface. logger may be nil.
func New(logger *log.Logger, cfg config.CareerConfig, careers core.CareerRepository, players core.PlayerRepository, teams core.TeamRepository, seasons core.SeasonRepository, fixtures core.FixtureRepository, standings core.StandingsRepository, playerStats core.PlayerStatsRepository, auctions core.AuctionRepository, xis core.PlayingXIRepository, matches core.MatchRepository) *Service {
	return &Service{
		logger: logger, cfg: cfg,
		Careers: careers, Players: players, Teams: teams, Seasons: seasons,
		Fixtures: fixtures, Standings: standings, PlayerStats: playerStats,
		Auctions: auctions, XIs: xis, Matches: matches,
		Sessions: matchsession.New(),
	}
}

// lockCareer returns the exclusive mutex for one career, creating it on
// first use. Every career-scoped operation in this package acquires it
// before touching that career's rows.
func (s *Service) lockCareer(id core.CareerID) *sync.Mutex {
	actual, _ := s.careerLocks.LoadOrStore(id, &sync.Mutex{})
	return actual.(*sync.Mutex)
}

// WithCareerLock runs fn with the named career's exclusive lock held.
func (s *Service) WithCareerLock(id core.CareerID, fn func() error) error {
	mu := s.lockCareer(id)
	mu.Lock()
	defer mu.Unlock()
	return fn()
}

func (s *Service) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Debugf(format, args...)
	}
}
