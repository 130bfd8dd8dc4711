package service

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"fmt"
	"math/big"
	mrand "math/rand"
	"time"

	"cricketmgr.dev/core/internal/core"
	"cricketmgr.dev/core/internal/generate"
)

// newSeed draws a fresh RNG seed from crypto/rand. This is the one place a
// seed originates from outside the engine; every engine instance
// downstream is still constructed with its own explicit *rand.Rand, never
// a shared or global source.
func newSeed() int64 {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.BigEndian.Uint64(buf[:]))
}

func randomTeamIndex() (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(8))
	if err != nil {
		return 0, err
	}
	return int(n.Int64()), nil
}

// CreateCareer implements new_career: enforces the per-user career limit,
// generates the 8 franchises and the player pool, and creates the career's
// first season in NotStarted phase ready for the auction.
func (s *Service) CreateCareer(ctx context.Context, userID core.UserID, name string, userTeamIdx int) (*core.Career, error) {
	count, err := s.Careers.CountByUser(ctx, userID)
	if err != nil {
		return nil, core.NewInternalError(fmt.Errorf("count careers by user: %w", err))
	}
	if count >= s.cfg.MaxCareersPerUser {
		return nil, core.NewCapacityError("careers_per_user", s.cfg.MaxCareersPerUser)
	}

	if userTeamIdx < 0 {
		idx, err := randomTeamIndex()
		if err != nil {
			return nil, core.NewInternalError(fmt.Errorf("pick random user team: %w", err))
		}
		userTeamIdx = idx
	}

	teams, err := generate.NewFranchises(userTeamIdx)
	if err != nil {
		return nil, core.NewValidationError("user_team_idx", err.Error())
	}
	for i := range teams {
		teams[i].Budget = s.cfg.TeamInitialBudget
		teams[i].RemainingBudget = s.cfg.TeamInitialBudget
	}

	career := &core.Career{
		ID:           core.CareerID(fmt.Sprintf("career-%d", newSeed())),
		UserID:       userID,
		Name:         name,
		Status:       core.CareerSetup,
		SeasonNumber: 1,
		UserTeamID:   teams[userTeamIdx].ID,
		CreatedAt:    time.Now(),
	}
	if err := s.Careers.Create(ctx, career); err != nil {
		return nil, core.NewInternalError(fmt.Errorf("create career: %w", err))
	}
	if err := s.Teams.CreateBatch(ctx, career.ID, teams); err != nil {
		return nil, core.NewInternalError(fmt.Errorf("create teams: %w", err))
	}

	rng := mrand.New(mrand.NewSource(newSeed()))
	players := generate.GeneratePool(s.cfg.PoolTarget, rng)
	if err := s.Players.CreateBatch(ctx, career.ID, players); err != nil {
		return nil, core.NewInternalError(fmt.Errorf("create player pool: %w", err))
	}

	season := &core.Season{
		ID:                 core.SeasonID(fmt.Sprintf("%s-s1", career.ID)),
		CareerID:           career.ID,
		SeasonNumber:       1,
		Phase:              core.SeasonNotStarted,
		TotalLeagueMatches: 56,
	}
	if err := s.Seasons.Create(ctx, season); err != nil {
		return nil, core.NewInternalError(fmt.Errorf("create season: %w", err))
	}

	career.Status = core.CareerPreAuction
	if err := s.Careers.Update(ctx, career); err != nil {
		return nil, core.NewInternalError(fmt.Errorf("advance career to pre-auction: %w", err))
	}
	return career, nil
}
