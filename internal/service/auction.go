package service

import (
	"context"
	"fmt"
	mrand "math/rand"

	"cricketmgr.dev/core/internal/core"
	auctionengine "cricketmgr.dev/core/internal/engine/auction"
)

// StartAuction implements the Auction's start operation: loads the career's
// teams and player pool, runs Initialize, and persists the resulting
// queue/team-state rows. The whole operation runs under the career's
// exclusive lock.
func (s *Service) StartAuction(ctx context.Context, careerID core.CareerID, seasonID core.SeasonID) (*core.Auction, error) {
	var result *core.Auction
	err := s.WithCareerLock(careerID, func() error {
		career, err := s.Careers.GetByID(ctx, careerID)
		if err != nil {
			return core.NewNotFoundError("career", string(careerID))
		}
		if career.Status != core.CareerPreAuction {
			return core.NewInvalidStateError("career", string(career.Status), "auction can only start from PreAuction")
		}

		teams, err := s.Teams.List(ctx, careerID)
		if err != nil {
			return core.NewInternalError(fmt.Errorf("list teams: %w", err))
		}
		players, err := s.Players.List(ctx, careerID, core.PlayerFilter{OnlyUnsold: true})
		if err != nil {
			return core.NewInternalError(fmt.Errorf("list players: %w", err))
		}

		rules := core.DefaultAuctionRules(s.cfg.SalaryCap)
		rules.MinSquad, rules.MaxSquad, rules.MaxOverseas = s.cfg.MinSquad, s.cfg.MaxSquad, s.cfg.MaxOverseas

		eng := auctionengine.New(mrand.New(mrand.NewSource(newSeed())), s.logger)
		auctionID := core.AuctionID(fmt.Sprintf("%s-auction", seasonID))
		eng.Initialize(auctionID, players, teams, rules, career.UserTeamID)
		eng.Auction.SeasonID = seasonID

		if err := s.Auctions.Create(ctx, &eng.Auction); err != nil {
			return core.NewInternalError(fmt.Errorf("create auction: %w", err))
		}
		if err := s.Auctions.CreateEntries(ctx, eng.Entries); err != nil {
			return core.NewInternalError(fmt.Errorf("create auction entries: %w", err))
		}
		for _, st := range eng.TeamStates {
			if err := s.Auctions.UpsertTeamState(ctx, st); err != nil {
				return core.NewInternalError(fmt.Errorf("upsert team state: %w", err))
			}
		}

		career.Status = core.CareerAuction
		if err := s.Careers.Update(ctx, career); err != nil {
			return core.NewInternalError(fmt.Errorf("advance career to auction: %w", err))
		}
		result = &eng.Auction
		return nil
	})
	return result, err
}

// loadAuctionEngine rehydrates an auction engine's working set from
// persistence. Called by every per-player operation under the career lock.
func (s *Service) loadAuctionEngine(ctx context.Context, careerID core.CareerID, seasonID core.SeasonID) (*auctionengine.Engine, error) {
	career, err := s.Careers.GetByID(ctx, careerID)
	if err != nil {
		return nil, core.NewNotFoundError("career", string(careerID))
	}
	a, err := s.Auctions.GetBySeason(ctx, seasonID)
	if err != nil {
		return nil, core.NewNotFoundError("auction", string(seasonID))
	}
	entries, err := s.Auctions.ListEntries(ctx, a.ID)
	if err != nil {
		return nil, core.NewInternalError(fmt.Errorf("list auction entries: %w", err))
	}
	teamStates, err := s.Auctions.ListTeamStates(ctx, a.ID)
	if err != nil {
		return nil, core.NewInternalError(fmt.Errorf("list team states: %w", err))
	}
	players, err := s.Players.List(ctx, careerID, core.PlayerFilter{})
	if err != nil {
		return nil, core.NewInternalError(fmt.Errorf("list players: %w", err))
	}

	eng := auctionengine.New(mrand.New(mrand.NewSource(newSeed())), s.logger)
	eng.Auction = *a
	eng.Entries = entries
	eng.UserTeamID = career.UserTeamID
	eng.TeamStates = map[core.TeamID]*core.TeamAuctionState{}
	for i := range teamStates {
		st := teamStates[i]
		eng.TeamStates[st.TeamID] = &st
	}
	eng.Players = map[core.PlayerID]core.Player{}
	for _, p := range players {
		eng.Players[p.ID] = p
	}
	return eng, nil
}

func (s *Service) persistAuctionEngine(ctx context.Context, careerID core.CareerID, eng *auctionengine.Engine) error {
	if err := s.Auctions.Update(ctx, &eng.Auction); err != nil {
		return core.NewInternalError(fmt.Errorf("update auction: %w", err))
	}
	for i := range eng.Entries {
		entry := &eng.Entries[i]
		if err := s.Auctions.UpdateEntry(ctx, entry); err != nil {
			return core.NewInternalError(fmt.Errorf("update auction entry: %w", err))
		}
		if entry.Status == core.EntrySold {
			if err := s.Players.SetOwnership(ctx, careerID, entry.PlayerID, entry.SoldToTeamID, entry.SoldPrice); err != nil {
				return core.NewInternalError(fmt.Errorf("set player ownership: %w", err))
			}
		}
	}
	for _, st := range eng.TeamStates {
		if err := s.Auctions.UpsertTeamState(ctx, st); err != nil {
			return core.NewInternalError(fmt.Errorf("upsert team state: %w", err))
		}
		if err := s.Teams.UpdateBudget(ctx, careerID, st.TeamID, st.RemainingBudget); err != nil {
			return core.NewInternalError(fmt.Errorf("update team budget: %w", err))
		}
	}
	return nil
}

// NextAuctionPlayer advances the queue and returns the player now up for
// bidding, or AuctionFinished if the queue is exhausted.
func (s *Service) NextAuctionPlayer(ctx context.Context, careerID core.CareerID, seasonID core.SeasonID) (auctionengine.NextPlayerResult, error) {
	var result auctionengine.NextPlayerResult
	err := s.WithCareerLock(careerID, func() error {
		eng, err := s.loadAuctionEngine(ctx, careerID, seasonID)
		if err != nil {
			return err
		}
		result = eng.NextPlayer()
		return s.persistAuctionEngine(ctx, careerID, eng)
	})
	return result, err
}

// SkipCategory implements skip_category: auctions off every remaining
// player in category to AI bidders only, excluding the user's team
// entirely, and returns one result per player sold/unsold. Used when the
// user chooses not to bid anywhere in a whole category.
func (s *Service) SkipCategory(ctx context.Context, careerID core.CareerID, seasonID core.SeasonID, category core.AuctionCategory) (results []auctionengine.AuctionPlayerResult, err error) {
	err = s.WithCareerLock(careerID, func() error {
		eng, err := s.loadAuctionEngine(ctx, careerID, seasonID)
		if err != nil {
			return err
		}
		results = eng.SkipCategory(category, eng.UserTeamID)
		return s.persistAuctionEngine(ctx, careerID, eng)
	})
	return results, err
}

// QuickPassPlayer implements quick_pass_player: AI-only bidding for just
// the player currently up for bidding, excluding the user, then finalizes
// the sale. Used when the user has no stake in this one player but wants
// to keep bidding on the rest of the category.
func (s *Service) QuickPassPlayer(ctx context.Context, careerID core.CareerID, seasonID core.SeasonID) (result auctionengine.AuctionPlayerResult, err error) {
	err = s.WithCareerLock(careerID, func() error {
		eng, err := s.loadAuctionEngine(ctx, careerID, seasonID)
		if err != nil {
			return err
		}
		result = eng.QuickPassPlayer(eng.UserTeamID)
		return s.persistAuctionEngine(ctx, careerID, eng)
	})
	return result, err
}

// PlaceUserBid implements place_user_bid.
func (s *Service) PlaceUserBid(ctx context.Context, careerID core.CareerID, seasonID core.SeasonID) (amount int64, err error) {
	err = s.WithCareerLock(careerID, func() error {
		eng, err := s.loadAuctionEngine(ctx, careerID, seasonID)
		if err != nil {
			return err
		}
		bid, ok := eng.PlaceUserBid()
		if !ok {
			return core.NewAffordabilityError(bid, eng.TeamStates[eng.UserTeamID].MaxBidPossible(eng.Auction.MinSquad))
		}
		amount = bid
		return s.persistAuctionEngine(ctx, careerID, eng)
	})
	return amount, err
}

// AutoBidToCeiling implements run_auto_bid: the user declares a ceiling and
// the round resolves automatically.
func (s *Service) AutoBidToCeiling(ctx context.Context, careerID core.CareerID, seasonID core.SeasonID, ceiling int64) (auctionengine.AutoBidResult, error) {
	var result auctionengine.AutoBidResult
	err := s.WithCareerLock(careerID, func() error {
		eng, err := s.loadAuctionEngine(ctx, careerID, seasonID)
		if err != nil {
			return err
		}
		result = eng.RunAutoBidCompetition(ceiling)
		if result.Status == auctionengine.StatusWon {
			eng.FinalizePlayer()
		}
		return s.persistAuctionEngine(ctx, careerID, eng)
	})
	return result, err
}

// FinalizeCurrentPlayer implements finalize_player directly (used after a
// manual PlaceUserBid round has settled).
func (s *Service) FinalizeCurrentPlayer(ctx context.Context, careerID core.CareerID, seasonID core.SeasonID) (result auctionengine.AuctionPlayerResult, err error) {
	err = s.WithCareerLock(careerID, func() error {
		eng, err := s.loadAuctionEngine(ctx, careerID, seasonID)
		if err != nil {
			return err
		}
		result = eng.FinalizeCurrentPlayer()
		if eng.IsComplete() {
			eng.Complete()
		}
		return s.persistAuctionEngine(ctx, careerID, eng)
	})
	return result, err
}
