package service

import (
	"context"
	"testing"

	"cricketmgr.dev/core/internal/core"
)

func TestStartAuctionInitializesQueue(t *testing.T) {
	svc, repos := newTestService(t)
	ctx := context.Background()

	career, err := svc.CreateCareer(ctx, core.UserID("u1"), "Auction Career", 0)
	if err != nil {
		t.Fatalf("CreateCareer: %v", err)
	}
	season, err := repos.seasons.GetCurrent(ctx, career.ID)
	if err != nil {
		t.Fatalf("GetCurrent: %v", err)
	}

	auction, err := svc.StartAuction(ctx, career.ID, season.ID)
	if err != nil {
		t.Fatalf("StartAuction: %v", err)
	}
	if auction.Status != core.AuctionInProgress {
		t.Fatalf("expected InProgress, got %s", auction.Status)
	}
	if auction.PlayersTotal != 230 {
		t.Fatalf("expected 230 players queued, got %d", auction.PlayersTotal)
	}

	updatedCareer, err := repos.careers.GetByID(ctx, career.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if updatedCareer.Status != core.CareerAuction {
		t.Fatalf("expected career to advance to Auction, got %s", updatedCareer.Status)
	}

	entries, err := repos.auctions.ListEntries(ctx, auction.ID)
	if err != nil || len(entries) != 230 {
		t.Fatalf("expected 230 persisted entries, got %d (err %v)", len(entries), err)
	}

	// A second start attempt must fail: the career is no longer PreAuction.
	if _, err := svc.StartAuction(ctx, career.ID, season.ID); err == nil {
		t.Fatalf("expected error re-starting an auction already in progress")
	}
}

// TestRunFullAuctionViaQuickPass drives the whole 230-player queue through
// NextAuctionPlayer + QuickPassPlayer (AI-only bidding, one player at a
// time) until the queue is exhausted, and checks every sold player's
// ownership made it back onto the player repository.
func TestRunFullAuctionViaQuickPass(t *testing.T) {
	svc, repos := newTestService(t)
	ctx := context.Background()

	career, err := svc.CreateCareer(ctx, core.UserID("u1"), "Auction Career", 0)
	if err != nil {
		t.Fatalf("CreateCareer: %v", err)
	}
	season, err := repos.seasons.GetCurrent(ctx, career.ID)
	if err != nil {
		t.Fatalf("GetCurrent: %v", err)
	}
	if _, err := svc.StartAuction(ctx, career.ID, season.ID); err != nil {
		t.Fatalf("StartAuction: %v", err)
	}

	var rounds int
	for {
		next, err := svc.NextAuctionPlayer(ctx, career.ID, season.ID)
		if err != nil {
			t.Fatalf("NextAuctionPlayer: %v", err)
		}
		if next.AuctionFinished {
			break
		}
		if _, err := svc.QuickPassPlayer(ctx, career.ID, season.ID); err != nil {
			t.Fatalf("QuickPassPlayer: %v", err)
		}
		rounds++
		if rounds > 300 {
			t.Fatalf("auction did not terminate after 300 rounds")
		}
	}
	if rounds != 230 {
		t.Fatalf("expected 230 bidding rounds, got %d", rounds)
	}

	sold, unsold := 0, 0
	entries, err := repos.auctions.ListEntries(ctx, core.AuctionID(string(season.ID)+"-auction"))
	if err != nil {
		t.Fatalf("ListEntries: %v", err)
	}
	for _, e := range entries {
		switch e.Status {
		case core.EntrySold:
			sold++
			p, err := repos.players.GetByID(ctx, career.ID, e.PlayerID)
			if err != nil {
				t.Fatalf("GetByID sold player: %v", err)
			}
			if p.TeamID == nil {
				t.Fatalf("sold player %s has no persisted team ownership", e.PlayerID)
			}
			if p.SoldPrice != e.SoldPrice {
				t.Fatalf("sold player %s price mismatch: entry %d vs player %d", e.PlayerID, e.SoldPrice, p.SoldPrice)
			}
		case core.EntryUnsold:
			unsold++
		default:
			t.Fatalf("entry %s left in non-terminal status %s", e.PlayerID, e.Status)
		}
	}
	if sold+unsold != 230 {
		t.Fatalf("expected every entry to resolve, got sold=%d unsold=%d", sold, unsold)
	}

	if result, err := svc.FinalizeCurrentPlayer(ctx, career.ID, season.ID); err != nil || result.Sold {
		t.Fatalf("FinalizeCurrentPlayer on an empty queue should be a no-op (result=%+v err=%v)", result, err)
	}
}

// TestSkipCategoryExcludesUserTeam covers spec scenario "user skip-category
// excludes the user": every player in the named category is sold to an AI
// team, never the user's own.
func TestSkipCategoryExcludesUserTeam(t *testing.T) {
	svc, repos := newTestService(t)
	ctx := context.Background()

	career, err := svc.CreateCareer(ctx, core.UserID("u1"), "Auction Career", 0)
	if err != nil {
		t.Fatalf("CreateCareer: %v", err)
	}
	season, err := repos.seasons.GetCurrent(ctx, career.ID)
	if err != nil {
		t.Fatalf("GetCurrent: %v", err)
	}
	if _, err := svc.StartAuction(ctx, career.ID, season.ID); err != nil {
		t.Fatalf("StartAuction: %v", err)
	}

	results, err := svc.SkipCategory(ctx, career.ID, season.ID, core.CategoryBatsmen)
	if err != nil {
		t.Fatalf("SkipCategory: %v", err)
	}
	if len(results) == 0 {
		t.Fatal("expected at least one batsman entry to resolve")
	}
	for _, r := range results {
		if r.Sold && r.TeamID == career.UserTeamID {
			t.Fatalf("player %s sold to the user's own team during skip-category", r.PlayerID)
		}
	}
}

func TestFinalizeCurrentPlayerUnsoldWithoutBids(t *testing.T) {
	svc, repos := newTestService(t)
	ctx := context.Background()
	career, _ := svc.CreateCareer(ctx, core.UserID("u1"), "C", 0)
	season, _ := repos.seasons.GetCurrent(ctx, career.ID)
	if _, err := svc.StartAuction(ctx, career.ID, season.ID); err != nil {
		t.Fatalf("StartAuction: %v", err)
	}
	if _, err := svc.NextAuctionPlayer(ctx, career.ID, season.ID); err != nil {
		t.Fatalf("NextAuctionPlayer: %v", err)
	}
	result, err := svc.FinalizeCurrentPlayer(ctx, career.ID, season.ID)
	if err != nil {
		t.Fatalf("FinalizeCurrentPlayer: %v", err)
	}
	if result.Sold {
		t.Fatalf("expected no bidder so the player goes unsold")
	}
}
