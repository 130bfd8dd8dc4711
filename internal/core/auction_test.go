package core

import "testing"

func TestNextBid(t *testing.T) {
	cases := []struct {
		current int64
		want    int64
	}{
		{0, 500_000},
		{9_500_000, 10_000_000},
		{10_000_000, 11_000_000},
		{49_000_000, 50_000_000},
		{50_000_000, 52_500_000},
		{100_000_000, 105_000_000},
		{150_000_000, 160_000_000},
		{200_000_000, 210_000_000},
	}
	for _, c := range cases {
		if got := NextBid(c.current); got != c.want {
			t.Errorf("NextBid(%d) = %d, want %d", c.current, got, c.want)
		}
	}
}

// TestMaxBidPossible exercises a worked example with a near-exhausted squad.
func TestMaxBidPossible(t *testing.T) {
	state := TeamAuctionState{
		RemainingBudget: 3_000_000,
		TotalPlayers:    16, // min squad 18, so min-players-needed = 2
	}
	got := state.MaxBidPossible(18)
	want := int64(1_000_000)
	if got != want {
		t.Fatalf("MaxBidPossible = %d, want %d", got, want)
	}
}

func TestMaxBidPossibleNeverNegative(t *testing.T) {
	state := TeamAuctionState{RemainingBudget: 100, TotalPlayers: 0}
	if got := state.MaxBidPossible(18); got != 0 {
		t.Fatalf("MaxBidPossible = %d, want 0", got)
	}
}

func TestOverallRatingClampedToBand(t *testing.T) {
	p := Player{Role: RoleBatsman, Batting: 100, Technique: 100, Power: 100, Running: 100, Temperament: 100, Fielding: 100}
	if got := p.OverallRating(); got != 100 {
		t.Fatalf("OverallRating = %d, want 100", got)
	}
}

func TestNetRunRate(t *testing.T) {
	s := TeamSeasonStats{RunsScored: 180, OversFaced: 20, RunsConceded: 150, OversBowled: 20}
	got := s.NetRunRate()
	want := 9.0 - 7.5
	if got != want {
		t.Fatalf("NetRunRate = %v, want %v", got, want)
	}
}
