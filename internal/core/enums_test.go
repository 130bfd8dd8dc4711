package core

import "testing"

func TestParseAuctionCategory(t *testing.T) {
	cases := []struct {
		in   string
		want AuctionCategory
	}{
		{"batsmen", CategoryBatsmen},
		{"Batsmen", CategoryBatsmen},
		{"batters", CategoryBatsmen},
		{"bowlers", CategoryBowlers},
		{"all-rounders", CategoryAllRounders},
		{"all_rounders", CategoryAllRounders},
		{"WicketKeepers", CategoryWicketKeeper},
		{"marquee", CategoryMarquee},
	}
	for _, c := range cases {
		got, ok := ParseAuctionCategory(c.in)
		if !ok || got != c.want {
			t.Errorf("ParseAuctionCategory(%q) = %q,%v want %q,true", c.in, got, ok, c.want)
		}
	}

	if _, ok := ParseAuctionCategory("nonsense"); ok {
		t.Error("expected ParseAuctionCategory to reject an unknown category")
	}
}
