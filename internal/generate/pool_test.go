package generate

import (
	"math/rand"
	"testing"

	"cricketmgr.dev/core/internal/core"
)

func TestGeneratePoolSizeAndOVRFloor(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	players := GeneratePool(9999, rng) // count argument is ignored by design

	if len(players) != PoolTarget {
		t.Fatalf("len(players) = %d, want %d", len(players), PoolTarget)
	}

	for _, p := range players {
		if got := p.OverallRating(); got < minOverallRating {
			t.Errorf("player %s overall rating %d below floor %d", p.ID, got, minOverallRating)
		}
	}
}

func TestGeneratePoolNationalityMix(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	players := GeneratePool(230, rng)

	var overseas int
	for _, p := range players {
		if p.IsOverseas {
			overseas++
		}
	}
	wantOverseas := 12 + 22 + 30 + 16
	if overseas != wantOverseas {
		t.Fatalf("overseas count = %d, want %d", overseas, wantOverseas)
	}
}

func TestGeneratePoolDeterministic(t *testing.T) {
	a := GeneratePool(230, rand.New(rand.NewSource(123)))
	b := GeneratePool(230, rand.New(rand.NewSource(123)))
	for i := range a {
		if a[i].Name != b[i].Name || a[i].OverallRating() != b[i].OverallRating() {
			t.Fatalf("generation not deterministic for seed at index %d", i)
		}
	}
}

func TestNewFranchisesSetsUserTeamOnce(t *testing.T) {
	teams, err := NewFranchises(3)
	if err != nil {
		t.Fatal(err)
	}
	if len(teams) != 8 {
		t.Fatalf("len(teams) = %d, want 8", len(teams))
	}
	var userCount int
	for i, tm := range teams {
		if tm.IsUserTeam {
			userCount++
			if i != 3 {
				t.Errorf("user team flag set at index %d, want 3", i)
			}
		}
	}
	if userCount != 1 {
		t.Fatalf("userCount = %d, want 1", userCount)
	}
}

func TestNewFranchisesRejectsOutOfRangeIndex(t *testing.T) {
	if _, err := NewFranchises(8); err == nil {
		t.Fatal("expected error for out-of-range index")
	}
	if _, err := NewFranchises(-1); err == nil {
		t.Fatal("expected error for negative index")
	}
}

func TestBatterDNAWeaknessesMatchLoweredStats(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	dna := generateBatterDNA(rng, 70)
	if len(dna.Weaknesses) < 1 || len(dna.Weaknesses) > 2 {
		t.Fatalf("len(Weaknesses) = %d, want 1 or 2", len(dna.Weaknesses))
	}
	for _, w := range dna.Weaknesses {
		if dna.Stat(w) > 70 {
			t.Errorf("weakness %s not lowered: %d", w, dna.Stat(w))
		}
	}
}

func TestPacerSpeedClamped(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 200; i++ {
		dna := generateBowlerDNA(rng, 95, core.BowlingPace)
		pacer := dna.(core.PacerDNA)
		if pacer.SpeedKPH < 120 || pacer.SpeedKPH > 155 {
			t.Fatalf("speed %d out of [120,155]", pacer.SpeedKPH)
		}
	}
}
