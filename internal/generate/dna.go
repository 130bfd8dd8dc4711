package generate

import (
	"math/rand"

	"cricketmgr.dev/core/internal/core"
)

var batterStatNames = []string{"vs_pace", "vs_bounce", "vs_spin", "vs_deception", "off_side", "leg_side"}

// generateBatterDNA draws the six defensive/attacking stats around the
// tier base, plus power, then forces 1-2 weaknesses by lowering randomly
// chosen stats 15-25 points.
func generateBatterDNA(rng *rand.Rand, base int) core.BatterDNA {
	roll := func() int { return clampInt(base+rng.Intn(25)-12, 1, 100) }
	dna := core.BatterDNA{
		VsPace:      roll(),
		VsBounce:    roll(),
		VsSpin:      roll(),
		VsDeception: roll(),
		OffSide:     roll(),
		LegSide:     roll(),
		Power:       clampInt(base+rng.Intn(21)-10, 1, 100),
	}

	numWeak := 1 + rng.Intn(2)
	chosen := map[int]bool{}
	names := make([]string, 0, 2)
	for len(chosen) < numWeak {
		idx := rng.Intn(len(batterStatNames))
		if chosen[idx] {
			continue
		}
		chosen[idx] = true
		names = append(names, batterStatNames[idx])
		drop := 15 + rng.Intn(11) // 15-25
		current := dna.Stat(batterStatNames[idx])
		dna = setBatterStat(dna, batterStatNames[idx], clampInt(current-drop, 1, 100))
	}
	dna.Weaknesses = names
	return dna
}

func setBatterStat(d core.BatterDNA, name string, v int) core.BatterDNA {
	switch name {
	case "vs_pace":
		d.VsPace = v
	case "vs_bounce":
		d.VsBounce = v
	case "vs_spin":
		d.VsSpin = v
	case "vs_deception":
		d.VsDeception = v
	case "off_side":
		d.OffSide = v
	case "leg_side":
		d.LegSide = v
	}
	return d
}

// generateBowlerDNA produces the PacerDNA or SpinnerDNA variant matching
// bowlingType, drawn around the tier base.
func generateBowlerDNA(rng *rand.Rand, base int, bowlingType core.BowlingType) core.BowlerDNA {
	roll := func(mean int) int { return clampInt(mean+rng.Intn(25)-12, 1, 100) }
	if bowlingType.IsPace() {
		speed := clampInt(120+int(float64(base-55)*0.9)+rng.Intn(11)-5, 120, 155)
		return core.PacerDNA{
			SpeedKPH: speed,
			Swing:    roll(base),
			Bounce:   roll(base),
			Control:  roll(base),
		}
	}
	return core.SpinnerDNA{
		Turn:      roll(base),
		Flight:    roll(base),
		Variation: roll(base),
		Control:   roll(base),
	}
}
