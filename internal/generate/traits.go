package generate

import (
	"math/rand"

	"cricketmgr.dev/core/internal/core"
)

// traitCountWeights gives {none, one, two} probabilities (in percent) per tier.
var traitCountWeights = map[core.Tier][3]int{
	core.TierElite: {35, 50, 15},
	core.TierStar:  {50, 40, 10},
	core.TierGood:  {60, 33, 7},
	core.TierSolid: {70, 27, 3},
}

// tierChokerFactor scales down the Choker trait's draw weight by tier, so
// negative-trait incidence falls as quality rises.
var tierChokerFactor = map[core.Tier]float64{
	core.TierElite: 0.10,
	core.TierStar:  0.35,
	core.TierGood:  0.65,
	core.TierSolid: 1.0,
}

// roleTraitWeights is the base per-role weight table before the Choker
// tier-dependent adjustment is applied.
var roleTraitWeights = map[core.Role]map[core.Trait]int{
	core.RoleBatsman: {
		core.TraitClutch: 20, core.TraitChoker: 15, core.TraitFinisher: 20,
		core.TraitBucketHands: 5, core.TraitPartnershipBreaker: 5,
	},
	core.RoleBowler: {
		core.TraitClutch: 15, core.TraitChoker: 15, core.TraitPartnershipBreaker: 25,
		core.TraitBucketHands: 10, core.TraitFinisher: 5,
	},
	core.RoleAllRounder: {
		core.TraitClutch: 20, core.TraitChoker: 10, core.TraitFinisher: 15,
		core.TraitPartnershipBreaker: 15, core.TraitBucketHands: 10,
	},
	core.RoleWicketKeep: {
		core.TraitBucketHands: 25, core.TraitClutch: 15, core.TraitChoker: 10,
		core.TraitFinisher: 10, core.TraitPartnershipBreaker: 5,
	},
}

// allTraits fixes an iteration order so trait draws stay deterministic for a
// seeded RNG; ranging over roleTraitWeights directly would not, since Go
// randomizes map iteration order.
var allTraits = []core.Trait{
	core.TraitClutch, core.TraitChoker, core.TraitBucketHands,
	core.TraitPartnershipBreaker, core.TraitFinisher,
}

func drawTraits(rng *rand.Rand, p *core.Player) []core.Trait {
	counts := traitCountWeights[p.Tier]
	n := weightedChoice(rng, counts[:])

	base := roleTraitWeights[p.Role]
	ordered := make([]core.Trait, 0, len(allTraits))
	weights := make(map[core.Trait]int, len(allTraits))
	for _, t := range allTraits {
		w, ok := base[t]
		if !ok {
			continue
		}
		if t == core.TraitChoker {
			w = int(float64(w) * tierChokerFactor[p.Tier])
			if w < 1 {
				w = 1
			}
		}
		ordered = append(ordered, t)
		weights[t] = w
	}

	traits := make([]core.Trait, 0, 2)
	for i := 0; i < n && len(ordered) > 0; i++ {
		ws := make([]int, len(ordered))
		for j, t := range ordered {
			ws[j] = weights[t]
		}
		idx := weightedChoice(rng, ws)
		traits = append(traits, ordered[idx])
		ordered = append(ordered[:idx], ordered[idx+1:]...)
	}
	return traits
}
