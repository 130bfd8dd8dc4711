package generate

import (
	"fmt"
	"math/rand"

	"cricketmgr.dev/core/internal/core"
)

// tierSpec is one row of the pool-composition table.
type tierSpec struct {
	tier             core.Tier
	baseLo, baseHi   int
	count            int
	indian, overseas int
}

var tierTable = []tierSpec{
	{core.TierElite, 80, 90, 20, 8, 12},
	{core.TierStar, 70, 80, 40, 18, 22},
	{core.TierGood, 62, 72, 80, 50, 30},
	{core.TierSolid, 58, 65, 90, 74, 16},
}

// PoolTarget is the number of players a complete auction pool contains.
const PoolTarget = 230

const minOverallRating = 55

// GeneratePool produces a new auction pool. Per a preserved open
// question, the count parameter is accepted for call-site compatibility but
// ignored: the pool always contains PoolTarget (230) players drawn from the
// fixed tier table.
func GeneratePool(count int, rng *rand.Rand) []core.Player {
	_ = count
	players := make([]core.Player, 0, PoolTarget)
	seq := 0
	for _, spec := range tierTable {
		for i := 0; i < spec.indian; i++ {
			players = append(players, generatePlayer(rng, spec, false, seq))
			seq++
		}
		for i := 0; i < spec.overseas; i++ {
			players = append(players, generatePlayer(rng, spec, true, seq))
			seq++
		}
	}
	return players
}

var roleWeights = []int{30, 35, 20, 15} // Batsman, Bowler, AllRounder, WicketKeeper
var roles = []core.Role{core.RoleBatsman, core.RoleBowler, core.RoleAllRounder, core.RoleWicketKeep}

var bowlingTypeWeights = []int{35, 15, 20, 15, 15}
var bowlingTypes = []core.BowlingType{
	core.BowlingPace, core.BowlingMedium, core.BowlingOffSpin, core.BowlingLegSpin, core.BowlingLeftArm,
}

func generatePlayer(rng *rand.Rand, spec tierSpec, overseas bool, seq int) core.Player {
	base := spec.baseLo + rng.Intn(spec.baseHi-spec.baseLo+1)
	role := roles[weightedChoice(rng, roleWeights)]

	name, nationality := randomName(rng, overseas)

	p := core.Player{
		ID:          core.PlayerID(fmt.Sprintf("p%04d", seq)),
		Name:        name,
		Age:         18 + rng.Intn(21), // 18-38
		Nationality: nationality,
		IsOverseas:  overseas,
		Role:        role,
		Tier:        spec.tier,
	}

	if rng.Intn(2) == 0 {
		p.BattingStyle = core.BattingRightHanded
	} else {
		p.BattingStyle = core.BattingLeftHanded
	}

	p.BowlingType = core.BowlingNone
	if role == core.RoleBowler || role == core.RoleAllRounder {
		p.BowlingType = bowlingTypes[weightedChoice(rng, bowlingTypeWeights)]
	}

	draw := func(mean float64, variance int) int {
		return clampInt(int(mean)+rng.Intn(2*variance+1)-variance, 1, 100)
	}

	const variance = 12
	switch role {
	case core.RoleBatsman:
		p.Batting = draw(float64(base)+10, variance)
		p.Bowling = draw(20, variance)
		p.Technique = draw(float64(base)+5, variance)
		p.Power = draw(float64(base), variance)
		p.Fielding = draw(float64(base)-5, variance)
	case core.RoleBowler:
		p.Batting = draw(float64(base)-15, variance)
		p.Bowling = draw(float64(base)+10, variance)
		p.Accuracy = draw(float64(base)+5, variance)
		p.Variation = draw(float64(base), variance)
		p.Fielding = draw(float64(base)-5, variance)
	case core.RoleAllRounder:
		p.Batting = draw(float64(base), variance)
		p.Bowling = draw(float64(base), variance)
		p.Fielding = draw(float64(base), variance)
		p.Technique = draw(float64(base)-5, variance)
		p.Power = draw(float64(base), variance)
	case core.RoleWicketKeep:
		p.Batting = draw(float64(base)+5, variance)
		p.Bowling = draw(5, 2)
		p.Fielding = draw(float64(base)+10, variance)
		p.Technique = draw(float64(base), variance)
	}

	p.Fitness = draw(float64(base), variance)
	p.Running = draw(float64(base), variance)
	p.PaceOrSpin = draw(float64(base), variance)
	p.Temperament = draw(float64(base), variance)
	p.Consistency = draw(float64(base), variance)
	if p.Accuracy == 0 {
		p.Accuracy = draw(float64(base)-10, variance)
	}
	if p.Variation == 0 {
		p.Variation = draw(float64(base)-10, variance)
	}
	if p.Technique == 0 {
		p.Technique = draw(float64(base), variance)
	}
	if p.Power == 0 {
		p.Power = draw(float64(base)-5, variance)
	}
	if p.Fielding == 0 {
		p.Fielding = draw(float64(base), variance)
	}

	applyMinimumOVR(&p)

	p.FormMultiplier = uniform(rng, 0.9, 1.1)
	p.Intent = drawBattingIntent(rng, &p)
	p.Traits = drawTraits(rng, &p)
	p.BatterDNA = generateBatterDNA(rng, base)
	if role == core.RoleBowler || role == core.RoleAllRounder {
		p.BowlerDNA = generateBowlerDNA(rng, base, p.BowlingType)
	}

	p.BasePrice = basePriceFor(spec.tier, p.OverallRating())

	return p
}

// applyMinimumOVR boosts the role's primary attribute(s) until the derived
// overall rating clears the floor of 55. Never rejects a draw.
func applyMinimumOVR(p *core.Player) {
	for guard := 0; guard < 50; guard++ {
		rating := p.OverallRating()
		if rating >= minOverallRating {
			return
		}
		deficit := minOverallRating - rating
		boost := deficit + 3
		switch p.Role {
		case core.RoleBatsman:
			p.Batting = clampInt(p.Batting+boost, 1, 100)
		case core.RoleBowler:
			p.Bowling = clampInt(p.Bowling+boost, 1, 100)
			p.Accuracy = clampInt(p.Accuracy+boost/2, 1, 100)
		case core.RoleAllRounder:
			p.Batting = clampInt(p.Batting+boost/2, 1, 100)
			p.Bowling = clampInt(p.Bowling+boost/2, 1, 100)
		case core.RoleWicketKeep:
			p.Batting = clampInt(p.Batting+boost/2, 1, 100)
			p.Fielding = clampInt(p.Fielding+boost/2, 1, 100)
		default:
			p.Batting = clampInt(p.Batting+boost, 1, 100)
		}
	}
}

var battingIntentWeights = []int{50, 25, 18, 7} // Accumulator, Anchor, Aggressive, PowerHitter
var battingIntents = []core.BattingIntent{
	core.IntentAccumulator, core.IntentAnchor, core.IntentAggressive, core.IntentPowerHitter,
}

func drawBattingIntent(rng *rand.Rand, p *core.Player) core.BattingIntent {
	if p.Role == core.RoleBowler {
		return core.IntentAccumulator
	}
	intent := battingIntents[weightedChoice(rng, battingIntentWeights)]
	if intent == core.IntentPowerHitter && p.Power < 55 {
		intent = core.IntentAggressive
	}
	if intent == core.IntentAnchor && p.Technique < 45 {
		intent = core.IntentAccumulator
	}
	return intent
}

// basePriceFor maps tier and rating to a starting auction price in paise.
func basePriceFor(tier core.Tier, rating int) int64 {
	var floor int64
	switch tier {
	case core.TierElite:
		floor = 20_000_000
	case core.TierStar:
		floor = 10_000_000
	case core.TierGood:
		floor = 5_000_000
	default:
		floor = 2_000_000
	}
	return floor + int64(rating)*100_000
}
