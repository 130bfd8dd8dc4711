package match

import (
	"math"
	"math/rand"

	"cricketmgr.dev/core/internal/core"
)

// ContactClass is the qualitative label assigned to a ball's margin.
type ContactClass string

const (
	ContactPerfect    ContactClass = "Perfect"
	ContactGood       ContactClass = "Good"
	ContactDecent     ContactClass = "Decent"
	ContactDefended   ContactClass = "Defended"
	ContactBeaten     ContactClass = "Beaten"
	ContactEdge       ContactClass = "Edge"
	ContactCleanBeat  ContactClass = "CleanBeat"
)

func classifyMargin(margin float64) ContactClass {
	switch {
	case margin >= 25:
		return ContactPerfect
	case margin >= 15:
		return ContactGood
	case margin >= 5:
		return ContactDecent
	case margin >= -5:
		return ContactDefended
	case margin >= -12:
		return ContactBeaten
	case margin >= -18:
		return ContactEdge
	default:
		return ContactCleanBeat
	}
}

// executionOutcome is step 2 of the pipeline.
type executionOutcome int

const (
	executed executionOutcome = iota
	slightMiss
	badMiss
)

// jaffaCheck implements step 1: an unplayable ball that skips the rest of
// the pipeline and always produces a wicket.
func jaffaCheck(rng *rand.Rand, batterBallsFaced int) bool {
	rate := 0.005 + math.Max(0, float64(batterBallsFaced-20))*0.0028
	return rng.Float64() < rate
}

// executionCheck implements step 2: bowler control x fatigue rolled
// Gaussian against the delivery's phase-adjusted difficulty.
func executionCheck(rng *rand.Rand, bowler core.Player, bowlerState *BowlerState, d Delivery, phase Phase) executionOutcome {
	control := float64(bowlerStat(bowler, "control"))
	fatigue := 1.0
	if bowlerState.Tired {
		fatigue = 0.9
	}
	effective := control * fatigue

	difficulty := float64(d.ExecDifficulty)
	switch phase {
	case Powerplay:
		if d.ID == Outswinger || d.ID == Inswinger {
			difficulty -= 4
		}
	case Death:
		if d.ID == Yorker || d.ID == SlowerBall || d.ID == WideYorker {
			difficulty -= 5
		}
	}

	roll := gaussian(rng, effective, 8)
	margin := roll - difficulty
	switch {
	case margin >= 0:
		return executed
	case margin >= -12:
		return slightMiss
	default:
		return badMiss
	}
}

func executionBonus(rng *rand.Rand, outcome executionOutcome) float64 {
	switch outcome {
	case slightMiss:
		return uniform(rng, 4, 10)
	case badMiss:
		return uniform(rng, 12, 18)
	default:
		return 0
	}
}

// ballAgeModifier captures swing decay and spin growth over the innings.
func ballAgeModifier(statName string, oversCompleted int) float64 {
	if statName != "swing" {
		if statName == "turn" {
			if oversCompleted >= 12 {
				return 1.15
			}
			if oversCompleted >= 6 {
				return 1.08
			}
			return 1.0
		}
		return 1.0
	}
	if oversCompleted >= 12 {
		return 0.75
	}
	if oversCompleted >= 6 {
		return 0.9
	}
	return 1.0
}

// bowlerAttackRating implements step 3.
func bowlerAttackRating(bowler core.Player, bowlerState *BowlerState, d Delivery, pitch PitchDNA, oversCompleted int) float64 {
	fatigue := 1.0
	if bowlerState.Tired {
		fatigue = 0.92
	}
	var sum float64
	for stat, weight := range d.BowlerWeights {
		base := float64(bowlerStat(bowler, stat))
		pitchAssist := float64(pitch.PaceAssist)
		if bowler.BowlingType.IsSpin() {
			pitchAssist = float64(pitch.SpinAssist)
		}
		effective := base * (0.5 + pitchAssist*0.01)
		effective *= ballAgeModifier(stat, oversCompleted)
		sum += effective * weight * fatigue
	}
	if sum > 120 {
		sum = 120
	}
	return sum
}

func settledModifier(ballsFaced int) float64 {
	switch {
	case ballsFaced <= 5:
		return -3
	case ballsFaced <= 15:
		return 0
	case ballsFaced <= 40:
		return 2
	default:
		return -1
	}
}

func safetyNetBonus(s *InningsState) float64 {
	oversCompleted := s.Overs
	var bonus float64
	if s.Wickets >= 5 && oversCompleted < 6 {
		bonus += 15
	}
	rr := s.RunRate()
	if rr < 4.0 && s.Wickets < 8 {
		bonus += 12
	}
	if rr > 13 {
		bonus -= 10
	}
	return bonus
}

// batterSkillRating implements step 4.
func batterSkillRating(batter core.Player, s *InningsState, batterState *BatterState, d Delivery, execBonus float64) float64 {
	var sum float64
	for stat, weight := range d.BatterWeights {
		sum += float64(batter.BatterDNA.Stat(stat)) * weight
	}
	sum += execBonus
	sum += settledModifier(batterState.BallsFaced)
	sum += safetyNetBonus(s)

	if batter.BatterDNA.Average() < 40 && sum < 63 {
		sum = 63
	}
	return sum
}

// compress implements step 5.
func compress(raw float64) float64 {
	return 28 + raw*0.45
}

// tacticalBonus implements step 6.
func tacticalBonus(primaryBatterStat int) float64 {
	b := 0.10 * (50 - float64(primaryBatterStat))
	if b > 3 {
		return 3
	}
	if b < -3 {
		return -3
	}
	return b
}

type approachParams struct {
	sigmaMult float64
	meanShift float64
}

var approachTable = map[Approach]approachParams{
	Survive: {0.70, 3},
	Rotate:  {0.90, 1.5},
	Push:    {1.08, 0},
	AllOut:  {1.25, 0},
}

func phaseSigma(phase Phase) float64 {
	switch phase {
	case Powerplay:
		return 12
	case Middle:
		return 11
	default:
		return 14
	}
}

// ResolveApproach maps API aggression plus match situation to the
// pipeline's internal approach.
func ResolveApproach(rng *rand.Rand, aggression Aggression, oversCompleted int, requiredRate float64) Approach {
	base := map[Aggression]Approach{
		AggressionDefend:  Survive,
		AggressionBalance: Rotate,
		AggressionAttack:  Push,
	}[aggression]

	if aggression != AggressionAttack {
		return base
	}
	if oversCompleted >= 18 || requiredRate > 12 {
		return AllOut
	}
	if rng.Float64() < 0.20 {
		return AllOut
	}
	return Push
}

// gaussian samples N(mean, sigma) via rng.NormFloat64 (ziggurat) over the
// engine's own *rand.Rand (never the global source, per the determinism
// design note).
func gaussian(rng *rand.Rand, mean, sigma float64) float64 {
	return rng.NormFloat64()*sigma + mean
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// pipelineResult is the outcome of resolving one legal ball through steps
// 3-9 (the jaffa check is handled separately by the caller).
type pipelineResult struct {
	Runs      int
	IsWicket  bool
	Dismissal *core.DismissalType
	Class     ContactClass
}

func drawDismissal(rng *rand.Rand, weights map[core.DismissalType]float64) core.DismissalType {
	var total float64
	for _, w := range weights {
		total += w
	}
	roll := rng.Float64() * total
	var cumulative float64
	// Iteration order over a map is unstable, but with a single terminal
	// draw per ball the accumulated probability mass is what matters, not
	// which key is visited first; every key is visited exactly once.
	for dismissal, w := range weights {
		cumulative += w
		if roll <= cumulative {
			return dismissal
		}
	}
	for dismissal := range weights {
		return dismissal
	}
	return core.DismissalBowled
}

var runDistribution = map[ContactClass][]int{
	ContactPerfect:  {0, 1, 1, 2, 4, 6, 6},
	ContactGood:     {0, 1, 1, 2, 2, 4, 6},
	ContactDecent:   {0, 1, 1, 1, 2, 4},
	ContactDefended: {0, 0, 1, 1, 2},
}

func resolveContact(rng *rand.Rand, p core.Player, d Delivery, class ContactClass, approach Approach, pitch PitchDNA) pipelineResult {
	switch class {
	case ContactPerfect, ContactGood, ContactDecent, ContactDefended:
		options := runDistribution[class]
		sixChance := float64(p.Power) / 160
		if class == ContactPerfect && rng.Float64() < sixChance {
			return pipelineResult{Runs: 6, Class: class}
		}
		boundaryBoost := float64(p.Power) / 300
		if (class == ContactPerfect || class == ContactGood) && rng.Float64() < boundaryBoost {
			return pipelineResult{Runs: 4, Class: class}
		}
		idx := rng.Intn(len(options))
		return pipelineResult{Runs: options[idx], Class: class}

	case ContactBeaten:
		return pipelineResult{Runs: 0, Class: class}

	case ContactEdge:
		catchMod := 0.0
		if approach == AllOut || approach == Push {
			catchMod = 0.05
		}
		catchChance := 0.25*float64(pitch.Carry)/100 + catchMod
		if catchChance < 0.05 {
			catchChance = 0.05
		}
		if catchChance > 0.50 {
			catchChance = 0.50
		}
		if rng.Float64() < catchChance {
			dismissal := core.DismissalCaughtBehind
			if rng.Float64() >= 0.55 {
				dismissal = core.DismissalCaught
			}
			return pipelineResult{IsWicket: true, Dismissal: &dismissal, Class: class}
		}
		return pipelineResult{Runs: rng.Intn(2), Class: class}

	default: // ContactCleanBeat
		// The wicket roll itself happens in ResolveBall, against the real
		// sampled margin (cleanBeatWicketChance) - not here, where only a
		// placeholder margin is in scope.
		return pipelineResult{Runs: 0, Class: class}
	}
}

// cleanBeatWicketChance implements the contact-class-9 CleanBeat dismissal
// formula against the actual rolled margin: chance rises from a 0.55 floor
// by 0.025 per point beyond the |margin|=18 CleanBeat threshold, capped at
// 0.95. Called from ResolveBall once the true margin is known.
func cleanBeatWicketChance(margin float64) float64 {
	chance := 0.55 + (math.Abs(margin)-18)*0.025
	if chance > 0.95 {
		return 0.95
	}
	if chance < 0 {
		return 0
	}
	return chance
}

// primaryWeightStat returns the batter-weight stat with the largest weight,
// used for the tactical bonus and smart repertoire scoring.
func primaryWeightStat(weights map[string]float64) string {
	var best string
	var bestWeight float64
	for stat, w := range weights {
		if w > bestWeight {
			bestWeight = w
			best = stat
		}
	}
	return best
}

// ResolveBall runs the full per-ball pipeline (steps 1-9) for a legal,
// non-extra delivery and returns the outcome plus contact class.
func ResolveBall(rng *rand.Rand, s *InningsState, bowler core.Player, batter core.Player, bowlerState *BowlerState, batterState *BatterState, d Delivery, approach Approach) pipelineResult {
	if jaffaCheck(rng, batterState.BallsFaced) {
		dismissal := drawDismissal(rng, d.DismissalWeights)
		return pipelineResult{IsWicket: true, Dismissal: &dismissal, Class: ContactCleanBeat}
	}

	phase := PhaseForOver(s.Overs)
	execOutcome := executionCheck(rng, bowler, bowlerState, d, phase)
	execBonus := executionBonus(rng, execOutcome)

	attack := bowlerAttackRating(bowler, bowlerState, d, s.Pitch, s.Overs)
	skill := batterSkillRating(batter, s, batterState, d, execBonus)

	compressedAttack := compress(attack)
	compressedSkill := compress(skill)

	primaryStat := batter.BatterDNA.Stat(primaryWeightStat(d.BatterWeights))
	tactical := tacticalBonus(primaryStat)

	params := approachTable[approach]
	sigma := phaseSigma(phase) * params.sigmaMult
	margin := gaussian(rng, compressedSkill+params.meanShift, sigma) - (compressedAttack + tactical)

	class := classifyMargin(margin)
	result := resolveContact(rng, batter, d, class, approach, s.Pitch)

	if class == ContactCleanBeat && !result.IsWicket {
		if rng.Float64() < cleanBeatWicketChance(margin) {
			dismissal := drawDismissal(rng, d.DismissalWeights)
			result.IsWicket = true
			result.Dismissal = &dismissal
		}
	}
	return result
}

// wideChance and noBallChance implement the extras model.
func wideChance(effectiveControl float64) float64 {
	c := 0.06 - effectiveControl*0.0004
	if c < 0.015 {
		return 0.015
	}
	return c
}

const noBallChance = 0.008
