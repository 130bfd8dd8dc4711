package match

import (
	"math/rand"

	"github.com/charmbracelet/log"

	"cricketmgr.dev/core/internal/core"
)

// Engine runs one fixture's two innings. It owns a seedable RNG so results
// are reproducible for a given seed, and holds no persistence: callers hand
// it player XIs and read the scorecard back out when done.
type Engine struct {
	rng    *rand.Rand
	logger *log.Logger

	Innings1 *InningsState
	Innings2 *InningsState
}

// New creates an Engine with a seeded RNG. logger may be nil.
func New(rng *rand.Rand, logger *log.Logger) *Engine {
	return &Engine{rng: rng, logger: logger}
}

func (e *Engine) logf(format string, args ...any) {
	if e.logger != nil {
		e.logger.Debugf(format, args...)
	}
}

// SetupInnings implements setup_innings: the batting order is the XI as
// supplied by the caller; openers (indices 0,1) start on strike.
func (e *Engine) SetupInnings(battingTeamID, bowlingTeamID core.TeamID, battingXI, bowlingXI []core.Player, target *int, pitch PitchDNA, isSecondInnings bool) *InningsState {
	if isSecondInnings {
		pitch = pitch.SecondInningsAdjust()
	}

	order := make([]core.PlayerID, len(battingXI))
	for i, p := range battingXI {
		order[i] = p.ID
	}

	s := &InningsState{
		BattingTeamID:   battingTeamID,
		BowlingTeamID:   bowlingTeamID,
		BattingXI:       battingXI,
		BowlingXI:       bowlingXI,
		Pitch:           pitch,
		IsSecondInnings: isSecondInnings,
		Target:          target,
		BattingOrder:    order,
		NextBatterIdx:   2,
		StrikerIdx:      0,
		NonStrikerIdx:   1,
		BatterCards:     map[core.PlayerID]*core.BattingCard{},
		BowlerCards:     map[core.PlayerID]*core.BowlingCard{},
		BatterState:     map[core.PlayerID]*BatterState{},
		BowlerState:     map[core.PlayerID]*BowlerState{},
	}
	for _, p := range battingXI {
		s.BatterCards[p.ID] = &core.BattingCard{PlayerID: p.ID}
		s.BatterState[p.ID] = &BatterState{}
	}
	for _, p := range bowlingXI {
		if p.Role == core.RoleBowler || p.Role == core.RoleAllRounder {
			s.BowlerCards[p.ID] = &core.BowlingCard{PlayerID: p.ID}
			s.BowlerState[p.ID] = &BowlerState{}
		}
	}
	s.BatterCards[s.Striker().ID].DidBat = true
	s.BatterCards[s.NonStriker().ID].DidBat = true
	return s
}

// EligibleBowlers exposes the candidate set for the over about to be
// bowled, for callers presenting a bowler-selection choice to the user.
func EligibleBowlers(s *InningsState) []core.Player {
	return eligibleBowlers(s)
}

// eligibleBowlers implements select_bowler's candidate set: bowlers and
// all-rounders minus whoever bowled last over minus anyone at 4 overs.
func eligibleBowlers(s *InningsState) []core.Player {
	var candidates []core.Player
	for _, p := range s.BowlingXI {
		st, ok := s.BowlerState[p.ID]
		if !ok {
			continue
		}
		if st.OversCompleted >= 4 {
			continue
		}
		if p.ID == s.LastBowlerID {
			continue
		}
		candidates = append(candidates, p)
	}
	if len(candidates) == 0 {
		// Relax the last-bowler constraint.
		for _, p := range s.BowlingXI {
			st, ok := s.BowlerState[p.ID]
			if !ok || st.OversCompleted >= 4 {
				continue
			}
			candidates = append(candidates, p)
		}
	}
	if len(candidates) == 0 {
		// Relax the 4-over cap as a last resort (should not occur with a
		// legal 11-player XI across 20 overs, but never deadlock).
		for _, p := range s.BowlingXI {
			if _, ok := s.BowlerState[p.ID]; ok {
				candidates = append(candidates, p)
			}
		}
	}
	return candidates
}

func bowlerDNAAverage(p core.Player) int {
	switch dna := p.BowlerDNA.(type) {
	case core.PacerDNA:
		return (dna.Swing + dna.Bounce + dna.Control) / 3
	case core.SpinnerDNA:
		return (dna.Turn + dna.Flight + dna.Variation + dna.Control) / 4
	default:
		return p.Accuracy
	}
}

// SelectBowler implements select_bowler: a weighted random pick over
// eligible candidates by bowler-DNA average.
func (e *Engine) SelectBowler(s *InningsState) (core.PlayerID, bool) {
	candidates := eligibleBowlers(s)
	if len(candidates) == 0 {
		return "", false
	}
	weights := make([]int, len(candidates))
	for i, c := range candidates {
		w := bowlerDNAAverage(c)
		if w < 1 {
			w = 1
		}
		weights[i] = w
	}
	idx := weightedChoice(e.rng, weights)
	return candidates[idx].ID, true
}

func weightedChoice(rng *rand.Rand, weights []int) int {
	total := 0
	for _, w := range weights {
		total += w
	}
	if total <= 0 {
		return rng.Intn(len(weights))
	}
	roll := rng.Intn(total)
	cumulative := 0
	for i, w := range weights {
		cumulative += w
		if roll < cumulative {
			return i
		}
	}
	return len(weights) - 1
}

func playerByID(xi []core.Player, id core.PlayerID) core.Player {
	for _, p := range xi {
		if p.ID == id {
			return p
		}
	}
	return core.Player{}
}

// selectDelivery implements repertoire selection: the captain picks
// smartly 55% of the time (score by 50 - batter_stat_on_primary_target,
// top 3, weight-pick [3,2,1]); otherwise a uniform random choice.
func selectDelivery(rng *rand.Rand, bowler, batter core.Player) Delivery {
	repertoire := Repertoire(bowler)
	if rng.Float64() >= 0.55 {
		return repertoire[rng.Intn(len(repertoire))]
	}

	type scored struct {
		d     Delivery
		score float64
	}
	scoredList := make([]scored, len(repertoire))
	for i, d := range repertoire {
		stat := batter.BatterDNA.Stat(primaryWeightStat(d.BatterWeights))
		scoredList[i] = scored{d, 50 - float64(stat)}
	}
	for i := 0; i < len(scoredList); i++ {
		for j := i + 1; j < len(scoredList); j++ {
			if scoredList[j].score > scoredList[i].score {
				scoredList[i], scoredList[j] = scoredList[j], scoredList[i]
			}
		}
	}
	n := 3
	if n > len(scoredList) {
		n = len(scoredList)
	}
	top := scoredList[:n]
	pickWeights := []int{3, 2, 1}[:n]
	idx := weightedChoice(rng, pickWeights)
	return top[idx].d
}
