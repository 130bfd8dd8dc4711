package match

import "cricketmgr.dev/core/internal/core"

// Phase is the T20 phase a ball falls in, by over number (1-indexed).
type Phase int

const (
	Powerplay Phase = iota
	Middle
	Death
)

// PhaseForOver returns the phase for overs-completed (0-indexed, i.e. the
// over currently being bowled is overs+1).
func PhaseForOver(oversCompleted int) Phase {
	switch {
	case oversCompleted < 6:
		return Powerplay
	case oversCompleted < 15:
		return Middle
	default:
		return Death
	}
}

// Approach is the resolved shot-selection mode for one ball, derived from
// API aggression plus match situation.
type Approach string

const (
	Survive Approach = "Survive"
	Rotate  Approach = "Rotate"
	Push    Approach = "Push"
	AllOut  Approach = "AllOut"
)

// Aggression is the caller-supplied high-level instruction play_ball takes.
type Aggression string

const (
	AggressionDefend  Aggression = "defend"
	AggressionBalance Aggression = "balanced"
	AggressionAttack  Aggression = "attack"
)

// BatterState tracks one batter's transient innings-progress flags.
type BatterState struct {
	BallsFaced int
	Settled    bool
	OnFire     bool
}

// BowlerState tracks one bowler's transient spell-progress flags.
type BowlerState struct {
	OversCompleted  int
	BallsThisOver   int
	ConsecutiveOver int
	Tired           bool
	HasConfidence   bool
	RunsConceded    int
	Wickets         int
	Maidens         int
	ranThisOver     bool
}

// BallOutcome is one resolved delivery, recorded into the this-over buffer
// and the persisted scorecard.
type BallOutcome struct {
	Over        int
	BallInOver  int
	BowlerID    core.PlayerID
	BatterID    core.PlayerID
	Delivery    DeliveryID
	Runs        int
	IsWicket    bool
	Dismissal   *core.DismissalType
	FielderID   *core.PlayerID
	IsWide      bool
	IsNoBall    bool
	IsLegal     bool
	ContactCls  ContactClass
	Commentary  string
}

// InningsState is the transient state of one innings. It is held only in
// the match-session cache, never persisted.
type InningsState struct {
	BattingTeamID core.TeamID
	BowlingTeamID core.TeamID

	BattingXI []core.Player
	BowlingXI []core.Player

	Pitch           PitchDNA
	IsSecondInnings bool
	Target          *int

	Runs    int
	Wickets int
	Overs   int
	Balls   int
	Extras  int

	BattingOrder  []core.PlayerID
	NextBatterIdx int
	StrikerIdx    int
	NonStrikerIdx int

	CurrentBowlerID core.PlayerID
	LastBowlerID    core.PlayerID
	WicketsThisOver int

	PartnershipRuns int
	ThisOver        []BallOutcome

	BatterCards map[core.PlayerID]*core.BattingCard
	BowlerCards map[core.PlayerID]*core.BowlingCard
	BatterState map[core.PlayerID]*BatterState
	BowlerState map[core.PlayerID]*BowlerState
}

// Striker returns the current striker's player record.
func (s *InningsState) Striker() core.Player { return s.BattingXI[s.StrikerIdx] }

// NonStriker returns the current non-striker's player record.
func (s *InningsState) NonStriker() core.Player { return s.BattingXI[s.NonStrikerIdx] }

// OversDisplay returns the conventional "O.B" overs string.
func (s *InningsState) OversDisplay() string {
	return overDisplayString(s.Overs, s.Balls)
}

func overDisplayString(overs, balls int) string {
	digits := [...]byte{'0', '1', '2', '3', '4', '5', '6', '7', '8', '9'}
	buf := []byte{}
	if overs >= 10 {
		buf = append(buf, digits[overs/10])
	}
	buf = append(buf, digits[overs%10], '.', digits[balls])
	return string(buf)
}

// RunRate returns runs per over bowled so far, or 0 with no balls bowled.
func (s *InningsState) RunRate() float64 {
	balls := s.Overs*6 + s.Balls
	if balls == 0 {
		return 0
	}
	return float64(s.Runs) * 6 / float64(balls)
}

// RequiredRate returns the run rate required to reach the target, or 0
// when there is no target or the innings is already complete.
func (s *InningsState) RequiredRate() float64 {
	if s.Target == nil {
		return 0
	}
	ballsLeft := 120 - (s.Overs*6 + s.Balls)
	if ballsLeft <= 0 {
		return 0
	}
	needed := *s.Target - s.Runs
	if needed <= 0 {
		return 0
	}
	return float64(needed) * 6 / float64(ballsLeft)
}

// IsComplete reports whether the innings has ended: all out, 20 overs
// bowled, or (chasing) target reached.
func (s *InningsState) IsComplete() bool {
	if s.Wickets >= 10 || s.Overs >= 20 {
		return true
	}
	if s.Target != nil && s.Runs >= *s.Target {
		return true
	}
	return false
}
