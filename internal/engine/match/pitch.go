// Package match implements the DNA-based T20 ball-by-ball simulator of
// Pitch and delivery catalogues, the per-ball resolution pipeline,
// over and bowler management, innings transition, and match completion.
// Like the auction engine it is self-contained in-memory state; the
// match-session cache (internal/matchsession) owns the exclusive guard and
// persistence handoff.
package match

// PitchPreset names one of the six fixed pitch behaviours.
type PitchPreset string

const (
	PitchGreenSeamer PitchPreset = "GreenSeamer"
	PitchDustBowl    PitchPreset = "DustBowl"
	PitchFlatDeck    PitchPreset = "FlatDeck"
	PitchBouncyTrack PitchPreset = "BouncyTrack"
	PitchSlowTurner  PitchPreset = "SlowTurner"
	PitchBalanced    PitchPreset = "Balanced"
)

// PitchDNA is the integer 0-100 stat block describing a pitch's behaviour.
type PitchDNA struct {
	Preset        PitchPreset `json:"preset"`
	PaceAssist    int         `json:"pace_assist"`
	SpinAssist    int         `json:"spin_assist"`
	Bounce        int         `json:"bounce"`
	Carry         int         `json:"carry"`
	Deterioration int         `json:"deterioration"`
}

var pitchPresets = map[PitchPreset]PitchDNA{
	PitchGreenSeamer: {PitchGreenSeamer, 75, 25, 55, 60, 20},
	PitchDustBowl:    {PitchDustBowl, 25, 80, 35, 30, 70},
	PitchFlatDeck:    {PitchFlatDeck, 30, 30, 40, 45, 25},
	PitchBouncyTrack: {PitchBouncyTrack, 55, 35, 80, 65, 30},
	PitchSlowTurner:  {PitchSlowTurner, 30, 70, 35, 35, 55},
	PitchBalanced:    {PitchBalanced, 50, 50, 50, 50, 35},
}

// NewPitch returns the descriptor for preset, falling back to Balanced for
// an unrecognised value.
func NewPitch(preset PitchPreset) PitchDNA {
	if p, ok := pitchPresets[preset]; ok {
		return p
	}
	return pitchPresets[PitchBalanced]
}

// SecondInningsAdjust applies the deterioration boost to a pitch's
// spin assist for the second innings.
func (p PitchDNA) SecondInningsAdjust() PitchDNA {
	adjusted := p
	adjusted.SpinAssist = int(float64(p.SpinAssist) * (1 + float64(p.Deterioration)/150))
	if adjusted.SpinAssist > 100 {
		adjusted.SpinAssist = 100
	}
	return adjusted
}
