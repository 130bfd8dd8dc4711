package core

import (
	"encoding/json"
	"fmt"
)

// BatterDNA is the fine-grained profile the match engine rolls against on
// every ball a player faces. Stats are 0-100; Weaknesses names 1-2 of the
// six stat fields above (not Power) that were deliberately lowered when the
// player was generated.
type BatterDNA struct {
	VsPace      int      `json:"vs_pace"`
	VsBounce    int      `json:"vs_bounce"`
	VsSpin      int      `json:"vs_spin"`
	VsDeception int      `json:"vs_deception"`
	OffSide     int      `json:"off_side"`
	LegSide     int      `json:"leg_side"`
	Power       int      `json:"power"`
	Weaknesses  []string `json:"weaknesses"`
}

// Average returns the mean of the six non-power stats, used by the match
// engine's tail-ender floor.
func (d BatterDNA) Average() float64 {
	if d.VsPace == 0 && d.VsBounce == 0 && d.VsSpin == 0 && d.VsDeception == 0 &&
		d.OffSide == 0 && d.LegSide == 0 && d.Power == 0 && len(d.Weaknesses) == 0 {
		return 0
	}
	sum := d.VsPace + d.VsBounce + d.VsSpin + d.VsDeception + d.OffSide + d.LegSide
	return float64(sum) / 6.0
}

// Stat returns the named stat by the field names used in Weaknesses.
func (d BatterDNA) Stat(name string) int {
	switch name {
	case "vs_pace":
		return d.VsPace
	case "vs_bounce":
		return d.VsBounce
	case "vs_spin":
		return d.VsSpin
	case "vs_deception":
		return d.VsDeception
	case "off_side":
		return d.OffSide
	case "leg_side":
		return d.LegSide
	case "power":
		return d.Power
	default:
		return 50
	}
}

// BowlerDNAKind discriminates the BowlerDNA tagged union.
type BowlerDNAKind string

const (
	BowlerDNAPacer   BowlerDNAKind = "pacer"
	BowlerDNASpinner BowlerDNAKind = "spinner"
)

// BowlerDNA is a discriminated union of PacerDNA / SpinnerDNA. Players
// without bowling capability carry a nil BowlerDNA.
type BowlerDNA interface {
	Kind() BowlerDNAKind
}

// PacerDNA is the fine-grained profile for Pace/Medium bowlers.
type PacerDNA struct {
	SpeedKPH int `json:"speed_kph"` // clamped to [120, 155]
	Swing    int `json:"swing"`
	Bounce   int `json:"bounce"`
	Control  int `json:"control"`
}

// Kind implements BowlerDNA.
func (PacerDNA) Kind() BowlerDNAKind { return BowlerDNAPacer }

// SpinnerDNA is the fine-grained profile for OffSpin/LegSpin/LeftArmSpin bowlers.
type SpinnerDNA struct {
	Turn      int `json:"turn"`
	Flight    int `json:"flight"`
	Variation int `json:"variation"`
	Control   int `json:"control"`
}

// Kind implements BowlerDNA.
func (SpinnerDNA) Kind() BowlerDNAKind { return BowlerDNASpinner }

// bowlerDNAEnvelope is the wire format: an explicit "type" tag alongside the
// variant's own fields, per the DESIGN NOTES on tagged-variant serialisation.
type bowlerDNAEnvelope struct {
	Type BowlerDNAKind `json:"type"`
	PacerDNA
	SpinnerDNA
}

// MarshalBowlerDNA serialises a (possibly nil) BowlerDNA to its tagged JSON form.
func MarshalBowlerDNA(dna BowlerDNA) ([]byte, error) {
	if dna == nil {
		return json.Marshal(nil)
	}
	switch v := dna.(type) {
	case PacerDNA:
		return json.Marshal(bowlerDNAEnvelope{Type: BowlerDNAPacer, PacerDNA: v})
	case SpinnerDNA:
		return json.Marshal(bowlerDNAEnvelope{Type: BowlerDNASpinner, SpinnerDNA: v})
	default:
		return nil, fmt.Errorf("core: unknown BowlerDNA implementation %T", dna)
	}
}

// UnmarshalBowlerDNA parses the tagged JSON form back into a concrete variant.
// A null or empty payload returns a nil BowlerDNA, no error.
func UnmarshalBowlerDNA(data []byte) (BowlerDNA, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, nil
	}
	var env bowlerDNAEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, err
	}
	switch env.Type {
	case BowlerDNAPacer:
		return env.PacerDNA, nil
	case BowlerDNASpinner:
		return env.SpinnerDNA, nil
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("core: unknown bowler dna type %q", env.Type)
	}
}
