package freq

import "math"

// Params are the inputs to Calc.
type Params struct {
	Base     int  // base divisor from the current note
	Pitch    int  // channel pitch offset
	ArpNote  int  // absolute note used when FixedArp is set
	FixedArp bool // ignore Base and play ArpNote
	Linear   bool // pitch offsets scale the divisor exponentially
	Offset   int  // raw divisor offset applied last
	Pitch2   int  // secondary pitch, from the pitch macro
	Clock    int  // chip clock in Hz
	Divider  int  // chip clock divider; Clock/Divider is the output rate

	// Tuning is the A-4 frequency used for FixedArp; zero means DefaultTuning.
	Tuning float64
}

// Rate returns the output sample rate implied by Clock and Divider.
func (p Params) Rate() float64 {
	if p.Divider <= 0 {
		return float64(p.Clock)
	}
	return float64(p.Clock) / float64(p.Divider)
}

// Calc derives the final voice divisor. Positive pitch raises the pitch,
// which lowers the divisor. The result is clamped to [0, MaxFrequency].
func Calc(p Params) int {
	base := p.Base
	if p.FixedArp {
		tuning := p.Tuning
		if tuning == 0 {
			tuning = DefaultTuning
		}
		base = FromFineNote(p.ArpNote*Resolution, p.Rate(), tuning)
	}

	pitch := p.Pitch + p.Pitch2
	var f int
	if p.Linear {
		semitones := float64(pitch) / PitchUnitsPerSemitone
		f = int(math.Round(float64(base) * math.Pow(2, -semitones/12)))
	} else {
		f = base - pitch
	}

	return clamp(f + p.Offset)
}
