// Package freq converts notes and pitch offsets into the divisor-style
// frequency values consumed by the voice oscillators.
//
// A voice advances one wavetable step every frequency/PhaseIncrement output
// samples, so a full 256-step cycle lasts 16*frequency samples. Lower values
// mean higher pitch.
package freq

import "math"

const (
	// DefaultTuning is the frequency of A-4 in Hz.
	DefaultTuning = 440.0

	// Resolution is the number of fine steps per semitone.
	Resolution = 4

	// A4 is the note number of A-4 (C-0 is note 0).
	A4 = 57

	// WaveSteps is the number of wavetable steps in one cycle.
	WaveSteps = 256

	// PhaseIncrement is added to a voice's clock accumulator every sample.
	PhaseIncrement = 16

	// PitchUnitsPerSemitone is the resolution of linear pitch offsets.
	PitchUnitsPerSemitone = 128

	// MaxFrequency is the largest divisor a voice accepts.
	MaxFrequency = 0xFFFF
)

// FromFineNote returns the frequency divisor for a note given in fine steps
// (Resolution per semitone, C-0 = 0), at the given output rate in Hz.
func FromFineNote(fine int, rate, tuning float64) int {
	hz := tuning * math.Pow(2, float64(fine-A4*Resolution)/float64(12*Resolution))
	return fromHz(hz, rate)
}

// FromNote returns the frequency divisor for a semitone note number at the
// given output rate, using the default tuning.
func FromNote(note int, rate float64) int {
	return FromFineNote(note*Resolution, rate, DefaultTuning)
}

// Hz returns the pitch in Hz a voice plays with the given divisor at rate.
// A zero divisor never advances the phase and reports 0.
func Hz(frequency int, rate float64) float64 {
	if frequency <= 0 {
		return 0
	}
	return rate * PhaseIncrement / (float64(frequency) * WaveSteps)
}

// CyclePeriod returns the number of output samples in one full waveform cycle.
func CyclePeriod(frequency int) int {
	return WaveSteps * frequency / PhaseIncrement
}

func fromHz(hz, rate float64) int {
	if hz <= 0 {
		return 0
	}
	return clamp(int(math.Round(rate * PhaseIncrement / (hz * WaveSteps))))
}

func clamp(f int) int {
	if f < 0 {
		return 0
	}
	if f > MaxFrequency {
		return MaxFrequency
	}
	return f
}
