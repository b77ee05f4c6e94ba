package audio

import (
	"math"

	"github.com/valerio/go-dupwave/dupwave/freq"
)

// Chip identification
const (
	// NumChannels is the number of voices.
	NumChannels = 4

	// OutputCount is the number of output channels; all voices are summed.
	OutputCount = 1

	// RegisterPoolSize is the size of the register write log (frequency and
	// waveform byte per voice).
	RegisterPoolSize = 2 * NumChannels

	// VolumeMax is the largest voice volume.
	VolumeMax = 15
)

// Clocking
const (
	// DefaultChipClock is the nominal chip clock in Hz.
	DefaultChipClock = 2119040

	// DefaultClockDivider divides the chip clock down to the output rate.
	DefaultClockDivider = 4

	// phaseIncrement is added to a voice's clock accumulator every sample.
	phaseIncrement = freq.PhaseIncrement
)

// Output
const (
	// outputScale converts level*volume into a signed 16-bit voice sample.
	// A single voice peaks at 2*15*32 = 960, four voices at 3840.
	outputScale = 32

	// oscBufferSize is the number of samples kept per oscilloscope tap.
	oscBufferSize = 65536
)

// NoteNull is passed as a NoteOn value to retrigger without changing the note.
const NoteNull = math.MaxInt32
