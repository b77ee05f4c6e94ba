// Package wavetable turns a voice's 4-bit waveform selector and 8-bit phase
// position into a quantized amplitude level in {0, 1, 2}.
//
// Selector layout:
//
//	bits 0-1: base shape (one of four 256-step prototypes)
//	bit 2:    double (reads the prototype at twice the rate)
//	bits 2-3: mix mode (00/01 normal, 10 normal+flip, 11 normal+1-flip)
//
// Selector 0b0111 is reserved for a 12.5% pulse.
package wavetable

import "github.com/valerio/go-dupwave/dupwave/bit"

const (
	// Steps is the number of phase positions in one waveform cycle.
	Steps = 256

	// Selectors is the number of distinct waveform selector values.
	Selectors = 16

	// PulseSelector is the reserved selector producing a 12.5% pulse.
	PulseSelector = 0b0111

	// MaxLevel is the largest level a lookup can return.
	MaxLevel = 2

	doubleBit = 2
	rowBits   = 64
	rowMask   = rowBits - 1
)

// Mix modes, taken from selector bits 2-3.
const (
	MixNormal       = 0b00
	MixNormalDouble = 0b01
	MixSum          = 0b10
	MixDiff         = 0b11
)

// prototypes holds the four base shapes, one bit per step. Step 0 is the most
// significant bit of row 0.
var prototypes = [4][4]uint64{
	// 50% square
	{0xFFFFFFFFFFFFFFFF, 0xFFFFFFFFFFFFFFFF, 0x0000000000000000, 0x0000000000000000},
	// 25% pulse
	{0xFFFFFFFFFFFFFFFF, 0x0000000000000000, 0x0000000000000000, 0x0000000000000000},
	// square at twice the cycle rate
	{0xFFFFFFFFFFFFFFFF, 0x0000000000000000, 0xFFFFFFFFFFFFFFFF, 0x0000000000000000},
	// stepped duty ramp (75%, 50%, 25%, 0% per quarter)
	{0xFFFFFFFFFFFF0000, 0xFFFFFFFF00000000, 0xFFFF000000000000, 0x0000000000000000},
}

// levels is the expanded lookup table, built once when the package loads.
var levels = buildLevels()

func buildLevels() (t [Selectors][Steps]uint8) {
	for sel := range Selectors {
		for pos := range Steps {
			t[sel][pos] = uint8(SampleLevel(uint8(sel), uint8(pos)))
		}
	}
	return t
}

// rawBit reads step idx of a base shape. Indices past the end of the table
// read as 1.
func rawBit(shape, idx int) int {
	if idx >= Steps {
		return 1
	}
	return bit.Value(uint(rowMask-(idx&rowMask)), prototypes[shape][idx>>6])
}

// SampleLevel decodes the packed prototype table directly.
// Level returns the same values from the expanded table and should be
// preferred on hot paths.
func SampleLevel(selector, position uint8) int {
	selector &= 0x0F
	if selector == PulseSelector {
		if position >= 32 && position < 64 {
			return MaxLevel
		}
		return 0
	}

	shape := int(selector & 0b11)
	pos1 := int(position)
	pos2 := Steps - 1 - int(position)
	if bit.IsSet(doubleBit, selector) {
		pos1 <<= 1
		pos2 <<= 1
	}

	normal := rawBit(shape, pos1)
	flip := rawBit(shape, pos2)

	switch MixMode(selector) {
	case MixSum:
		return normal + flip
	case MixDiff:
		return normal + 1 - flip
	default:
		return normal * 2
	}
}

// Level returns the precomputed level for selector and position.
func Level(selector, position uint8) int {
	return int(levels[selector&0x0F][position])
}

// MixMode returns the mix mode encoded in selector bits 2-3.
func MixMode(selector uint8) int {
	return int(bit.ExtractBits(selector&0x0F, 3, 2))
}

// Prototype returns base shape 0-3 as one boolean per step.
func Prototype(shape int) (steps [Steps]bool) {
	for i := range steps {
		steps[i] = rawBit(shape&0b11, i) == 1
	}
	return steps
}
