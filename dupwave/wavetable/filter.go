package wavetable

import "github.com/valerio/go-dupwave/dupwave/bit"

// FilterSelector is the reserved selector of the bit-filter revision. Shape 0
// with mix enabled would be silent, so it produces a pulse instead.
const FilterSelector = 0b1000

// FilterLevel is the earlier bit-filter revision of the waveform generator.
// It derives every waveform procedurally from the phase position:
//
//	bits 0-1: number of filter passes
//	bit 2:    double
//	bit 3:    mix the mirrored position back in
func FilterLevel(selector, position uint8) int {
	selector &= 0x0F
	if selector == FilterSelector {
		if position>>5 > 0 {
			return 1
		}
		return 0
	}

	pos1, pos2 := position, position^0xFF
	if bit.IsSet(2, selector) {
		pos1 = doublePhase(pos1)
		pos2 = doublePhase(pos2)
	}
	for range int(selector & 0b11) {
		pos1 = filterPass(pos1)
		pos2 = filterPass(pos2)
	}

	// Square the phase
	sq1 := int(pos1 >> 7)
	sq2 := int(pos2 >> 7)

	if bit.IsSet(3, selector) {
		if bit.IsSet(2, selector) {
			return sq1 + 1 - sq2
		}
		return sq1 + sq2
	}
	return sq1 << 1
}

func doublePhase(p uint8) uint8 {
	if bit.IsSet(7, p) {
		return 0xFF
	}
	return p << 1
}

func filterPass(p uint8) uint8 {
	if bit.IsSet(7, p) {
		return p << 2
	}
	return p << 1
}
