package bit

// IsSet will check if the bit at the specified index is set to 1 or not.
func IsSet(index, value uint8) bool {
	return ((value >> index) & 1) == 1
}

// Value returns the bit at the specified index of a 64 bit row as 0 or 1.
func Value(index uint, row uint64) int {
	return int((row >> index) & 1)
}

// ExtractBits extracts bits from highBit to lowBit (inclusive)
// Example: ExtractBits(0b11010110, 6, 4) -> 0b101 (extracts bits 6, 5, 4)
func ExtractBits(value uint8, highBit, lowBit uint8) uint8 {
	width := highBit - lowBit + 1
	mask := uint8((1 << width) - 1)
	return (value >> lowBit) & mask
}

// Replace returns value with the width-bit field starting at lowBit overwritten
// by the low bits of field. Bits of field above width are discarded.
// Example: Replace(0b1011, 0b01, 0, 2) -> 0b1001
func Replace(value uint8, field int, lowBit, width uint8) uint8 {
	mask := uint8((1 << width) - 1)
	value &^= mask << lowBit
	return value | (uint8(field)&mask)<<lowBit
}

// Low returns the low (LSB) part of a frequency divisor.
func Low(value int) uint8 {
	return uint8(value & 0xFF)
}
