package bit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSet(t *testing.T) {
	assert.True(t, IsSet(0, 0b0001))
	assert.False(t, IsSet(1, 0b0001))
	assert.True(t, IsSet(7, 0x80))
}

func TestValue(t *testing.T) {
	row := uint64(0x8000000000000001)
	assert.Equal(t, 1, Value(63, row))
	assert.Equal(t, 0, Value(62, row))
	assert.Equal(t, 1, Value(0, row))
}

func TestExtractBits(t *testing.T) {
	tests := []struct {
		value           uint8
		highBit, lowBit uint8
		expected        uint8
	}{
		{0b11010110, 6, 4, 0b101},
		{0b00001100, 3, 2, 0b11},
		{0b00001100, 1, 0, 0b00},
		{0xFF, 7, 0, 0xFF},
	}

	for _, tt := range tests {
		result := ExtractBits(tt.value, tt.highBit, tt.lowBit)
		if result != tt.expected {
			t.Errorf("ExtractBits(%08b, %d, %d) = %b; want %b", tt.value, tt.highBit, tt.lowBit, result, tt.expected)
		}
	}
}

func TestReplace(t *testing.T) {
	tests := []struct {
		name          string
		value         uint8
		field         int
		lowBit, width uint8
		expected      uint8
	}{
		{"low pair", 0b1011, 0b01, 0, 2, 0b1001},
		{"high pair", 0b0011, 0b10, 2, 2, 0b1011},
		{"field overflow is masked", 0b0000, 0xFF, 2, 2, 0b1100},
		{"negative field keeps width", 0b0000, -1, 0, 2, 0b0011},
		{"same value", 0b0110, 0b01, 2, 2, 0b0110},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Replace(tt.value, tt.field, tt.lowBit, tt.width))
		})
	}
}

func TestLow(t *testing.T) {
	assert.Equal(t, uint8(0x34), Low(0x1234))
	assert.Equal(t, uint8(75), Low(75))
}
