package freq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRate = 2119040.0 / 4

func TestFromNote(t *testing.T) {
	tests := []struct {
		name     string
		note     int
		expected int
	}{
		{"A-4", A4, 75},
		{"A-3 rounds half away from zero", A4 - 12, 151},
		{"A-5", A4 + 12, 38},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FromNote(tt.note, testRate))
		})
	}
}

func TestFromNote_LowerValueIsHigherPitch(t *testing.T) {
	prev := FromNote(0, testRate)
	for note := 1; note < 96; note++ {
		f := FromNote(note, testRate)
		assert.LessOrEqual(t, f, prev, "note %d", note)
		prev = f
	}
}

func TestFromFineNote_Clamps(t *testing.T) {
	assert.Equal(t, MaxFrequency, FromFineNote(-400, testRate, DefaultTuning))
	assert.GreaterOrEqual(t, FromFineNote(1000, testRate, DefaultTuning), 0)
}

func TestHz(t *testing.T) {
	assert.InDelta(t, 441.47, Hz(75, testRate), 0.01)
	assert.Equal(t, 0.0, Hz(0, testRate))
	assert.Equal(t, 1200, CyclePeriod(75))
}

func TestCalc(t *testing.T) {
	tests := []struct {
		name     string
		params   Params
		expected int
	}{
		{"plain base", Params{Base: 100}, 100},
		{"pitch lowers divisor", Params{Base: 100, Pitch: 3, Pitch2: 2}, 95},
		{"offset applied last", Params{Base: 100, Pitch: 5, Offset: 5}, 100},
		{"clamped at zero", Params{Base: 10, Pitch: 20}, 0},
		{"clamped at max", Params{Base: MaxFrequency, Pitch: -10}, MaxFrequency},
		{"linear octave up halves divisor", Params{Base: 1000, Pitch: 12 * PitchUnitsPerSemitone, Linear: true}, 500},
		{"linear octave down doubles divisor", Params{Base: 1000, Pitch: -12 * PitchUnitsPerSemitone, Linear: true}, 2000},
		{"fixed arp ignores base", Params{Base: 999, ArpNote: A4, FixedArp: true, Clock: 2119040, Divider: 4}, 75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Calc(tt.params))
		})
	}
}

func TestParseNote(t *testing.T) {
	tests := []struct {
		in       string
		expected int
	}{
		{"C-0", 0},
		{"A-4", A4},
		{"c#3", 37},
		{"B-9", 119},
	}
	for _, tt := range tests {
		n, err := ParseNote(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.expected, n, tt.in)
	}

	for _, bad := range []string{"", "H-4", "A?4", "A-x", "A-10"} {
		_, err := ParseNote(bad)
		assert.ErrorIs(t, err, ErrInvalidNote, bad)
	}
}

func TestNoteName(t *testing.T) {
	assert.Equal(t, "A-4", NoteName(A4))
	assert.Equal(t, "C#0", NoteName(1))
	assert.Equal(t, "---", NoteName(-1))
	assert.Equal(t, "---", NoteName(120))

	for n := 0; n < 120; n++ {
		parsed, err := ParseNote(NoteName(n))
		require.NoError(t, err)
		assert.Equal(t, n, parsed)
	}
}
