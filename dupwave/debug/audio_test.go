package debug

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/go-dupwave/dupwave/audio"
	"github.com/valerio/go-dupwave/dupwave/freq"
)

type fixedVolumes [audio.NumChannels]uint8

func (f fixedVolumes) GetChannelVolumes() [audio.NumChannels]uint8 { return f }

func playingChip() *audio.Chip {
	c := audio.New(audio.DefaultConfig(), nil)
	c.Dispatch(audio.Command{Kind: audio.CmdNoteOn, Chan: 0, Value: freq.A4})
	c.Dispatch(audio.Command{Kind: audio.CmdNoteOn, Chan: 1, Value: freq.A4 - 12})
	c.Dispatch(audio.Command{Kind: audio.CmdWave, Chan: 1, Value: 0x0A})
	c.Dispatch(audio.Command{Kind: audio.CmdNoteOn, Chan: 2, Value: freq.A4})
	c.Dispatch(audio.Command{Kind: audio.CmdInstrument, Chan: 2, Value: 5})
	c.MuteChannel(2, true)
	c.Tick(true)
	c.Acquire(make([]int16, 1200))
	return c
}

func TestExtractAudioData_Channels(t *testing.T) {
	data := ExtractAudioData(playingChip(), nil, 0, 0)

	assert.Equal(t, 529760, data.SampleRate)
	assert.Equal(t, "wavetable", data.Revision)

	ch := data.Channels[0]
	assert.True(t, ch.Enabled)
	assert.Equal(t, "A-4", ch.Note)
	assert.Equal(t, 75, ch.Divisor)
	assert.InDelta(t, 441.47, ch.Frequency, 0.01)
	assert.Equal(t, uint8(15), ch.Volume)
	assert.Equal(t, "normal", ch.Mix)
	assert.Equal(t, -1, ch.Instrument)

	assert.Equal(t, "A-3", data.Channels[1].Note)
	assert.Equal(t, "sum", data.Channels[1].Mix)
	assert.Equal(t, uint8(0x0A), data.Channels[1].Wave)

	assert.True(t, data.Channels[2].Muted)
	assert.False(t, data.Channels[2].Enabled)
	assert.Equal(t, 5, data.Channels[2].Instrument)

	idle := data.Channels[3]
	assert.False(t, idle.Enabled)
	assert.Equal(t, "---", idle.Note)
	assert.Equal(t, 0.0, idle.Frequency)

	assert.Nil(t, data.WaveformSamples.Mix)
}

func TestExtractAudioData_Registers(t *testing.T) {
	data := ExtractAudioData(playingChip(), nil, 0, 0)
	require.Len(t, data.Registers, audio.RegisterPoolSize)
	assert.Equal(t, RegisterValue{"CH1Freq", 0, 75}, data.Registers[0])
	assert.Equal(t, RegisterValue{"CH2Wave", 3, 0x0A}, data.Registers[3])
	assert.Equal(t, RegisterValue{"CH4Freq", 6, 0}, data.Registers[6])
}

func TestExtractAudioData_VolumeProvider(t *testing.T) {
	data := ExtractAudioData(playingChip(), fixedVolumes{1, 2, 3, 4}, 0, 0)
	for i, ch := range data.Channels {
		assert.Equal(t, uint8(i+1), ch.Volume)
	}
}

func TestExtractAudioData_Waveforms(t *testing.T) {
	data := ExtractAudioData(playingChip(), nil, 1200, 60)

	for i, v := range data.WaveformSamples.Voices {
		assert.Len(t, v, 60, "voice %d", i)
	}
	assert.Len(t, data.WaveformSamples.Mix, 60)

	// one full square cycle: high half then low half
	voice := data.WaveformSamples.Voices[0]
	assert.Equal(t, float32(1), voice[0])
	assert.Equal(t, float32(1), voice[25])
	assert.Equal(t, float32(0), voice[45])
	assert.Equal(t, make([]float32, 60), data.WaveformSamples.Voices[2], "muted voice")
	assert.Equal(t, make([]float32, 60), data.WaveformSamples.Voices[3], "idle voice")

	for _, v := range data.WaveformSamples.Mix {
		assert.GreaterOrEqual(t, v, float32(0))
		assert.LessOrEqual(t, v, float32(1))
	}
}

func TestDownsample(t *testing.T) {
	tests := []struct {
		name      string
		samples   []int16
		width     int
		fullScale int
		expected  []float32
	}{
		{"keeps peaks", []int16{0, 960, 0, -480}, 2, 960, []float32{1, -0.5}},
		{"stretches short input", []int16{5}, 3, 5, []float32{1, 1, 1}},
		{"empty input", nil, 2, 960, []float32{0, 0}},
		{"zero width", []int16{1, 2}, 0, 960, []float32{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Downsample(tt.samples, tt.width, tt.fullScale))
		})
	}
}

func TestFrequencyToNote(t *testing.T) {
	tests := []struct {
		hz       float64
		expected string
	}{
		{440, "A-4"},
		{880, "A-5"},
		{261.63, "C-4"},
		{466.16, "A#4"},
		{0, "---"},
		{1e7, "---"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, frequencyToNote(tt.hz, freq.DefaultTuning), "hz %g", tt.hz)
	}
}
