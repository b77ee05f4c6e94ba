package player

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sliceSource plays back fixed samples.
type sliceSource struct {
	data []int16
	rate int
	err  error
}

func (s *sliceSource) Render(buf []int16) (int, error) {
	if len(s.data) == 0 {
		if s.err != nil {
			return 0, s.err
		}
		return 0, io.EOF
	}
	n := copy(buf, s.data)
	s.data = s.data[n:]
	return n, nil
}

func (s *sliceSource) SampleRate() int { return s.rate }

func TestWriteWAV(t *testing.T) {
	var out bytes.Buffer
	n, err := WriteWAV(&out, &sliceSource{data: []int16{1, -2, 3}, rate: 8000})
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	b := out.Bytes()
	require.Len(t, b, wavHeaderSize+6)
	assert.Equal(t, "RIFF", string(b[0:4]))
	assert.Equal(t, uint32(wavHeaderSize-8+6), binary.LittleEndian.Uint32(b[4:8]))
	assert.Equal(t, "WAVEfmt ", string(b[8:16]))
	assert.Equal(t, uint16(1), binary.LittleEndian.Uint16(b[22:24]), "channels")
	assert.Equal(t, uint32(8000), binary.LittleEndian.Uint32(b[24:28]))
	assert.Equal(t, uint32(16000), binary.LittleEndian.Uint32(b[28:32]))
	assert.Equal(t, "data", string(b[36:40]))
	assert.Equal(t, uint32(6), binary.LittleEndian.Uint32(b[40:44]))
	assert.Equal(t, []byte{0x01, 0x00, 0xFE, 0xFF, 0x03, 0x00}, b[44:])
}

func TestWriteWAV_SourceError(t *testing.T) {
	boom := errors.New("boom")
	var out bytes.Buffer
	_, err := WriteWAV(&out, &sliceSource{data: []int16{1}, err: boom})
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, out.Len())
}

func TestDownsampler(t *testing.T) {
	tests := []struct {
		name     string
		factor   int
		in       []int16
		expected []int16
	}{
		{"averages groups", 3, []int16{3, 3, 3, 6, 6, 6}, []int16{3, 6}},
		{"partial tail", 2, []int16{4, 8, 5}, []int16{6, 5}},
		{"negative values", 2, []int16{-10, -20, 10, 30}, []int16{-15, 20}},
		{"factor below one passes through", 0, []int16{7, -7}, []int16{7, -7}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDownsampler(&sliceSource{data: tt.in, rate: 48000}, tt.factor)
			assert.Equal(t, 48000/max(tt.factor, 1), d.SampleRate())

			out := renderAll(t, d, 1)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestDownsampler_Read(t *testing.T) {
	d := NewDownsampler(&sliceSource{data: []int16{-1, -1, 256, 256}, rate: 100}, 2)

	b := make([]byte, 8)
	n, err := d.Read(b)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, []byte{0xFF, 0xFF, 0x00, 0x01}, b[:n])

	n, err = d.Read(b)
	assert.Equal(t, 0, n)
	assert.ErrorIs(t, err, io.EOF)
}
