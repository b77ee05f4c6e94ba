package player

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

const (
	wavFormatPCM     = 1
	wavChannels      = 1
	wavBitsPerSample = 16
	wavHeaderSize    = 44
)

type wavHeader struct {
	RIFF          [4]byte
	FileSize      uint32
	WAVE          [4]byte
	Fmt           [4]byte
	FmtSize       uint32
	Format        uint16
	Channels      uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	Data          [4]byte
	DataSize      uint32
}

func newWAVHeader(rate, samples int) wavHeader {
	blockAlign := wavChannels * wavBitsPerSample / 8
	dataSize := uint32(samples * blockAlign)
	return wavHeader{
		RIFF:          [4]byte{'R', 'I', 'F', 'F'},
		FileSize:      wavHeaderSize - 8 + dataSize,
		WAVE:          [4]byte{'W', 'A', 'V', 'E'},
		Fmt:           [4]byte{'f', 'm', 't', ' '},
		FmtSize:       16,
		Format:        wavFormatPCM,
		Channels:      wavChannels,
		SampleRate:    uint32(rate),
		ByteRate:      uint32(rate * blockAlign),
		BlockAlign:    uint16(blockAlign),
		BitsPerSample: wavBitsPerSample,
		Data:          [4]byte{'d', 'a', 't', 'a'},
		DataSize:      dataSize,
	}
}

// WriteWAV renders src to the end and writes it to w as a mono 16 bit PCM WAV
// file. It returns the number of samples written.
func WriteWAV(w io.Writer, src Source) (int, error) {
	var samples []int16
	chunk := make([]int16, 4096)
	for {
		n, err := src.Render(chunk)
		samples = append(samples, chunk[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("rendering: %w", err)
		}
	}

	if err := binary.Write(w, binary.LittleEndian, newWAVHeader(src.SampleRate(), len(samples))); err != nil {
		return 0, fmt.Errorf("writing wav header: %w", err)
	}
	if err := binary.Write(w, binary.LittleEndian, samples); err != nil {
		return 0, fmt.Errorf("writing wav data: %w", err)
	}
	return len(samples), nil
}
