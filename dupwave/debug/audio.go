package debug

import (
	"math"

	"github.com/valerio/go-dupwave/dupwave/audio"
	"github.com/valerio/go-dupwave/dupwave/freq"
	"github.com/valerio/go-dupwave/dupwave/wavetable"
)

// voiceFullScale is the largest sample a single voice can produce.
const voiceFullScale = wavetable.MaxLevel * audio.VolumeMax * 32

type ChannelStatus struct {
	Enabled    bool // holding a note and not muted
	Muted      bool
	Frequency  float64 // Hz
	Divisor    int
	Volume     uint8
	Wave       uint8
	Mix        string
	Instrument int
	Note       string
}

type RegisterValue struct {
	Name    string
	Address int
	Value   uint8
}

type AudioData struct {
	SampleRate int
	Revision   string
	Channels   [audio.NumChannels]ChannelStatus
	Registers  []RegisterValue

	WaveformSamples struct {
		Voices [audio.NumChannels][]float32
		Mix    []float32
	}
}

// ChipReader is the read-only view of a chip the debug views need.
type ChipReader interface {
	Config() audio.Config
	Rate() int
	ChannelState(ch int) audio.Channel
	IsMuted(ch int) bool
	RegisterPool() []byte
	RegisterSheet() []audio.Register
	OscBuffer(ch int) *audio.OscBuffer
}

var _ ChipReader = (*audio.Chip)(nil)

// VolumeProvider interface for getting actual channel volumes
type VolumeProvider interface {
	GetChannelVolumes() [audio.NumChannels]uint8
}

// ExtractAudioData snapshots a chip. The waveforms cover the last window
// samples of each oscilloscope tap, reduced to width points.
func ExtractAudioData(chip ChipReader, volumeProvider VolumeProvider, window, width int) *AudioData {
	data := &AudioData{
		SampleRate: chip.Rate(),
		Revision:   chip.Config().Revision.String(),
	}

	var vols [audio.NumChannels]uint8
	if volumeProvider != nil {
		vols = volumeProvider.GetChannelVolumes()
	} else {
		for i := range vols {
			vols[i] = uint8(chip.ChannelState(i).OutVol)
		}
	}

	tuning := chip.Config().Tuning
	for i := range data.Channels {
		extractChannel(chip, i, vols[i], tuning, &data.Channels[i])
	}

	pool := chip.RegisterPool()
	for _, r := range chip.RegisterSheet() {
		data.Registers = append(data.Registers, RegisterValue{
			Name:    r.Name,
			Address: r.Address,
			Value:   pool[r.Address],
		})
	}

	if window > 0 && width > 0 {
		mix := make([]int, window)
		raw := make([]int16, window)
		for i := range data.WaveformSamples.Voices {
			n := chip.OscBuffer(i).Latest(raw)
			for k, s := range raw[:n] {
				mix[window-n+k] += int(s)
			}
			data.WaveformSamples.Voices[i] = Downsample(raw[:n], width, voiceFullScale)
		}
		mixed := make([]int16, window)
		for k, s := range mix {
			mixed[k] = int16(s)
		}
		data.WaveformSamples.Mix = Downsample(mixed, width, audio.NumChannels*voiceFullScale)
	}

	return data
}

func extractChannel(chip ChipReader, i int, volume uint8, tuning float64, ch *ChannelStatus) {
	state := chip.ChannelState(i)

	ch.Muted = chip.IsMuted(i)
	ch.Enabled = state.Active && !ch.Muted
	ch.Divisor = state.Freq
	ch.Frequency = freq.Hz(state.Freq, float64(chip.Rate()))
	ch.Volume = volume
	ch.Wave = state.Wave
	ch.Mix = mixName(state.Wave)
	ch.Instrument = state.Ins

	ch.Note = "---"
	if state.Active {
		ch.Note = frequencyToNote(ch.Frequency, tuning)
	}
}

func mixName(wave uint8) string {
	if wave&0x0F == wavetable.PulseSelector {
		return "pulse"
	}
	switch wavetable.MixMode(wave) {
	case wavetable.MixSum:
		return "sum"
	case wavetable.MixDiff:
		return "diff"
	default:
		return "normal"
	}
}

// frequencyToNote names the tracker note closest to hz.
func frequencyToNote(hz, tuning float64) string {
	if hz < 1 || tuning <= 0 {
		return "---"
	}
	halfSteps := 12 * math.Log2(hz/tuning)
	return freq.NoteName(freq.A4 + int(math.Round(halfSteps)))
}

// Downsample reduces samples to width points scaled by fullScale. Each point
// keeps the sample of largest magnitude in its bucket so that narrow pulses
// stay visible.
func Downsample(samples []int16, width int, fullScale int) []float32 {
	out := make([]float32, width)
	if len(samples) == 0 || width <= 0 || fullScale <= 0 {
		return out
	}

	for x := range out {
		lo := x * len(samples) / width
		hi := max((x+1)*len(samples)/width, lo+1)
		hi = min(hi, len(samples))

		peak := samples[min(lo, len(samples)-1)]
		for _, s := range samples[lo:hi] {
			if abs16(s) > abs16(peak) {
				peak = s
			}
		}
		out[x] = float32(peak) / float32(fullScale)
	}
	return out
}

func abs16(v int16) int {
	if v < 0 {
		return -int(v)
	}
	return int(v)
}
