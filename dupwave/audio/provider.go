package audio

import "github.com/valerio/go-dupwave/dupwave/macro"

// Dispatcher is the contract a host engine drives a sound chip through.
type Dispatcher interface {
	Reset()
	SetFlags(cfg Config)
	Dispatch(c Command) int
	Tick(sysTick bool)
	Acquire(buf []int16)
	MuteChannel(ch int, mute bool)
	NotifyInsDeletion(ins *macro.Instrument)

	ChannelCount() int
	OutputCount() int
	IsVolGlobal() bool
	OscBuffer(ch int) *OscBuffer

	// Register pool, for tooling only
	WriteRegister(address int, value uint8)
	RegisterPool() []byte
	RegisterPoolSize() int
	RegisterSheet() []Register
}

// Monitor exposes the audio debugging controls used by the live views.
type Monitor interface {
	ToggleChannel(ch int)
	SoloChannel(ch int)
	UnmuteAll()
	GetChannelStatus() [NumChannels]bool
	GetChannelVolumes() [NumChannels]uint8
}

var (
	_ Dispatcher = (*Chip)(nil)
	_ Monitor    = (*Chip)(nil)
)
