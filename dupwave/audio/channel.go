package audio

import "github.com/valerio/go-dupwave/dupwave/macro"

// SharedChannel holds the tone and envelope state every tracker voice carries.
type SharedChannel struct {
	Note     int  // semitone note number, C-0 = 0
	Pitch    int  // pitch offset set by command
	Pitch2   int  // secondary pitch from the pitch macro
	ArpOff   int  // current relative arpeggio offset
	ArpNote  int  // absolute note of a fixed arpeggio step
	FixedArp bool // ArpNote overrides Note

	BaseFreq    int  // divisor of the current note
	Freq        int  // final divisor driving the oscillator
	FreqChanged bool // Freq must be recomputed on the next tick

	Vol    int // volume set by command, 0-15
	OutVol int // volume reaching the mixer, 0-15
	Ins    int // instrument number, -1 when unset

	Active  bool // a note is held
	InPorta bool // a portamento is in progress
	KeyOn   bool // a key-on happened since the last tick
	KeyOff  bool // a key-off happened since the last tick
}

func newSharedChannel(maxVol int) SharedChannel {
	return SharedChannel{
		Vol:    maxVol,
		OutVol: maxVol,
		Ins:    -1,
	}
}

// MacroCursor is the per-voice view of the instrument macro interpreter.
// *macro.Interpreter implements it.
type MacroCursor interface {
	Init(ins *macro.Instrument)
	Next()
	Value(id macro.LaneID) (int, bool)
	Release()
	Mask(id macro.LaneID, masked bool)
	Restart(id macro.LaneID)
	NotifyInsDeletion(ins *macro.Instrument)
}

var _ MacroCursor = (*macro.Interpreter)(nil)

// Channel is one voice of the chip.
type Channel struct {
	SharedChannel

	Wave  uint8 // waveform selector, 4 bits
	Phase uint8 // wavetable position, wraps at 256
	Clock int   // clock accumulator compared against Freq

	std MacroCursor
}

func newChannel(std MacroCursor) Channel {
	return Channel{
		SharedChannel: newSharedChannel(VolumeMax),
		std:           std,
	}
}

// step advances the oscillator by one output sample. Freq acts as a divisor
// threshold: the phase moves one step every Freq/16 samples, and a zero Freq
// never moves it.
func (c *Channel) step() {
	c.Clock += phaseIncrement
	if c.Clock < c.Freq {
		return
	}
	if c.Freq == 0 {
		c.Clock = 0
		return
	}
	c.Clock %= c.Freq
	c.Phase++
}
