// Package macro implements per-voice instrument macros: short value sequences
// stepped once per tick that modulate volume, arpeggio, waveform, filter mode
// and pitch.
package macro

import (
	"fmt"
	"strings"
)

// LaneID names one macro lane of an instrument.
type LaneID int

const (
	LaneVol LaneID = iota
	LaneArp
	LaneWave
	LaneAlg
	LanePitch
	LaneCount
)

var laneNames = [LaneCount]string{"vol", "arp", "wave", "alg", "pitch"}

func (l LaneID) String() string {
	if l < 0 || l >= LaneCount {
		return fmt.Sprintf("lane(%d)", int(l))
	}
	return laneNames[l]
}

// ParseLane looks a lane up by name ("vol", "arp", "wave", "alg", "pitch").
func ParseLane(name string) (LaneID, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range laneNames {
		if n == name {
			return LaneID(i), nil
		}
	}
	return 0, fmt.Errorf("unknown macro lane %q", name)
}

// None marks an unset loop or release point.
const None = -1

// ArpFixed flags an arpeggio value as an absolute note rather than an offset.
const ArpFixed = 1 << 30

// FixedArp encodes an absolute arpeggio note.
func FixedArp(note int) int {
	return note | ArpFixed
}

// DecodeArp splits an arpeggio value into its note and fixed flag. Only bit
// 30 marks a fixed note; negative offsets also carry bit 31 and stay relative.
func DecodeArp(v int) (note int, fixed bool) {
	if int64(v)&(3<<30) == ArpFixed {
		return v &^ ArpFixed, true
	}
	return v, false
}

// Macro is one lane's value sequence.
type Macro struct {
	Values  []int
	Loop    int // index jumped to after the last value, or None
	Release int // index held until the note is released, or None
	Speed   int // ticks per step; values below 1 step every tick
	Delay   int // ticks to wait before the first step
}

// NewMacro returns a macro with no loop or release point.
func NewMacro(values ...int) *Macro {
	return &Macro{Values: values, Loop: None, Release: None}
}

// Instrument groups the macros applied to a voice while it plays a note.
type Instrument struct {
	Name   string
	Macros [LaneCount]*Macro
}

// Bank resolves instrument numbers.
type Bank interface {
	Instrument(id int) *Instrument
}

// MapBank is a Bank backed by a map.
type MapBank map[int]*Instrument

// Instrument returns the instrument with the given id, or nil.
func (b MapBank) Instrument(id int) *Instrument {
	return b[id]
}

// Delete removes an instrument and returns it, or nil if it was not present.
func (b MapBank) Delete(id int) *Instrument {
	ins := b[id]
	delete(b, id)
	return ins
}
