package events

import (
	"fmt"

	"github.com/valerio/go-dupwave/dupwave/macro"
)

const (
	// DefaultTickRate is the tracker tick rate in Hz.
	DefaultTickRate = 60.0
	// DefaultTail is how many ticks a song keeps rendering after its last event.
	DefaultTail = 30
)

// Song is everything the player needs to perform a piece: the instrument
// bank, the command timeline and its timing.
type Song struct {
	Name        string
	TickRate    float64 // tracker ticks per second
	SysTickDiv  int     // a system tick happens every SysTickDiv ticks
	Length      uint64  // total ticks; 0 means last event plus DefaultTail
	Instruments macro.MapBank
	Timeline    *Timeline
}

// NewSong creates an empty song with default timing.
func NewSong(name string) *Song {
	return &Song{
		Name:        name,
		TickRate:    DefaultTickRate,
		SysTickDiv:  1,
		Instruments: macro.MapBank{},
		Timeline:    NewTimeline(64),
	}
}

// Validate checks the song timing.
func (s *Song) Validate() error {
	if s.TickRate <= 0 {
		return fmt.Errorf("song %q: tick rate must be positive, got %g", s.Name, s.TickRate)
	}
	if s.SysTickDiv < 1 {
		return fmt.Errorf("song %q: system tick divider must be at least 1, got %d", s.Name, s.SysTickDiv)
	}
	if s.Timeline == nil {
		return fmt.Errorf("song %q: no timeline", s.Name)
	}
	return nil
}

// TotalTicks returns the number of ticks the song plays for.
func (s *Song) TotalTicks() uint64 {
	if s.Length > 0 {
		return s.Length
	}
	if s.Timeline == nil || s.Timeline.Len() == 0 {
		return 0
	}
	return s.Timeline.LastTick() + DefaultTail
}

// IsSysTick reports whether tick is a system tick.
func (s *Song) IsSysTick(tick uint64) bool {
	if s.SysTickDiv <= 1 {
		return true
	}
	return tick%uint64(s.SysTickDiv) == 0
}
