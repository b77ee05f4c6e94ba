package audio

import (
	"fmt"
	"strings"

	"github.com/valerio/go-dupwave/dupwave/freq"
	"github.com/valerio/go-dupwave/dupwave/wavetable"
)

// Revision selects the waveform generator.
type Revision int

const (
	// RevisionWavetable reads the packed prototype table with double and mix
	// transforms.
	RevisionWavetable Revision = iota
	// RevisionFilter derives waveforms procedurally with bit filters.
	RevisionFilter
)

func (r Revision) String() string {
	switch r {
	case RevisionWavetable:
		return "wavetable"
	case RevisionFilter:
		return "filter"
	default:
		return fmt.Sprintf("revision(%d)", int(r))
	}
}

// ParseRevision parses "wavetable" or "filter".
func ParseRevision(s string) (Revision, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "wavetable":
		return RevisionWavetable, nil
	case "filter":
		return RevisionFilter, nil
	default:
		return 0, fmt.Errorf("unknown chip revision %q", s)
	}
}

func (r Revision) levelFunc() func(selector, position uint8) int {
	if r == RevisionFilter {
		return wavetable.FilterLevel
	}
	return wavetable.Level
}

// Config holds the chip flags set by the host.
type Config struct {
	ChipClock    int     // Hz
	ClockDivider int     // output rate is ChipClock/ClockDivider
	Tuning       float64 // A-4 in Hz
	LinearPitch  bool
	Revision     Revision
}

// DefaultConfig returns the nominal chip configuration.
func DefaultConfig() Config {
	return Config{
		ChipClock:    DefaultChipClock,
		ClockDivider: DefaultClockDivider,
		Tuning:       freq.DefaultTuning,
		Revision:     RevisionWavetable,
	}
}

// withDefaults fills zero fields from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.ChipClock <= 0 {
		c.ChipClock = def.ChipClock
	}
	if c.ClockDivider <= 0 {
		c.ClockDivider = def.ClockDivider
	}
	if c.Tuning <= 0 {
		c.Tuning = def.Tuning
	}
	return c
}

// Rate returns the output sample rate in Hz.
func (c Config) Rate() int {
	c = c.withDefaults()
	return c.ChipClock / c.ClockDivider
}
