package audio

import (
	"log/slog"

	"github.com/valerio/go-dupwave/dupwave/freq"
	"github.com/valerio/go-dupwave/dupwave/macro"
)

// Chip is a four voice wavetable sound chip. It is not safe for concurrent
// use: the host serializes Dispatch, Tick, Acquire and the tooling calls.
type Chip struct {
	cfg  Config
	rate int

	channels [NumChannels]Channel
	osc      [NumChannels]*OscBuffer
	isMuted  [NumChannels]bool
	regPool  [RegisterPoolSize]byte

	bank      macro.Bank
	level     func(selector, position uint8) int
	onKeyOn   func(ch int)
	newCursor func() MacroCursor
}

// Option configures a Chip.
type Option func(*Chip)

// WithKeyOnHook registers fn to be called whenever a voice requests a key-on:
// on every note-on and when an active voice is unmuted.
func WithKeyOnHook(fn func(ch int)) Option {
	return func(c *Chip) { c.onKeyOn = fn }
}

// WithMacroCursor replaces the macro interpreter constructor.
func WithMacroCursor(fn func() MacroCursor) Option {
	return func(c *Chip) { c.newCursor = fn }
}

// New creates a chip with the given flags. Instruments are looked up in bank
// on note-on; a nil bank plays every note without macros.
func New(cfg Config, bank macro.Bank, opts ...Option) *Chip {
	c := &Chip{
		bank:      bank,
		newCursor: func() MacroCursor { return macro.NewInterpreter() },
	}
	for _, opt := range opts {
		opt(c)
	}
	for i := range c.osc {
		c.osc[i] = NewOscBuffer(oscBufferSize)
	}
	c.SetFlags(cfg)
	c.Reset()
	return c
}

// SetFlags applies chip flags and recomputes the output rate. Zero fields take
// their defaults.
func (c *Chip) SetFlags(cfg Config) {
	c.cfg = cfg.withDefaults()
	c.rate = c.cfg.Rate()
	c.level = c.cfg.Revision.levelFunc()
	for _, o := range c.osc {
		o.Rate = c.rate
	}
}

// Reset rebuilds all voices and clears the register pool. Mute state is kept.
func (c *Chip) Reset() {
	clear(c.regPool[:])
	for i := range c.channels {
		c.channels[i] = newChannel(c.newCursor())
		c.osc[i].Reset()
	}
	slog.Debug("Chip reset", "rate", c.rate, "revision", c.cfg.Revision.String())
}

// Config returns the active chip flags.
func (c *Chip) Config() Config {
	return c.cfg
}

// Rate returns the output sample rate in Hz.
func (c *Chip) Rate() int {
	return c.rate
}

func (c *Chip) instrument(id int) *macro.Instrument {
	if c.bank == nil || id < 0 {
		return nil
	}
	return c.bank.Instrument(id)
}

func (c *Chip) noteFreq(note int) int {
	return freq.FromFineNote(note*freq.Resolution, float64(c.rate), c.cfg.Tuning)
}

func (c *Chip) keyOn(ch int) {
	if c.onKeyOn != nil {
		c.onKeyOn(ch)
	}
}

// NotifyInsDeletion detaches every voice bound to ins.
func (c *Chip) NotifyInsDeletion(ins *macro.Instrument) {
	for i := range c.channels {
		c.channels[i].std.NotifyInsDeletion(ins)
	}
}

// ChannelState returns a copy of a voice's state.
func (c *Chip) ChannelState(ch int) Channel {
	return c.channels[ch]
}

// MacroState returns a voice's macro cursor.
func (c *Chip) MacroState(ch int) MacroCursor {
	return c.channels[ch].std
}

// OscBuffer returns a voice's oscilloscope tap.
func (c *Chip) OscBuffer(ch int) *OscBuffer {
	return c.osc[ch]
}

func (c *Chip) ChannelCount() int { return NumChannels }
func (c *Chip) OutputCount() int  { return OutputCount }

// IsVolGlobal reports that volume changes apply to the whole voice rather
// than per note.
func (c *Chip) IsVolGlobal() bool { return true }
