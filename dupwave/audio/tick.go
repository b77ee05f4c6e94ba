package audio

import (
	"github.com/valerio/go-dupwave/dupwave/bit"
	"github.com/valerio/go-dupwave/dupwave/freq"
	"github.com/valerio/go-dupwave/dupwave/macro"
)

// Tick advances every voice's macros by one tracker tick. On a system tick
// the output volume is gated by the note state, which is what silences a
// voice after note-off.
func (c *Chip) Tick(sysTick bool) {
	for i := range c.channels {
		ch := &c.channels[i]
		ch.std.Next()

		macroVol, hadVol := ch.std.Value(macro.LaneVol)
		if hadVol {
			ch.OutVol = min(max(macroVol, 0), VolumeMax)
		}

		if v, ok := ch.std.Value(macro.LaneArp); ok && !ch.InPorta {
			note, fixed := macro.DecodeArp(v)
			ch.FixedArp = fixed
			if fixed {
				ch.ArpNote = note
				ch.BaseFreq = c.noteFreq(note)
			} else {
				ch.ArpOff = note
				ch.BaseFreq = c.noteFreq(ch.Note + note)
			}
			ch.FreqChanged = true
		}

		if v, ok := ch.std.Value(macro.LanePitch); ok {
			ch.Pitch2 = v
			ch.FreqChanged = true
		}

		if v, ok := ch.std.Value(macro.LaneWave); ok {
			ch.Wave = bit.Replace(ch.Wave, v, 0, 2)
		}
		if v, ok := ch.std.Value(macro.LaneAlg); ok {
			ch.Wave = bit.Replace(ch.Wave, v, 2, 2)
		}

		if sysTick {
			switch {
			case !ch.Active:
				ch.OutVol = 0
			case !hadVol:
				ch.OutVol = ch.Vol
			}
		}

		if ch.FreqChanged {
			ch.Freq = freq.Calc(freq.Params{
				Base:     ch.BaseFreq,
				Pitch:    ch.Pitch,
				ArpNote:  ch.ArpNote,
				FixedArp: ch.FixedArp,
				Linear:   c.cfg.LinearPitch,
				Pitch2:   ch.Pitch2,
				Clock:    c.cfg.ChipClock,
				Divider:  c.cfg.ClockDivider,
				Tuning:   c.cfg.Tuning,
			})
			ch.FreqChanged = false
			c.WriteRegister(freqRegister(i), bit.Low(ch.Freq))
		}
		if c.regPool[waveRegister(i)] != ch.Wave {
			c.WriteRegister(waveRegister(i), ch.Wave)
		}

		ch.KeyOn = false
		ch.KeyOff = false
	}
}
