package audio

import "github.com/valerio/go-dupwave/dupwave/macro"

// Dispatch applies a command to its voice. Queries return the requested value;
// every other command returns 1. Unknown kinds are ignored, and commands
// addressed outside the four voices return 0.
func (c *Chip) Dispatch(cmd Command) int {
	if cmd.Chan < 0 || cmd.Chan >= NumChannels {
		return 0
	}
	ch := &c.channels[cmd.Chan]

	switch cmd.Kind {
	case CmdNoteOn:
		if cmd.Value != NoteNull {
			ch.Note = cmd.Value
			ch.ArpOff = 0
			ch.FixedArp = false
			ch.BaseFreq = c.noteFreq(cmd.Value)
			ch.FreqChanged = true
		}
		ch.Active = true
		ch.KeyOn = true
		ch.std.Init(c.instrument(ch.Ins))
		c.keyOn(cmd.Chan)
	case CmdNoteOff:
		ch.Active = false
		ch.KeyOff = true
		ch.std.Init(nil)
	case CmdNoteOffEnv, CmdEnvRelease:
		ch.std.Release()
	case CmdInstrument:
		if ch.Ins != cmd.Value || cmd.Value2 == 1 {
			ch.Ins = cmd.Value
		}
	case CmdVolume:
		ch.Vol = min(max(cmd.Value, 0), VolumeMax)
	case CmdGetVolume:
		return ch.Vol
	case CmdPitch:
		ch.Pitch = cmd.Value
		ch.FreqChanged = true
	case CmdWave:
		ch.Wave = uint8(cmd.Value) & 0x0F
	case CmdLegato:
		if cmd.Value != NoteNull {
			ch.Note = cmd.Value
			ch.BaseFreq = c.noteFreq(cmd.Value + ch.ArpOff)
			ch.FreqChanged = true
		}
	case CmdPrePorta:
		ch.InPorta = cmd.Value != 0
	case CmdGetVolMax:
		return VolumeMax
	case CmdMacroOff:
		ch.std.Mask(macro.LaneID(cmd.Value), true)
	case CmdMacroOn:
		ch.std.Mask(macro.LaneID(cmd.Value), false)
	case CmdMacroRestart:
		ch.std.Restart(macro.LaneID(cmd.Value))
	}
	return 1
}
