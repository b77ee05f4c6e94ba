package audio

import "fmt"

// CommandKind identifies a dispatcher command.
type CommandKind int

const (
	CmdNoteOn CommandKind = iota
	CmdNoteOff
	CmdNoteOffEnv
	CmdEnvRelease
	CmdInstrument
	CmdVolume
	CmdGetVolume
	CmdPitch
	CmdWave
	CmdGetVolMax
	CmdMacroOff
	CmdMacroOn
	CmdMacroRestart
	CmdLegato
	CmdPrePorta
)

var commandNames = map[CommandKind]string{
	CmdNoteOn:       "NoteOn",
	CmdNoteOff:      "NoteOff",
	CmdNoteOffEnv:   "NoteOffEnv",
	CmdEnvRelease:   "EnvRelease",
	CmdInstrument:   "Instrument",
	CmdVolume:       "Volume",
	CmdGetVolume:    "GetVolume",
	CmdPitch:        "Pitch",
	CmdWave:         "Wave",
	CmdGetVolMax:    "GetVolMax",
	CmdMacroOff:     "MacroOff",
	CmdMacroOn:      "MacroOn",
	CmdMacroRestart: "MacroRestart",
	CmdLegato:       "Legato",
	CmdPrePorta:     "PrePorta",
}

func (k CommandKind) String() string {
	if name, ok := commandNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Cmd(%d)", int(k))
}

// Command is one musical event addressed to a voice.
type Command struct {
	Kind   CommandKind
	Chan   int
	Value  int
	Value2 int
}

func (c Command) String() string {
	return fmt.Sprintf("%s ch=%d value=%d value2=%d", c.Kind, c.Chan, c.Value, c.Value2)
}
