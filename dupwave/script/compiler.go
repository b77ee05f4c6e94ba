package script

import (
	"math"

	lua "github.com/yuin/gopher-lua"

	"github.com/valerio/go-dupwave/dupwave/audio"
	"github.com/valerio/go-dupwave/dupwave/events"
	"github.com/valerio/go-dupwave/dupwave/freq"
	"github.com/valerio/go-dupwave/dupwave/macro"
)

// compiler collects what a script declares into a song.
type compiler struct {
	song *events.Song
	tick uint64
}

func (c *compiler) register(L *lua.LState) {
	funcs := map[string]lua.LGFunction{
		"tempo":     c.tempo,
		"sys_every": c.sysEvery,
		"length":    c.length,
		"wait":      c.wait,
		"now":       c.now,
		"fixed":     c.fixed,

		"instrument": c.instrument,

		"note":          c.note,
		"off":           c.simple(audio.CmdNoteOff),
		"release":       c.simple(audio.CmdNoteOffEnv),
		"volume":        c.valued(audio.CmdVolume),
		"wave":          c.valued(audio.CmdWave),
		"pitch":         c.valued(audio.CmdPitch),
		"ins":           c.ins,
		"legato":        c.legato,
		"porta":         c.porta,
		"macro_off":     c.lane(audio.CmdMacroOff),
		"macro_on":      c.lane(audio.CmdMacroOn),
		"macro_restart": c.lane(audio.CmdMacroRestart),
	}
	for name, fn := range funcs {
		L.SetGlobal(name, L.NewFunction(fn))
	}
	L.SetGlobal("NOTE_NULL", lua.LNumber(audio.NoteNull))
}

func (c *compiler) emit(cmd audio.Command) {
	c.song.Timeline.Schedule(c.tick, cmd)
}

// checkChan reads a 1-based voice number.
func checkChan(L *lua.LState, n int) int {
	ch := L.CheckInt(n)
	if ch < 1 || ch > audio.NumChannels {
		L.ArgError(n, "voice must be 1-4")
	}
	return ch - 1
}

// checkNote accepts a note number or a tracker note name such as "C#4".
func checkNote(L *lua.LState, n int) int {
	switch v := L.Get(n).(type) {
	case lua.LNumber:
		return int(v)
	case lua.LString:
		note, err := freq.ParseNote(string(v))
		if err != nil {
			L.ArgError(n, err.Error())
		}
		return note
	default:
		L.TypeError(n, lua.LTNumber)
		return 0
	}
}

func (c *compiler) tempo(L *lua.LState) int {
	hz := float64(L.CheckNumber(1))
	if hz <= 0 || math.IsInf(hz, 0) || math.IsNaN(hz) {
		L.ArgError(1, "tempo must be positive")
	}
	c.song.TickRate = hz
	return 0
}

func (c *compiler) sysEvery(L *lua.LState) int {
	div := L.CheckInt(1)
	if div < 1 {
		L.ArgError(1, "divider must be at least 1")
	}
	c.song.SysTickDiv = div
	return 0
}

func (c *compiler) length(L *lua.LState) int {
	ticks := L.CheckInt(1)
	if ticks < 1 {
		L.ArgError(1, "length must be at least 1 tick")
	}
	c.song.Length = uint64(ticks)
	return 0
}

func (c *compiler) wait(L *lua.LState) int {
	ticks := L.OptInt(1, 1)
	if ticks < 0 {
		L.ArgError(1, "cannot wait a negative number of ticks")
	}
	c.tick += uint64(ticks)
	return 0
}

func (c *compiler) now(L *lua.LState) int {
	L.Push(lua.LNumber(c.tick))
	return 1
}

// fixed encodes an absolute arpeggio note for an arp macro.
func (c *compiler) fixed(L *lua.LState) int {
	L.Push(lua.LNumber(macro.FixedArp(checkNote(L, 1))))
	return 1
}

func (c *compiler) note(L *lua.LState) int {
	ch := checkChan(L, 1)
	n := audio.NoteNull
	if L.GetTop() >= 2 && L.Get(2) != lua.LNil {
		n = checkNote(L, 2)
	}
	c.emit(audio.Command{Kind: audio.CmdNoteOn, Chan: ch, Value: n})
	return 0
}

func (c *compiler) legato(L *lua.LState) int {
	ch := checkChan(L, 1)
	c.emit(audio.Command{Kind: audio.CmdLegato, Chan: ch, Value: checkNote(L, 2)})
	return 0
}

func (c *compiler) porta(L *lua.LState) int {
	ch := checkChan(L, 1)
	on := 0
	if lua.LVAsBool(L.Get(2)) {
		on = 1
	}
	c.emit(audio.Command{Kind: audio.CmdPrePorta, Chan: ch, Value: on})
	return 0
}

func (c *compiler) ins(L *lua.LState) int {
	ch := checkChan(L, 1)
	id := L.CheckInt(2)
	force := 0
	if lua.LVAsBool(L.Get(3)) {
		force = 1
	}
	c.emit(audio.Command{Kind: audio.CmdInstrument, Chan: ch, Value: id, Value2: force})
	return 0
}

func (c *compiler) simple(kind audio.CommandKind) lua.LGFunction {
	return func(L *lua.LState) int {
		c.emit(audio.Command{Kind: kind, Chan: checkChan(L, 1)})
		return 0
	}
}

func (c *compiler) valued(kind audio.CommandKind) lua.LGFunction {
	return func(L *lua.LState) int {
		ch := checkChan(L, 1)
		c.emit(audio.Command{Kind: kind, Chan: ch, Value: L.CheckInt(2)})
		return 0
	}
}

func (c *compiler) lane(kind audio.CommandKind) lua.LGFunction {
	return func(L *lua.LState) int {
		ch := checkChan(L, 1)
		id, err := macro.ParseLane(L.CheckString(2))
		if err != nil {
			L.ArgError(2, err.Error())
		}
		c.emit(audio.Command{Kind: kind, Chan: ch, Value: int(id)})
		return 0
	}
}

// instrument(id, {vol = {...}, arp = {...}, ...}) defines an instrument. Each
// lane is an array of values with optional loop, release, speed and delay
// fields; loop and release are 1-based like Lua arrays.
func (c *compiler) instrument(L *lua.LState) int {
	id := L.CheckInt(1)
	tbl := L.CheckTable(2)

	ins := &macro.Instrument{}
	tbl.ForEach(func(k, v lua.LValue) {
		key, ok := k.(lua.LString)
		if !ok {
			L.ArgError(2, "instrument keys must be lane names")
		}
		if key == "name" {
			ins.Name = lua.LVAsString(v)
			return
		}
		lane, err := macro.ParseLane(string(key))
		if err != nil {
			L.ArgError(2, err.Error())
		}
		lt, ok := v.(*lua.LTable)
		if !ok {
			L.ArgError(2, "macro "+string(key)+" must be a table")
		}
		ins.Macros[lane] = checkMacro(L, lt)
	})

	if old := c.song.Instruments.Instrument(id); old != nil {
		L.RaiseError("instrument %d defined twice", id)
	}
	c.song.Instruments[id] = ins
	return 0
}

func checkMacro(L *lua.LState, t *lua.LTable) *macro.Macro {
	m := macro.NewMacro()
	for i := 1; i <= t.Len(); i++ {
		n, ok := t.RawGetInt(i).(lua.LNumber)
		if !ok {
			L.RaiseError("macro step %d is not a number", i)
		}
		m.Values = append(m.Values, int(n))
	}
	m.Loop = optIndex(L, t, "loop", len(m.Values))
	m.Release = optIndex(L, t, "release", len(m.Values))
	m.Speed = optField(L, t, "speed", 1)
	m.Delay = optField(L, t, "delay", 0)
	return m
}

// optIndex converts a 1-based step field into a 0-based index, or macro.None.
func optIndex(L *lua.LState, t *lua.LTable, field string, size int) int {
	v := t.RawGetString(field)
	if v == lua.LNil {
		return macro.None
	}
	n, ok := v.(lua.LNumber)
	if !ok || int(n) < 1 || int(n) > size {
		L.RaiseError("macro %s must be a step between 1 and %d", field, size)
	}
	return int(n) - 1
}

func optField(L *lua.LState, t *lua.LTable, field string, def int) int {
	v := t.RawGetString(field)
	if v == lua.LNil {
		return def
	}
	n, ok := v.(lua.LNumber)
	if !ok || n < 0 {
		L.RaiseError("macro %s must be a non-negative number", field)
	}
	return int(n)
}
