package macro

// laneState is the cursor of one lane.
type laneState struct {
	m        *Macro
	pos      int
	delay    int
	wait     int
	val      int
	had      bool
	holding  bool
	finished bool
	masked   bool
}

func (l *laneState) reset() {
	l.pos = 0
	l.wait = 0
	l.val = 0
	l.had = false
	l.holding = false
	l.finished = l.m == nil
	if l.m != nil {
		l.delay = l.m.Delay
	}
}

func (l *laneState) step(released bool) {
	m := l.m
	if l.holding {
		if !released {
			return
		}
		l.holding = false
		l.pos++
	}

	if l.pos >= len(m.Values) {
		if m.Loop < 0 || m.Loop >= len(m.Values) {
			l.finished = true
			return
		}
		l.pos = m.Loop
	}

	l.val = m.Values[l.pos]
	l.had = true
	if !released && l.pos == m.Release {
		l.holding = true
		return
	}
	l.pos++
}

// Interpreter steps the macros of one voice. The zero value has no
// instrument bound and produces no values.
type Interpreter struct {
	ins      *Instrument
	lanes    [LaneCount]laneState
	released bool
}

// NewInterpreter returns an interpreter with no instrument bound.
func NewInterpreter() *Interpreter {
	in := &Interpreter{}
	in.Init(nil)
	return in
}

// Init binds an instrument and rewinds every lane. A nil instrument leaves
// all lanes empty. Lane masks survive rebinding.
func (in *Interpreter) Init(ins *Instrument) {
	in.ins = ins
	in.released = false
	for i := range in.lanes {
		l := &in.lanes[i]
		l.m = nil
		if ins != nil {
			l.m = ins.Macros[i]
		}
		l.reset()
	}
}

// Next advances every lane by one tick.
func (in *Interpreter) Next() {
	for i := range in.lanes {
		l := &in.lanes[i]
		l.had = false
		if l.finished || l.masked {
			continue
		}
		if l.delay > 0 {
			l.delay--
			continue
		}
		if l.wait > 0 {
			l.wait--
			continue
		}
		l.wait = max(l.m.Speed, 1) - 1
		l.step(in.released)
	}
}

// Value returns the value a lane produced on the last tick and whether it
// produced one at all.
func (in *Interpreter) Value(id LaneID) (int, bool) {
	if id < 0 || id >= LaneCount {
		return 0, false
	}
	l := &in.lanes[id]
	return l.val, l.had
}

// Release lets lanes continue past their release points.
func (in *Interpreter) Release() {
	in.released = true
}

// Released reports whether Release was called since the last Init.
func (in *Interpreter) Released() bool {
	return in.released
}

// Mask stops or resumes a lane without rewinding it.
func (in *Interpreter) Mask(id LaneID, masked bool) {
	if id < 0 || id >= LaneCount {
		return
	}
	in.lanes[id].masked = masked
	if masked {
		in.lanes[id].had = false
	}
}

// Restart rewinds a lane to its first step.
func (in *Interpreter) Restart(id LaneID) {
	if id < 0 || id >= LaneCount {
		return
	}
	in.lanes[id].reset()
}

// Instrument returns the bound instrument, or nil.
func (in *Interpreter) Instrument() *Instrument {
	return in.ins
}

// NotifyInsDeletion unbinds ins if it is the bound instrument.
func (in *Interpreter) NotifyInsDeletion(ins *Instrument) {
	if ins != nil && in.ins == ins {
		in.Init(nil)
	}
}
