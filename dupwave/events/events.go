package events

import (
	"sort"

	"github.com/valerio/go-dupwave/dupwave/audio"
)

// Event is a chip command scheduled at a tracker tick.
type Event struct {
	Tick    uint64        // Absolute tick when this event should fire
	Command audio.Command // Command dispatched to the chip
}

// Timeline holds the commands of a song in tick order. Events scheduled for
// the same tick keep their scheduling order.
type Timeline struct {
	events      []Event
	next        int
	currentTick uint64
}

// NewTimeline creates an empty timeline with room for capacity events.
func NewTimeline(capacity int) *Timeline {
	return &Timeline{
		events: make([]Event, 0, capacity),
	}
}

// Schedule adds a command at an absolute tick.
func (t *Timeline) Schedule(tick uint64, cmd audio.Command) {
	i := sort.Search(len(t.events), func(i int) bool {
		return t.events[i].Tick > tick
	})
	t.events = append(t.events, Event{})
	copy(t.events[i+1:], t.events[i:])
	t.events[i] = Event{Tick: tick, Command: cmd}

	// keep the cursor on the same event when inserting behind it
	if i < t.next {
		t.next++
	}
}

// ScheduleRelative schedules a command relative to the current tick.
func (t *Timeline) ScheduleRelative(ticksFromNow uint64, cmd audio.Command) {
	t.Schedule(t.currentTick+ticksFromNow, cmd)
}

// Due returns the pending events whose tick is at or before tick, and moves
// past them. The slice is only valid until the next Schedule.
func (t *Timeline) Due(tick uint64) []Event {
	start := t.next
	for t.next < len(t.events) && t.events[t.next].Tick <= tick {
		t.next++
	}
	return t.events[start:t.next]
}

// Rewind makes every event pending again and resets the current tick.
func (t *Timeline) Rewind() {
	t.next = 0
	t.currentTick = 0
}

// GetCurrentTick returns the tick relative scheduling is based on
func (t *Timeline) GetCurrentTick() uint64 {
	return t.currentTick
}

// SetCurrentTick updates the tick relative scheduling is based on
func (t *Timeline) SetCurrentTick(tick uint64) {
	t.currentTick = tick
}

// LastTick returns the tick of the latest event, or 0 for an empty timeline.
func (t *Timeline) LastTick() uint64 {
	if len(t.events) == 0 {
		return 0
	}
	return t.events[len(t.events)-1].Tick
}

// EventCount returns the number of pending events
func (t *Timeline) EventCount() int {
	return len(t.events) - t.next
}

// Len returns the total number of scheduled events.
func (t *Timeline) Len() int {
	return len(t.events)
}

// Events returns a copy of every scheduled event in tick order.
func (t *Timeline) Events() []Event {
	out := make([]Event, len(t.events))
	copy(out, t.events)
	return out
}
