package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/go-dupwave/dupwave/audio"
)

func note(ch, n int) audio.Command {
	return audio.Command{Kind: audio.CmdNoteOn, Chan: ch, Value: n}
}

func ticks(evs []Event) []uint64 {
	out := make([]uint64, len(evs))
	for i, e := range evs {
		out[i] = e.Tick
	}
	return out
}

func TestTimeline_ScheduleOrder(t *testing.T) {
	tl := NewTimeline(0)
	tl.Schedule(10, note(0, 1))
	tl.Schedule(2, note(0, 2))
	tl.Schedule(10, note(0, 3))
	tl.Schedule(5, note(0, 4))
	tl.Schedule(2, note(1, 5))

	evs := tl.Events()
	assert.Equal(t, []uint64{2, 2, 5, 10, 10}, ticks(evs))

	// same-tick events keep insertion order
	assert.Equal(t, 2, evs[0].Command.Value)
	assert.Equal(t, 5, evs[1].Command.Value)
	assert.Equal(t, 1, evs[3].Command.Value)
	assert.Equal(t, 3, evs[4].Command.Value)
	assert.Equal(t, uint64(10), tl.LastTick())
}

func TestTimeline_Due(t *testing.T) {
	tl := NewTimeline(4)
	for _, tick := range []uint64{0, 0, 3, 7} {
		tl.Schedule(tick, note(0, int(tick)))
	}

	tests := []struct {
		tick     uint64
		expected []uint64
		pending  int
	}{
		{0, []uint64{0, 0}, 2},
		{1, []uint64{}, 2},
		{5, []uint64{3}, 1},
		{5, []uint64{}, 1},
		{100, []uint64{7}, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ticks(tl.Due(tt.tick)), "tick %d", tt.tick)
		assert.Equal(t, tt.pending, tl.EventCount(), "tick %d", tt.tick)
	}

	tl.Rewind()
	assert.Equal(t, 4, tl.EventCount())
	assert.Equal(t, []uint64{0, 0}, ticks(tl.Due(0)))
}

func TestTimeline_ScheduleBehindCursor(t *testing.T) {
	tl := NewTimeline(0)
	tl.Schedule(5, note(0, 5))
	tl.Schedule(9, note(0, 9))
	require.Len(t, tl.Due(6), 1)

	tl.Schedule(1, note(0, 1))
	assert.Equal(t, 1, tl.EventCount())
	assert.Equal(t, []uint64{9}, ticks(tl.Due(10)))
}

func TestTimeline_ScheduleRelative(t *testing.T) {
	tl := NewTimeline(0)
	tl.SetCurrentTick(12)
	tl.ScheduleRelative(3, note(2, 40))
	assert.Equal(t, uint64(12), tl.GetCurrentTick())
	assert.Equal(t, uint64(15), tl.LastTick())
	assert.Equal(t, 1, tl.Len())
}

func TestSong_TotalTicks(t *testing.T) {
	s := NewSong("empty")
	assert.Equal(t, uint64(0), s.TotalTicks())

	s.Timeline.Schedule(20, note(0, 1))
	assert.Equal(t, uint64(20+DefaultTail), s.TotalTicks())

	s.Length = 8
	assert.Equal(t, uint64(8), s.TotalTicks())
}

func TestSong_IsSysTick(t *testing.T) {
	s := NewSong("div")
	assert.True(t, s.IsSysTick(3))

	s.SysTickDiv = 3
	var got []bool
	for tick := range uint64(6) {
		got = append(got, s.IsSysTick(tick))
	}
	assert.Equal(t, []bool{true, false, false, true, false, false}, got)
}

func TestSong_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(s *Song)
		wantErr bool
	}{
		{"defaults", func(s *Song) {}, false},
		{"zero tick rate", func(s *Song) { s.TickRate = 0 }, true},
		{"zero divider", func(s *Song) { s.SysTickDiv = 0 }, true},
		{"no timeline", func(s *Song) { s.Timeline = nil }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSong(tt.name)
			tt.mutate(s)
			err := s.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
