package audio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/go-dupwave/dupwave/wavetable"
)

// squareChip holds A-4 on voice 0 with the 50% square at full volume.
func squareChip(t testing.TB, cfg Config, opts ...Option) *Chip {
	t.Helper()
	c := New(cfg, nil, opts...)
	c.Dispatch(Command{Kind: CmdNoteOn, Chan: 0, Value: noteA4})
	c.Dispatch(Command{Kind: CmdWave, Chan: 0, Value: 0})
	c.Dispatch(Command{Kind: CmdVolume, Chan: 0, Value: 15})
	c.Tick(true)
	return c
}

func TestAcquire_Square(t *testing.T) {
	c := squareChip(t, DefaultConfig())
	require.Equal(t, 75, c.ChannelState(0).Freq)
	require.Equal(t, 15, c.ChannelState(0).OutVol)

	const period = 16 * 75
	buf := make([]int16, 2*period)
	c.Acquire(buf)

	assert.Equal(t, int16(960), buf[0])
	high := 0
	for k, s := range buf {
		require.Contains(t, []int16{0, 960}, s, "sample %d", k)
		if k < period {
			if s == 960 {
				high++
			}
			assert.Equal(t, s, buf[k+period], "sample %d", k)
		}
	}
	assert.Equal(t, period/2, high)
}

func TestAcquire_InactiveVoicesAreSilent(t *testing.T) {
	c := newTestChip(t, nil)
	buf := make([]int16, 256)
	c.Acquire(buf)
	assert.Equal(t, make([]int16, 256), buf)

	// stopped voices keep stepping their oscillator
	c.Dispatch(Command{Kind: CmdNoteOn, Chan: 1, Value: noteA4})
	c.Tick(true)
	c.Dispatch(Command{Kind: CmdNoteOff, Chan: 1})
	c.Acquire(buf)
	assert.Equal(t, make([]int16, 256), buf)
	assert.NotZero(t, c.ChannelState(1).Phase)
}

func TestAcquire_SumsVoices(t *testing.T) {
	c := newTestChip(t, nil)
	for ch := range NumChannels {
		c.Dispatch(Command{Kind: CmdNoteOn, Chan: ch, Value: noteA4})
		c.Dispatch(Command{Kind: CmdVolume, Chan: ch, Value: 10})
	}
	c.Tick(true)

	buf := make([]int16, 1)
	c.Acquire(buf)
	assert.Equal(t, int16(4*2*10*outputScale), buf[0])

	dst := make([]int16, 1)
	for ch := range NumChannels {
		require.Equal(t, 1, c.OscBuffer(ch).Latest(dst))
		assert.Equal(t, int16(2*10*outputScale), dst[0])
	}
}

func TestAcquire_FilterRevision(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Revision = RevisionFilter
	c := squareChip(t, cfg)
	c.Dispatch(Command{Kind: CmdWave, Chan: 0, Value: 0x09})

	buf := make([]int16, 16*75)
	c.Acquire(buf)

	ch := Channel{}
	ch.Freq = 75
	for k, s := range buf {
		ch.step()
		want := int16(wavetable.FilterLevel(0x09, ch.Phase) * 15 * outputScale)
		require.Equal(t, want, s, "sample %d", k)
	}
}

func TestMute_SilencesAndRestarts(t *testing.T) {
	var keyOns []int
	c := squareChip(t, DefaultConfig(), WithKeyOnHook(func(ch int) {
		keyOns = append(keyOns, ch)
	}))
	assert.Equal(t, []int{0}, keyOns)

	c.MuteChannel(0, true)
	assert.True(t, c.IsMuted(0))
	buf := make([]int16, 500)
	c.Acquire(buf)
	assert.Equal(t, make([]int16, 500), buf)
	assert.NotZero(t, c.ChannelState(0).Phase)
	assert.Equal(t, [NumChannels]bool{}, c.GetChannelStatus())

	c.MuteChannel(0, false)
	assert.Equal(t, []int{0, 0}, keyOns)
	assert.Equal(t, uint8(0), c.ChannelState(0).Phase)
	assert.Equal(t, 0, c.ChannelState(0).Clock)
	assert.True(t, c.ChannelState(0).KeyOn)

	c.Acquire(buf[:1])
	assert.Equal(t, int16(960), buf[0])

	// unmuting an idle voice is silent bookkeeping
	c.MuteChannel(3, true)
	c.MuteChannel(3, false)
	assert.Equal(t, []int{0, 0}, keyOns)

	c.MuteChannel(NumChannels, true)
	c.MuteChannel(-1, true)
}

func TestMute_IdleVoiceKeysOnWhenActivated(t *testing.T) {
	var keyOns []int
	c := newTestChip(t, nil, WithKeyOnHook(func(ch int) {
		keyOns = append(keyOns, ch)
	}))

	c.MuteChannel(2, true)
	assert.Empty(t, keyOns)

	c.Dispatch(Command{Kind: CmdNoteOn, Chan: 2, Value: noteA4})
	assert.Equal(t, []int{2}, keyOns)
	assert.True(t, c.ChannelState(2).Active)

	c.Tick(true)
	buf := make([]int16, 300)
	c.Acquire(buf)
	assert.Equal(t, make([]int16, 300), buf)
	assert.NotZero(t, c.ChannelState(2).Phase)

	c.MuteChannel(2, false)
	assert.Equal(t, []int{2, 2}, keyOns)
	assert.Equal(t, uint8(0), c.ChannelState(2).Phase)
	assert.Equal(t, 0, c.ChannelState(2).Clock)
}

func TestMute_SoloToggle(t *testing.T) {
	c := newTestChip(t, nil)
	for ch := range NumChannels {
		c.Dispatch(Command{Kind: CmdNoteOn, Chan: ch, Value: noteA4})
	}
	c.Dispatch(Command{Kind: CmdVolume, Chan: 2, Value: 7})
	c.Tick(true)

	c.SoloChannel(2)
	assert.Equal(t, [NumChannels]bool{false, false, true, false}, c.GetChannelStatus())

	c.ToggleChannel(0)
	assert.Equal(t, [NumChannels]bool{true, false, true, false}, c.GetChannelStatus())

	c.UnmuteAll()
	assert.Equal(t, [NumChannels]bool{true, true, true, true}, c.GetChannelStatus())
	assert.Equal(t, [NumChannels]uint8{15, 15, 7, 15}, c.GetChannelVolumes())
}

func TestMute_SurvivesReset(t *testing.T) {
	c := newTestChip(t, nil)
	c.MuteChannel(1, true)
	c.Reset()
	assert.True(t, c.IsMuted(1))
}

func BenchmarkAcquire(b *testing.B) {
	c := squareChip(b, DefaultConfig())
	for ch := 1; ch < NumChannels; ch++ {
		c.Dispatch(Command{Kind: CmdNoteOn, Chan: ch, Value: noteA4 + ch*4})
		c.Dispatch(Command{Kind: CmdWave, Chan: ch, Value: ch * 5})
	}
	c.Tick(true)

	buf := make([]int16, 4096)
	b.ResetTimer()
	for range b.N {
		c.Acquire(buf)
	}
}
