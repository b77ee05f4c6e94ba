package terminal

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valerio/go-dupwave/dupwave/audio"
	"github.com/valerio/go-dupwave/dupwave/debug"
	"github.com/valerio/go-dupwave/dupwave/freq"
)

type recordingMonitor struct {
	calls []string
}

func (m *recordingMonitor) ToggleChannel(ch int) {
	m.calls = append(m.calls, "toggle", string(rune('0'+ch)))
}

func (m *recordingMonitor) SoloChannel(ch int) {
	m.calls = append(m.calls, "solo", string(rune('0'+ch)))
}

func (m *recordingMonitor) UnmuteAll() {
	m.calls = append(m.calls, "unmute")
}

func (m *recordingMonitor) GetChannelStatus() [audio.NumChannels]bool {
	return [audio.NumChannels]bool{}
}
func (m *recordingMonitor) GetChannelVolumes() [audio.NumChannels]uint8 {
	return [audio.NumChannels]uint8{}
}

type fixture struct {
	backend  *Backend
	screen   tcell.SimulationScreen
	monitor  *recordingMonitor
	quits    int
	restarts int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		screen:  tcell.NewSimulationScreen("UTF-8"),
		monitor: &recordingMonitor{},
		backend: New(),
	}
	prev := slog.Default()

	require.NoError(t, f.backend.Init(Config{
		Title:    "demo",
		Screen:   f.screen,
		Monitor:  f.monitor,
		LogLevel: slog.LevelInfo,
		Callbacks: Callbacks{
			OnQuit:    func() { f.quits++ },
			OnRestart: func() { f.restarts++ },
		},
	}))
	f.screen.SetSize(120, 40)

	t.Cleanup(func() {
		require.NoError(t, f.backend.Cleanup())
		assert.Same(t, prev, slog.Default())
	})
	return f
}

func (f *fixture) press(r rune) {
	f.screen.InjectKey(tcell.KeyRune, r, tcell.ModNone)
}

func (f *fixture) text() string {
	cells, width, height := f.screen.GetContents()
	var sb strings.Builder
	for y := range height {
		for x := range width {
			cell := cells[y*width+x]
			if len(cell.Runes) > 0 {
				sb.WriteRune(cell.Runes[0])
			} else {
				sb.WriteRune(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func snapshot(width int) *debug.AudioData {
	c := audio.New(audio.DefaultConfig(), nil)
	c.Dispatch(audio.Command{Kind: audio.CmdNoteOn, Chan: 0, Value: freq.A4})
	c.MuteChannel(3, true)
	c.Tick(true)
	c.Acquire(make([]int16, 2400))
	return debug.ExtractAudioData(c, nil, 2400, width)
}

func TestBackend_Keys(t *testing.T) {
	f := newFixture(t)

	for _, r := range "1$0r" {
		f.press(r)
	}
	require.NoError(t, f.backend.Update(nil))

	assert.Equal(t, []string{"toggle", "0", "solo", "3", "unmute"}, f.monitor.calls)
	assert.Equal(t, 1, f.restarts)
	assert.True(t, f.backend.Running())

	f.press('q')
	f.screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	require.NoError(t, f.backend.Update(nil))
	assert.False(t, f.backend.Running())
	assert.Equal(t, 1, f.quits)
}

func TestBackend_CtrlCQuits(t *testing.T) {
	f := newFixture(t)
	f.screen.InjectKey(tcell.KeyCtrlC, 0, tcell.ModNone)
	require.NoError(t, f.backend.Update(nil))
	assert.False(t, f.backend.Running())
}

func TestBackend_Render(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.backend.Update(snapshot(f.backend.ScopeWidth())))
	screen := f.text()

	assert.Contains(t, screen, "dupwave ─ demo ─ 529760 Hz ─ wavetable")
	assert.Contains(t, screen, "1 ▶ A-4")
	assert.Contains(t, screen, "4 M ---")
	assert.Contains(t, screen, "Registers")
	assert.Contains(t, screen, "00 CH1Freq  4B")
	assert.Contains(t, screen, "CH1")
	assert.Contains(t, screen, "MIX")
	assert.Contains(t, screen, "▀")
	assert.Contains(t, screen, helpText)
	assert.Contains(t, screen, "Terminal backend")
}

func TestBackend_TooSmall(t *testing.T) {
	f := newFixture(t)
	f.screen.SetSize(40, 10)
	require.NoError(t, f.backend.Update(nil))
	assert.Contains(t, f.text(), "Terminal too small")
}

func TestBackend_LogLevelKeys(t *testing.T) {
	f := newFixture(t)
	slog.Debug("debug line")
	require.NoError(t, f.backend.Update(nil))
	assert.NotContains(t, f.text(), "debug line")

	f.press('+')
	require.NoError(t, f.backend.Update(nil))
	assert.Equal(t, slog.LevelDebug, f.backend.logLevel)
	assert.Contains(t, f.text(), "debug line")

	for range 4 {
		f.press('-')
	}
	require.NoError(t, f.backend.Update(nil))
	assert.Equal(t, slog.LevelError, f.backend.logLevel)
	assert.NotContains(t, f.text(), "Terminal backend")
}
