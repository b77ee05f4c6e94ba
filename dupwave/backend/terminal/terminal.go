package terminal

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"github.com/valerio/go-dupwave/dupwave/audio"
	"github.com/valerio/go-dupwave/dupwave/backend"
	"github.com/valerio/go-dupwave/dupwave/backend/terminal/render"
	"github.com/valerio/go-dupwave/dupwave/debug"
)

const (
	minTermWidth  = 80
	minTermHeight = 24

	tableHeight   = audio.NumChannels + 1
	sidebarWidth  = 36
	registerLines = audio.RegisterPoolSize + 1
	scopeLanes    = audio.NumChannels + 1
	logCapacity   = 200
)

var laneNames = [scopeLanes]string{"CH1", "CH2", "CH3", "CH4", "MIX"}

// Config holds configuration for the terminal backend
type Config struct {
	Title     string
	Screen    tcell.Screen  // nil opens the controlling terminal
	Monitor   audio.Monitor // receives the mute and solo keys
	Callbacks Callbacks
	LogLevel  slog.Level
}

// Callbacks allows the backend to reach the host
type Callbacks struct {
	OnQuit    func()
	OnRestart func()
}

// Backend is a live oscilloscope and channel monitor drawn with tcell.
type Backend struct {
	screen  tcell.Screen
	running atomic.Bool
	config  Config

	logBuffer  *render.LogBuffer
	logLevel   slog.Level
	prevLogger *slog.Logger
	signals    chan os.Signal
}

var _ backend.Backend = (*Backend)(nil)

// New creates a new terminal backend
func New() *Backend {
	return &Backend{
		logLevel: slog.LevelInfo,
	}
}

// Init opens the screen and routes logging into the log pane.
func (t *Backend) Init(config Config) error {
	t.config = config
	t.logLevel = config.LogLevel

	screen := config.Screen
	if screen == nil {
		var err error
		screen, err = tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("failed to initialize terminal: %w", err)
		}
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}

	t.screen = screen
	t.running.Store(true)

	t.logBuffer = render.NewLogBuffer(logCapacity)
	t.prevLogger = slog.Default()
	slog.SetDefault(slog.New(render.NewLogBufferHandler(t.logBuffer, slog.LevelDebug)))
	slog.Info("Terminal backend initialized")

	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()

	t.signals = make(chan os.Signal, 1)
	signal.Notify(t.signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)
	go t.handleSignals(t.signals)

	return nil
}

// Running reports whether the user has not asked to quit.
func (t *Backend) Running() bool {
	return t.running.Load()
}

// Update processes pending key presses and draws a snapshot.
func (t *Backend) Update(data *debug.AudioData) error {
	for t.screen.HasPendingEvent() {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			t.processKeyEvent(ev)
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}

	if !t.Running() {
		return nil
	}

	t.render(data)
	t.screen.Show()
	return nil
}

// Cleanup restores the terminal and the previous logger.
func (t *Backend) Cleanup() error {
	if t.signals != nil {
		signal.Stop(t.signals)
		close(t.signals)
		t.signals = nil
	}
	if t.prevLogger != nil {
		slog.SetDefault(t.prevLogger)
		t.prevLogger = nil
	}
	if t.screen != nil {
		t.screen.Fini()
		t.screen = nil
	}
	return nil
}

// LogBuffer returns the captured log entries.
func (t *Backend) LogBuffer() *render.LogBuffer {
	return t.logBuffer
}

func (t *Backend) handleSignals(signals <-chan os.Signal) {
	if _, ok := <-signals; ok {
		t.quit()
	}
}

func (t *Backend) quit() {
	if t.running.Swap(false) && t.config.Callbacks.OnQuit != nil {
		t.config.Callbacks.OnQuit()
	}
}
