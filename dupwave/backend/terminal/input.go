package terminal

import (
	"log/slog"

	"github.com/gdamore/tcell/v2"
)

// soloRunes are the shifted digit keys on a US layout.
var soloRunes = map[rune]int{'!': 0, '@': 1, '#': 2, '$': 3}

func (t *Backend) processKeyEvent(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		t.quit()
		return
	case tcell.KeyRune:
		t.processRuneKey(ev.Rune())
	}
}

func (t *Backend) processRuneKey(r rune) {
	monitor := t.config.Monitor
	if ch, ok := soloRunes[r]; ok {
		if monitor != nil {
			monitor.SoloChannel(ch)
			slog.Info("Solo channel", "channel", ch+1)
		}
		return
	}

	switch {
	case r >= '1' && r <= '4':
		if monitor != nil {
			monitor.ToggleChannel(int(r - '1'))
			slog.Info("Toggled channel", "channel", int(r-'0'))
		}
	case r == '0':
		if monitor != nil {
			monitor.UnmuteAll()
			slog.Info("Unmuted all channels")
		}
	case r == 'r':
		if t.config.Callbacks.OnRestart != nil {
			t.config.Callbacks.OnRestart()
			slog.Info("Restarted song")
		}
	case r == '+' || r == '=':
		t.changeLogLevel(1)
	case r == '-' || r == '_':
		t.changeLogLevel(-1)
	case r == 'q':
		t.quit()
	}
}

func (t *Backend) changeLogLevel(direction int) {
	oldLevel := t.logLevel
	switch direction {
	case -1:
		switch t.logLevel {
		case slog.LevelDebug:
			t.logLevel = slog.LevelInfo
		case slog.LevelInfo:
			t.logLevel = slog.LevelWarn
		case slog.LevelWarn:
			t.logLevel = slog.LevelError
		}
	case 1:
		switch t.logLevel {
		case slog.LevelError:
			t.logLevel = slog.LevelWarn
		case slog.LevelWarn:
			t.logLevel = slog.LevelInfo
		case slog.LevelInfo:
			t.logLevel = slog.LevelDebug
		}
	}
	if oldLevel != t.logLevel {
		slog.Info("Log filter changed", "from", oldLevel, "to", t.logLevel)
	}
}
