package terminal

import (
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"github.com/valerio/go-dupwave/dupwave/backend/terminal/render"
	"github.com/valerio/go-dupwave/dupwave/debug"
)

const helpText = "1-4 mute  !@#$ solo  0 unmute all  r restart  +/- log level  q quit"

var (
	titleStyle  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	activeStyle = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	idleStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	mutedStyle  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	traceStyles = [scopeLanes]tcell.Style{
		tcell.StyleDefault.Foreground(tcell.ColorAqua),
		tcell.StyleDefault.Foreground(tcell.ColorFuchsia),
		tcell.StyleDefault.Foreground(tcell.ColorLime),
		tcell.StyleDefault.Foreground(tcell.ColorOrange),
		tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true),
	}
)

// ScopeWidth returns how many waveform points fit in a scope lane at the
// current terminal size.
func (t *Backend) ScopeWidth() int {
	termWidth, _ := t.screen.Size()
	return max(t.scopeAreaWidth(termWidth)-len(laneNames[0])-1, 1)
}

func (t *Backend) scopeAreaWidth(termWidth int) int {
	return termWidth - sidebarWidth - 1
}

func (t *Backend) render(data *debug.AudioData) {
	termWidth, termHeight := t.screen.Size()
	t.screen.Clear()

	if termWidth < minTermWidth || termHeight < minTermHeight {
		style := tcell.StyleDefault.Foreground(tcell.ColorRed)
		msg := fmt.Sprintf("Terminal too small! Need at least %dx%d", minTermWidth, minTermHeight)
		t.drawText(0, termHeight/2, termWidth, msg, style)
		return
	}

	t.drawTitle(termWidth, data)
	if data != nil {
		t.drawChannels(termWidth, data)
	}

	dividerY := tableHeight
	scopeWidth := t.scopeAreaWidth(termWidth)
	for x := range termWidth {
		t.screen.SetContent(x, dividerY, '─', nil, borderStyle)
	}
	for y := dividerY + 1; y < termHeight-1; y++ {
		t.screen.SetContent(scopeWidth, y, '│', nil, borderStyle)
	}
	t.screen.SetContent(scopeWidth, dividerY, '┬', nil, borderStyle)

	if data != nil {
		t.drawScope(0, dividerY+1, scopeWidth, termHeight-dividerY-2, data)
		t.drawRegisters(scopeWidth+2, dividerY+1, sidebarWidth-1, data)
	}
	logsY := dividerY + 1 + registerLines + 1
	t.drawLogs(scopeWidth+2, logsY, sidebarWidth-1, termHeight-1-logsY)

	t.drawText(0, termHeight-1, termWidth, helpText, borderStyle)
}

func (t *Backend) drawTitle(termWidth int, data *debug.AudioData) {
	title := " dupwave"
	if t.config.Title != "" {
		title += " ─ " + t.config.Title
	}
	if data != nil {
		title += fmt.Sprintf(" ─ %d Hz ─ %s", data.SampleRate, data.Revision)
	}
	t.drawText(0, 0, termWidth, title+" ", titleStyle)
}

func (t *Backend) drawChannels(termWidth int, data *debug.AudioData) {
	for i, ch := range data.Channels {
		style := idleStyle
		switch {
		case ch.Muted:
			style = mutedStyle
		case ch.Enabled:
			style = activeStyle
		}
		t.drawText(1, 1+i, termWidth-1, render.FormatChannelRow(i, ch), style)
	}
}

func (t *Backend) drawScope(x, y, width, height int, data *debug.AudioData) {
	laneHeight := height / scopeLanes
	if laneHeight < 1 {
		return
	}

	labelWidth := len(laneNames[0]) + 1
	for lane := range scopeLanes {
		points := data.WaveformSamples.Mix
		if lane < len(data.WaveformSamples.Voices) {
			points = data.WaveformSamples.Voices[lane]
		}
		if len(points) > width-labelWidth {
			points = points[:width-labelWidth]
		}

		top := y + lane*laneHeight
		style := traceStyles[lane]
		if lane < len(data.Channels) && data.Channels[lane].Muted {
			style = mutedStyle
		}

		t.drawText(x, top, labelWidth, laneNames[lane], borderStyle)
		for row, line := range render.ScopeLines(points, laneHeight) {
			t.drawText(x+labelWidth, top+row, width-labelWidth, line, style)
		}
	}
}

func (t *Backend) drawRegisters(x, y, width int, data *debug.AudioData) {
	t.drawText(x, y, width, "Registers", titleStyle)
	for i, r := range data.Registers {
		t.drawText(x, y+1+i, width, render.FormatRegister(r), idleStyle)
	}
}

func (t *Backend) drawLogs(x, y, width, height int) {
	if width <= 0 || height <= 1 {
		return
	}
	t.drawText(x, y, width, "Log", titleStyle)

	debugStyle := tcell.StyleDefault.Foreground(tcell.ColorGray)
	infoStyle := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	warnStyle := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	errStyle := tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)

	for i, entry := range t.logBuffer.GetRecent(height-1, t.logLevel) {
		style := infoStyle
		switch entry.Level {
		case slog.LevelDebug:
			style = debugStyle
		case slog.LevelWarn:
			style = warnStyle
		case slog.LevelError:
			style = errStyle
		}
		t.drawText(x, y+1+i, width, render.FormatLogEntry(entry), style)
	}
}

func (t *Backend) drawText(x, y, width int, text string, style tcell.Style) {
	for _, ch := range render.Truncate(text, width) {
		t.screen.SetContent(x, y, ch, nil, style)
		x++
	}
}
