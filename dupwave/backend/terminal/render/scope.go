package render

import (
	"fmt"

	"github.com/valerio/go-dupwave/dupwave/debug"
)

// ScopeLines draws points in [0, 1] as a trace height rows tall, one column
// per point. Half blocks give two vertical steps per row.
func ScopeLines(points []float32, height int) []string {
	if height <= 0 {
		return nil
	}
	rows := make([][]rune, height)
	for y := range rows {
		rows[y] = make([]rune, len(points))
		for x := range rows[y] {
			rows[y][x] = ' '
		}
	}

	steps := 2*height - 1
	for x, v := range points {
		v = min(max(v, 0), 1)
		level := int(v*float32(steps) + 0.5)
		y := height - 1 - level/2
		if level%2 == 0 {
			rows[y][x] = '▄'
		} else {
			rows[y][x] = '▀'
		}
	}

	lines := make([]string, height)
	for y, row := range rows {
		lines[y] = string(row)
	}
	return lines
}

// FormatChannelRow renders one line of the channel table. Voices are numbered
// from 1 like the mute keys.
func FormatChannelRow(i int, ch debug.ChannelStatus) string {
	state := " "
	switch {
	case ch.Muted:
		state = "M"
	case ch.Enabled:
		state = "▶"
	}

	ins := "--"
	if ch.Instrument >= 0 {
		ins = fmt.Sprintf("%02X", ch.Instrument)
	}

	return fmt.Sprintf("%d %s %s %8.2fHz div %5d vol %2d wave %X %-6s ins %s",
		i+1, state, ch.Note, ch.Frequency, ch.Divisor, ch.Volume, ch.Wave&0x0F, ch.Mix, ins)
}

// FormatRegister renders one register pool entry.
func FormatRegister(r debug.RegisterValue) string {
	return fmt.Sprintf("%02X %-8s %02X", r.Address, r.Name, r.Value)
}

// Truncate shortens s to width runes, marking the cut with "...".
func Truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width > 3 {
		return string(runes[:width-3]) + "..."
	}
	if width > 0 {
		return string(runes[:width])
	}
	return ""
}
