package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/valerio/go-dupwave/dupwave/audio"
	"github.com/valerio/go-dupwave/dupwave/player"
	"github.com/valerio/go-dupwave/dupwave/script"
)

const (
	startMarker = "<!-- SONGS:START -->"
	endMarker   = "<!-- SONGS:END -->"
)

type songRow struct {
	File        string
	Name        string
	Ticks       uint64
	TickRate    float64
	Instruments int
	Duration    time.Duration
}

func main() {
	var (
		readme string
		songs  string
	)
	flag.StringVar(&readme, "readme", "README.md", "Path to README file to update in place")
	flag.StringVar(&songs, "songs", "songs", "Song script directory")
	flag.Parse()

	rows, err := collect(context.Background(), songs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	readmeBytes, err := os.ReadFile(readme)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: reading %s: %v\n", readme, err)
		os.Exit(1)
	}

	out, err := splice(string(readmeBytes), table(rows))
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s: %v\n", readme, err)
		os.Exit(1)
	}

	if err := os.WriteFile(readme, []byte(out), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "error: writing %s: %v\n", readme, err)
		os.Exit(1)
	}
}

// collect loads every script in dir and measures it on a default chip.
func collect(ctx context.Context, dir string) ([]songRow, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", dir, err)
	}

	var rows []songRow
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".lua") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		song, err := script.LoadFile(ctx, path)
		if err != nil {
			return nil, err
		}
		p, err := player.New(audio.DefaultConfig(), song)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		rows = append(rows, songRow{
			File:        filepath.ToSlash(path),
			Name:        strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())),
			Ticks:       song.TotalTicks(),
			TickRate:    song.TickRate,
			Instruments: len(song.Instruments),
			Duration:    p.Duration().Round(10 * time.Millisecond),
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].File < rows[j].File })
	return rows, nil
}

func table(rows []songRow) string {
	var buf bytes.Buffer
	buf.WriteString("| Song | Ticks | Tick rate | Instruments | Duration |\n")
	buf.WriteString("|------|------:|----------:|------------:|---------:|\n")
	for _, r := range rows {
		fmt.Fprintf(&buf, "| [%s](%s) | %d | %g Hz | %d | %s |\n", r.Name, r.File, r.Ticks, r.TickRate, r.Instruments, r.Duration)
	}
	return buf.String()
}

// splice replaces whatever sits between the markers in content.
func splice(content, body string) (string, error) {
	start := strings.Index(content, startMarker)
	end := strings.Index(content, endMarker)
	if start == -1 || end == -1 || end < start {
		return "", fmt.Errorf("markers not found. Ensure %s and %s exist", startMarker, endMarker)
	}

	var out bytes.Buffer
	out.WriteString(content[:start+len(startMarker)])
	out.WriteString("\n")
	out.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		out.WriteString("\n")
	}
	out.WriteString(content[end:])
	return out.String(), nil
}
