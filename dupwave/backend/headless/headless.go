package headless

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/valerio/go-dupwave/dupwave/backend"
	"github.com/valerio/go-dupwave/dupwave/backend/terminal/render"
	"github.com/valerio/go-dupwave/dupwave/debug"
)

// Backend runs a fixed number of refreshes without a screen, optionally
// writing text snapshots of the chip state. Used for batch inspection.
type Backend struct {
	frameCount     int
	maxFrames      int
	snapshotConfig SnapshotConfig
}

var _ backend.Backend = (*Backend)(nil)

// SnapshotConfig holds configuration for chip snapshots
type SnapshotConfig struct {
	Enabled   bool
	Interval  int    // Save snapshot every N frames
	Directory string // Directory to save snapshots
	SongName  string // Song name for snapshot filenames
}

func New(maxFrames int, snapshotConfig SnapshotConfig) *Backend {
	slog.Info("Running headless mode",
		"frames", maxFrames,
		"snapshot_interval", snapshotConfig.Interval,
		"snapshot_dir", snapshotConfig.Directory)

	return &Backend{
		maxFrames:      maxFrames,
		snapshotConfig: snapshotConfig,
	}
}

// Running reports whether frames remain.
func (h *Backend) Running() bool {
	return h.frameCount < h.maxFrames
}

// Update counts a frame and handles snapshots
func (h *Backend) Update(data *debug.AudioData) error {
	if !h.Running() {
		return nil
	}
	h.frameCount++

	if h.snapshotConfig.Enabled && h.frameCount%h.snapshotConfig.Interval == 0 {
		if err := h.saveSnapshot(data); err != nil {
			return err
		}
	}

	if h.frameCount%100 == 0 {
		slog.Debug("Frame progress", "completed", h.frameCount, "total", h.maxFrames)
	}

	if h.frameCount >= h.maxFrames {
		// final state, unless it was just saved
		if h.snapshotConfig.Enabled && h.frameCount%h.snapshotConfig.Interval != 0 {
			if err := h.saveSnapshot(data); err != nil {
				return err
			}
		}
		slog.Info("Headless execution completed", "frames", h.maxFrames, "snapshot_dir", h.snapshotConfig.Directory)
	}
	return nil
}

func (h *Backend) Cleanup() error {
	return nil
}

// FrameCount returns the frames seen so far.
func (h *Backend) FrameCount() int {
	return h.frameCount
}

// CreateSnapshotConfig creates a snapshot configuration from CLI parameters.
// An empty directory creates a temporary one.
func CreateSnapshotConfig(interval int, directory, songPath string) (SnapshotConfig, error) {
	config := SnapshotConfig{
		Enabled:  interval > 0,
		Interval: interval,
	}

	if !config.Enabled {
		return config, nil
	}

	if directory == "" {
		tempDir, err := os.MkdirTemp("", "dupwave-snapshots-*")
		if err != nil {
			return config, fmt.Errorf("failed to create snapshot directory: %w", err)
		}
		config.Directory = tempDir
	} else {
		if err := os.MkdirAll(directory, 0755); err != nil {
			return config, fmt.Errorf("failed to create snapshot directory: %w", err)
		}
		config.Directory = directory
	}

	config.SongName = filepath.Base(songPath)
	config.SongName = strings.TrimSuffix(config.SongName, filepath.Ext(config.SongName))

	return config, nil
}

// SnapshotText formats the register sheet and voice table of data.
func SnapshotText(data *debug.AudioData) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d Hz %s\n", data.SampleRate, data.Revision)
	for _, r := range data.Registers {
		sb.WriteString(render.FormatRegister(r))
		sb.WriteByte('\n')
	}
	for i, ch := range data.Channels {
		sb.WriteString(render.FormatChannelRow(i, ch))
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (h *Backend) saveSnapshot(data *debug.AudioData) error {
	if data == nil {
		return nil
	}
	name := fmt.Sprintf("%s_frame_%d.txt", h.snapshotConfig.SongName, h.frameCount)
	path := filepath.Join(h.snapshotConfig.Directory, name)
	if err := os.WriteFile(path, []byte(SnapshotText(data)), 0644); err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	slog.Debug("Saved snapshot", "frame", h.frameCount, "path", path)
	return nil
}
