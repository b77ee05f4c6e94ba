package backend

import "github.com/valerio/go-dupwave/dupwave/debug"

// Backend presents chip snapshots to some output (terminal, snapshot files).
// Backends are responsible for:
// - Drawing or recording the provided snapshot
// - Polling their own input and reaching the host through callbacks
// Each backend has its own Init taking a backend specific config.
type Backend interface {
	// Running reports whether the host should keep producing snapshots.
	Running() bool

	// Update handles one refresh: input first, then output of data.
	Update(data *debug.AudioData) error

	// Cleanup resources when shutting down
	Cleanup() error
}
