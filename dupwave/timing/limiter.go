package timing

import "time"

// Limiter paces a refresh loop.
type Limiter interface {
	// WaitForNextFrame blocks until it's time for the next frame.
	// Returns immediately if timing is behind schedule.
	WaitForNextFrame()

	// Reset resets the timing state, useful after pauses.
	Reset()
}

// NewNoOpLimiter returns a limiter that doesn't limit (for offline rendering).
func NewNoOpLimiter() Limiter {
	return &noOpLimiter{}
}

type noOpLimiter struct{}

func (n *noOpLimiter) WaitForNextFrame() {}
func (n *noOpLimiter) Reset()            {}

// DefaultRefreshRate is the frame rate of the live views.
const DefaultRefreshRate = 30.0

// FrameDuration returns the duration of a single frame at fps. Rates of zero
// or below use DefaultRefreshRate.
func FrameDuration(fps float64) time.Duration {
	if fps <= 0 {
		fps = DefaultRefreshRate
	}
	return time.Duration(float64(time.Second) / fps)
}

// SamplesPerFrame returns how many output samples one frame at fps covers.
func SamplesPerFrame(sampleRate int, fps float64) int {
	if fps <= 0 {
		fps = DefaultRefreshRate
	}
	return int(float64(sampleRate) / fps)
}
