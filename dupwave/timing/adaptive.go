package timing

import (
	"log/slog"
	"time"
)

// AdaptiveLimiter uses precise timing with drift compensation. It paces
// rendering in real time when no audio device is pulling samples.
type AdaptiveLimiter struct {
	targetFrameTime time.Duration
	nextFrameTime   time.Time
	frameCounter    int64
	startTime       time.Time
}

func NewAdaptiveLimiter(fps float64) *AdaptiveLimiter {
	now := time.Now()
	return &AdaptiveLimiter{
		targetFrameTime: FrameDuration(fps),
		nextFrameTime:   now,
		startTime:       now,
	}
}

func (a *AdaptiveLimiter) WaitForNextFrame() {
	now := time.Now()
	sleepTime := a.nextFrameTime.Sub(now)

	if sleepTime > 0 {
		time.Sleep(sleepTime)
	} else if sleepTime < -5*a.targetFrameTime {
		// too far behind to catch up, drop the backlog
		a.nextFrameTime = now
	}

	a.nextFrameTime = a.nextFrameTime.Add(a.targetFrameTime)
	a.frameCounter++

	if a.frameCounter%120 == 0 {
		elapsed := time.Since(a.startTime)
		slog.Debug("Frame pacing",
			"frames", a.frameCounter,
			"fps", float64(a.frameCounter)/elapsed.Seconds())
	}
}

func (a *AdaptiveLimiter) Reset() {
	a.nextFrameTime = time.Now()
	a.startTime = a.nextFrameTime
	a.frameCounter = 0
}
