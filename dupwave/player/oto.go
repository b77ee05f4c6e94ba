//go:build !headless

package player

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"
)

// OtoOutput plays a byte stream of mono signed 16 bit samples on the default
// audio device. Only one can exist per process.
type OtoOutput struct {
	ctx    *oto.Context
	player *oto.Player
	mutex  sync.Mutex
}

// NewOtoOutput opens the audio device at sampleRate.
func NewOtoOutput(sampleRate int) (*OtoOutput, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
		BufferSize:   50 * time.Millisecond,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("opening audio device: %w", err)
	}
	<-ready

	slog.Info("Audio output ready", "rate", sampleRate)
	return &OtoOutput{ctx: ctx}, nil
}

// Play starts pulling from src, replacing any stream already playing.
func (o *OtoOutput) Play(src io.Reader) {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if o.player != nil {
		o.player.Pause()
	}
	o.player = o.ctx.NewPlayer(src)
	o.player.Play()
}

// IsPlaying reports whether the stream is still being played. It turns false
// once the source returned io.EOF and the device buffer drained.
func (o *OtoOutput) IsPlaying() bool {
	o.mutex.Lock()
	defer o.mutex.Unlock()
	return o.player != nil && o.player.IsPlaying()
}

// Close stops playback.
func (o *OtoOutput) Close() error {
	o.mutex.Lock()
	defer o.mutex.Unlock()

	if o.player == nil {
		return nil
	}
	o.player.Pause()
	o.player = nil
	return nil
}
