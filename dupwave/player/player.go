// Package player drives a chip through a song. It is the only place where the
// tracker tick cadence and the sample cadence meet: commands due on a tick are
// dispatched, macros advance, then the chip renders samples until the next
// tick is due.
package player

import (
	"errors"
	"io"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/valerio/go-dupwave/dupwave/audio"
	"github.com/valerio/go-dupwave/dupwave/events"
)

// ErrClosed is returned by a player after Close.
var ErrClosed = errors.New("player closed")

// Source produces mono signed 16 bit samples. Render returns io.EOF once no
// more samples will follow.
type Source interface {
	Render(buf []int16) (int, error)
	SampleRate() int
}

// Player performs a song on a chip. Its methods are safe for concurrent use;
// tooling calls land between render chunks.
type Player struct {
	mu sync.Mutex

	chip *audio.Chip
	song *events.Song

	tick           uint64  // next tick to process
	total          uint64  // ticks in the song
	samplesPerTick float64 // output samples per tracker tick
	countdown      float64 // samples left before the next tick
	rendered       uint64

	closed  bool
	scratch []int16 // Read's sample buffer
	skipBuf []int16
}

// New creates a player for song on a fresh chip built from cfg. The chip looks
// instruments up in the song's bank.
func New(cfg audio.Config, song *events.Song, opts ...audio.Option) (*Player, error) {
	if err := song.Validate(); err != nil {
		return nil, err
	}

	chip := audio.New(cfg, song.Instruments, opts...)
	p := &Player{
		chip:           chip,
		song:           song,
		total:          song.TotalTicks(),
		samplesPerTick: float64(chip.Rate()) / song.TickRate,
	}
	song.Timeline.Rewind()

	slog.Info("Player ready",
		"song", song.Name,
		"rate", chip.Rate(),
		"ticks", p.total,
		"samples_per_tick", p.samplesPerTick,
		"duration", p.Duration())
	return p, nil
}

// SampleRate returns the chip output rate.
func (p *Player) SampleRate() int {
	return p.chip.Rate()
}

// Duration returns how long the song plays.
func (p *Player) Duration() time.Duration {
	return time.Duration(float64(p.total) / p.song.TickRate * float64(time.Second))
}

// Render fills buf with the next samples of the song. It returns the number
// of samples written and io.EOF once the song is over.
func (p *Player) Render(buf []int16) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return 0, ErrClosed
	}

	n := 0
	for n < len(buf) {
		if p.countdown <= 0 {
			if p.tick >= p.total {
				break
			}
			p.processTick()
		}
		chunk := min(len(buf)-n, int(math.Ceil(p.countdown)))
		p.chip.Acquire(buf[n : n+chunk])
		n += chunk
		p.countdown -= float64(chunk)
	}

	p.rendered += uint64(n)
	if n == 0 && len(buf) > 0 {
		return 0, io.EOF
	}
	return n, nil
}

// SkipTo renders and discards output until tick ticks have been processed,
// leaving the chip in the state the last of them produced. It returns io.EOF
// if the song ends first.
func (p *Player) SkipTo(tick uint64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}

	if p.skipBuf == nil {
		p.skipBuf = make([]int16, skipChunk)
	}
	buf := p.skipBuf
	for p.tick < tick {
		if p.countdown > 0 {
			n := min(len(buf), int(math.Ceil(p.countdown)))
			p.chip.Acquire(buf[:n])
			p.rendered += uint64(n)
			p.countdown -= float64(n)
			continue
		}
		if p.tick >= p.total {
			return io.EOF
		}
		p.processTick()
	}
	return nil
}

const skipChunk = 4096

func (p *Player) processTick() {
	for _, ev := range p.song.Timeline.Due(p.tick) {
		p.chip.Dispatch(ev.Command)
	}
	p.chip.Tick(p.song.IsSysTick(p.tick))
	p.song.Timeline.SetCurrentTick(p.tick)
	p.tick++
	p.countdown += p.samplesPerTick
}

// Read renders little endian signed 16 bit samples into b, for audio outputs
// that pull bytes.
func (p *Player) Read(b []byte) (int, error) {
	return readS16LE(p, &p.scratch, b)
}

// Rewind restarts the song from the first tick. Mute state is kept.
func (p *Player) Rewind() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.chip.Reset()
	p.song.Timeline.Rewind()
	p.tick = 0
	p.countdown = 0
	p.rendered = 0
}

// Close stops the player. Further renders return ErrClosed.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}

// Position reports the ticks processed and samples rendered so far.
func (p *Player) Position() (tick, samples uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tick, p.rendered
}

// Done reports whether the whole song has been rendered.
func (p *Player) Done() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tick >= p.total && p.countdown <= 0
}

// Song returns the song being played.
func (p *Player) Song() *events.Song {
	return p.song
}

// Inspect runs fn with exclusive access to the chip.
func (p *Player) Inspect(fn func(c *audio.Chip)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(p.chip)
}
