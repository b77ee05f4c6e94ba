package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/davecgh/go-spew/spew"
	"github.com/urfave/cli"

	"github.com/valerio/go-dupwave/dupwave/audio"
	"github.com/valerio/go-dupwave/dupwave/backend"
	"github.com/valerio/go-dupwave/dupwave/backend/headless"
	"github.com/valerio/go-dupwave/dupwave/backend/terminal"
	"github.com/valerio/go-dupwave/dupwave/backend/terminal/render"
	"github.com/valerio/go-dupwave/dupwave/debug"
	"github.com/valerio/go-dupwave/dupwave/player"
	"github.com/valerio/go-dupwave/dupwave/script"
	"github.com/valerio/go-dupwave/dupwave/timing"
	"github.com/valerio/go-dupwave/dupwave/wavetable"
)

// headlessWidth is the scope resolution of headless snapshots.
const headlessWidth = 80

var decimateFlag = cli.IntFlag{
	Name:  "decimate",
	Usage: "Average this many chip samples into one output sample",
	Value: 12,
}

var renderCommand = cli.Command{
	Name:      "render",
	Usage:     "Render a song to a WAV file",
	ArgsUsage: "<song.lua>",
	Flags: []cli.Flag{
		cli.StringFlag{
			Name:  "out, o",
			Usage: "Output file (defaults to the script name with .wav)",
		},
		cli.IntFlag{
			Name:  "decimate",
			Usage: "Average this many chip samples into one output sample",
			Value: 1,
		},
	},
	Action: runRender,
}

var playCommand = cli.Command{
	Name:      "play",
	Usage:     "Play a song on the default audio device",
	ArgsUsage: "<song.lua>",
	Flags:     []cli.Flag{decimateFlag},
	Action:    runPlay,
}

var scopeCommand = cli.Command{
	Name:      "scope",
	Usage:     "Play a song with a live terminal oscilloscope",
	ArgsUsage: "<song.lua>",
	Flags: []cli.Flag{
		decimateFlag,
		cli.Float64Flag{
			Name:  "fps",
			Usage: "Screen refresh rate",
			Value: timing.DefaultRefreshRate,
		},
		cli.BoolFlag{
			Name:  "no-audio",
			Usage: "Advance the song from the refresh loop without opening an audio device",
		},
		cli.IntFlag{
			Name:  "headless-frames",
			Usage: "Run this many frames without a screen or audio device, then exit",
		},
		cli.IntFlag{
			Name:  "snapshot-interval",
			Usage: "With --headless-frames, write a chip snapshot every N frames",
		},
		cli.StringFlag{
			Name:  "snapshot-dir",
			Usage: "Directory for snapshots (defaults to a temporary directory)",
		},
	},
	Action: runScope,
}

var regsCommand = cli.Command{
	Name:      "regs",
	Usage:     "Print the register sheet after a number of ticks",
	ArgsUsage: "<song.lua>",
	Flags: []cli.Flag{
		cli.Uint64Flag{
			Name:  "ticks",
			Usage: "Ticks to play before printing",
		},
		cli.BoolFlag{
			Name:  "dump",
			Usage: "Also dump every voice's state",
		},
	},
	Action: runRegs,
}

var levelsCommand = cli.Command{
	Name:  "levels",
	Usage: "Print the waveform level table of the selected revision",
	Flags: []cli.Flag{
		cli.IntFlag{
			Name:  "selector",
			Usage: "Only print this waveform selector (0-15)",
			Value: -1,
		},
	},
	Action: runLevels,
}

// loadPlayer reads the script named by the first argument and builds a
// player for it.
func loadPlayer(ctx context.Context, c *cli.Context, opts ...audio.Option) (*player.Player, string, error) {
	path := c.Args().First()
	if path == "" {
		return nil, "", fmt.Errorf("missing song script argument")
	}

	cfg, err := chipConfig(c)
	if err != nil {
		return nil, "", err
	}

	song, err := script.LoadFile(ctx, path)
	if err != nil {
		return nil, "", err
	}

	p, err := player.New(cfg, song, opts...)
	if err != nil {
		return nil, "", fmt.Errorf("song %s: %w", path, err)
	}
	return p, path, nil
}

// stream is a source that can also feed an audio device.
type stream interface {
	player.Source
	io.Reader
}

func source(p *player.Player, decimate int) stream {
	if decimate <= 1 {
		return p
	}
	return player.NewDownsampler(p, decimate)
}

func runRender(c *cli.Context) error {
	p, path, err := loadPlayer(context.Background(), c)
	if err != nil {
		return err
	}
	defer p.Close()

	out := c.String("out")
	if out == "" {
		out = strings.TrimSuffix(path, filepath.Ext(path)) + ".wav"
	}

	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("creating %s: %w", out, err)
	}

	src := source(p, c.Int("decimate"))
	n, err := player.WriteWAV(f, src)
	if err != nil {
		f.Close()
		return fmt.Errorf("rendering %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", out, err)
	}

	slog.Info("Rendered song", "file", out, "samples", n, "rate", src.SampleRate(), "duration", p.Duration())
	return nil
}

func runPlay(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, _, err := loadPlayer(ctx, c)
	if err != nil {
		return err
	}
	defer p.Close()

	src := source(p, c.Int("decimate"))
	out, err := player.NewOtoOutput(src.SampleRate())
	if err != nil {
		return err
	}
	defer out.Close()

	out.Play(src)

	limiter := timing.NewTickerLimiter(10)
	defer limiter.Stop()
	for out.IsPlaying() {
		select {
		case <-ctx.Done():
			slog.Info("Playback interrupted")
			return nil
		default:
		}
		limiter.WaitForNextFrame()
	}

	tick, samples := p.Position()
	slog.Info("Playback finished", "ticks", tick, "samples", samples)
	return nil
}

// logKeyOn reports voice key-ons; in the scope they land in the log pane.
func logKeyOn(ch int) {
	slog.Debug("Key on", "channel", ch+1)
}

func runScope(c *cli.Context) error {
	p, path, err := loadPlayer(context.Background(), c, audio.WithKeyOnHook(logKeyOn))
	if err != nil {
		return err
	}
	defer p.Close()

	fps := c.Float64("fps")
	frames := c.Int("headless-frames")
	withAudio := !c.Bool("no-audio") && frames <= 0
	decimate := c.Int("decimate")

	var out *player.OtoOutput
	if withAudio {
		src := source(p, decimate)
		out, err = player.NewOtoOutput(src.SampleRate())
		if err != nil {
			return err
		}
		defer out.Close()
	}

	start := func() {
		if out != nil {
			out.Play(source(p, decimate))
		}
	}

	var (
		view  backend.Backend
		width = headlessWidth
	)
	if frames > 0 {
		snap, err := headless.CreateSnapshotConfig(c.Int("snapshot-interval"), c.String("snapshot-dir"), path)
		if err != nil {
			return err
		}
		view = headless.New(frames, snap)
	} else {
		term := terminal.New()
		level, _ := parseLevel(c.GlobalString("log-level"))
		err = term.Init(terminal.Config{
			Title:   filepath.Base(path),
			Monitor: p,
			Callbacks: terminal.Callbacks{
				OnRestart: func() {
					p.Rewind()
					if out != nil && !out.IsPlaying() {
						start()
					}
					slog.Info("Song restarted")
				},
			},
			LogLevel: level,
		})
		if err != nil {
			return err
		}
		view = term
	}
	defer view.Cleanup()

	var limiter timing.Limiter
	switch {
	case frames > 0:
		limiter = timing.NewNoOpLimiter()
	case withAudio:
		ticker := timing.NewTickerLimiter(fps)
		defer ticker.Stop()
		limiter = ticker
	case fps > 0:
		limiter = timing.NewAdaptiveLimiter(fps)
	default:
		limiter = timing.NewNoOpLimiter()
	}

	window := timing.SamplesPerFrame(p.SampleRate(), fps)
	frame := make([]int16, window)
	start()

	for view.Running() {
		if !withAudio && !p.Done() {
			if _, err := p.Render(frame); err != nil && !errors.Is(err, io.EOF) {
				return err
			}
		}

		if term, ok := view.(*terminal.Backend); ok {
			width = term.ScopeWidth()
		}
		var data *debug.AudioData
		p.Inspect(func(chip *audio.Chip) {
			data = debug.ExtractAudioData(chip, chip, window, width)
		})
		if err := view.Update(data); err != nil {
			return err
		}
		limiter.WaitForNextFrame()
	}
	return nil
}

func runRegs(c *cli.Context) error {
	p, _, err := loadPlayer(context.Background(), c)
	if err != nil {
		return err
	}
	defer p.Close()

	ticks := c.Uint64("ticks")
	if err := p.SkipTo(ticks); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("song ends before tick %d", ticks)
		}
		return err
	}

	var (
		data   *debug.AudioData
		voices [audio.NumChannels]audio.Channel
	)
	p.Inspect(func(chip *audio.Chip) {
		data = debug.ExtractAudioData(chip, chip, 0, 0)
		for i := range voices {
			voices[i] = chip.ChannelState(i)
		}
	})

	fmt.Printf("tick %d, %d Hz, %s\n", ticks, data.SampleRate, data.Revision)
	for _, r := range data.Registers {
		fmt.Println(render.FormatRegister(r))
	}
	fmt.Println()
	for i, ch := range data.Channels {
		fmt.Println(render.FormatChannelRow(i, ch))
	}

	if c.Bool("dump") {
		fmt.Println()
		spew.Fdump(os.Stdout, voices)
	}
	return nil
}

func runLevels(c *cli.Context) error {
	cfg, err := chipConfig(c)
	if err != nil {
		return err
	}

	level := wavetable.Level
	if cfg.Revision == audio.RevisionFilter {
		level = wavetable.FilterLevel
	}

	from, to := 0, wavetable.Selectors-1
	if sel := c.Int("selector"); sel >= 0 {
		if sel >= wavetable.Selectors {
			return fmt.Errorf("selector %d out of range 0-%d", sel, wavetable.Selectors-1)
		}
		from, to = sel, sel
	}

	var sb strings.Builder
	for sel := from; sel <= to; sel++ {
		sb.Reset()
		fmt.Fprintf(&sb, "%X ", sel)
		for pos := range wavetable.Steps {
			sb.WriteByte(byte('0' + level(uint8(sel), uint8(pos))))
		}
		fmt.Println(sb.String())
	}
	return nil
}
