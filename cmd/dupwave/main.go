package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli"

	"github.com/valerio/go-dupwave/dupwave/audio"
	"github.com/valerio/go-dupwave/dupwave/freq"
)

func main() {
	err := newApp().Run(os.Args)
	if err != nil {
		slog.Error("Error running dupwave", "error", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "dupwave"
	app.Description = "A four voice wavetable sound chip driven by Lua song scripts"
	app.Usage = "dupwave [global options] <command> <song.lua>"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:   "log-level",
			Usage:  "Log level: debug, info, warn or error",
			Value:  "info",
			EnvVar: "DUPWAVE_LOG_LEVEL",
		},
		cli.IntFlag{
			Name:   "clock",
			Usage:  "Chip clock in Hz",
			Value:  audio.DefaultChipClock,
			EnvVar: "DUPWAVE_CLOCK",
		},
		cli.IntFlag{
			Name:  "divider",
			Usage: "Chip clock divider; the output rate is clock/divider",
			Value: audio.DefaultClockDivider,
		},
		cli.Float64Flag{
			Name:   "tuning",
			Usage:  "Frequency of A-4 in Hz",
			Value:  freq.DefaultTuning,
			EnvVar: "DUPWAVE_TUNING",
		},
		cli.StringFlag{
			Name:   "revision",
			Usage:  "Waveform generator: wavetable or filter",
			Value:  audio.RevisionWavetable.String(),
			EnvVar: "DUPWAVE_REVISION",
		},
		cli.BoolFlag{
			Name:  "linear-pitch",
			Usage: "Scale pitch offsets exponentially instead of linearly on the divisor",
		},
	}
	app.Before = setupLogging
	app.Commands = []cli.Command{
		renderCommand,
		playCommand,
		scopeCommand,
		regsCommand,
		levelsCommand,
	}
	return app
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

func setupLogging(c *cli.Context) error {
	level, err := parseLevel(c.GlobalString("log-level"))
	if err != nil {
		return err
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
	return nil
}

// chipConfig builds the chip flags from the global options.
func chipConfig(c *cli.Context) (audio.Config, error) {
	rev, err := audio.ParseRevision(c.GlobalString("revision"))
	if err != nil {
		return audio.Config{}, err
	}
	if c.GlobalInt("clock") <= 0 || c.GlobalInt("divider") <= 0 {
		return audio.Config{}, fmt.Errorf("clock and divider must be positive")
	}
	return audio.Config{
		ChipClock:    c.GlobalInt("clock"),
		ClockDivider: c.GlobalInt("divider"),
		Tuning:       c.GlobalFloat64("tuning"),
		LinearPitch:  c.GlobalBool("linear-pitch"),
		Revision:     rev,
	}, nil
}
