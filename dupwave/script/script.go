// Package script compiles Lua song descriptions into an events.Song.
//
// A script runs top to bottom once. Commands are stamped with the current
// tick, and wait advances it:
//
//	tempo(60)
//	instrument(0, { vol = {15, 12, 9, 6, release = 1}, wave = {0, 1, loop = 0} })
//	ins(1, 0)
//	note(1, "A-4")
//	wait(24)
//	off(1)
//
// Voices are numbered 1 to 4.
package script

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/valerio/go-dupwave/dupwave/events"
)

// ErrNoScript is returned for an empty script.
var ErrNoScript = errors.New("no script")

// Load runs a Lua song script. The context bounds the script's run time.
func Load(ctx context.Context, name, src string) (*events.Song, error) {
	if strings.TrimSpace(src) == "" {
		return nil, fmt.Errorf("%s: %w", name, ErrNoScript)
	}

	L, err := newState(ctx)
	if err != nil {
		return nil, err
	}
	defer L.Close()

	c := &compiler{song: events.NewSong(name)}
	c.register(L)

	if err := L.DoString(src); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if err := c.song.Validate(); err != nil {
		return nil, err
	}

	slog.Debug("Script loaded",
		"name", name,
		"events", c.song.Timeline.Len(),
		"instruments", len(c.song.Instruments),
		"ticks", c.song.TotalTicks())
	return c.song, nil
}

// LoadFile reads and runs a Lua song script from disk.
func LoadFile(ctx context.Context, path string) (*events.Song, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	return Load(ctx, path, string(src))
}

// newState opens a Lua state with only the side-effect free libraries.
func newState(ctx context.Context) (*lua.LState, error) {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	for _, lib := range []struct {
		name string
		open lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	} {
		if err := L.CallByParam(lua.P{
			Fn:      L.NewFunction(lib.open),
			NRet:    0,
			Protect: true,
		}, lua.LString(lib.name)); err != nil {
			L.Close()
			return nil, fmt.Errorf("opening lua library %s: %w", lib.name, err)
		}
	}
	// base pulls in file loaders; scripts are self-contained
	for _, name := range []string{"dofile", "loadfile", "require"} {
		L.SetGlobal(name, lua.LNil)
	}
	if ctx != nil {
		L.SetContext(ctx)
	}
	return L, nil
}
