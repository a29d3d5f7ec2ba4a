// config.go - Command line configuration

/*
 ██      ██  ██████████  ██      ██    ████████  ████████    ██████████    ████████    ████████  ██      ██
 ████    ██  ██          ██      ██  ██          ██      ██  ██          ██          ██            ██  ██
 ██  ██  ██  ████████    ██  ██  ██    ██████    ████████    ████████    ██          ██              ██
 ██    ████  ██          ████  ████          ██  ██          ██          ██          ██              ██
 ██      ██  ██████████  ██      ██  ████████    ██          ██████████    ████████    ████████      ██
 ░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░░

(c) 2026 The newspeccy Authors
https://github.com/ashwinm76/newspeccy
License: GPLv3 or later
*/

package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"
	"time"
)

// Config is the parsed command line.
type Config struct {
	Backend int
	Machine MachineConfig

	Scale      int
	WavPath    string
	ScriptPath string
	ScreenPath string

	Terminal bool
	LogEcho  bool
	Stats    bool
	Features bool
}

// parseConfig parses args (without the program name). usage receives the
// help text when -h is given; parseConfig then returns flag.ErrHelp.
func parseConfig(name string, args []string, usage io.Writer) (Config, error) {
	var (
		cfg         Config
		backendName string
		decoderName string
		speakerName string
		scale       string
	)

	flagSet := flag.NewFlagSet(name, flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&backendName, "backend", "ebiten", "Display backend: ebiten, sdl or headless")
	flagSet.StringVar(&decoderName, "decoder", "active", "Screen memory decoder: active or passthrough")
	flagSet.BoolVar(&cfg.Machine.Strict, "strict", false, "Halt the CPU on access to an unmapped port")
	flagSet.StringVar(&speakerName, "speaker", "silent", "Port 0xFE output: silent, border or beeper")
	flagSet.StringVar(&cfg.WavPath, "wav", "", "Capture beeper output to a WAV file")
	flagSet.StringVar(&cfg.ScriptPath, "script", "", "Lua script driving the bus")
	flagSet.StringVar(&cfg.ScreenPath, "scr", "", "Preload a 6912 byte screen dump")
	flagSet.StringVar(&scale, "scale", "2", "Window scale (1-4)")
	flagSet.DurationVar(&cfg.Machine.Tick, "tick", LCD_TICK_INTERVAL, "Display tick period")
	flagSet.BoolVar(&cfg.Terminal, "terminal", false, "Read keys from the raw terminal")
	flagSet.BoolVar(&cfg.LogEcho, "log", false, "Echo log entries to stderr")
	flagSet.BoolVar(&cfg.Stats, "stats", false, "Launch the runtime stats page (statsview builds)")
	flagSet.BoolVar(&cfg.Features, "features", false, "Print compiled features and exit")

	flagSet.Usage = func() {
		flagSet.SetOutput(usage)
		fmt.Fprintln(usage, "Usage: ./newspeccy [-backend ebiten|sdl|headless] [-decoder active|passthrough] [-strict] [-speaker silent|border|beeper] [-script file.lua] [-scr file.scr]")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		return cfg, err
	}
	if flagSet.NArg() > 0 {
		return cfg, fmt.Errorf("unexpected argument %q", flagSet.Arg(0))
	}

	var err error
	if cfg.Backend, err = ParseVideoBackend(backendName); err != nil {
		return cfg, err
	}
	if cfg.Machine.Decoder, err = ParseDecoderMode(decoderName); err != nil {
		return cfg, err
	}
	if cfg.Machine.Speaker, err = ParseSpeakerMode(speakerName); err != nil {
		return cfg, err
	}
	s, err := parseUintFlag(scale, 8)
	if err != nil {
		return cfg, fmt.Errorf("invalid -scale: %w", err)
	}
	cfg.Scale = ClampScale(int(s))

	if cfg.WavPath != "" && cfg.Machine.Speaker == SPEAKER_SILENT {
		cfg.Machine.Speaker = SPEAKER_BEEPER
	}
	return cfg, cfg.Validate()
}

// Validate rejects combinations that cannot run.
func (c Config) Validate() error {
	if c.Machine.Tick < time.Millisecond {
		return fmt.Errorf("tick period %v too short", c.Machine.Tick)
	}
	if c.WavPath != "" && c.Machine.Speaker != SPEAKER_BEEPER {
		return fmt.Errorf("-wav needs -speaker beeper, have %s", c.Machine.Speaker)
	}
	return nil
}

func parseUintFlag(value string, bits int) (uint64, error) {
	parsed, err := strconv.ParseUint(value, 0, bits)
	if err != nil {
		return 0, err
	}
	return parsed, nil
}
