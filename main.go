// main.go - Main entry point for the newspeccy LCD board

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
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func boilerPlate() {
	fmt.Println("\nnewspeccy - ILI9341 LCD peripheral for a Spectrum style Z80 board")
	fmt.Println("(c) 2026 The newspeccy Authors")
	fmt.Println("https://github.com/ashwinm76/newspeccy")
	fmt.Println("License: GPLv3 or later")
}

func main() {
	code := 0
	hostMain(func() {
		code = run()
	})
	os.Exit(code)
}

func run() int {
	cfg, err := parseConfig(os.Args[0], os.Args[1:], os.Stdout)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}
	if cfg.Features {
		printFeatures()
		return 0
	}

	boilerPlate()
	if cfg.LogEcho {
		SetLogEcho(os.Stderr)
	}
	if cfg.Stats {
		if err := launchStats(); err != nil {
			fmt.Printf("Error: %v\n", err)
			return 1
		}
	}

	keys := NewKeyQueue()

	out, err := NewVideoOutput(cfg.Backend)
	if err != nil {
		fmt.Printf("Failed to initialize video: %v\n", err)
		return 1
	}
	display := DefaultDisplayConfig()
	display.Scale = cfg.Scale
	if err := out.SetDisplayConfig(display); err != nil {
		fmt.Printf("Failed to configure video: %v\n", err)
		return 1
	}

	machine, err := NewMachine(cfg.Machine, out, keys)
	if err != nil {
		fmt.Printf("Failed to initialize machine: %v\n", err)
		return 1
	}
	if k, ok := out.(KeyInputCapable); ok {
		k.SetKeyHandler(keys.Enqueue)
	}
	if r, ok := out.(ResetCapable); ok {
		r.SetHardResetHandler(machine.RequestReset)
	}
	if s, ok := out.(StatusCapable); ok {
		s.SetStatusFunc(machine.Status)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if cfg.Terminal {
		host := NewTerminalHost(keys, cancel)
		if err := host.Start(); err != nil {
			fmt.Printf("Error: %v\n", err)
			return 1
		}
		defer host.Stop()
	}

	if beeper, ok := machine.Beeper(); ok {
		if cfg.WavPath != "" {
			capture := NewWavCapture(cfg.WavPath, SPEAKER_SAMPLE_RATE)
			beeper.SetCapture(capture)
			defer func() {
				if err := capture.Close(); err != nil {
					fmt.Printf("Error: %v\n", err)
				}
			}()
		}
		player, err := NewOtoPlayer(SPEAKER_SAMPLE_RATE)
		if err != nil {
			// Sound is optional, the display is not
			fmt.Printf("Failed to initialize sound: %v\n", err)
		} else {
			player.SetupPlayer(beeper)
			player.Start()
			defer player.Close()
		}
	}

	if cfg.ScreenPath != "" {
		f, err := os.Open(cfg.ScreenPath)
		if err != nil {
			fmt.Printf("Error loading screen: %v\n", err)
			return 1
		}
		err = machine.Memory.LoadScreen(f)
		f.Close()
		if err != nil {
			fmt.Printf("Error loading screen: %v\n", err)
			return 1
		}
	}

	var cpu CPU
	if cfg.ScriptPath != "" {
		script, err := NewLuaCPUFile(cfg.ScriptPath, keys)
		if err != nil {
			fmt.Printf("Error loading script: %v\n", err)
			return 1
		}
		cpu = script
		fmt.Printf("Running script: %s\n", cfg.ScriptPath)
	}

	// Without a display surface there is nothing to run
	if err := out.Start(); err != nil {
		fmt.Printf("Failed to start video: %v\n", err)
		return 1
	}
	defer out.Close()

	go func() {
		select {
		case <-out.Done():
			cancel()
		case <-ctx.Done():
		}
	}()

	if err := machine.Run(ctx, cpu); err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}
	return 0
}
