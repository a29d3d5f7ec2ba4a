// config_test.go - Command line parsing tests

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
	"bytes"
	"errors"
	"flag"
	"strings"
	"testing"
	"time"
)

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := parseConfig("newspeccy", nil, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseConfig failed: %v", err)
	}
	if cfg.Backend != VIDEO_BACKEND_EBITEN || cfg.Machine.Decoder != DECODER_ACTIVE || cfg.Machine.Speaker != SPEAKER_SILENT {
		t.Fatalf("Unexpected defaults %+v", cfg)
	}
	if cfg.Machine.Strict || cfg.Scale != 2 || cfg.Machine.Tick != LCD_TICK_INTERVAL {
		t.Fatalf("Unexpected defaults %+v", cfg)
	}
}

func TestParseConfig_Flags(t *testing.T) {
	args := []string{
		"-backend", "headless",
		"-decoder", "passthrough",
		"-strict",
		"-speaker", "border",
		"-scale", "0x3",
		"-tick", "20ms",
		"-script", "demo.lua",
		"-scr", "title.scr",
	}
	cfg, err := parseConfig("newspeccy", args, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseConfig failed: %v", err)
	}
	if cfg.Backend != VIDEO_BACKEND_HEADLESS || cfg.Machine.Decoder != DECODER_PASSTHROUGH {
		t.Fatalf("Expected headless passthrough, got %+v", cfg)
	}
	if !cfg.Machine.Strict || cfg.Machine.Speaker != SPEAKER_BORDER {
		t.Fatalf("Expected strict border speaker, got %+v", cfg.Machine)
	}
	if cfg.Scale != 3 || cfg.Machine.Tick != 20*time.Millisecond {
		t.Fatalf("Expected scale 3 tick 20ms, got %d %v", cfg.Scale, cfg.Machine.Tick)
	}
	if cfg.ScriptPath != "demo.lua" || cfg.ScreenPath != "title.scr" {
		t.Fatalf("Unexpected paths %q %q", cfg.ScriptPath, cfg.ScreenPath)
	}
}

func TestParseConfig_WavImpliesBeeper(t *testing.T) {
	cfg, err := parseConfig("newspeccy", []string{"-wav", "out.wav"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseConfig failed: %v", err)
	}
	if cfg.Machine.Speaker != SPEAKER_BEEPER {
		t.Fatalf("Expected beeper speaker with -wav, got %s", cfg.Machine.Speaker)
	}

	if _, err := parseConfig("newspeccy", []string{"-wav", "out.wav", "-speaker", "border"}, &bytes.Buffer{}); err == nil {
		t.Fatalf("Expected -wav with the border speaker to be rejected")
	}
}

func TestParseConfig_Errors(t *testing.T) {
	tests := [][]string{
		{"-backend", "vulkan"},
		{"-decoder", "firmware"},
		{"-speaker", "ay"},
		{"-scale", "big"},
		{"-tick", "10us"},
		{"stray"},
		{"-nosuchflag"},
	}
	for _, args := range tests {
		if _, err := parseConfig("newspeccy", args, &bytes.Buffer{}); err == nil {
			t.Fatalf("Expected error for %v", args)
		}
	}
}

func TestParseConfig_Help(t *testing.T) {
	var usage bytes.Buffer
	_, err := parseConfig("newspeccy", []string{"-h"}, &usage)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("Expected flag.ErrHelp, got %v", err)
	}
	if !strings.Contains(usage.String(), "-decoder") {
		t.Fatalf("Expected usage to list flags, got %q", usage.String())
	}
}

func TestParseConfig_ScaleClamped(t *testing.T) {
	cfg, err := parseConfig("newspeccy", []string{"-scale", "9"}, &bytes.Buffer{})
	if err != nil {
		t.Fatalf("parseConfig failed: %v", err)
	}
	if cfg.Scale != 4 {
		t.Fatalf("Expected scale clamped to 4, got %d", cfg.Scale)
	}
}
