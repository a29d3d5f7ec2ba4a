// video_interface.go - Host display interface for the LCD canvas

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
	"fmt"
	"time"
)

// VideoError provides detailed error context for video operations
type VideoError struct {
	Operation string // What operation was being attempted
	Details   string // Additional error context
	Err       error  // Underlying error if any
}

func (e *VideoError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("video %s failed: %s: %v", e.Operation, e.Details, e.Err)
	}
	return fmt.Sprintf("video %s failed: %s", e.Operation, e.Details)
}

func (e *VideoError) Unwrap() error {
	return e.Err
}

// FrameSnapshot is a copy of the last frame a backend received
type FrameSnapshot struct {
	Pixels    []uint16 // RGB565, row-major
	Width     int
	Height    int
	Timestamp time.Time
}

// DisplayConfig contains hardware-independent configuration
type DisplayConfig struct {
	Width       int
	Height      int
	Scale       int // Integer scaling factor for output
	RefreshRate int // Target refresh rate in Hz
	VSync       bool
	Fullscreen  bool
	Title       string
}

// DefaultDisplayConfig is the LCD canvas at 2x.
func DefaultDisplayConfig() DisplayConfig {
	return DisplayConfig{
		Width:       LCD_WIDTH,
		Height:      LCD_HEIGHT,
		Scale:       2,
		RefreshRate: int(time.Second / LCD_TICK_INTERVAL),
		VSync:       true,
		Title:       "newspeccy ILI9341",
	}
}

// VideoOutput defines the minimal interface that backends must implement
type VideoOutput interface {
	// Lifecycle management
	Start() error
	Stop() error
	Close() error
	IsStarted() bool
	// Done is closed when the user closes the display
	Done() <-chan struct{}

	SetDisplayConfig(config DisplayConfig) error
	GetDisplayConfig() DisplayConfig
	// UpdateFrame takes a full LCD_WIDTH x LCD_HEIGHT RGB565 frame
	UpdateFrame(frame []uint16) error

	GetFrameCount() uint64
}

// Optional interfaces for enhanced functionality
type KeyInputCapable interface {
	SetKeyHandler(fn func(byte))
}

type ResetCapable interface {
	SetHardResetHandler(fn func())
}

type StatusCapable interface {
	SetStatusFunc(fn func() string)
}

// Predefined video backend types
const (
	VIDEO_BACKEND_EBITEN   = iota // Pure Go Ebiten backend
	VIDEO_BACKEND_SDL             // SDL2 via cgo, needs the sdl build tag
	VIDEO_BACKEND_HEADLESS        // No window, frames are counted and kept
)

func ParseVideoBackend(s string) (int, error) {
	switch s {
	case "ebiten", "":
		return VIDEO_BACKEND_EBITEN, nil
	case "sdl":
		return VIDEO_BACKEND_SDL, nil
	case "headless", "none":
		return VIDEO_BACKEND_HEADLESS, nil
	}
	return 0, fmt.Errorf("unknown video backend %q", s)
}

// NewVideoOutput creates a new video output instance using the specified backend
func NewVideoOutput(backend int) (VideoOutput, error) {
	switch backend {
	case VIDEO_BACKEND_EBITEN:
		return NewEbitenOutput()
	case VIDEO_BACKEND_SDL:
		return NewSDLOutput()
	case VIDEO_BACKEND_HEADLESS:
		return NewHeadlessOutput(), nil
	}
	return nil, &VideoError{
		Operation: "backend creation",
		Details:   fmt.Sprintf("unknown backend type: %d", backend),
	}
}

// ClampScale limits the window scale to 1..4.
func ClampScale(scale int) int {
	return min(max(scale, 1), 4)
}

// RGB565ToRGBA expands src into dst, 4 bytes per pixel. dst must hold
// len(src)*4 bytes.
func RGB565ToRGBA(dst []byte, src []uint16) {
	for i, p := range src {
		r := byte(p>>11) & 0x1F
		g := byte(p>>5) & 0x3F
		b := byte(p) & 0x1F
		o := i * 4
		dst[o] = r<<3 | r>>2
		dst[o+1] = g<<2 | g>>4
		dst[o+2] = b<<3 | b>>2
		dst[o+3] = 0xFF
	}
}
