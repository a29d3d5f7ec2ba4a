// video_backend_headless.go - Windowless LCD output used by tests and -backend headless

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
	"sync"
	"sync/atomic"
	"time"
)

type HeadlessOutput struct {
	mu        sync.Mutex
	started   bool
	config    DisplayConfig
	last      []uint16
	lastAt    time.Time
	done      chan struct{}
	closeOnce sync.Once

	frameCount atomic.Uint64
}

func NewHeadlessOutput() *HeadlessOutput {
	return &HeadlessOutput{
		config: DefaultDisplayConfig(),
		last:   make([]uint16, LCD_WIDTH*LCD_HEIGHT),
		done:   make(chan struct{}),
	}
}

func (h *HeadlessOutput) Start() error {
	h.mu.Lock()
	h.started = true
	h.mu.Unlock()
	return nil
}

func (h *HeadlessOutput) Stop() error {
	h.mu.Lock()
	h.started = false
	h.mu.Unlock()
	return nil
}

// Close stops the output and closes Done.
func (h *HeadlessOutput) Close() error {
	_ = h.Stop()
	h.closeOnce.Do(func() { close(h.done) })
	return nil
}

func (h *HeadlessOutput) IsStarted() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.started
}

func (h *HeadlessOutput) Done() <-chan struct{} {
	return h.done
}

func (h *HeadlessOutput) SetDisplayConfig(config DisplayConfig) error {
	h.mu.Lock()
	h.config = config
	h.mu.Unlock()
	return nil
}

func (h *HeadlessOutput) GetDisplayConfig() DisplayConfig {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.config
}

func (h *HeadlessOutput) UpdateFrame(frame []uint16) error {
	if len(frame) != LCD_WIDTH*LCD_HEIGHT {
		return &VideoError{Operation: "frame update", Details: "frame size mismatch"}
	}
	h.mu.Lock()
	copy(h.last, frame)
	h.lastAt = time.Now()
	h.mu.Unlock()
	h.frameCount.Add(1)
	return nil
}

func (h *HeadlessOutput) GetFrameCount() uint64 {
	return h.frameCount.Load()
}

// GetSnapshot returns a copy of the most recent frame.
func (h *HeadlessOutput) GetSnapshot() FrameSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	s := FrameSnapshot{
		Pixels:    make([]uint16, len(h.last)),
		Width:     LCD_WIDTH,
		Height:    LCD_HEIGHT,
		Timestamp: h.lastAt,
	}
	copy(s.Pixels, h.last)
	return s
}
