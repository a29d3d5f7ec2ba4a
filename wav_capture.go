// wav_capture.go - WAV capture of the beeper output

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
	"os"
	"sync"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// Ten minutes at the speaker rate
const WAV_CAPTURE_MAX_SAMPLES = SPEAKER_SAMPLE_RATE * 60 * 10

// WavCapture buffers samples in memory and writes a 16-bit mono WAV file
// on Close.
type WavCapture struct {
	mu         sync.Mutex
	path       string
	sampleRate int
	data       []int
	closed     bool
}

func NewWavCapture(path string, sampleRate int) *WavCapture {
	return &WavCapture{
		path:       path,
		sampleRate: sampleRate,
		data:       make([]int, 0, sampleRate),
	}
}

// Append converts samples in [-1, 1] to 16-bit and buffers them. Samples
// past the capture limit are dropped.
func (w *WavCapture) Append(samples []float32) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	for _, s := range samples {
		if len(w.data) >= WAV_CAPTURE_MAX_SAMPLES {
			return
		}
		s = min(max(s, -1), 1)
		w.data = append(w.data, int(s*32767))
	}
}

func (w *WavCapture) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.data)
}

// Close writes the file. Further appends are ignored.
func (w *WavCapture) Close() (rerr error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}
	w.closed = true

	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("wav capture: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("wav capture: %w", err)
		}
	}()

	enc := wav.NewEncoder(f, w.sampleRate, 16, 1, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: w.sampleRate},
		Data:           w.data,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wav capture: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("wav capture: %w", err)
	}
	Logf("wav", "wrote %d samples to %s", len(w.data), w.path)
	return nil
}
