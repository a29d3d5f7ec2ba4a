//go:build !headless

// audio_backend_oto.go - Oto audio output for the beeper

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
	"unsafe"

	"github.com/ebitengine/oto/v3"
)

// OtoPlayer pulls mono float32 samples from a SampleSource on oto's
// audio goroutine.
type OtoPlayer struct {
	ctx    *oto.Context
	player *oto.Player
	source atomic.Pointer[sampleSourceRef] // read without the lock
	buf    []float32                       // only touched by Read

	mu      sync.Mutex
	playing bool
}

type sampleSourceRef struct{ src SampleSource }

func init() {
	compiledFeatures = append(compiledFeatures, "audio:oto")
}

func NewOtoPlayer(sampleRate int) (*OtoPlayer, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   LCD_TICK_INTERVAL / 2,
	})
	if err != nil {
		return nil, err
	}
	<-ready
	return &OtoPlayer{ctx: ctx}, nil
}

// SetupPlayer attaches src. It may be called again to swap sources.
func (op *OtoPlayer) SetupPlayer(src SampleSource) {
	op.source.Store(&sampleSourceRef{src: src})

	op.mu.Lock()
	defer op.mu.Unlock()
	if op.player == nil {
		op.player = op.ctx.NewPlayer(op)
	}
}

// Read fills p with float32 little endian samples; le_check.go pins the
// host byte order.
func (op *OtoPlayer) Read(p []byte) (int, error) {
	n := len(p) / 4
	ref := op.source.Load()
	if ref == nil || n == 0 {
		clear(p)
		return len(p), nil
	}

	if cap(op.buf) < n {
		op.buf = make([]float32, n)
	}
	samples := op.buf[:n]
	ref.src.ReadSamples(samples)

	return copy(p, unsafe.Slice((*byte)(unsafe.Pointer(&samples[0])), n*4)), nil
}

func (op *OtoPlayer) setPlaying(on bool) {
	op.mu.Lock()
	defer op.mu.Unlock()
	if op.player == nil || op.playing == on {
		return
	}
	if on {
		op.player.Play()
	} else {
		op.player.Pause()
	}
	op.playing = on
}

func (op *OtoPlayer) Start() { op.setPlaying(true) }

func (op *OtoPlayer) Stop() { op.setPlaying(false) }

func (op *OtoPlayer) Close() {
	op.Stop()
	op.mu.Lock()
	defer op.mu.Unlock()
	if op.player != nil {
		op.player.Close()
		op.player = nil
	}
}

func (op *OtoPlayer) IsStarted() bool {
	op.mu.Lock()
	defer op.mu.Unlock()
	return op.playing
}
