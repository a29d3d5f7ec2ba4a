// speaker.go - Port 0xFE output strategies: silent, border, beeper

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
	"sync"
	"sync/atomic"
	"time"
)

const (
	SPEAKER_SAMPLE_RATE = 44100
	SPEAKER_AMPLITUDE   = 0.25
	// One pole high pass so a held level decays to silence
	SPEAKER_DC_POLE = 0.995

	SPEAKER_MAX_EDGES = 8192
	SPEAKER_MAX_LAG   = 250 * time.Millisecond
)

type SpeakerMode int

const (
	SPEAKER_SILENT SpeakerMode = iota
	SPEAKER_BORDER
	SPEAKER_BEEPER
)

func (m SpeakerMode) String() string {
	switch m {
	case SPEAKER_SILENT:
		return "silent"
	case SPEAKER_BORDER:
		return "border"
	case SPEAKER_BEEPER:
		return "beeper"
	}
	return fmt.Sprintf("SpeakerMode(%d)", int(m))
}

func ParseSpeakerMode(s string) (SpeakerMode, error) {
	switch s {
	case "silent", "":
		return SPEAKER_SILENT, nil
	case "border":
		return SPEAKER_BORDER, nil
	case "beeper":
		return SPEAKER_BEEPER, nil
	}
	return 0, fmt.Errorf("unknown speaker mode %q", s)
}

// Speaker handles OUT to the keyboard/speaker port.
type Speaker interface {
	PortOutput
	Mode() SpeakerMode
}

// SampleSource produces mono float32 samples for an audio backend.
type SampleSource interface {
	ReadSamples(dst []float32)
}

// NewSpeaker builds the strategy for mode. The border strategy paints
// through decoder.
func NewSpeaker(mode SpeakerMode, decoder VideoDecoder) (Speaker, error) {
	switch mode {
	case SPEAKER_SILENT:
		return silentSpeaker{}, nil
	case SPEAKER_BORDER:
		if decoder == nil {
			return nil, fmt.Errorf("border speaker: decoder required")
		}
		return borderSpeaker{decoder: decoder}, nil
	case SPEAKER_BEEPER:
		return NewBeeper(), nil
	}
	return nil, fmt.Errorf("unknown speaker mode %d", int(mode))
}

type silentSpeaker struct{}

func (silentSpeaker) PortOut(_, _ byte) {}

func (silentSpeaker) Mode() SpeakerMode { return SPEAKER_SILENT }

// borderSpeaker treats the low three bits as the border colour.
type borderSpeaker struct {
	decoder VideoDecoder
}

func (s borderSpeaker) PortOut(_, value byte) {
	s.decoder.OnBorderWrite(value & BORDER_COLOUR_MASK)
}

func (borderSpeaker) Mode() SpeakerMode { return SPEAKER_BORDER }

// Beeper follows bit 4 of the port value. PortOut stamps each level
// change with the wall clock; ReadSamples replays the stamped edges across
// the buffer it renders, so toggles between two audio pulls still form a
// square wave.
type Beeper struct {
	level   atomic.Bool
	toggles atomic.Uint64
	clock   func() time.Time

	mu      sync.Mutex
	edges   []beeperEdge
	base    bool      // level at cursor
	cursor  time.Time // time of the next sample to render
	prevIn  float32
	prevOut float32
	capture *WavCapture
}

type beeperEdge struct {
	at time.Time
	on bool
}

func NewBeeper() *Beeper {
	return &Beeper{clock: time.Now}
}

func (b *Beeper) Mode() SpeakerMode { return SPEAKER_BEEPER }

func (b *Beeper) PortOut(_, value byte) {
	on := value&SPEAKER_BEEPER_BIT != 0
	if b.level.Swap(on) == on {
		return
	}
	b.toggles.Add(1)

	b.mu.Lock()
	if len(b.edges) >= SPEAKER_MAX_EDGES {
		b.base = b.edges[0].on
		b.edges = b.edges[1:]
	}
	b.edges = append(b.edges, beeperEdge{at: b.clock(), on: on})
	b.mu.Unlock()
}

// Level returns the current speaker level.
func (b *Beeper) Level() bool {
	return b.level.Load()
}

// Toggles returns how many times the level changed.
func (b *Beeper) Toggles() uint64 {
	return b.toggles.Load()
}

// SetCapture tees every produced sample into c. nil stops capturing.
func (b *Beeper) SetCapture(c *WavCapture) {
	b.mu.Lock()
	b.capture = c
	b.mu.Unlock()
}

func sampleOffset(n int) time.Duration {
	return time.Duration(int64(n) * int64(time.Second) / SPEAKER_SAMPLE_RATE)
}

// ReadSamples renders the span of len(dst) samples that ends now. The
// cursor resyncs when the pull cadence drifts more than SPEAKER_MAX_LAG.
func (b *Beeper) ReadSamples(dst []float32) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.clock()
	span := sampleOffset(len(dst))
	if want := now.Add(-span); b.cursor.IsZero() ||
		b.cursor.Before(want.Add(-SPEAKER_MAX_LAG)) || b.cursor.After(want.Add(SPEAKER_MAX_LAG)) {
		b.cursor = want
	}

	for i := range dst {
		t := b.cursor.Add(sampleOffset(i))
		for len(b.edges) > 0 && !b.edges[0].at.After(t) {
			b.base = b.edges[0].on
			b.edges = b.edges[1:]
		}
		var in float32
		if b.base {
			in = SPEAKER_AMPLITUDE
		}
		out := in - b.prevIn + SPEAKER_DC_POLE*b.prevOut
		b.prevIn, b.prevOut = in, out
		dst[i] = out
	}
	b.cursor = b.cursor.Add(span)

	if b.capture != nil {
		b.capture.Append(dst)
	}
}

func (b *Beeper) Reset() {
	b.level.Store(false)
	b.mu.Lock()
	b.edges = b.edges[:0]
	b.base = false
	b.cursor = time.Time{}
	b.prevIn, b.prevOut = 0, 0
	b.mu.Unlock()
}
