//go:build headless

package main

import (
	"sync"
	"time"
)

func init() {
	compiledFeatures = append(compiledFeatures, "audio:headless")
}

// OtoPlayer without an audio device. Once started it pulls samples in
// real time so that captures still see the beeper.
type OtoPlayer struct {
	mu         sync.Mutex
	sampleRate int
	src        SampleSource
	started    bool
	stop       chan struct{}
	done       chan struct{}
}

func NewOtoPlayer(sampleRate int) (*OtoPlayer, error) {
	return &OtoPlayer{sampleRate: sampleRate}, nil
}

func (op *OtoPlayer) SetupPlayer(src SampleSource) {
	op.mu.Lock()
	op.src = src
	op.mu.Unlock()
}

func (op *OtoPlayer) Start() {
	op.mu.Lock()
	defer op.mu.Unlock()
	if op.started || op.src == nil {
		return
	}
	op.started = true
	op.stop = make(chan struct{})
	op.done = make(chan struct{})
	go op.pump(op.src, op.stop, op.done)
}

func (op *OtoPlayer) pump(src SampleSource, stop, done chan struct{}) {
	defer close(done)
	const period = 10 * time.Millisecond
	buf := make([]float32, op.sampleRate/100)
	t := time.NewTicker(period)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			src.ReadSamples(buf)
		}
	}
}

func (op *OtoPlayer) Stop() {
	op.mu.Lock()
	if !op.started {
		op.mu.Unlock()
		return
	}
	op.started = false
	close(op.stop)
	done := op.done
	op.mu.Unlock()
	<-done
}

func (op *OtoPlayer) Close() {
	op.Stop()
}

func (op *OtoPlayer) IsStarted() bool {
	op.mu.Lock()
	defer op.mu.Unlock()
	return op.started
}
