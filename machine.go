// machine.go - Peripheral machine: component lifecycle, bus and tick servicing

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

/*
machine.go - Peripheral Machine

Owns one of each peripheral and presents them to a CPU core as a Z80
style bus. The display tick never touches peripheral state: the ticker
goroutine only raises a pending flag, and the CPU goroutine consumes it at
a safe point (Tick, or WaitFrame while a script sleeps) where it presents
the frame and raises the maskable interrupt.
*/

package main

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// Bus is the CPU facing side of the machine.
type Bus interface {
	Read(addr uint16) byte
	Write(addr uint16, value byte)
	In(port uint16) byte
	Out(port uint16, value byte)
	Tick(cycles int)
}

// FrameWaiter is implemented by buses that let a CPU sleep until the next
// serviced tick.
type FrameWaiter interface {
	WaitFrame(ctx context.Context) error
}

// InterruptLine receives the maskable interrupt raised on every tick.
type InterruptLine interface {
	RaiseInterrupt(data byte)
}

// CPU is the core driving the bus. Run returns when the program ends or
// ctx is cancelled.
type CPU interface {
	Run(ctx context.Context, bus Bus) error
}

// MachineConfig selects the peripheral strategies fixed at construction.
type MachineConfig struct {
	Decoder DecoderMode
	Speaker SpeakerMode
	Strict  bool
	Tick    time.Duration
}

type Machine struct {
	cfg MachineConfig

	LCD      *ILI9341
	Memory   *Memory
	Decoder  VideoDecoder
	Keyboard *KeyboardMatrix
	Ports    *PortDispatcher
	Speaker  Speaker

	out  FrameSink
	keys KeySource
	irq  InterruptLine

	tickPending  atomic.Bool
	resetPending atomic.Bool
	tickCh       chan struct{}

	presents   atomic.Uint64
	interrupts atomic.Uint64
}

// NewMachine wires the peripherals. out may be nil when no display is
// attached; keys may be nil when no input is attached.
func NewMachine(cfg MachineConfig, out FrameSink, keys KeySource) (*Machine, error) {
	if cfg.Tick <= 0 {
		cfg.Tick = LCD_TICK_INTERVAL
	}

	m := &Machine{
		cfg:      cfg,
		LCD:      NewILI9341(),
		Memory:   NewMemory(),
		Keyboard: NewKeyboardMatrix(keys),
		out:      out,
		keys:     keys,
		tickCh:   make(chan struct{}, 1),
	}

	decoder, err := NewVideoDecoder(cfg.Decoder, m.LCD, m.Memory)
	if err != nil {
		return nil, fmt.Errorf("machine: %w", err)
	}
	m.Decoder = decoder
	m.Memory.AttachDecoder(decoder)

	speaker, err := NewSpeaker(cfg.Speaker, decoder)
	if err != nil {
		return nil, fmt.Errorf("machine: %w", err)
	}
	m.Speaker = speaker

	m.Ports = NewPortDispatcher(PortBindings{
		LCD:      m.LCD,
		Keyboard: m.Keyboard,
		Speaker:  speaker,
		Strict:   cfg.Strict,
	})

	Logf("machine", "decoder %s, speaker %s, strict %v, tick %v", decoder.Mode(), speaker.Mode(), cfg.Strict, cfg.Tick)
	return m, nil
}

func (m *Machine) Config() MachineConfig {
	return m.cfg
}

// SetInterruptLine sets the receiver of tick interrupts.
func (m *Machine) SetInterruptLine(irq InterruptLine) {
	m.irq = irq
}

// Beeper returns the beeper when the speaker runs in beeper mode.
func (m *Machine) Beeper() (*Beeper, bool) {
	b, ok := m.Speaker.(*Beeper)
	return b, ok
}

func (m *Machine) Read(addr uint16) byte { return m.Memory.Read(addr) }

func (m *Machine) Write(addr uint16, value byte) { m.Memory.Write(addr, value) }

func (m *Machine) In(port uint16) byte { return m.Ports.In(port) }

func (m *Machine) Out(port uint16, value byte) { m.Ports.Out(port, value) }

// Tick is the CPU's safe point.
func (m *Machine) Tick(cycles int) {
	m.Service()
}

// Signal marks a tick as pending. Safe from any goroutine. Several
// signals before the next Service collapse into one.
func (m *Machine) Signal() {
	m.tickPending.Store(true)
	select {
	case m.tickCh <- struct{}{}:
	default:
	}
}

// RequestReset asks for a system reset at the next safe point. Safe from
// any goroutine.
func (m *Machine) RequestReset() {
	m.resetPending.Store(true)
	m.Signal()
}

// Service performs pending work. Must be called from the CPU goroutine.
func (m *Machine) Service() {
	if m.resetPending.CompareAndSwap(true, false) {
		m.Reset()
	}
	if !m.tickPending.CompareAndSwap(true, false) {
		return
	}

	if err := m.LCD.Present(m.out); err != nil {
		Logf("video", "present: %v", err)
	}
	m.presents.Add(1)

	if m.irq != nil {
		m.irq.RaiseInterrupt(LCD_INT_DATA)
	}
	m.interrupts.Add(1)
}

// WaitFrame blocks until the next tick fires and then services it on the
// calling goroutine.
func (m *Machine) WaitFrame(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-m.tickCh:
		m.Service()
		return nil
	}
}

// Presents returns the number of frames handed to the display.
func (m *Machine) Presents() uint64 {
	return m.presents.Load()
}

// Interrupts returns the number of interrupts raised.
func (m *Machine) Interrupts() uint64 {
	return m.interrupts.Load()
}

// Reset models a system reset: peripherals return to power-on state,
// memory is cleared and the screen repainted from it.
func (m *Machine) Reset() {
	m.LCD.Reset()
	m.Memory.Clear()
	m.Keyboard.Reset()
	m.Ports.Reset()
	if b, ok := m.Beeper(); ok {
		b.Reset()
	}
	if q, ok := m.keys.(interface{ Reset() }); ok {
		q.Reset()
	}
	m.tickPending.Store(false)
	m.Decoder.OnBorderWrite(0)
	m.Decoder.Repaint()
	Log("machine", "reset")
}

// Run drives the machine until ctx is cancelled or cpu fails. A nil cpu,
// or one that returns cleanly, leaves the machine presenting frames.
func (m *Machine) Run(ctx context.Context, cpu CPU) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		m.runTicker(ctx)
		return nil
	})

	g.Go(func() error {
		if cpu != nil {
			irq, cpuIRQ := cpu.(InterruptLine)
			cpuIRQ = cpuIRQ && m.irq == nil
			if cpuIRQ {
				m.SetInterruptLine(irq)
			}
			if h, ok := cpu.(CPUHalter); ok {
				m.Ports.SetHalter(h)
			}
			err := cpu.Run(ctx, m)
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			if cpuIRQ {
				m.irq = nil
			}
		}
		for {
			if err := m.WaitFrame(ctx); err != nil {
				return nil
			}
		}
	})

	return g.Wait()
}

func (m *Machine) runTicker(ctx context.Context) {
	t := time.NewTicker(m.cfg.Tick)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			m.Signal()
		}
	}
}

// Status is a one line summary for the display status bar.
func (m *Machine) Status() string {
	trap := "lenient"
	if m.Ports.Strict() {
		trap = "strict"
	}
	return fmt.Sprintf("%s %s %s frames:%d", m.Decoder.Mode(), m.Speaker.Mode(), trap, m.Presents())
}
