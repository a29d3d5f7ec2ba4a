// io_ports.go - CPU I/O port dispatch for the LCD peripheral

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
io_ports.go - I/O Port Dispatch

Two fixed tables of 256 handlers, one per direction, built once when the
dispatcher is created and never rebound. The low byte of the port address
selects the handler; the high byte is passed through because the keyboard
uses it as the row select.

Port Map:
  0x01  out  LCD command
  0x05  in   LCD data readback (always 0)
        out  LCD data
  0xFE  in   keyboard matrix
        out  speaker
  other      trap: input reads 0xFF, output is ignored. In strict mode
             the trap is recorded and the CPU is asked to halt.
*/

package main

import "fmt"

// PortInput answers an IN from one port. high is the upper address byte.
type PortInput interface {
	PortIn(high byte) byte
}

// PortOutput accepts an OUT to one port.
type PortOutput interface {
	PortOut(high, value byte)
}

// CPUHalter is implemented by CPU cores that can be stopped by a trap.
type CPUHalter interface {
	Halt(err error)
}

// PortTrapError reports an access to an unmapped port in strict mode.
type PortTrapError struct {
	Direction string // "in" or "out"
	Port      byte
	High      byte
}

func (e *PortTrapError) Error() string {
	return fmt.Sprintf("I/O trap: %s port 0x%02X (high 0x%02X)", e.Direction, e.Port, e.High)
}

// PortBindings lists the devices wired to the dispatcher.
type PortBindings struct {
	LCD      *ILI9341
	Keyboard *KeyboardMatrix
	Speaker  PortOutput
	Strict   bool
}

type PortDispatcher struct {
	in  [PORT_COUNT]PortInput
	out [PORT_COUNT]PortOutput

	strict bool
	halter CPUHalter
	err    error

	// Consecutive IN operations since the last OUT
	busy int
}

func NewPortDispatcher(b PortBindings) *PortDispatcher {
	d := &PortDispatcher{strict: b.Strict}

	for p := 0; p < PORT_COUNT; p++ {
		t := trapPort{d: d, port: byte(p)}
		d.in[p] = t
		d.out[p] = t
	}

	if b.LCD != nil {
		d.out[PORT_LCD_COMMAND] = lcdCommandPort{b.LCD}
		d.in[PORT_LCD_DATA] = lcdDataPort{b.LCD}
		d.out[PORT_LCD_DATA] = lcdDataPort{b.LCD}
	}
	if b.Keyboard != nil {
		d.in[PORT_KEYBOARD] = keyboardPort{b.Keyboard}
	}
	if b.Speaker != nil {
		d.out[PORT_KEYBOARD] = b.Speaker
	}
	return d
}

// SetHalter registers the CPU stopped by strict-mode traps.
func (d *PortDispatcher) SetHalter(h CPUHalter) {
	d.halter = h
}

func (d *PortDispatcher) Strict() bool {
	return d.strict
}

// In performs an IN from port. The low byte selects the handler.
func (d *PortDispatcher) In(port uint16) byte {
	d.busy++
	return d.in[byte(port)].PortIn(byte(port >> 8))
}

// Out performs an OUT to port. The low byte selects the handler.
func (d *PortDispatcher) Out(port uint16, value byte) {
	d.busy = 0
	d.out[byte(port)].PortOut(byte(port >> 8), value)
}

// BusyCount returns the number of INs since the last OUT.
func (d *PortDispatcher) BusyCount() int {
	return d.busy
}

// Err returns the first strict-mode trap, if any.
func (d *PortDispatcher) Err() error {
	return d.err
}

// Reset clears the trap error and busy counter. Bindings are kept.
func (d *PortDispatcher) Reset() {
	d.err = nil
	d.busy = 0
}

func (d *PortDispatcher) trap(direction string, port, high byte) {
	if !d.strict {
		return
	}
	err := &PortTrapError{Direction: direction, Port: port, High: high}
	if d.err == nil {
		d.err = err
	}
	Log("ports", err.Error())
	if d.halter != nil {
		d.halter.Halt(err)
	}
}

type trapPort struct {
	d    *PortDispatcher
	port byte
}

func (t trapPort) PortIn(high byte) byte {
	t.d.trap("in", t.port, high)
	return PORT_TRAP_VALUE
}

func (t trapPort) PortOut(high, value byte) {
	t.d.trap("out", t.port, high)
}

type lcdCommandPort struct{ lcd *ILI9341 }

func (p lcdCommandPort) PortOut(_, value byte) { p.lcd.WriteCommand(value) }

type lcdDataPort struct{ lcd *ILI9341 }

func (p lcdDataPort) PortIn(byte) byte { return p.lcd.ReadData() }

func (p lcdDataPort) PortOut(_, value byte) { p.lcd.WriteData(value) }

type keyboardPort struct{ kb *KeyboardMatrix }

func (p keyboardPort) PortIn(high byte) byte { return p.kb.Read(high) }
