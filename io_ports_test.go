// io_ports_test.go - I/O port dispatch tests

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
	"errors"
	"testing"
)

type recordingHalter struct {
	errs []error
}

func (h *recordingHalter) Halt(err error) { h.errs = append(h.errs, err) }

type recordingPortOut struct {
	highs, values []byte
}

func (r *recordingPortOut) PortOut(high, value byte) {
	r.highs = append(r.highs, high)
	r.values = append(r.values, value)
}

func newTestDispatcher(strict bool, keys KeySource) (*PortDispatcher, *ILI9341, *recordingPortOut) {
	lcd := NewILI9341()
	spk := &recordingPortOut{}
	d := NewPortDispatcher(PortBindings{
		LCD:      lcd,
		Keyboard: NewKeyboardMatrix(keys),
		Speaker:  spk,
		Strict:   strict,
	})
	return d, lcd, spk
}

func TestPortDispatcher_LCDPorts(t *testing.T) {
	d, lcd, _ := newTestDispatcher(false, nil)

	d.Out(PORT_LCD_COMMAND, LCD_CMD_COLUMN_ADDR)
	for _, b := range []byte{0x00, 0x0A, 0x00, 0x1E} {
		d.Out(PORT_LCD_DATA, b)
	}
	d.Out(PORT_LCD_COMMAND, LCD_CMD_PAGE_ADDR)
	for _, b := range []byte{0x00, 0x05, 0x00, 0x0F} {
		d.Out(PORT_LCD_DATA, b)
	}

	if sx, ex, sy, ey := lcd.Window(); sx != 10 || ex != 30 || sy != 5 || ey != 15 {
		t.Fatalf("Expected window 10,30,5,15 via ports, got %d,%d,%d,%d", sx, ex, sy, ey)
	}
	if got := d.In(PORT_LCD_DATA); got != 0 {
		t.Fatalf("Expected data readback 0, got 0x%02X", got)
	}
}

func TestPortDispatcher_HighByteIgnoredForLCD(t *testing.T) {
	d, lcd, _ := newTestDispatcher(false, nil)
	d.Out(0xAB00|PORT_LCD_COMMAND, LCD_CMD_MEMORY_WR)
	if op, _ := lcd.Command(); op != LCD_CMD_MEMORY_WR {
		t.Fatalf("Expected port decode on the low byte, got opcode 0x%02X", op)
	}
}

func TestPortDispatcher_KeyboardUsesHighByte(t *testing.T) {
	keys := NewKeyQueue()
	keys.Enqueue('a')
	d, _, _ := newTestDispatcher(false, keys)

	if got := d.In(uint16(ROW_CAPS_V)<<8 | PORT_KEYBOARD); got != KEY_NONE {
		t.Fatalf("Expected no key on the wrong row, got 0x%02X", got)
	}
	if got := d.In(uint16(ROW_A_G)<<8 | PORT_KEYBOARD); got != 0xFE {
		t.Fatalf("Expected 0xFE for 'a', got 0x%02X", got)
	}
}

func TestPortDispatcher_SpeakerPort(t *testing.T) {
	d, _, spk := newTestDispatcher(false, nil)
	d.Out(0x12FE, 0x17)

	if len(spk.values) != 1 || spk.values[0] != 0x17 || spk.highs[0] != 0x12 {
		t.Fatalf("Expected speaker to see high 0x12 value 0x17, got %v %v", spk.highs, spk.values)
	}
}

func TestPortDispatcher_LenientTrap(t *testing.T) {
	d, lcd, _ := newTestDispatcher(false, nil)
	h := &recordingHalter{}
	d.SetHalter(h)

	for _, p := range []uint16{0x00, 0x02, 0x10, 0xFF, 0x1F} {
		if got := d.In(p); got != PORT_TRAP_VALUE {
			t.Fatalf("Port 0x%02X: expected 0xFF, got 0x%02X", p, got)
		}
		d.Out(p, 0x55)
	}
	// port 1 has no input handler
	if got := d.In(PORT_LCD_COMMAND); got != PORT_TRAP_VALUE {
		t.Fatalf("Expected trap on IN from the command port, got 0x%02X", got)
	}

	if d.Err() != nil || len(h.errs) != 0 {
		t.Fatalf("Expected no trap recorded in lenient mode, got %v / %d halts", d.Err(), len(h.errs))
	}
	if op, _ := lcd.Command(); op != 0 {
		t.Fatalf("Expected trapped output to leave the LCD alone, got 0x%02X", op)
	}
}

func TestPortDispatcher_StrictTrap(t *testing.T) {
	d, _, _ := newTestDispatcher(true, nil)
	h := &recordingHalter{}
	d.SetHalter(h)

	if got := d.In(0x3310); got != PORT_TRAP_VALUE {
		t.Fatalf("Expected 0xFF from strict trap, got 0x%02X", got)
	}
	d.Out(0x20, 1)

	var trap *PortTrapError
	if !errors.As(d.Err(), &trap) {
		t.Fatalf("Expected PortTrapError, got %v", d.Err())
	}
	if trap.Direction != "in" || trap.Port != 0x10 || trap.High != 0x33 {
		t.Fatalf("Expected first trap in 0x10 high 0x33, got %+v", trap)
	}
	if len(h.errs) != 2 {
		t.Fatalf("Expected halter called once per trap, got %d", len(h.errs))
	}
	var second *PortTrapError
	if !errors.As(h.errs[1], &second) || second.Direction != "out" || second.Port != 0x20 {
		t.Fatalf("Expected second halt for out 0x20, got %v", h.errs[1])
	}
}

func TestPortDispatcher_StrictMappedPortsDoNotTrap(t *testing.T) {
	d, _, _ := newTestDispatcher(true, NewKeyQueue())
	d.Out(PORT_LCD_COMMAND, LCD_CMD_DISPLAY_ON)
	d.Out(PORT_LCD_DATA, 0)
	d.In(PORT_LCD_DATA)
	d.In(PORT_KEYBOARD)
	d.Out(PORT_KEYBOARD, 0)

	if d.Err() != nil {
		t.Fatalf("Expected no trap on mapped ports, got %v", d.Err())
	}
}

func TestPortDispatcher_BusyCounter(t *testing.T) {
	d, _, _ := newTestDispatcher(false, nil)

	for i := 1; i <= 3; i++ {
		d.In(PORT_LCD_DATA)
		if d.BusyCount() != i {
			t.Fatalf("Expected busy count %d, got %d", i, d.BusyCount())
		}
	}
	d.Out(PORT_LCD_DATA, 0)
	if d.BusyCount() != 0 {
		t.Fatalf("Expected busy count reset by OUT, got %d", d.BusyCount())
	}
}

func TestPortDispatcher_Reset(t *testing.T) {
	d, _, _ := newTestDispatcher(true, nil)
	d.In(0x40)
	d.Reset()

	if d.Err() != nil || d.BusyCount() != 0 {
		t.Fatalf("Expected trap and busy counter cleared, got %v / %d", d.Err(), d.BusyCount())
	}
	if !d.Strict() {
		t.Fatalf("Expected strict mode kept across reset")
	}
}

func TestPortDispatcher_EachCallDecodesItsOwnPort(t *testing.T) {
	d, _, spk := newTestDispatcher(false, nil)

	d.Out(0x34FE, 0x10)
	if got := d.In(0x5600 | PORT_LCD_DATA); got != 0 {
		t.Fatalf("Expected LCD data readback after a speaker write, got 0x%02X", got)
	}
	d.Out(0x78FE, 0x00)

	if len(spk.highs) != 2 || spk.highs[0] != 0x34 || spk.highs[1] != 0x78 {
		t.Fatalf("Expected high bytes 0x34 then 0x78, got %v", spk.highs)
	}
	if spk.values[1] != 0x00 {
		t.Fatalf("Expected second value 0x00, got 0x%02X", spk.values[1])
	}
}
