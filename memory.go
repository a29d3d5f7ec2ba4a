// memory.go - 64K RAM with write-through screen decode

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
	"io"
)

// Memory is the flat 64K address space seen by the CPU. Every write is
// stored first and then offered to the video decoder, which may read the
// stored bytes back.
type Memory struct {
	ram     [MEMORY_SIZE]byte
	decoder VideoDecoder
}

func NewMemory() *Memory {
	return &Memory{}
}

// AttachDecoder sets the decoder notified of writes. nil detaches.
func (m *Memory) AttachDecoder(d VideoDecoder) {
	m.decoder = d
}

func (m *Memory) Read(addr uint16) byte {
	return m.ram[addr]
}

func (m *Memory) Write(addr uint16, value byte) {
	m.ram[addr] = value
	if m.decoder != nil {
		m.decoder.OnMemoryWrite(addr, value)
	}
}

// Load writes data from addr upwards through Write. Bytes past the top of
// memory are an error; nothing past 0xFFFF is written.
func (m *Memory) Load(addr uint16, data []byte) error {
	if int(addr)+len(data) > MEMORY_SIZE {
		return fmt.Errorf("load of %d bytes at 0x%04X overruns memory", len(data), addr)
	}
	for i, b := range data {
		m.Write(addr+uint16(i), b)
	}
	return nil
}

// LoadScreen reads a 6912 byte screen dump (bitmap then attributes) into
// screen memory and repaints the display once.
func (m *Memory) LoadScreen(r io.Reader) error {
	var buf [VRAM_SCREEN_SIZE]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return fmt.Errorf("screen dump: %w", err)
	}
	copy(m.ram[VRAM_BITMAP_BASE:VRAM_END], buf[:])
	if m.decoder != nil {
		m.decoder.Repaint()
	}
	return nil
}

// Clear zeroes memory without notifying the decoder.
func (m *Memory) Clear() {
	m.ram = [MEMORY_SIZE]byte{}
}
