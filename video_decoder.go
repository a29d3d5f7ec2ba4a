// video_decoder.go - Legacy screen memory to ILI9341 command decoder

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
video_decoder.go - Legacy Screen Memory Decoder

Translates CPU writes into the legacy 256x192 screen memory into ILI9341
window and memory write sequences, so the LCD shows what a Spectrum style
display would show.

Memory Layout:
- Bitmap: 6144 bytes at 0x4000-0x57FF. Address bits are interleaved:
  bits 0-4 column byte, bits 5-7 character row, bits 8-10 pixel row
  within the cell, bits 11-12 screen third.
- Attributes: 768 bytes at 0x5800-0x5AFF (32x24 cells, linear)

Signal Flow:
1. CPU writes a byte, Memory stores it and forwards it here
2. Bitmap byte: one 8 pixel run is streamed using the cell's attribute
3. Attribute byte: the whole 8x8 cell is restreamed in its new colours
4. Border writes fill the four margins around the legacy screen

The pass-through decoder is used when the firmware drives the controller
itself; it never touches the LCD.
*/

package main

import "fmt"

// VideoMemory is the read side of the memory the decoder fetches bitmap
// and attribute bytes from.
type VideoMemory interface {
	Read(addr uint16) byte
}

// VideoDecoder reacts to screen memory and border writes.
type VideoDecoder interface {
	OnMemoryWrite(addr uint16, value byte)
	OnBorderWrite(colour byte)
	// Repaint redraws the whole legacy screen from memory.
	Repaint()
	Mode() DecoderMode
}

type DecoderMode int

const (
	DECODER_ACTIVE DecoderMode = iota
	DECODER_PASSTHROUGH
)

func (m DecoderMode) String() string {
	switch m {
	case DECODER_ACTIVE:
		return "active"
	case DECODER_PASSTHROUGH:
		return "passthrough"
	}
	return fmt.Sprintf("DecoderMode(%d)", int(m))
}

// ParseDecoderMode accepts the names printed by DecoderMode.String.
func ParseDecoderMode(s string) (DecoderMode, error) {
	switch s {
	case "active":
		return DECODER_ACTIVE, nil
	case "passthrough", "pass-through":
		return DECODER_PASSTHROUGH, nil
	}
	return 0, fmt.Errorf("unknown decoder mode %q", s)
}

// NewVideoDecoder builds the decoder for mode. The active decoder needs
// both the controller and the memory it reads back from.
func NewVideoDecoder(mode DecoderMode, lcd *ILI9341, mem VideoMemory) (VideoDecoder, error) {
	switch mode {
	case DECODER_ACTIVE:
		if lcd == nil || mem == nil {
			return nil, fmt.Errorf("active decoder: controller and memory required")
		}
		return NewActiveDecoder(lcd, mem), nil
	case DECODER_PASSTHROUGH:
		return PassThroughDecoder{}, nil
	}
	return nil, fmt.Errorf("unknown decoder mode %d", int(mode))
}

// ActiveDecoder drives the controller for every screen memory write.
type ActiveDecoder struct {
	lcd *ILI9341
	mem VideoMemory
}

func NewActiveDecoder(lcd *ILI9341, mem VideoMemory) *ActiveDecoder {
	return &ActiveDecoder{lcd: lcd, mem: mem}
}

func (d *ActiveDecoder) Mode() DecoderMode { return DECODER_ACTIVE }

func (d *ActiveDecoder) OnMemoryWrite(addr uint16, value byte) {
	a := int(addr)
	if a < VRAM_BITMAP_BASE || a >= VRAM_END {
		return
	}
	if a >= VRAM_ATTR_BASE {
		d.drawCell(a, value)
		return
	}
	d.drawBitmapByte(a, value)
}

// CellOrigin returns the canvas position of the top left pixel of the
// character cell owning attribute address addr, and the bitmap address of
// its first pixel row.
func CellOrigin(addr int) (x, y, bitmapAddr int) {
	charX := addr & 0x1F
	charLine := (addr >> 5) & 0x07
	third := (addr >> 8) & 0x03

	bitmapAddr = VRAM_BITMAP_BASE + third<<11 + charLine<<5 + charX
	x = LCD_WIN_X_START + charX*8
	y = LCD_WIN_Y_START + (8*third+charLine)*8
	return x, y, bitmapAddr
}

// BitmapOrigin returns the canvas position of the leftmost pixel written
// by bitmap address addr.
//
// The bitmap line index l = (addr-0x4000)>>5 has the pixel row within a
// cell in bits 3-5 and the character row in bits 0-2; folding them back:
// y = ((l&0x3F)<<3)&0x3F + (l&0x3F)>>3 + l&0xC0
func BitmapOrigin(addr int) (x, y int) {
	line := (addr - VRAM_BITMAP_BASE) >> 5
	x = LCD_WIN_X_START + (addr&0x1F)<<3
	y = LCD_WIN_Y_START + (((line & 0x3F) << 3) & 0x3F) + ((line & 0x3F) >> 3) + (line & 0xC0)
	return x, y
}

func (d *ActiveDecoder) drawCell(addr int, attr byte) {
	ink, paper := ParseLCDAttribute(attr)
	x, y, bitmapAddr := CellOrigin(addr)

	for i := 0; i < 8; i++ {
		row := d.mem.Read(uint16(bitmapAddr))
		d.lcd.SetWindow(x, LCD_WIN_X_END, y, LCD_WIN_Y_END)
		d.lcd.WriteCommand(LCD_CMD_MEMORY_WR)
		d.streamRow(row, ink, paper)
		bitmapAddr += VRAM_CELL_ROW_STRIDE
		y++
	}
}

func (d *ActiveDecoder) drawBitmapByte(addr int, row byte) {
	x, y := BitmapOrigin(addr)
	cellRow := (y - LCD_WIN_Y_START) >> 3
	attr := d.mem.Read(uint16(VRAM_ATTR_BASE + cellRow*32 + addr&0x1F))
	ink, paper := ParseLCDAttribute(attr)

	d.lcd.SetWindow(x, x+8, y, y+1)
	d.lcd.WriteCommand(LCD_CMD_MEMORY_WR)
	d.streamRow(row, ink, paper)
}

// streamRow sends 8 pixels, most significant bit first.
func (d *ActiveDecoder) streamRow(row byte, ink, paper int) {
	for i := 0; i < 8; i++ {
		if row&0x80 != 0 {
			d.lcd.WritePixel(LCDColour(ink))
		} else {
			d.lcd.WritePixel(LCDColour(paper))
		}
		row <<= 1
	}
}

// OnBorderWrite fills the four margins around the legacy screen with a
// normal (not bright) colour.
func (d *ActiveDecoder) OnBorderWrite(colour byte) {
	c := LCDColour(int(colour & BORDER_COLOUR_MASK))
	d.fill(0, LCD_WIDTH-1, 0, LCD_WIN_Y_START-1, c)
	d.fill(0, LCD_WIN_X_START-1, 0, LCD_HEIGHT-1, c)
	d.fill(LCD_WIN_X_END+1, LCD_WIDTH-1, 0, LCD_HEIGHT-1, c)
	d.fill(0, LCD_WIDTH-1, LCD_WIN_Y_END+1, LCD_HEIGHT-1, c)
}

func (d *ActiveDecoder) fill(startX, endX, startY, endY int, colour uint16) {
	d.lcd.SetWindow(startX, endX, startY, endY)
	d.lcd.WriteCommand(LCD_CMD_MEMORY_WR)
	for y := startY; y <= endY; y++ {
		for x := startX; x <= endX; x++ {
			d.lcd.WritePixel(colour)
		}
	}
}

// Repaint replays every attribute byte; each one restreams its cell.
func (d *ActiveDecoder) Repaint() {
	for a := VRAM_ATTR_BASE; a < VRAM_END; a++ {
		d.drawCell(a, d.mem.Read(uint16(a)))
	}
}

// PassThroughDecoder ignores all writes.
type PassThroughDecoder struct{}

func (PassThroughDecoder) Mode() DecoderMode { return DECODER_PASSTHROUGH }

func (PassThroughDecoder) OnMemoryWrite(addr uint16, value byte) {}

func (PassThroughDecoder) OnBorderWrite(colour byte) {}

func (PassThroughDecoder) Repaint() {}
