// lcd_constants.go - ILI9341 LCD, legacy screen and port constants

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
lcd_constants.go - ILI9341 LCD Peripheral Constants

This file defines the controller opcodes, canvas geometry, legacy screen
memory layout and I/O port numbers used by the LCD peripheral.

Display Specifications:
  - Canvas: 320x240 RGB565 pixels held by the ILI9341 controller
  - Legacy screen: 256x192 pixels (32x24 character cells of 8x8 pixels)
    centred on the canvas, the rest is border
  - Colours: 8 normal + 8 bright, packed RGB565
  - VRAM: 6144 bytes bitmap + 768 bytes attributes = 6912 bytes total

Attribute Byte Format:
  Bit 6: BRIGHT (both INK and PAPER use the bright half of the table)
  Bits 5-3: PAPER (background colour, 0-7)
  Bits 2-0: INK (foreground colour, 0-7)
*/

package main

import "time"

// =============================================================================
// ILI9341 Command Opcodes
// =============================================================================

const (
	LCD_CMD_SOFT_RESET  = 0x01
	LCD_CMD_SLEEP_OUT   = 0x11
	LCD_CMD_DISPLAY_OFF = 0x28
	LCD_CMD_DISPLAY_ON  = 0x29

	LCD_CMD_COLUMN_ADDR = 0x2A // 4 params: start hi, start lo, end hi, end lo
	LCD_CMD_PAGE_ADDR   = 0x2B // 4 params: start hi, start lo, end hi, end lo
	LCD_CMD_MEMORY_WR   = 0x2C // streamed RGB565, high byte first

	LCD_CMD_MEMORY_ACCESS = 0x36
	LCD_CMD_PIXEL_FORMAT  = 0x3A
	LCD_CMD_FRAME_RATE    = 0xB1
	LCD_CMD_ENTRY_MODE    = 0xB7
	LCD_CMD_POWER_1       = 0xC0
	LCD_CMD_POWER_2       = 0xC1
	LCD_CMD_VCOM_1        = 0xC5
	LCD_CMD_VCOM_2        = 0xC7
)

// LCD_DATA_STREAM marks a command whose data phase has no fixed length.
const LCD_DATA_STREAM = -1

// lcdParamCounts maps every accepted opcode to its data byte count.
var lcdParamCounts = map[byte]int{
	LCD_CMD_SOFT_RESET:  0,
	LCD_CMD_SLEEP_OUT:   0,
	LCD_CMD_DISPLAY_OFF: 0,
	LCD_CMD_DISPLAY_ON:  0,

	LCD_CMD_POWER_1:       1,
	LCD_CMD_POWER_2:       1,
	LCD_CMD_VCOM_2:        1,
	LCD_CMD_MEMORY_ACCESS: 1,
	LCD_CMD_PIXEL_FORMAT:  1,
	LCD_CMD_ENTRY_MODE:    1,

	LCD_CMD_VCOM_1:     2,
	LCD_CMD_FRAME_RATE: 2,

	LCD_CMD_COLUMN_ADDR: 4,
	LCD_CMD_PAGE_ADDR:   4,

	LCD_CMD_MEMORY_WR: LCD_DATA_STREAM,
}

// =============================================================================
// Canvas Geometry
// =============================================================================

const (
	LCD_WIDTH  = 320
	LCD_HEIGHT = 240

	// Legacy 256x192 screen centred on the canvas
	LCD_WIN_X_START = 32
	LCD_WIN_X_END   = LCD_WIN_X_START + LEGACY_SCREEN_WIDTH - 1 // 287
	LCD_WIN_Y_START = 24
	LCD_WIN_Y_END   = LCD_WIN_Y_START + LEGACY_SCREEN_HEIGHT - 1 // 215
)

// =============================================================================
// Legacy Screen Memory Layout
// =============================================================================

const (
	LEGACY_SCREEN_WIDTH  = 256
	LEGACY_SCREEN_HEIGHT = 192

	VRAM_BITMAP_BASE = 0x4000
	VRAM_BITMAP_SIZE = 6144
	VRAM_ATTR_BASE   = VRAM_BITMAP_BASE + VRAM_BITMAP_SIZE // 0x5800
	VRAM_ATTR_SIZE   = 768
	VRAM_END         = VRAM_ATTR_BASE + VRAM_ATTR_SIZE // exclusive, 0x5B00
	VRAM_SCREEN_SIZE = VRAM_BITMAP_SIZE + VRAM_ATTR_SIZE

	// Bitmap bytes for consecutive pixel rows of one character cell
	VRAM_CELL_ROW_STRIDE = 256

	MEMORY_SIZE = 0x10000
)

const (
	LCD_ATTR_INK_MASK    = 0x07
	LCD_ATTR_PAPER_SHIFT = 3
	LCD_ATTR_BRIGHT      = 0x40
	LCD_BRIGHT_OFFSET    = 8
)

// =============================================================================
// I/O Ports
// =============================================================================

const (
	PORT_LCD_COMMAND = 0x01 // out: controller command
	PORT_LCD_DATA    = 0x05 // in/out: controller data
	PORT_KEYBOARD    = 0xFE // in: keyboard matrix, out: speaker

	PORT_TRAP_VALUE = 0xFF
	PORT_COUNT      = 256

	// Bit 4 of a speaker port write drives the beeper
	SPEAKER_BEEPER_BIT = 0x10
	BORDER_COLOUR_MASK = 0x07
)

// =============================================================================
// Timing
// =============================================================================

const (
	LCD_TICK_INTERVAL = 50 * time.Millisecond
	LCD_INT_DATA      = 0xFF // RST 38H in IM 0, vector low byte in IM 2
)

// =============================================================================
// Colour Table (RGB565)
// =============================================================================

const (
	RGB565_RED_BRIGHT   = 0xF800
	RGB565_GREEN_BRIGHT = 0x07E0
	RGB565_BLUE_BRIGHT  = 0x001F

	RGB565_RED_NORMAL   = 0xB800
	RGB565_GREEN_NORMAL = 0x05E0
	RGB565_BLUE_NORMAL  = 0x0017
)

// LCDColorTable is indexed by GRB colour number, bright colours at +8.
var LCDColorTable = [16]uint16{
	// Normal
	0,                                                            // black
	RGB565_BLUE_NORMAL,                                           // blue
	RGB565_RED_NORMAL,                                            // red
	RGB565_RED_NORMAL | RGB565_BLUE_NORMAL,                       // magenta
	RGB565_GREEN_NORMAL,                                          // green
	RGB565_GREEN_NORMAL | RGB565_BLUE_NORMAL,                     // cyan
	RGB565_GREEN_NORMAL | RGB565_RED_NORMAL,                      // yellow
	RGB565_GREEN_NORMAL | RGB565_RED_NORMAL | RGB565_BLUE_NORMAL, // white

	// Bright
	0,
	RGB565_BLUE_BRIGHT,
	RGB565_RED_BRIGHT,
	RGB565_RED_BRIGHT | RGB565_BLUE_BRIGHT,
	RGB565_GREEN_BRIGHT,
	RGB565_GREEN_BRIGHT | RGB565_BLUE_BRIGHT,
	RGB565_GREEN_BRIGHT | RGB565_RED_BRIGHT,
	RGB565_GREEN_BRIGHT | RGB565_RED_BRIGHT | RGB565_BLUE_BRIGHT,
}

// LCDColour returns the packed colour for a table index. Only the low four
// bits of index are used.
func LCDColour(index int) uint16 {
	return LCDColorTable[index&0x0F]
}

// ParseLCDAttribute splits an attribute byte into colour table indices.
func ParseLCDAttribute(attr byte) (ink, paper int) {
	ink = int(attr & LCD_ATTR_INK_MASK)
	paper = int((attr >> LCD_ATTR_PAPER_SHIFT) & LCD_ATTR_INK_MASK)
	if attr&LCD_ATTR_BRIGHT != 0 {
		ink += LCD_BRIGHT_OFFSET
		paper += LCD_BRIGHT_OFFSET
	}
	return ink, paper
}
