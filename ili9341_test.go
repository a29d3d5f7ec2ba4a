// ili9341_test.go - ILI9341 display controller tests

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

type recordingSink struct {
	frames [][]uint16
	err    error
}

func (s *recordingSink) UpdateFrame(frame []uint16) error {
	s.frames = append(s.frames, append([]uint16(nil), frame...))
	return s.err
}

func writeBytes(lcd *ILI9341, opcode byte, data ...byte) {
	lcd.WriteCommand(opcode)
	for _, b := range data {
		lcd.WriteData(b)
	}
}

func TestILI9341_WindowAccumulation(t *testing.T) {
	lcd := NewILI9341()

	writeBytes(lcd, LCD_CMD_COLUMN_ADDR, 0x00, 0x0A, 0x00, 0x1E)
	writeBytes(lcd, LCD_CMD_PAGE_ADDR, 0x00, 0x05, 0x00, 0x0F)

	sx, ex, sy, ey := lcd.Window()
	if sx != 10 || ex != 30 {
		t.Fatalf("Expected columns 10..30, got %d..%d", sx, ex)
	}
	if sy != 5 || ey != 15 {
		t.Fatalf("Expected pages 5..15, got %d..%d", sy, ey)
	}
	if _, pending := lcd.Command(); pending != 0 {
		t.Fatalf("Expected no pending bytes, got %d", pending)
	}
}

func TestILI9341_WindowHighBytes(t *testing.T) {
	lcd := NewILI9341()
	writeBytes(lcd, LCD_CMD_COLUMN_ADDR, 0x01, 0x02, 0x01, 0x3F)

	sx, ex, _, _ := lcd.Window()
	if sx != 0x0102 || ex != 0x013F {
		t.Fatalf("Expected 0x0102..0x013F, got 0x%04X..0x%04X", sx, ex)
	}
}

func TestILI9341_ParameterCounts(t *testing.T) {
	tests := []struct {
		opcode  byte
		pending int
	}{
		{LCD_CMD_SOFT_RESET, 0},
		{LCD_CMD_SLEEP_OUT, 0},
		{LCD_CMD_DISPLAY_OFF, 0},
		{LCD_CMD_DISPLAY_ON, 0},
		{0xC0, 1},
		{0xC1, 1},
		{0xC7, 1},
		{0x36, 1},
		{0x3A, 1},
		{0xB7, 1},
		{0xC5, 2},
		{0xB1, 2},
		{LCD_CMD_COLUMN_ADDR, 4},
		{LCD_CMD_PAGE_ADDR, 4},
		{LCD_CMD_MEMORY_WR, LCD_DATA_STREAM},
	}

	for _, tt := range tests {
		lcd := NewILI9341()
		lcd.WriteCommand(tt.opcode)
		op, pending := lcd.Command()
		if op != tt.opcode || pending != tt.pending {
			t.Fatalf("Opcode 0x%02X: expected pending %d, got opcode 0x%02X pending %d", tt.opcode, tt.pending, op, pending)
		}
	}
}

func TestILI9341_InertCommandsCountBytes(t *testing.T) {
	lcd := NewILI9341()
	lcd.SetWindow(1, 2, 3, 4)

	writeBytes(lcd, 0xC5, 0x3E, 0x28)
	if _, pending := lcd.Command(); pending != 0 {
		t.Fatalf("Expected 0 pending after two parameters, got %d", pending)
	}
	// Extra bytes are absorbed without underflow
	lcd.WriteData(0x55)
	if _, pending := lcd.Command(); pending != 0 {
		t.Fatalf("Expected pending to stay at 0, got %d", pending)
	}

	sx, ex, sy, ey := lcd.Window()
	if sx != 1 || ex != 2 || sy != 3 || ey != 4 {
		t.Fatalf("Expected window untouched, got %d,%d,%d,%d", sx, ex, sy, ey)
	}
}

func TestILI9341_UnknownOpcodeIgnored(t *testing.T) {
	lcd := NewILI9341()
	writeBytes(lcd, LCD_CMD_COLUMN_ADDR, 0x00)

	lcd.WriteCommand(0x99)
	op, pending := lcd.Command()
	if op != LCD_CMD_COLUMN_ADDR || pending != 3 {
		t.Fatalf("Expected state unchanged (0x2A, 3), got (0x%02X, %d)", op, pending)
	}
}

func TestILI9341_StreamFillsWindowRowMajor(t *testing.T) {
	lcd := NewILI9341()
	lcd.SetWindow(10, 30, 5, 15)
	lcd.WriteCommand(LCD_CMD_MEMORY_WR)

	const width, height = 21, 11
	for k := 0; k < width*height; k++ {
		lcd.WritePixel(uint16(k + 1))
	}

	for k := 0; k < width*height; k++ {
		x, y := 10+k%width, 5+k/width
		if got := lcd.Pixel(x, y); got != uint16(k+1) {
			t.Fatalf("Pixel %d at (%d,%d): expected %d, got %d", k, x, y, k+1, got)
		}
	}
}

func TestILI9341_OverflowDiscarded(t *testing.T) {
	lcd := NewILI9341()
	lcd.SetWindow(10, 30, 5, 15)
	lcd.WriteCommand(LCD_CMD_MEMORY_WR)
	for i := 0; i < 21*11; i++ {
		lcd.WritePixel(0x1234)
	}
	before := lcd.Frame()

	lcd.WritePixel(0xFFFF)
	lcd.WritePixel(0xFFFF)

	after := lcd.Frame()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("Expected frame unchanged after overflow, index %d changed 0x%04X -> 0x%04X", i, before[i], after[i])
		}
	}
	if got := lcd.Pixel(9, 5); got != 0 {
		t.Fatalf("Expected pixel left of window untouched, got 0x%04X", got)
	}
	if got := lcd.Pixel(10, 16); got != 0 {
		t.Fatalf("Expected pixel below window untouched, got 0x%04X", got)
	}
}

func TestILI9341_ReadDataAlwaysZero(t *testing.T) {
	lcd := NewILI9341()
	if got := lcd.ReadData(); got != 0 {
		t.Fatalf("Expected 0 on fresh controller, got %d", got)
	}
	lcd.SetWindow(0, 319, 0, 239)
	lcd.WriteCommand(LCD_CMD_MEMORY_WR)
	lcd.WriteData(0xAB)
	if got := lcd.ReadData(); got != 0 {
		t.Fatalf("Expected 0 mid-stream, got %d", got)
	}
}

func TestILI9341_DefaultWindowWritesOrigin(t *testing.T) {
	lcd := NewILI9341()
	lcd.WriteCommand(LCD_CMD_MEMORY_WR)
	lcd.WritePixel(0xF800)
	lcd.WritePixel(0x07E0)

	if got := lcd.Pixel(0, 0); got != 0xF800 {
		t.Fatalf("Expected 0xF800 at origin, got 0x%04X", got)
	}
	frame := lcd.Frame()
	for i, v := range frame[1:] {
		if v != 0 {
			t.Fatalf("Expected only the origin written, index %d is 0x%04X", i+1, v)
		}
	}
}

func TestILI9341_MemoryWriteResetsCursorAndParity(t *testing.T) {
	lcd := NewILI9341()
	lcd.SetWindow(4, 8, 2, 3)
	lcd.WriteCommand(LCD_CMD_MEMORY_WR)
	lcd.WritePixel(1)
	lcd.WriteData(0xAA) // half a pixel

	lcd.WriteCommand(LCD_CMD_MEMORY_WR)
	if x, y := lcd.Cursor(); x != 4 || y != 2 {
		t.Fatalf("Expected cursor at (4,2), got (%d,%d)", x, y)
	}
	lcd.WritePixel(0x0102)
	if got := lcd.Pixel(4, 2); got != 0x0102 {
		t.Fatalf("Expected parity reset so pixel reads 0x0102, got 0x%04X", got)
	}
}

func TestILI9341_OffCanvasWindowAdvancesCursor(t *testing.T) {
	lcd := NewILI9341()
	lcd.SetWindow(318, 321, 0, 0)
	lcd.WriteCommand(LCD_CMD_MEMORY_WR)
	for i := 0; i < 4; i++ {
		lcd.WritePixel(uint16(0x100 + i))
	}

	if got := lcd.Pixel(318, 0); got != 0x100 {
		t.Fatalf("Expected 0x100 at x=318, got 0x%04X", got)
	}
	if got := lcd.Pixel(319, 0); got != 0x101 {
		t.Fatalf("Expected 0x101 at x=319, got 0x%04X", got)
	}
	if got := lcd.Pixel(0, 1); got != 0 {
		t.Fatalf("Expected no wrap into the next row, got 0x%04X", got)
	}
	if x, _ := lcd.Cursor(); x != 322 {
		t.Fatalf("Expected cursor past the canvas at 322, got %d", x)
	}
}

func TestILI9341_InvertedWindowRunsOffBottom(t *testing.T) {
	lcd := NewILI9341()
	lcd.SetWindow(20, 10, 0, 1)
	lcd.WriteCommand(LCD_CMD_MEMORY_WR)

	// cursorX 20 > endX 10 wraps on every byte: the first byte lands on
	// row 1, every later byte is past the window.
	lcd.WriteData(0x12)
	lcd.WriteData(0x34)
	lcd.WriteData(0x56)

	for _, p := range lcd.Frame() {
		if p != 0 {
			t.Fatalf("Expected nothing written through an inverted window, got 0x%04X", p)
		}
	}
	if _, y := lcd.Cursor(); y != 3 {
		t.Fatalf("Expected cursor row 3, got %d", y)
	}
}

func TestILI9341_SetWindowMasksTo16Bits(t *testing.T) {
	lcd := NewILI9341()
	lcd.SetWindow(0x1000A, 0x2001E, -1, 0x10005)

	sx, ex, sy, ey := lcd.Window()
	if sx != 0x000A || ex != 0x001E || sy != 0xFFFF || ey != 0x0005 {
		t.Fatalf("Expected masked window 10,30,65535,5, got %d,%d,%d,%d", sx, ex, sy, ey)
	}
}

func TestILI9341_PresentDoesNotChangeState(t *testing.T) {
	lcd := NewILI9341()
	lcd.SetWindow(0, 1, 0, 0)
	lcd.WriteCommand(LCD_CMD_MEMORY_WR)
	lcd.WritePixel(0xBEEF)

	sink := &recordingSink{}
	if err := lcd.Present(sink); err != nil {
		t.Fatalf("Present failed: %v", err)
	}
	if len(sink.frames) != 1 || len(sink.frames[0]) != LCD_WIDTH*LCD_HEIGHT {
		t.Fatalf("Expected one full frame, got %d frames", len(sink.frames))
	}
	if sink.frames[0][0] != 0xBEEF {
		t.Fatalf("Expected 0xBEEF at index 0, got 0x%04X", sink.frames[0][0])
	}

	lcd.WritePixel(0xCAFE)
	if got := lcd.Pixel(1, 0); got != 0xCAFE {
		t.Fatalf("Expected stream to continue after present, got 0x%04X", got)
	}
}

func TestILI9341_PresentReportsSinkError(t *testing.T) {
	lcd := NewILI9341()
	want := errors.New("surface lost")
	if err := lcd.Present(&recordingSink{err: want}); !errors.Is(err, want) {
		t.Fatalf("Expected sink error, got %v", err)
	}
	if err := lcd.Present(nil); err != nil {
		t.Fatalf("Expected nil sink to be ignored, got %v", err)
	}
}

func TestILI9341_Reset(t *testing.T) {
	lcd := NewILI9341()
	lcd.SetWindow(5, 6, 7, 8)
	lcd.WriteCommand(LCD_CMD_MEMORY_WR)
	lcd.WritePixel(0xFFFF)

	lcd.Reset()

	if sx, ex, sy, ey := lcd.Window(); sx|ex|sy|ey != 0 {
		t.Fatalf("Expected zero window after reset")
	}
	if got := lcd.Pixel(5, 7); got != 0 {
		t.Fatalf("Expected black canvas after reset, got 0x%04X", got)
	}
	if op, pending := lcd.Command(); op != 0 || pending != 0 {
		t.Fatalf("Expected no latched command, got 0x%02X/%d", op, pending)
	}
}
