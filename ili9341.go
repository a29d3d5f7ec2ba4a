// ili9341.go - ILI9341 display controller protocol emulation

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
ili9341.go - ILI9341 Display Controller

The controller consumes a byte stream on two ports: a command byte selects
the mode and a fixed or streamed number of data bytes follows. Column and
page address commands define a window on the 320x240 canvas, the memory
write command streams big-endian RGB565 pixels into that window with the
cursor wrapping back to the left edge at the right edge. Bytes that would
land below the window are discarded.

Window bounds are not validated. An inverted window keeps the wrap
arithmetic of the silicon: the cursor wraps on every byte and runs off the
bottom almost at once.
*/

package main

// FrameSink receives a complete 320x240 RGB565 frame in row-major order.
type FrameSink interface {
	UpdateFrame(frame []uint16) error
}

// ILI9341 holds the full controller state. It is not safe for concurrent
// use; all calls must come from the goroutine driving the CPU bus.
type ILI9341 struct {
	command byte
	pending int

	startX, endX uint16
	startY, endY uint16

	// Cursor is kept wider than the 16-bit registers so that an increment
	// past 0xFFFF keeps comparing greater than the window end.
	cursorX, cursorY int

	parity int
	latch  uint16

	pixels [LCD_HEIGHT][LCD_WIDTH]uint16
	frame  []uint16
}

// NewILI9341 returns a controller in its power-on state: zero window,
// cursor at the origin and a black canvas.
func NewILI9341() *ILI9341 {
	return &ILI9341{
		frame: make([]uint16, LCD_WIDTH*LCD_HEIGHT),
	}
}

// Reset returns the controller to its power-on state.
func (c *ILI9341) Reset() {
	c.command = 0
	c.pending = 0
	c.startX, c.endX = 0, 0
	c.startY, c.endY = 0, 0
	c.cursorX, c.cursorY = 0, 0
	c.parity = 0
	c.latch = 0
	c.pixels = [LCD_HEIGHT][LCD_WIDTH]uint16{}
}

// WriteCommand latches an opcode and arms its data phase. Unknown opcodes
// are ignored.
func (c *ILI9341) WriteCommand(opcode byte) {
	count, ok := lcdParamCounts[opcode]
	if !ok {
		Logf("lcd", "ignoring unknown command 0x%02X", opcode)
		return
	}
	c.command = opcode
	c.pending = count

	if opcode == LCD_CMD_MEMORY_WR {
		c.cursorX = int(c.startX)
		c.cursorY = int(c.startY)
		c.parity = 0
	}
}

// WriteData feeds one data byte to the latched command.
func (c *ILI9341) WriteData(b byte) {
	switch c.command {
	case LCD_CMD_COLUMN_ADDR:
		if c.pending > 2 {
			c.startX = c.startX<<8 | uint16(b)
		} else {
			c.endX = c.endX<<8 | uint16(b)
		}
		c.pending--

	case LCD_CMD_PAGE_ADDR:
		if c.pending > 2 {
			c.startY = c.startY<<8 | uint16(b)
		} else {
			c.endY = c.endY<<8 | uint16(b)
		}
		c.pending--

	case LCD_CMD_MEMORY_WR:
		c.writePixelByte(b)

	default:
		if c.pending > 0 {
			c.pending--
		}
	}
}

func (c *ILI9341) writePixelByte(b byte) {
	if c.cursorX > int(c.endX) {
		c.cursorX = int(c.startX)
		c.cursorY++
	}
	if c.cursorY > int(c.endY) {
		return
	}

	if c.parity == 0 {
		c.latch = uint16(b) << 8
		c.parity = 1
		return
	}

	colour := c.latch | uint16(b)
	c.parity = 0
	// Window registers reach 0xFFFF; the canvas does not.
	if c.cursorX < LCD_WIDTH && c.cursorY < LCD_HEIGHT {
		c.pixels[c.cursorY][c.cursorX] = colour
	}
	c.cursorX++
}

// ReadData always returns 0, there is no readback path.
func (c *ILI9341) ReadData() byte {
	return 0
}

// SetWindow issues column and page address set commands for the given
// bounds. Each bound is truncated to 16 bits.
func (c *ILI9341) SetWindow(startX, endX, startY, endY int) {
	c.WriteCommand(LCD_CMD_COLUMN_ADDR)
	c.writeWord(startX)
	c.writeWord(endX)

	c.WriteCommand(LCD_CMD_PAGE_ADDR)
	c.writeWord(startY)
	c.writeWord(endY)
}

func (c *ILI9341) writeWord(v int) {
	v &= 0xFFFF
	c.WriteData(byte(v >> 8))
	c.WriteData(byte(v))
}

// WritePixel streams one RGB565 pixel as two data bytes.
func (c *ILI9341) WritePixel(colour uint16) {
	c.WriteData(byte(colour >> 8))
	c.WriteData(byte(colour))
}

// Present hands the pixel buffer to the host backend. Controller state is
// not changed.
func (c *ILI9341) Present(out FrameSink) error {
	if out == nil {
		return nil
	}
	for y := 0; y < LCD_HEIGHT; y++ {
		copy(c.frame[y*LCD_WIDTH:(y+1)*LCD_WIDTH], c.pixels[y][:])
	}
	return out.UpdateFrame(c.frame)
}

// Pixel returns the stored colour at (x, y), or 0 outside the canvas.
func (c *ILI9341) Pixel(x, y int) uint16 {
	if x < 0 || y < 0 || x >= LCD_WIDTH || y >= LCD_HEIGHT {
		return 0
	}
	return c.pixels[y][x]
}

// Window returns the current address window registers.
func (c *ILI9341) Window() (startX, endX, startY, endY uint16) {
	return c.startX, c.endX, c.startY, c.endY
}

// Cursor returns the memory write position.
func (c *ILI9341) Cursor() (x, y int) {
	return c.cursorX, c.cursorY
}

// Command returns the latched opcode and the data bytes it still expects.
func (c *ILI9341) Command() (opcode byte, pending int) {
	return c.command, c.pending
}

// Frame returns a row-major copy of the pixel buffer.
func (c *ILI9341) Frame() []uint16 {
	out := make([]uint16, LCD_WIDTH*LCD_HEIGHT)
	for y := 0; y < LCD_HEIGHT; y++ {
		copy(out[y*LCD_WIDTH:], c.pixels[y][:])
	}
	return out
}
