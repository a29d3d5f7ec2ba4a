// script_lua.go - Lua scripted CPU stand-in driving the peripheral bus

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
script_lua.go - Lua Script CPU

Runs a Lua program in place of a CPU core, useful for bring-up of display
firmware logic and for demos. The script sees the bus as globals:

  out(port, value)            OUT; port may carry the high byte
  inp(port) -> value          IN
  poke(addr, value)           memory write (drives the screen decoder)
  peek(addr) -> value         memory read
  set_window(x0, x1, y0, y1)  column/page address set through the ports
  frame()                     sleep until the next display tick
  type_keys(text)             queue characters for the keyboard matrix
  log(msg)                    add an entry to the central log

If the script defines on_interrupt(data) it is called after every
presented frame while the script runs.
*/

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	lua "github.com/yuin/gopher-lua"
)

// ErrCPUStopped is raised into the script once a trap halted the CPU.
var ErrCPUStopped = errors.New("cpu stopped")

type LuaCPU struct {
	name   string
	source string
	keys   *KeyQueue

	mu      sync.Mutex
	haltErr error

	// valid only while Run executes, on the CPU goroutine
	L   *lua.LState
	bus Bus
	ctx context.Context
}

// NewLuaCPUFile loads the script at path. keys may be nil, in which case
// type_keys is a no-op.
func NewLuaCPUFile(path string, keys *KeyQueue) (*LuaCPU, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lua cpu: %w", err)
	}
	return NewLuaCPU(path, string(data), keys), nil
}

func NewLuaCPU(name, source string, keys *KeyQueue) *LuaCPU {
	return &LuaCPU{name: name, source: source, keys: keys}
}

// Halt stops the script at its next bus access.
func (c *LuaCPU) Halt(err error) {
	c.mu.Lock()
	if c.haltErr == nil {
		c.haltErr = err
	}
	c.mu.Unlock()
}

func (c *LuaCPU) halted() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.haltErr
}

// RaiseInterrupt calls the script's on_interrupt handler, if any.
func (c *LuaCPU) RaiseInterrupt(data byte) {
	if c.L == nil {
		return
	}
	fn, ok := c.L.GetGlobal("on_interrupt").(*lua.LFunction)
	if !ok {
		return
	}
	if err := c.L.CallByParam(lua.P{Fn: fn, NRet: 0, Protect: true}, lua.LNumber(data)); err != nil {
		Logf("script", "on_interrupt: %v", err)
	}
}

func (c *LuaCPU) Run(ctx context.Context, bus Bus) error {
	L := lua.NewState()
	defer L.Close()
	L.SetContext(ctx)

	c.L, c.bus, c.ctx = L, bus, ctx
	defer func() { c.L, c.bus, c.ctx = nil, nil, nil }()

	for name, fn := range map[string]lua.LGFunction{
		"out":        c.luaOut,
		"inp":        c.luaIn,
		"poke":       c.luaPoke,
		"peek":       c.luaPeek,
		"set_window": c.luaSetWindow,
		"frame":      c.luaFrame,
		"type_keys":  c.luaTypeKeys,
		"log":        c.luaLog,
	} {
		L.SetGlobal(name, L.NewFunction(fn))
	}

	Logf("script", "running %s", c.name)
	err := L.DoString(c.source)

	if herr := c.halted(); herr != nil {
		Logf("script", "%s halted: %v", c.name, herr)
		return herr
	}
	if ctx.Err() != nil {
		return nil
	}
	if err != nil {
		return fmt.Errorf("lua cpu %s: %w", c.name, err)
	}
	Logf("script", "%s finished", c.name)
	return nil
}

// checkRunning raises a Lua error once the CPU has been halted.
func (c *LuaCPU) checkRunning(L *lua.LState) {
	if err := c.halted(); err != nil {
		L.RaiseError("%v: %v", ErrCPUStopped, err)
	}
}

func checkByte(L *lua.LState, n int) byte {
	return byte(L.CheckInt(n))
}

func checkWord(L *lua.LState, n int) uint16 {
	return uint16(L.CheckInt(n))
}

func (c *LuaCPU) luaOut(L *lua.LState) int {
	c.checkRunning(L)
	c.bus.Out(checkWord(L, 1), checkByte(L, 2))
	c.checkRunning(L)
	return 0
}

func (c *LuaCPU) luaIn(L *lua.LState) int {
	c.checkRunning(L)
	v := c.bus.In(checkWord(L, 1))
	c.checkRunning(L)
	L.Push(lua.LNumber(v))
	return 1
}

func (c *LuaCPU) luaPoke(L *lua.LState) int {
	c.checkRunning(L)
	c.bus.Write(checkWord(L, 1), checkByte(L, 2))
	return 0
}

func (c *LuaCPU) luaPeek(L *lua.LState) int {
	c.checkRunning(L)
	L.Push(lua.LNumber(c.bus.Read(checkWord(L, 1))))
	return 1
}

func (c *LuaCPU) luaSetWindow(L *lua.LState) int {
	c.checkRunning(L)
	words := [2][2]int{{L.CheckInt(1), L.CheckInt(2)}, {L.CheckInt(3), L.CheckInt(4)}}
	for i, cmd := range []byte{LCD_CMD_COLUMN_ADDR, LCD_CMD_PAGE_ADDR} {
		c.bus.Out(PORT_LCD_COMMAND, cmd)
		for _, w := range words[i] {
			c.bus.Out(PORT_LCD_DATA, byte(w>>8))
			c.bus.Out(PORT_LCD_DATA, byte(w))
		}
	}
	return 0
}

func (c *LuaCPU) luaFrame(L *lua.LState) int {
	c.checkRunning(L)
	if w, ok := c.bus.(FrameWaiter); ok {
		if err := w.WaitFrame(c.ctx); err != nil {
			L.RaiseError("frame: %v", err)
		}
		return 0
	}
	c.bus.Tick(0)
	return 0
}

func (c *LuaCPU) luaTypeKeys(L *lua.LState) int {
	s := L.CheckString(1)
	if c.keys != nil {
		c.keys.EnqueueString(s)
	}
	return 0
}

func (c *LuaCPU) luaLog(L *lua.LState) int {
	Log("script", L.CheckString(1))
	return 0
}
