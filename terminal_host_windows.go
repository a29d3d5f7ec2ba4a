//go:build windows

package main

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// TerminalHost reads the raw console and feeds characters into a KeyQueue.
type TerminalHost struct {
	keys    *KeyQueue
	onBreak func()
	fd      int
	saved   *term.State
}

func NewTerminalHost(keys *KeyQueue, onBreak func()) *TerminalHost {
	return &TerminalHost{keys: keys, onBreak: onBreak}
}

func (h *TerminalHost) Start() error {
	h.fd = int(os.Stdin.Fd())
	saved, err := term.MakeRaw(h.fd)
	if err != nil {
		return fmt.Errorf("terminal host: raw mode: %w", err)
	}
	h.saved = saved
	go h.readLoop()
	return nil
}

// readLoop has no poll on the console handle; it ends on the first read
// error, which Stop provokes only indirectly by restoring the console.
func (h *TerminalHost) readLoop() {
	var buf [64]byte
	for {
		n, err := os.Stdin.Read(buf[:])
		for _, b := range buf[:n] {
			h.route(b)
		}
		if err != nil {
			Logf("keyboard", "console read: %v", err)
			return
		}
	}
}

// Stop restores the console. A blocked console read keeps the reader
// goroutine alive until the next key, which then goes to the queue.
func (h *TerminalHost) Stop() {
	if h.saved != nil {
		_ = term.Restore(h.fd, h.saved)
		h.saved = nil
	}
}
