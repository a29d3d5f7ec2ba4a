//go:build !windows

package main

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

const terminalPollMillis = 20

// TerminalHost reads raw stdin and feeds characters into a KeyQueue.
// Only started from main.go; tests drive route directly.
type TerminalHost struct {
	keys         *KeyQueue
	onBreak      func()
	stopCh       chan struct{}
	done         chan struct{}
	stopped      sync.Once
	fd           int
	oldTermState *term.State
}

// NewTerminalHost creates a host adapter that reads stdin into keys.
// onBreak is called for Ctrl+C, which raw mode no longer turns into a
// signal.
func NewTerminalHost(keys *KeyQueue, onBreak func()) *TerminalHost {
	return &TerminalHost{
		keys:    keys,
		onBreak: onBreak,
		stopCh:  make(chan struct{}),
		done:    make(chan struct{}),
	}
}

// Start puts stdin in raw mode and begins reading in a goroutine.
// Call Stop() to restore stdin.
func (h *TerminalHost) Start() error {
	h.fd = int(os.Stdin.Fd())

	oldState, err := term.MakeRaw(h.fd)
	if err != nil {
		close(h.done)
		return fmt.Errorf("terminal host: raw mode: %w", err)
	}
	h.oldTermState = oldState

	go h.readLoop()
	return nil
}

func (h *TerminalHost) readLoop() {
	defer close(h.done)
	fds := []unix.PollFd{{Fd: int32(h.fd), Events: unix.POLLIN}}
	buf := make([]byte, 1)

	for {
		select {
		case <-h.stopCh:
			return
		default:
		}

		n, err := unix.Poll(fds, terminalPollMillis)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			Logf("keyboard", "terminal poll: %v", err)
			return
		}
		if n == 0 || fds[0].Revents&unix.POLLIN == 0 {
			continue
		}

		n, err = unix.Read(h.fd, buf)
		if n > 0 {
			h.route(buf[0])
		}
		if err != nil || n == 0 {
			return
		}
	}
}

// Stop terminates the stdin reading goroutine and restores stdin.
func (h *TerminalHost) Stop() {
	h.stopped.Do(func() {
		close(h.stopCh)
	})
	<-h.done
	if h.oldTermState != nil {
		_ = term.Restore(h.fd, h.oldTermState)
		h.oldTermState = nil
	}
}
