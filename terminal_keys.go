package main

// route turns one raw stdin byte into a typed character. Ctrl+C is the
// only byte that never reaches the queue.
func (h *TerminalHost) route(b byte) {
	switch b {
	case 0x03:
		if h.onBreak != nil {
			h.onBreak()
		}
		return
	case '\n':
		// keyboard ENTER is CR, the byte raw mode delivers for Return
		b = '\r'
	}
	h.keys.Enqueue(b)
}
