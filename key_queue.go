// key_queue.go - Host key queue feeding the keyboard matrix

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

import "sync"

// KeySource is polled by the keyboard matrix for the next typed
// character. PollKey must never block.
type KeySource interface {
	PollKey() (byte, bool)
}

// KeyQueue is a bounded ring of typed characters. Host adapters (window,
// terminal, clipboard paste, scripts) push into it from their own
// goroutines; the keyboard matrix drains it on the CPU goroutine.
type KeyQueue struct {
	mu   sync.Mutex
	buf  [1024]byte
	head int // next read position
	tail int // next write position
	n    int
}

func NewKeyQueue() *KeyQueue {
	return &KeyQueue{}
}

// Enqueue adds b, dropping it when the queue is full.
func (q *KeyQueue) Enqueue(b byte) {
	q.mu.Lock()
	q.enqueueLocked(b)
	q.mu.Unlock()
}

// EnqueueString adds every byte of s.
func (q *KeyQueue) EnqueueString(s string) {
	q.mu.Lock()
	for i := 0; i < len(s); i++ {
		q.enqueueLocked(s[i])
	}
	q.mu.Unlock()
}

func (q *KeyQueue) PollKey() (byte, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.n == 0 {
		return 0, false
	}
	return q.dequeueLocked(), true
}

func (q *KeyQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.n
}

func (q *KeyQueue) Reset() {
	q.mu.Lock()
	q.head, q.tail, q.n = 0, 0, 0
	q.mu.Unlock()
}

func (q *KeyQueue) enqueueLocked(b byte) {
	if q.n >= len(q.buf) {
		return
	}
	q.buf[q.tail] = b
	q.tail = (q.tail + 1) % len(q.buf)
	q.n++
}

func (q *KeyQueue) dequeueLocked() byte {
	b := q.buf[q.head]
	q.head = (q.head + 1) % len(q.buf)
	q.n--
	return b
}
