// lcd_log.go - Central tagged log for peripheral events

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
	"strings"
	"sync"
	"time"
)

// Log entries are kept in a bounded ring. A run of identical entries is
// stored once with a repeat count so that a firmware loop hammering a
// trapped port does not flush everything else out of the log.

const maxLogEntries = 256

type LogEntry struct {
	Timestamp time.Time
	Tag       string
	Detail    string
	Repeated  int
}

func (e LogEntry) String() string {
	var s strings.Builder
	fmt.Fprintf(&s, "%s: %s", e.Tag, e.Detail)
	if e.Repeated > 0 {
		fmt.Fprintf(&s, " (repeat x%d)", e.Repeated+1)
	}
	s.WriteString("\n")
	return s.String()
}

type eventLog struct {
	mu      sync.Mutex
	entries []LogEntry
	max     int
	echo    io.Writer
}

var centralLog = &eventLog{max: maxLogEntries}

func (l *eventLog) log(tag, detail string) {
	tag = strings.ReplaceAll(tag, "\n", "")
	detail = strings.ReplaceAll(detail, "\n", "")

	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	var e *LogEntry
	if n := len(l.entries); n > 0 && l.entries[n-1].Tag == tag && l.entries[n-1].Detail == detail {
		e = &l.entries[n-1]
		e.Repeated++
		e.Timestamp = now
	} else {
		l.entries = append(l.entries, LogEntry{Timestamp: now, Tag: tag, Detail: detail})
		if len(l.entries) > l.max {
			l.entries = append(l.entries[:0], l.entries[len(l.entries)-l.max:]...)
		}
		e = &l.entries[len(l.entries)-1]
	}

	if l.echo != nil {
		io.WriteString(l.echo, e.String())
	}
}

// Log adds an entry to the central log.
func Log(tag, detail string) {
	centralLog.log(tag, detail)
}

// Logf is Log with fmt formatting of the detail.
func Logf(tag, format string, args ...any) {
	centralLog.log(tag, fmt.Sprintf(format, args...))
}

// ClearLog removes every entry.
func ClearLog() {
	centralLog.mu.Lock()
	centralLog.entries = centralLog.entries[:0]
	centralLog.mu.Unlock()
}

// WriteLog writes every entry, oldest first.
func WriteLog(w io.Writer) {
	TailLog(w, maxLogEntries)
}

// TailLog writes the most recent n entries. n is capped to the number of
// entries held.
func TailLog(w io.Writer, n int) {
	centralLog.mu.Lock()
	defer centralLog.mu.Unlock()
	n = min(max(n, 0), len(centralLog.entries))
	for _, e := range centralLog.entries[len(centralLog.entries)-n:] {
		io.WriteString(w, e.String())
	}
}

// SetLogEcho mirrors each new or repeated entry to w. A nil writer stops
// the echo.
func SetLogEcho(w io.Writer) {
	centralLog.mu.Lock()
	centralLog.echo = w
	centralLog.mu.Unlock()
}

// LogEntries returns a copy of the log.
func LogEntries() []LogEntry {
	centralLog.mu.Lock()
	defer centralLog.mu.Unlock()
	out := make([]LogEntry, len(centralLog.entries))
	copy(out, centralLog.entries)
	return out
}
