package logging

import (
	"fmt"
	"sync"
)

// TestLogger is a capturing logger for tests. It records every entry and can
// optionally echo them to stdout when verbose.
type TestLogger struct {
	mu      sync.Mutex
	verbose bool
	entries []TestEntry
}

// TestEntry is one captured log call.
type TestEntry struct {
	Level  Level
	Msg    string
	Fields []Field
}

// NewTestLogger creates a new test logger.
func NewTestLogger(verbose bool) *TestLogger {
	return &TestLogger{verbose: verbose}
}

func (tl *TestLogger) record(level Level, msg string, fields ...Field) {
	tl.mu.Lock()
	tl.entries = append(tl.entries, TestEntry{Level: level, Msg: msg, Fields: fields})
	tl.mu.Unlock()

	if tl.verbose || level >= LevelWarn {
		fmt.Printf("[%s] %s %v\n", level, msg, fields)
	}
}

func (tl *TestLogger) Debug(msg string, fields ...Field) { tl.record(LevelDebug, msg, fields...) }
func (tl *TestLogger) Info(msg string, fields ...Field)  { tl.record(LevelInfo, msg, fields...) }
func (tl *TestLogger) Warn(msg string, fields ...Field)  { tl.record(LevelWarn, msg, fields...) }
func (tl *TestLogger) Error(msg string, fields ...Field) { tl.record(LevelError, msg, fields...) }

func (tl *TestLogger) With(fields ...Field) Logger { return tl }

// Entries returns a copy of everything logged so far.
func (tl *TestLogger) Entries() []TestEntry {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	out := make([]TestEntry, len(tl.entries))
	copy(out, tl.entries)
	return out
}

// Contains reports whether any captured entry's message equals msg.
func (tl *TestLogger) Contains(msg string) bool {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	for _, e := range tl.entries {
		if e.Msg == msg {
			return true
		}
	}
	return false
}
