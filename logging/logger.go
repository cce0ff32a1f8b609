// Package logging provides the leveled console output of a scenario run.
package logging

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
)

// Level is the severity label printed in front of a log line.
type Level string

const (
	Info    Level = "INFO"
	Success Level = "SUCCESS"
	Error   Level = "ERROR"
	Warning Level = "WARNING"
)

type Logger interface {
	Log(level Level, message string, args ...interface{})
}

// ConsoleLogger writes one "[LEVEL] message" line per call, colored by level.
type ConsoleLogger struct {
	out    io.Writer
	colors map[Level]*color.Color
	lock   sync.Mutex
}

// NewConsoleLogger creates a ConsoleLogger. If colorize is false, no escape sequences are
// written regardless of whether out is a terminal.
func NewConsoleLogger(out io.Writer, colorize bool) *ConsoleLogger {
	colors := map[Level]*color.Color{
		Info:    color.New(color.FgHiBlue),
		Success: color.New(color.FgHiGreen),
		Error:   color.New(color.FgHiRed),
		Warning: color.New(color.FgHiYellow),
	}
	for _, c := range colors {
		if colorize {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return &ConsoleLogger{out: out, colors: colors}
}

func (l *ConsoleLogger) Log(level Level, message string, args ...interface{}) {
	if level == "" {
		level = Info
	}
	c, ok := l.colors[level]
	if !ok {
		c = l.colors[Info]
	}
	if len(args) > 0 {
		message = fmt.Sprintf(message, args...)
	}
	// leading blank lines go before the label, not inside it
	trimmed := strings.TrimLeft(message, "\n")
	l.lock.Lock()
	defer l.lock.Unlock()
	_, _ = io.WriteString(l.out, strings.Repeat("\n", len(message)-len(trimmed)))
	_, _ = fmt.Fprintln(l.out, c.Sprintf("[%s] %s", level, trimmed))
}

type nullLogger struct{}

func (nullLogger) Log(Level, string, ...interface{}) {}

func NullLogger() Logger { return nullLogger{} }

type CapturedEntry struct {
	Time    time.Time
	Level   Level
	Message string
}

// CapturingLogger keeps every entry in memory.
type CapturingLogger struct {
	entries []CapturedEntry
	lock    sync.Mutex
}

func (l *CapturingLogger) Log(level Level, message string, args ...interface{}) {
	if level == "" {
		level = Info
	}
	if len(args) > 0 {
		message = fmt.Sprintf(message, args...)
	}
	l.lock.Lock()
	l.entries = append(l.entries, CapturedEntry{Time: time.Now(), Level: level, Message: message})
	l.lock.Unlock()
}

func (l *CapturingLogger) Entries() []CapturedEntry {
	l.lock.Lock()
	defer l.lock.Unlock()
	return append([]CapturedEntry(nil), l.entries...)
}

// Messages returns the messages logged at the given level, in order.
func (l *CapturingLogger) Messages(level Level) []string {
	var ret []string
	for _, e := range l.Entries() {
		if e.Level == level {
			ret = append(ret, e.Message)
		}
	}
	return ret
}
