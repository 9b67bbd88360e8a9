// Package logx is a small structured logger used for the diagnostics the
// spec calls out explicitly (vertex merges beyond 4 incident curves, stale
// action rollback, deprecated-action migration warnings). Events are built
// with a chained call: Warn().Src(...).Msgf(...).
package logx

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// Level is the severity of a logged Event.
type Level uint8

// Severity levels, ordered low to high.
const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Logger writes Events to an io.Writer-backed sink. The zero value is not
// usable; construct one with New.
type Logger struct {
	mu      sync.Mutex
	out     *os.File
	minimum Level
}

// New returns a Logger writing to stderr at the given minimum level.
func New(minimum Level) *Logger {
	return &Logger{out: os.Stderr, minimum: minimum}
}

// Event is a single in-flight log entry under construction. Methods return
// the receiver so calls can be chained: log.Warn().Src("shape").Msgf(...).
type Event struct {
	logger *Logger
	level  Level
	src    string
	time   time.Time
}

func (l *Logger) newEvent(level Level) *Event {
	return &Event{logger: l, level: level, time: time.Now()}
}

// Debug starts a debug-level Event.
func (l *Logger) Debug() *Event { return l.newEvent(LevelDebug) }

// Info starts an info-level Event.
func (l *Logger) Info() *Event { return l.newEvent(LevelInfo) }

// Warn starts a warn-level Event.
func (l *Logger) Warn() *Event { return l.newEvent(LevelWarn) }

// Error starts an error-level Event.
func (l *Logger) Error() *Event { return l.newEvent(LevelError) }

// Src tags the Event with the owning component ("shape", "action",
// "compositor", "duration", ...).
func (e *Event) Src(component string) *Event {
	e.src = component
	return e
}

// Msgf formats and emits the Event. No-op if the logger is nil, so callers
// in hot paths don't need a nil check before logging a diagnostic.
func (e *Event) Msgf(format string, args ...interface{}) {
	if e == nil || e.logger == nil {
		return
	}
	if e.level < e.logger.minimum {
		return
	}
	e.logger.mu.Lock()
	defer e.logger.mu.Unlock()
	fmt.Fprintf(e.logger.out, "%s [%s] %s: %s\n",
		e.time.Format(time.RFC3339), e.level, e.src, fmt.Sprintf(format, args...))
}

// Msg emits a plain message, equivalent to Msgf with no verbs.
func (e *Event) Msg(msg string) {
	e.Msgf("%s", msg)
}

// Nop is a Logger that discards everything; useful as a default when the
// embedder hasn't wired one in.
var Nop = &Logger{out: nil, minimum: LevelError + 1}

func init() {
	// Nop never writes: its minimum level is unreachable. Give it a valid
	// file handle anyway so Msgf's Fprintf never sees a nil writer if the
	// level check above is ever loosened.
	devNull, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
	if err == nil {
		Nop.out = devNull
	}
}
