package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"     // Colorized output per log level
	"github.com/mattn/go-isatty" // Terminal detection for the "auto" color mode
)

// Level is the severity of a diagnostic line. Lines below a Logger's minimum level are dropped.
type Level int

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

// levelNames maps each Level to the tag printed in front of its lines.
var levelNames = map[Level]string{
	LevelTrace: "TRACE",
	LevelDebug: "DEBUG",
	LevelInfo:  "INFO",
	LevelWarn:  "WARN",
	LevelError: "ERROR",
}

// String returns the upper-case tag of the level, e.g. "DEBUG".
func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// ParseLevel converts a level name such as "debug" or "WARN" into a Level.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseLevel(s string) (Level, error) {
	want := strings.ToUpper(strings.TrimSpace(s))
	for lvl, name := range levelNames {
		if name == want {
			return lvl, nil
		}
	}
	return 0, fmt.Errorf("unknown log level %q (want trace, debug, info, warn or error)", s)
}

// ColorMode controls whether level colors are emitted.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // color only when writing to a terminal
	ColorAlways ColorMode = "always" // always emit ANSI colors
	ColorNever  ColorMode = "never"  // plain text
)

// ParseColorMode validates a color mode name. An empty string means ColorAuto.
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ColorAuto, nil
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	default:
		return "", fmt.Errorf("unknown color mode %q (want auto, always or never)", s)
	}
}

// Logger writes leveled, optionally colorized lines to a single writer.
// It is created once per process and handed to the components that log;
// there is no package-level logger state.
type Logger struct {
	out    io.Writer
	min    Level
	colors map[Level]*color.Color
}

// New creates a Logger writing to out and dropping anything below minLevel.
//
// The palette follows the usual convention: trace is faint, debug cyan,
// info green, warnings bright magenta and errors red.
func New(out io.Writer, minLevel Level, mode ColorMode) *Logger {
	l := &Logger{
		out: out,
		min: minLevel,
		colors: map[Level]*color.Color{
			LevelTrace: color.New(color.Faint),
			LevelDebug: color.New(color.FgCyan),
			LevelInfo:  color.New(color.FgGreen),
			LevelWarn:  color.New(color.FgHiMagenta),
			LevelError: color.New(color.FgRed),
		},
	}

	useColor := mode == ColorAlways || (mode == ColorAuto && isTerminal(out))
	for _, c := range l.colors {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return l
}

// Discard returns a Logger that drops every line.
func Discard() *Logger {
	return New(io.Discard, LevelError+1, ColorNever)
}

// isTerminal reports whether w is a file attached to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Enabled reports whether lines at lvl are written.
func (l *Logger) Enabled(lvl Level) bool {
	return lvl >= l.min
}

// logf formats one line as "[LEVEL] message" and writes it in the level's color.
func (l *Logger) logf(lvl Level, format string, a ...any) {
	if !l.Enabled(lvl) {
		return
	}
	msg := strings.TrimRight(fmt.Sprintf(format, a...), "\n")
	_, _ = l.colors[lvl].Fprintf(l.out, "[%s] %s\n", lvl, msg)
}

// Trace logs fine-grained startup and flow messages.
func (l *Logger) Trace(format string, a ...any) { l.logf(LevelTrace, format, a...) }

// Debug logs messages useful when diagnosing a run.
func (l *Logger) Debug(format string, a ...any) { l.logf(LevelDebug, format, a...) }

// Info logs normal progress.
func (l *Logger) Info(format string, a ...any) { l.logf(LevelInfo, format, a...) }

// Warn logs recoverable problems.
func (l *Logger) Warn(format string, a ...any) { l.logf(LevelWarn, format, a...) }

// Error logs failures.
func (l *Logger) Error(format string, a ...any) { l.logf(LevelError, format, a...) }
