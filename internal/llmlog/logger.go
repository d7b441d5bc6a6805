package llmlog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// timeLayout renders millisecond timestamps with a comma separator, the
// interaction log's historical line shape.
const timeLayout = "2006-01-02 15:04:05,000"

// Logger is the LLM interaction log: a dated file under a base directory,
// one "<timestamp> - <LEVEL> - <message>" line per event. A failed write
// never reaches the caller; it is reported on the fallback stream (stdout by
// default) and the event is dropped.
type Logger struct {
	zl   zerolog.Logger
	file *os.File
	path string
}

// FileName returns the log file name for the given day.
func FileName(day time.Time) string {
	return fmt.Sprintf("llm_calls_%s.log", day.Format("20060102"))
}

// Open creates dir when needed and opens the current day's log file for
// appending, so repeated runs on the same day share one file.
func Open(dir string) (*Logger, error) {
	if strings.TrimSpace(dir) == "" {
		dir = "logs"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	path := filepath.Join(dir, FileName(time.Now()))
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	l := New(f, os.Stdout)
	l.file = f
	l.path = path
	return l, nil
}

// New builds a Logger over an arbitrary destination writer. Open uses it
// with the dated file; tests can pass any writer pair.
func New(dst, fallback io.Writer) *Logger {
	w := zerolog.ConsoleWriter{
		Out:     &reportingWriter{dst: dst, fallback: fallback},
		NoColor: true,
		// The event carries no timestamp field; stamp lines at render time.
		FormatTimestamp: func(interface{}) string {
			return time.Now().Format(timeLayout)
		},
		FormatLevel: func(i interface{}) string {
			lvl, _ := i.(string)
			if lvl == "warn" {
				lvl = "warning"
			}
			return "- " + strings.ToUpper(lvl) + " -"
		},
	}
	return &Logger{zl: zerolog.New(w)}
}

// Path returns the open file's location; empty for writer-backed loggers.
func (l *Logger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Info records an interaction event. Safe on a nil logger, as are the other
// level methods, so callers never need to guard logging.
func (l *Logger) Info(msg string) {
	if l == nil {
		return
	}
	l.zl.Info().Msg(msg)
}

// Warnf records a recoverable problem.
func (l *Logger) Warnf(format string, args ...any) {
	if l == nil {
		return
	}
	l.zl.Warn().Msgf(format, args...)
}

// Errorf records a failure the operation absorbed.
func (l *Logger) Errorf(format string, args ...any) {
	if l == nil {
		return
	}
	l.zl.Error().Msgf(format, args...)
}

// Close releases the underlying file when one is open.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// reportingWriter forwards log lines to dst and converts write failures into
// a notice on the fallback stream, so logging can never abort a call.
type reportingWriter struct {
	dst      io.Writer
	fallback io.Writer
}

func (w *reportingWriter) Write(p []byte) (int, error) {
	if _, err := w.dst.Write(p); err != nil && w.fallback != nil {
		fmt.Fprintf(w.fallback, "Warning: failed to write llm log: %v\n", err)
	}
	return len(p), nil
}
