package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// DefaultPath is the gallery log file, relative to the working directory (project root when run via go run ./cmd/gallery).
const DefaultPath = "logs/gallery.txt"

// Logger stores lines of text in memory and appends them to a file on disk.
// A nil *Logger discards everything, so components can take one optionally.
type Logger struct {
	mu    sync.Mutex
	path  string
	lines []string
}

// New returns a new Logger writing to path and ensures the directory exists.
// An empty path keeps lines in memory only.
func New(path string) *Logger {
	if path != "" {
		_ = os.MkdirAll(filepath.Dir(path), 0755)
	}
	return &Logger{path: path, lines: make([]string, 0)}
}

// Log appends a line to the logger and to the log file. Each entry is prefixed with [timestamp] using computer time.
func (l *Logger) Log(line string) {
	if l == nil {
		return
	}
	ts := time.Now().Format("2006-01-02 15:04:05")
	stamped := "[" + ts + "] " + line

	l.mu.Lock()
	l.lines = append(l.lines, stamped)
	path := l.path
	l.mu.Unlock()

	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	_, _ = f.WriteString(stamped + "\n")
	_ = f.Close()
}

// Logf formats and logs one line.
func (l *Logger) Logf(format string, args ...any) {
	if l == nil {
		return
	}
	l.Log(fmt.Sprintf(format, args...))
}

// Lines returns a copy of all stored lines.
func (l *Logger) Lines() []string {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.lines))
	copy(out, l.lines)
	return out
}
