// Package debug writes an optional categorized log file. Every call is a
// no-op until Enable succeeds, so hot paths can log freely.
package debug

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

type sink struct {
	file   *os.File
	logger *slog.Logger
	counts map[string]int
}

var (
	mu  sync.Mutex
	out *sink
)

// DefaultPath returns ~/.config/go-jukebox/debug.log
func DefaultPath() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "go-jukebox", "debug.log")
}

// Enable starts logging to path, truncating it. Enabling twice keeps the
// first file.
func Enable(path string) error {
	mu.Lock()
	defer mu.Unlock()
	if out != nil {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	out = &sink{
		file:   f,
		logger: slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})),
		counts: make(map[string]int),
	}
	out.write("debug", "logging to "+path)
	return nil
}

// Disable closes the log file
func Disable() {
	mu.Lock()
	defer mu.Unlock()
	if out == nil {
		return
	}
	out.file.Close()
	out = nil
}

// Log writes one line tagged with category
func Log(category, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if out == nil {
		return
	}
	out.write(category, fmt.Sprintf(format, args...))
}

// LogEvery writes only every nth call with the same category and format.
// Use it for per-tick events.
func LogEvery(n int, category, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if out == nil || n <= 0 {
		return
	}
	key := category + "\x00" + format
	out.counts[key]++
	if count := out.counts[key]; count%n == 0 {
		out.write(category, fmt.Sprintf(format, args...), slog.Int("count", count))
	}
}

func (s *sink) write(category, msg string, attrs ...slog.Attr) {
	args := make([]any, 0, len(attrs)+2)
	args = append(args, "cat", category)
	for _, a := range attrs {
		args = append(args, a)
	}
	s.logger.Debug(msg, args...)
	s.file.Sync() // survive a crash mid-song
}
