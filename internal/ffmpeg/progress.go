package ffmpeg

import (
	"context"
	"os/exec"
	"strconv"
	"strings"
	"sync"
)

// commandContext builds the exec.Cmd for an argument list, binary first.
// Split out so tests can inspect construction without running anything.
func commandContext(ctx context.Context, args []string) *exec.Cmd {
	return exec.CommandContext(ctx, args[0], args[1:]...)
}

// parseProgressLine extracts processed seconds from one line of ffmpeg's
// -progress output. Only the out_time_us/out_time_ms keys matter; both
// carry microseconds.
func parseProgressLine(line string) (seconds float64, ok bool) {
	key, value, found := strings.Cut(strings.TrimSpace(line), "=")
	if !found {
		return 0, false
	}
	if key != "out_time_us" && key != "out_time_ms" {
		return 0, false
	}
	micros, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || micros < 0 {
		return 0, false
	}
	return float64(micros) / 1e6, true
}

// tailWriter keeps the last n lines written to it, for error reporting.
type tailWriter struct {
	mu    sync.Mutex
	limit int
	lines []string
	rest  string
}

func newTailWriter(limit int) *tailWriter {
	return &tailWriter{limit: limit}
}

func (w *tailWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	text := w.rest + string(p)
	parts := strings.Split(text, "\n")
	w.rest = parts[len(parts)-1]
	for _, line := range parts[:len(parts)-1] {
		if line = strings.TrimRight(line, "\r"); line != "" {
			w.lines = append(w.lines, line)
		}
	}
	if len(w.lines) > w.limit {
		w.lines = w.lines[len(w.lines)-w.limit:]
	}
	return len(p), nil
}

// Tail returns the retained stderr lines joined with newlines.
func (w *tailWriter) Tail() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	lines := w.lines
	if w.rest != "" {
		lines = append(append([]string(nil), lines...), w.rest)
	}
	return strings.Join(lines, "\n")
}
