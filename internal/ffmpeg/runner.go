// Package ffmpeg executes split recipes with the external ffmpeg tool and
// reports progress parsed from its machine-readable output.
package ffmpeg

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"cuesplit/internal/logging"
)

// ErrTool indicates an ffmpeg invocation failure.
var ErrTool = errors.New("ffmpeg error")

// ProgressFunc receives processed stream seconds and the percent complete
// against the recipe's expected duration.
type ProgressFunc func(seconds, percent float64)

// Runner executes recipe argument lists. A Runner is reused across the
// tracks of one sheet so their transcripts share a log file.
type Runner struct {
	// LogPath, when set, receives each command line and its stderr output.
	LogPath string
	Logger  *slog.Logger
}

// Run executes one argument list (binary first). When the command was
// built with progress output enabled, onProgress receives updates parsed
// from ffmpeg's key=value progress stream.
func (r *Runner) Run(ctx context.Context, args []string, expectedSeconds float64, onProgress ProgressFunc) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: empty argument list", ErrTool)
	}
	logger := r.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	logSink, err := r.openLog(args)
	if err != nil {
		return err
	}
	if logSink != nil {
		defer logSink.Close()
	}

	cmd := commandContext(ctx, args)
	stderr := newTailWriter(40)
	if logSink != nil {
		cmd.Stderr = io.MultiWriter(stderr, logSink)
	} else {
		cmd.Stderr = stderr
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("%w: stdout pipe: %v", ErrTool, err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %v", ErrTool, err)
	}

	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		seconds, ok := parseProgressLine(scanner.Text())
		if !ok {
			continue
		}
		if onProgress != nil {
			onProgress(seconds, percentOf(seconds, expectedSeconds))
		}
	}

	if err := cmd.Wait(); err != nil {
		logger.Error("ffmpeg command failed",
			logging.Error(err),
			logging.String("stderr", stderr.Tail()))
		return fmt.Errorf("%w: %v: %s", ErrTool, err, stderr.Tail())
	}
	if onProgress != nil {
		onProgress(expectedSeconds, 100)
	}
	return nil
}

func (r *Runner) openLog(args []string) (*os.File, error) {
	if strings.TrimSpace(r.LogPath) == "" {
		return nil, nil
	}
	file, err := os.OpenFile(r.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w: open log %s: %v", ErrTool, r.LogPath, err)
	}
	header := fmt.Sprintf("\nCommand: %s\n%s\n", strings.Join(args, " "), strings.Repeat("=", 55))
	if _, err := file.WriteString(header); err != nil {
		file.Close()
		return nil, fmt.Errorf("%w: write log %s: %v", ErrTool, r.LogPath, err)
	}
	return file, nil
}

func percentOf(seconds, expected float64) float64 {
	if expected <= 0 {
		return 0
	}
	percent := seconds / expected * 100
	if percent > 100 {
		percent = 100
	}
	return percent
}
