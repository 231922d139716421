package ffmpeg

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunReportsProgress(t *testing.T) {
	var seconds []float64
	var percents []float64
	runner := &Runner{}

	args := []string{"sh", "-c", "echo out_time_us=1000000; echo out_time_us=2000000"}
	err := runner.Run(context.Background(), args, 4.0, func(s, p float64) {
		seconds = append(seconds, s)
		percents = append(percents, p)
	})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	// Two parsed updates plus the final completion callback.
	if len(seconds) != 3 || seconds[0] != 1 || seconds[1] != 2 || seconds[2] != 4 {
		t.Fatalf("seconds = %v", seconds)
	}
	if percents[2] != 100 {
		t.Fatalf("final percent = %v, want 100", percents[2])
	}
}

func TestRunFailureIncludesStderrTail(t *testing.T) {
	runner := &Runner{}
	args := []string{"sh", "-c", "echo boom >&2; exit 3"}
	err := runner.Run(context.Background(), args, 0, nil)
	if !errors.Is(err, ErrTool) {
		t.Fatalf("error = %v, want ErrTool", err)
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Fatalf("error missing stderr tail: %v", err)
	}
}

func TestRunWritesCommandLog(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "session.log")
	runner := &Runner{LogPath: logPath}

	args := []string{"sh", "-c", "echo noise >&2"}
	if err := runner.Run(context.Background(), args, 0, nil); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "Command: sh -c") {
		t.Fatalf("log missing command header:\n%s", text)
	}
	if !strings.Contains(text, "noise") {
		t.Fatalf("log missing stderr output:\n%s", text)
	}
}

func TestRunEmptyArgs(t *testing.T) {
	runner := &Runner{}
	if err := runner.Run(context.Background(), nil, 0, nil); !errors.Is(err, ErrTool) {
		t.Fatalf("error = %v, want ErrTool", err)
	}
}
