package ffprobe

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeStub(t *testing.T, script string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ffprobe-stub")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+script+"\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

func TestInspectParsesOutput(t *testing.T) {
	stub := writeStub(t, `cat <<'EOF'
{
  "streams": [
    {"index": 0, "codec_name": "flac", "codec_type": "audio", "sample_rate": "44100", "channels": 2}
  ],
  "format": {"filename": "image.flac", "nb_streams": 1, "duration": "237.480000", "format_name": "flac"}
}
EOF`)

	result, err := Inspect(context.Background(), stub, "image.flac")
	if err != nil {
		t.Fatalf("Inspect returned error: %v", err)
	}
	if result.AudioStreamCount() != 1 {
		t.Fatalf("audio stream count = %d, want 1", result.AudioStreamCount())
	}
	if got := result.DurationSeconds(); got != 237.48 {
		t.Fatalf("duration = %v, want 237.48", got)
	}
	if result.Streams[0].CodecName != "flac" || result.Streams[0].Channels != 2 {
		t.Fatalf("stream = %+v", result.Streams[0])
	}
}

func TestInspectFailureCarriesStderr(t *testing.T) {
	stub := writeStub(t, `echo "No such file" >&2; exit 1`)
	_, err := Inspect(context.Background(), stub, "missing.flac")
	if !errors.Is(err, ErrProbe) {
		t.Fatalf("error = %v, want ErrProbe", err)
	}
	if !strings.Contains(err.Error(), "No such file") {
		t.Fatalf("error missing stderr detail: %v", err)
	}
}

func TestInspectEmptyPath(t *testing.T) {
	if _, err := Inspect(context.Background(), "ffprobe", "  "); !errors.Is(err, ErrProbe) {
		t.Fatalf("error = %v, want ErrProbe", err)
	}
}

func TestDurationRejectsNonPositive(t *testing.T) {
	stub := writeStub(t, `echo '{"streams": [], "format": {"duration": "0.0"}}'`)
	_, err := Duration(context.Background(), stub, "empty.flac")
	if !errors.Is(err, ErrProbe) {
		t.Fatalf("error = %v, want ErrProbe", err)
	}
}

func TestDurationSeconds(t *testing.T) {
	cases := []struct {
		value string
		want  float64
	}{
		{"2.0", 2.0},
		{" 180.5 ", 180.5},
		{"", 0},
		{"N/A", 0},
		{"-3", 0},
	}
	for _, tc := range cases {
		result := Result{Format: Format{Duration: tc.value}}
		if got := result.DurationSeconds(); got != tc.want {
			t.Fatalf("DurationSeconds(%q) = %v, want %v", tc.value, got, tc.want)
		}
	}
}
