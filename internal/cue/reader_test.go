package cue_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"cuesplit/internal/cue"
)

func TestDecodeLinesTrimsAndDropsEmpties(t *testing.T) {
	data := []byte("\uFEFF" + "TITLE \"A\"\r\n\r\n  FILE \"a.wav\" WAVE  \r\n")
	lines, err := cue.DecodeLines(data, "")
	if err != nil {
		t.Fatalf("DecodeLines returned error: %v", err)
	}
	want := []string{`TITLE "A"`, `FILE "a.wav" WAVE`}
	if len(lines) != len(want) {
		t.Fatalf("line count = %d, want %d: %q", len(lines), len(want), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}

func TestDecodeLinesNamedEncoding(t *testing.T) {
	// "Café" in ISO-8859-1.
	data := []byte{'T', 'I', 'T', 'L', 'E', ' ', 'C', 'a', 'f', 0xE9}
	lines, err := cue.DecodeLines(data, "ISO-8859-1")
	if err != nil {
		t.Fatalf("DecodeLines returned error: %v", err)
	}
	if len(lines) != 1 || lines[0] != "TITLE Café" {
		t.Fatalf("lines = %q, want [TITLE Café]", lines)
	}
}

func TestDecodeLinesFallsBackToUTF8(t *testing.T) {
	data := []byte("TITLE Caf\xc3\xa9")
	lines, err := cue.DecodeLines(data, "no-such-encoding")
	if err != nil {
		t.Fatalf("fallback decode returned error: %v", err)
	}
	if len(lines) != 1 || lines[0] != "TITLE Café" {
		t.Fatalf("lines = %q, want [TITLE Café]", lines)
	}
}

func TestDecodeLinesUndecodable(t *testing.T) {
	// Invalid as UTF-8 and requested with an unknown encoding name, so the
	// fallback fails too.
	data := []byte{0xFF, 0xFE, 0xFF}
	if _, err := cue.DecodeLines(data, "no-such-encoding"); !errors.Is(err, cue.ErrParse) {
		t.Fatalf("error = %v, want ErrParse", err)
	}
}

func TestReadSheet(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "album.cue")
	content := "TITLE \"A\"\nFILE \"a.wav\" WAVE\nTRACK 01 AUDIO\nINDEX 01 00:00:00\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write sheet: %v", err)
	}

	lines, err := cue.ReadSheet(path, "")
	if err != nil {
		t.Fatalf("ReadSheet returned error: %v", err)
	}
	if len(lines) != 4 {
		t.Fatalf("line count = %d, want 4", len(lines))
	}

	if _, err := cue.ReadSheet(filepath.Join(dir, "missing.cue"), ""); err == nil {
		t.Fatalf("expected error for missing sheet")
	}
}
