package ffmpeg

import (
	"strings"
	"testing"
)

func TestParseProgressLine(t *testing.T) {
	cases := []struct {
		line    string
		seconds float64
		ok      bool
	}{
		{"out_time_us=2500000", 2.5, true},
		{"out_time_ms=2500000", 2.5, true},
		{"out_time_us=0", 0, true},
		{"  out_time_us=1000000  ", 1, true},
		{"out_time=00:00:02.500000", 0, false},
		{"frame=123", 0, false},
		{"progress=end", 0, false},
		{"out_time_us=-5", 0, false},
		{"out_time_us=abc", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		seconds, ok := parseProgressLine(tc.line)
		if ok != tc.ok || seconds != tc.seconds {
			t.Fatalf("parseProgressLine(%q) = (%v, %v), want (%v, %v)",
				tc.line, seconds, ok, tc.seconds, tc.ok)
		}
	}
}

func TestTailWriterKeepsLastLines(t *testing.T) {
	w := newTailWriter(3)
	for _, chunk := range []string{"one\ntwo\n", "three\nfour\nfi", "ve\n"} {
		if _, err := w.Write([]byte(chunk)); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	if got := w.Tail(); got != "three\nfour\nfive" {
		t.Fatalf("Tail() = %q, want last three lines", got)
	}
}

func TestTailWriterIncludesPartialLine(t *testing.T) {
	w := newTailWriter(10)
	if _, err := w.Write([]byte("done\npartial")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := w.Tail(); got != "done\npartial" {
		t.Fatalf("Tail() = %q", got)
	}
}

func TestTailWriterDropsCarriageReturns(t *testing.T) {
	w := newTailWriter(10)
	if _, err := w.Write([]byte("size=1\r\nsize=2\r\n")); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := w.Tail(); strings.Contains(got, "\r") {
		t.Fatalf("Tail() kept carriage returns: %q", got)
	}
}

func TestPercentOf(t *testing.T) {
	cases := []struct {
		seconds, expected, want float64
	}{
		{1, 4, 25},
		{4, 4, 100},
		{8, 4, 100},
		{1, 0, 0},
		{1, -2, 0},
	}
	for _, tc := range cases {
		if got := percentOf(tc.seconds, tc.expected); got != tc.want {
			t.Fatalf("percentOf(%v, %v) = %v, want %v", tc.seconds, tc.expected, got, tc.want)
		}
	}
}
