package cue_test

import (
	"testing"

	"cuesplit/internal/cue"
)

func TestTokenize(t *testing.T) {
	cases := []struct {
		line     string
		command  string
		argument string
	}{
		{`TITLE "Some Album"`, "TITLE", "Some Album"},
		{`PERFORMER Artist`, "PERFORMER", "Artist"},
		{`REM GENRE Rock`, "REM", "GENRE Rock"},
		{`FILE "image file.wav" WAVE`, "FILE", `image file.wav" WAVE`},
		{`  TRACK 01 AUDIO `, "TRACK", "01 AUDIO"},
	}
	for _, tc := range cases {
		command, argument := cue.Tokenize(tc.line)
		if command != tc.command || argument != tc.argument {
			t.Fatalf("Tokenize(%q) = (%q, %q), want (%q, %q)",
				tc.line, command, argument, tc.command, tc.argument)
		}
	}
}

func TestTokenizeRemSubCommand(t *testing.T) {
	command, argument := cue.Tokenize("REM GENRE Rock")
	if command != "REM" {
		t.Fatalf("top-level command = %q, want REM", command)
	}
	sub, subArgument := cue.Tokenize(argument)
	if sub != "GENRE" || subArgument != "Rock" {
		t.Fatalf("sub-command = (%q, %q), want (GENRE, Rock)", sub, subArgument)
	}
}
