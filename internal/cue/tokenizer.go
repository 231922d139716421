package cue

import "strings"

// Tokenize splits one sheet line into its command word and argument string.
// The argument has surrounding whitespace and double quotes stripped. REM
// lines carry their sub-command in the argument; callers re-tokenize it.
func Tokenize(line string) (command, args string) {
	command, args, _ = strings.Cut(strings.TrimSpace(line), " ")
	return command, Unquote(args)
}

// Unquote strips surrounding whitespace and double quotes from a token.
func Unquote(value string) string {
	return strings.Trim(value, " \t\"")
}
