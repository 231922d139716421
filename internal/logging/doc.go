// Package logging wires log/slog with console and JSON handlers plus the
// attribute helpers the rest of the repository uses.
package logging
