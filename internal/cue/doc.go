// Package cue parses CUE sheets into a disc/file/track metadata tree and
// provides CD-DA frame arithmetic. Positions are expressed in frames at
// 44.1 kHz, 75 frames per second; the parser records each track's INDEX 01
// position as its authoritative start.
package cue
