package cue

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// CD-DA addressing: 75 frames per second, 44100 samples per second.
const (
	SampleRate      = 44100
	FramesPerSecond = 75
	samplesPerFrame = SampleRate / FramesPerSecond
)

// ErrMalformedTimecode indicates an index position that is not a valid
// MM:SS:FF timecode.
var ErrMalformedTimecode = errors.New("malformed timecode")

// TimecodeToFrames converts an "MM:SS:FF" position into a sample-accurate
// frame count. MM and SS are non-negative integers, FF is 0-74.
func TimecodeToFrames(text string) (int64, error) {
	parts := strings.Split(strings.TrimSpace(text), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTimecode, text)
	}
	fields := make([]int64, 3)
	for i, part := range parts {
		value, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil || value < 0 {
			return 0, fmt.Errorf("%w: %q", ErrMalformedTimecode, text)
		}
		fields[i] = value
	}
	if fields[2] >= FramesPerSecond {
		return 0, fmt.Errorf("%w: %q: frame field out of range", ErrMalformedTimecode, text)
	}
	seconds := fields[0]*60 + fields[1]
	return seconds*SampleRate + fields[2]*samplesPerFrame, nil
}

// FramesToSeconds converts a frame count to seconds.
func FramesToSeconds(frames int64) float64 {
	return float64(frames) / SampleRate
}

// FormatFrames renders a frame count as an "H:MM:SS" duration string for
// logs and console output.
func FormatFrames(frames int64) string {
	total := frames / SampleRate
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
}
