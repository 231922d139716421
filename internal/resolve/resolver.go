// Package resolve turns a parsed sheet into exact per-track boundaries.
// Track ends come from the next track's start; the last track in each
// source file runs to the probed end of the stream.
package resolve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"cuesplit/internal/cue"
	"cuesplit/internal/logging"
)

var (
	// ErrNoSource indicates that no source audio file referenced by the
	// sheet exists on disk.
	ErrNoSource = errors.New("no source audio file found")
	// ErrResolution indicates an inconsistent sheet: starts that do not
	// increase, or a probed duration shorter than the declared starts.
	ErrResolution = errors.New("track resolution error")
)

// Track is a fully resolved track ready for recipe building.
type Track struct {
	Number   int
	Tags     cue.Tags
	Source   string // absolute path to the source audio file
	Start    int64  // frames
	End      int64  // frames; meaningful only when HasEnd is set
	HasEnd   bool
	Duration float64 // seconds, always > 0
}

// Group holds the resolved tracks of one FILE entry, in sheet order.
type Group struct {
	Source string
	Tracks []Track
}

// ProbeFunc returns the total duration in seconds of a source audio file.
type ProbeFunc func(ctx context.Context, path string) (float64, error)

// Options configures resolution.
type Options struct {
	// BaseDir anchors relative FILE paths, normally the sheet's directory.
	BaseDir string
	// Probe supplies per-file total durations. Required.
	Probe ProbeFunc
	// Stat reports whether a source file exists. Defaults to os.Stat.
	Stat   func(path string) bool
	Logger *slog.Logger
}

// Resolve computes start/end/duration for every track whose source file
// exists. Missing source files drop their tracks with a warning; if every
// file is missing the whole job fails with ErrNoSource. Two FILE entries
// naming the same path stay independent groups.
func Resolve(ctx context.Context, sheet *cue.Sheet, opts Options) ([]Group, error) {
	if opts.Probe == nil {
		return nil, errors.New("resolve: probe function required")
	}
	stat := opts.Stat
	if stat == nil {
		stat = func(path string) bool {
			info, err := os.Stat(path)
			return err == nil && info.Mode().IsRegular()
		}
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNop()
	}

	seen := make(map[string]int)
	groups := make([]Group, 0, len(sheet.Files))
	for _, file := range sheet.Files {
		source := file.Path
		if !filepath.IsAbs(source) {
			source = filepath.Join(opts.BaseDir, source)
		}
		if seen[source]++; seen[source] > 1 {
			logger.Warn("sheet repeats a FILE path; treating entries as independent groups",
				logging.String("source", source))
		}
		if !stat(source) {
			logger.Warn("source audio file not found; dropping its tracks",
				logging.String("source", source),
				logging.Int("tracks", len(file.Tracks)))
			continue
		}
		if len(file.Tracks) == 0 {
			continue
		}

		total, err := opts.Probe(ctx, source)
		if err != nil {
			return nil, fmt.Errorf("probe %s: %w", source, err)
		}

		group, err := resolveGroup(file, source, total)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}

	if len(groups) == 0 {
		return nil, fmt.Errorf("%w: none of the sheet's source files exist", ErrNoSource)
	}
	return groups, nil
}

func resolveGroup(file *cue.SourceFile, source string, totalSeconds float64) (Group, error) {
	group := Group{Source: source}
	tracks := file.Tracks
	var accounted float64

	for i, track := range tracks {
		resolved := Track{
			Number: track.Number,
			Tags:   track.Tags,
			Source: source,
			Start:  track.Start,
		}
		if i < len(tracks)-1 {
			next := tracks[i+1].Start
			resolved.End = next
			resolved.HasEnd = true
			resolved.Duration = cue.FramesToSeconds(next - track.Start)
			accounted += resolved.Duration
		} else if len(tracks) == 1 {
			resolved.Duration = totalSeconds - cue.FramesToSeconds(track.Start)
		} else {
			resolved.Duration = totalSeconds - accounted
		}
		if resolved.Duration <= 0 {
			return Group{}, fmt.Errorf("%w: track %02d in %s has non-positive duration %.6f (check index order and stream length)",
				ErrResolution, track.Number, source, resolved.Duration)
		}
		group.Tracks = append(group.Tracks, resolved)
	}
	return group, nil
}
